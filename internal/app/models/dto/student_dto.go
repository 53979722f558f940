package dto

import "github.com/yigit/studentreg/internal/app/models"

// CreateStudentRequest is the registration payload. It carries every
// Student field except the database identity and the timestamps.
type CreateStudentRequest struct {
	FirstName      string         `json:"firstName" example:"Ada"`
	LastName       string         `json:"lastName" example:"Lovelace"`
	Email          string         `json:"email" example:"ada@example.com"`
	DateOfBirth    models.Date    `json:"dateOfBirth" swaggertype:"string" example:"2004-12-10"`
	StudentID      string         `json:"studentId" example:"S-2024-001"`
	Phone          string         `json:"phone" example:"5551234567"`
	Address        models.Address `json:"address"`
	EnrollmentDate models.Date    `json:"enrollmentDate" swaggertype:"string" example:"2024-09-01"`
	Course         string         `json:"course" example:"B.Sc. Computer Science"`
	Department     string         `json:"department" example:"computer-science"`
	Year           int            `json:"year" example:"1"`
	GuardianName   string         `json:"guardianName,omitempty"`
	GuardianPhone  string         `json:"guardianPhone,omitempty"`
}

// ToModel converts the request into an unsaved Student
func (r CreateStudentRequest) ToModel() models.Student {
	return models.Student{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		DateOfBirth:    r.DateOfBirth,
		StudentID:      r.StudentID,
		Phone:          r.Phone,
		Address:        r.Address,
		EnrollmentDate: r.EnrollmentDate,
		Course:         r.Course,
		Department:     r.Department,
		Year:           r.Year,
		GuardianName:   r.GuardianName,
		GuardianPhone:  r.GuardianPhone,
	}
}
