package form

import (
	"strconv"
	"strings"

	"github.com/yigit/studentreg/internal/app/models"
	"github.com/yigit/studentreg/internal/app/models/dto"
	"github.com/yigit/studentreg/internal/app/schemas"
)

// Field names, as used by HandleChange and as keys of the error map.
// Address fields are flat here: "street", not "address.street".
const (
	FieldFirstName      = "firstName"
	FieldLastName       = "lastName"
	FieldEmail          = "email"
	FieldDateOfBirth    = "dateOfBirth"
	FieldStudentID      = "studentId"
	FieldPhone          = "phone"
	FieldStreet         = "street"
	FieldCity           = "city"
	FieldState          = "state"
	FieldZipCode        = "zipCode"
	FieldCountry        = "country"
	FieldEnrollmentDate = "enrollmentDate"
	FieldCourse         = "course"
	FieldDepartment     = "department"
	FieldYear           = "year"
	FieldGuardianName   = "guardianName"
	FieldGuardianPhone  = "guardianPhone"
)

// Fields lists every field in display order
var Fields = []string{
	FieldFirstName, FieldLastName, FieldEmail, FieldDateOfBirth, FieldStudentID, FieldPhone,
	FieldStreet, FieldCity, FieldState, FieldZipCode, FieldCountry,
	FieldEnrollmentDate, FieldCourse, FieldDepartment, FieldYear,
	FieldGuardianName, FieldGuardianPhone,
}

// Values is the raw text the user entered. Dates are YYYY-MM-DD and year is
// the decimal year of study.
type Values struct {
	FirstName      string
	LastName       string
	Email          string
	DateOfBirth    string
	StudentID      string
	Phone          string
	Street         string
	City           string
	State          string
	ZipCode        string
	Country        string
	EnrollmentDate string
	Course         string
	Department     string
	Year           string
	GuardianName   string
	GuardianPhone  string
}

// InitialValues is an empty form with the default country preselected
func InitialValues() Values {
	return Values{Country: schemas.DefaultCountry}
}

// Get returns the value of the named field
func (v *Values) Get(name string) (string, bool) {
	p := v.field(name)
	if p == nil {
		return "", false
	}
	return *p, true
}

func (v *Values) field(name string) *string {
	switch name {
	case FieldFirstName:
		return &v.FirstName
	case FieldLastName:
		return &v.LastName
	case FieldEmail:
		return &v.Email
	case FieldDateOfBirth:
		return &v.DateOfBirth
	case FieldStudentID:
		return &v.StudentID
	case FieldPhone:
		return &v.Phone
	case FieldStreet:
		return &v.Street
	case FieldCity:
		return &v.City
	case FieldState:
		return &v.State
	case FieldZipCode:
		return &v.ZipCode
	case FieldCountry:
		return &v.Country
	case FieldEnrollmentDate:
		return &v.EnrollmentDate
	case FieldCourse:
		return &v.Course
	case FieldDepartment:
		return &v.Department
	case FieldYear:
		return &v.Year
	case FieldGuardianName:
		return &v.GuardianName
	case FieldGuardianPhone:
		return &v.GuardianPhone
	}
	return nil
}

// Request converts the entered text into the registration payload.
// Unparseable dates become the zero date and an unparseable year becomes -1
// so schema validation reports them.
func (v Values) Request() dto.CreateStudentRequest {
	return dto.CreateStudentRequest{
		FirstName:   v.FirstName,
		LastName:    v.LastName,
		Email:       v.Email,
		DateOfBirth: parseDate(v.DateOfBirth),
		StudentID:   v.StudentID,
		Phone:       v.Phone,
		Address: models.Address{
			Street:  v.Street,
			City:    v.City,
			State:   v.State,
			ZipCode: v.ZipCode,
			Country: v.Country,
		},
		EnrollmentDate: parseDate(v.EnrollmentDate),
		Course:         v.Course,
		Department:     v.Department,
		Year:           parseYear(v.Year),
		GuardianName:   v.GuardianName,
		GuardianPhone:  v.GuardianPhone,
	}
}

func parseDate(s string) models.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Date{}
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}
	}
	return d
}

func parseYear(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}

// flattenField maps a schema path onto a form field: "address.zipCode" -> "zipCode"
func flattenField(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}
