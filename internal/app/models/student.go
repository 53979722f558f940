package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student defines the student document stored in the 'students' collection
type Student struct {
	ID             primitive.ObjectID `json:"_id,omitzero" bson:"_id,omitempty" swaggertype:"string" example:"6650f0c2a1b2c3d4e5f60718"` // Assigned by the database on insert
	FirstName      string             `json:"firstName" bson:"firstName" validate:"required" example:"Ada"`
	LastName       string             `json:"lastName" bson:"lastName" validate:"required" example:"Lovelace"`
	Email          string             `json:"email" bson:"email" validate:"required,email" example:"ada@example.com"`
	DateOfBirth    Date               `json:"dateOfBirth" bson:"dateOfBirth" validate:"required" swaggertype:"string" example:"2004-12-10"`
	StudentID      string             `json:"studentId" bson:"studentId" validate:"required" example:"S-2024-001"` // Institution assigned, not unique-checked
	Phone          string             `json:"phone" bson:"phone" validate:"required,mindigits=10" example:"5551234567"`
	Address        Address            `json:"address" bson:"address"`
	EnrollmentDate Date               `json:"enrollmentDate" bson:"enrollmentDate" validate:"required" swaggertype:"string" example:"2024-09-01"`
	Course         string             `json:"course" bson:"course" validate:"required" example:"B.Sc. Computer Science"`
	Department     string             `json:"department" bson:"department" validate:"required" example:"computer-science"`
	Year           int                `json:"year" bson:"year" validate:"required,min=1,max=6" example:"1"`
	GuardianName   string             `json:"guardianName,omitempty" bson:"guardianName,omitempty"`
	GuardianPhone  string             `json:"guardianPhone,omitempty" bson:"guardianPhone,omitempty"`

	// Set by the service layer, never taken from the client
	CreatedAt time.Time `json:"createdAt,omitzero" bson:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitzero" bson:"updatedAt,omitempty"`
}

// Address is the postal address embedded in a Student
type Address struct {
	Street  string `json:"street" bson:"street" validate:"required" example:"12 Analytical Way"`
	City    string `json:"city" bson:"city" validate:"required" example:"London"`
	State   string `json:"state" bson:"state" validate:"required" example:"Greater London"`
	ZipCode string `json:"zipCode" bson:"zipCode" validate:"required,min=5" example:"10001"`
	Country string `json:"country" bson:"country" example:"USA"` // Defaults to USA when empty
}

// FullName joins first and last name the way notifications display it.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
