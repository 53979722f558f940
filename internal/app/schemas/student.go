package schemas

import (
	"reflect"

	"github.com/yigit/studentreg/internal/app/models"
	"github.com/yigit/studentreg/internal/pkg/validation"
)

// DefaultCountry fills Address.Country when the caller leaves it empty.
const DefaultCountry = "USA"

// StudentMessages are the user facing messages for each rejected Student field.
var StudentMessages = validation.Messages{
	"firstName":                "First name is required",
	"lastName":                 "Last name is required",
	"email.required":           "Email is required",
	"email.email":              "Invalid email format",
	"dateOfBirth":              "Date of birth is required",
	"studentId":                "Student ID is required",
	"phone.required":           "Phone number is required",
	"phone.mindigits":          "Phone number must be at least 10 digits",
	"address.street":           "Street is required",
	"address.city":             "City is required",
	"address.state":            "State is required",
	"address.zipCode.required": "Zip code is required",
	"address.zipCode.min":      "Zip code is required",
	"enrollmentDate":           "Enrollment date is required",
	"course":                   "Course is required",
	"department":               "Department is required",
	"year.required":            "Year is required",
	"year":                     "Year must be between 1 and 6",
}

var student = validation.NewSchema("Student", StudentMessages, defaultCountry)

func init() {
	// Date validates as the time it wraps so "required" rejects the zero date
	validation.RegisterType(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(models.Date); ok {
			return d.Time
		}
		return nil
	}, models.Date{})
}

// Student returns the schema shared by the data layer and the registration form.
func Student() *validation.Schema[models.Student] {
	return student
}

func defaultCountry(s *models.Student) {
	if s.Address.Country == "" {
		s.Address.Country = DefaultCountry
	}
}
