package editor

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Input is one submitted pass over the form, as posted by the browser.
// Dates arrive as "YYYY-MM-DD" strings from the date controls; the
// linked user and department references arrive as decimal id strings.
type Input struct {
	EmployeeID     string `form:"employee_id"`
	UserID         string `form:"user_id"         validate:"omitempty,number"`
	MobilePhone    string `form:"mobile_phone"`
	DepartmentID   string `form:"department_id"   validate:"omitempty,number"`
	JobTitle       string `form:"job_title"`
	EmploymentType string `form:"employment_type" validate:"required,oneof=Full-time Part-time Contract Intern"`
	DateJoined     string `form:"date_joined"     validate:"required,datetime=2006-01-02"`
	EmployeeStatus string `form:"employee_status" validate:"required,oneof=Active Inactive 'On Leave' Probation Terminated"`
	DateOfBirth    string `form:"date_of_birth"   validate:"omitempty,datetime=2006-01-02"`
	Gender         string `form:"gender"          validate:"omitempty,oneof=Male Female Other 'Prefer Not To Say'"`
	MaritalStatus  string `form:"marital_status"  validate:"omitempty,oneof=Single Married Divorced Widowed Other"`
	HomeAddress    string `form:"home_address"`
	Nationality    string `form:"nationality"`
	RemovePicture  bool   `form:"remove_picture"`
}

var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report errors under the form field name, not the Go field name.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return validate
}

// fieldLabels overrides the generated display name where the raw form
// name reads badly.
var fieldLabels = map[string]string{
	"user_id":       "Linked User ID",
	"date_of_birth": "Date of Birth",
	"department_id": "Department",
}

// validateInput runs the pre-submit checks. Employee ID is required only
// when creating; in edit mode the field is immutable and never posted.
func validateInput(input Input, editing bool) map[string]string {
	fieldErrs := make(map[string]string)

	if !editing && strings.TrimSpace(input.EmployeeID) == "" {
		fieldErrs["employee_id"] = "Employee ID is required."
	}

	if err := inputValidator.Struct(input); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fieldErr := range validationErrs {
				if _, seen := fieldErrs[fieldErr.Field()]; !seen {
					fieldErrs[fieldErr.Field()] = messageFor(fieldErr)
				}
			}
		} else {
			fieldErrs["form"] = "The submitted form could not be validated."
		}
	}

	return fieldErrs
}

func messageFor(fieldErr validator.FieldError) string {
	label := fieldLabel(fieldErr.Field())

	switch fieldErr.Tag() {
	case "required":
		return label + " is required."
	case "datetime":
		return label + " must be a valid date in YYYY-MM-DD format."
	case "number":
		return label + " must be a number."
	case "oneof":
		return label + " must be one of the allowed values."
	default:
		return label + " is invalid."
	}
}

func fieldLabel(name string) string {
	if label, ok := fieldLabels[name]; ok {
		return label
	}

	words := strings.Split(strings.ReplaceAll(name, "_", " "), " ")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}

	return strings.Join(words, " ")
}
