package models

import "time"

// UserAgent is sent with every request to the EMS API.
const UserAgent = "ems-console/1.0"

// Employee represents an employee record as returned by the EMS API.
// The numeric ID is the server primary key and is the only value used
// to address a record for update or delete; EmployeeID is the
// human-facing identifier and never changes after creation.
type Employee struct {
	ID             int         `json:"id"`
	EmployeeID     string      `json:"employee_id"`
	User           *LinkedUser `json:"user"`
	MobilePhone    string      `json:"mobile_phone"`
	Department     *Department `json:"department"`
	JobTitle       string      `json:"job_title"`
	EmploymentType string      `json:"employment_type"`
	DateJoined     *DateOnly   `json:"date_joined"`
	EmployeeStatus string      `json:"employee_status"`
	ProfilePicture string      `json:"profile_picture"`
	DateOfBirth    *DateOnly   `json:"date_of_birth"`
	Gender         string      `json:"gender"`
	MaritalStatus  string      `json:"marital_status"`
	HomeAddress    string      `json:"home_address"`
	Nationality    string      `json:"nationality"`
	DateCreated    time.Time   `json:"date_created"`
	DateUpdated    time.Time   `json:"date_updated"`
}

// DisplayName returns the linked account's full name when one exists,
// falling back to the human-facing employee identifier.
func (e Employee) DisplayName() string {
	if e.User != nil {
		if name := e.User.FullName(); name != "" {
			return name
		}
		if e.User.Username != "" {
			return e.User.Username
		}
	}

	return e.EmployeeID
}

// LinkedUser is the account a record may be linked to for login access.
type LinkedUser struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// FullName joins the first and last name, omitting empty parts.
func (u LinkedUser) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.LastName
	}
}

// Department is a reference entity; the console only ever reads it.
type Department struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
