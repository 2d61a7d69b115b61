package models

// Fixed value sets for the enum fields of an employee record. The sets
// mirror the EMS API; anything outside them (other than the empty
// "unset" value for the optional fields) is rejected before submission.

// EmploymentType values.
const (
	EmploymentFullTime = "Full-time"
	EmploymentPartTime = "Part-time"
	EmploymentContract = "Contract"
	EmploymentIntern   = "Intern"
)

// EmployeeStatus values.
const (
	StatusActive     = "Active"
	StatusInactive   = "Inactive"
	StatusOnLeave    = "On Leave"
	StatusProbation  = "Probation"
	StatusTerminated = "Terminated"
)

// EmploymentTypes lists the valid employment types in display order.
func EmploymentTypes() []string {
	return []string{EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentIntern}
}

// EmployeeStatuses lists the valid employee statuses in display order.
func EmployeeStatuses() []string {
	return []string{StatusActive, StatusInactive, StatusOnLeave, StatusProbation, StatusTerminated}
}

// Genders lists the valid gender values in display order.
func Genders() []string {
	return []string{"Male", "Female", "Other", "Prefer Not To Say"}
}

// MaritalStatuses lists the valid marital statuses in display order.
func MaritalStatuses() []string {
	return []string{"Single", "Married", "Divorced", "Widowed", "Other"}
}

// Country is an entry of the fixed nationality list.
type Country struct {
	Code  string
	Label string
}

// Countries lists the selectable nationalities.
func Countries() []Country {
	return []Country{
		{Code: "AU", Label: "Australia"},
		{Code: "BR", Label: "Brazil"},
		{Code: "CA", Label: "Canada"},
		{Code: "CN", Label: "China"},
		{Code: "DE", Label: "Germany"},
		{Code: "ES", Label: "Spain"},
		{Code: "FR", Label: "France"},
		{Code: "GB", Label: "United Kingdom"},
		{Code: "IN", Label: "India"},
		{Code: "IT", Label: "Italy"},
		{Code: "JP", Label: "Japan"},
		{Code: "NG", Label: "Nigeria"},
		{Code: "SG", Label: "Singapore"},
		{Code: "UA", Label: "Ukraine"},
		{Code: "US", Label: "United States"},
	}
}

// ValidChoice reports whether value is empty (unset) or a member of the
// given value set.
func ValidChoice(value string, choices []string) bool {
	if value == "" {
		return true
	}
	for _, choice := range choices {
		if value == choice {
			return true
		}
	}

	return false
}
