package web

import (
	"strconv"

	"github.com/veles-works/ems-console/internal/editor"
	"github.com/veles-works/ems-console/internal/models"
)

type banner struct {
	Text string
	Kind string
}

type loginPage struct {
	Error       string
	Next        string
	Username    string
	FieldErrors map[string]string
}

type listPage struct {
	Banner    *banner
	LoadError string
	Employees []models.Employee
	Form      *formView
}

type detailPage struct {
	Banner   *banner
	Tab      string
	Employee models.Employee
	Form     *formView
}

type errorPage struct {
	Title   string
	Message string
	Retry   string
}

// formView is the template-facing projection of an editor: its field
// state plus the fixed choice lists the form controls render from.
type formView struct {
	Editing bool
	Heading string
	Action  string
	Cancel  string
	Busy    bool

	Values      editor.Values
	FieldErrors map[string]string
	FormError   string
	Notice      string

	Departments      []models.Department
	EmploymentTypes  []string
	EmployeeStatuses []string
	Genders          []string
	MaritalStatuses  []string
	Countries        []models.Country

	PicturePreview string
}

func (s *Server) formView(ed *editor.Editor) *formView {
	view := &formView{
		Heading:          "Add Employee",
		Action:           "/employees",
		Cancel:           "/employees",
		Busy:             ed.Busy(),
		Values:           ed.Values(),
		FieldErrors:      ed.FieldErrors(),
		FormError:        ed.FormError(),
		Notice:           ed.Notice(),
		Departments:      ed.Departments(),
		EmploymentTypes:  models.EmploymentTypes(),
		EmployeeStatuses: models.EmployeeStatuses(),
		Genders:          models.Genders(),
		MaritalStatuses:  models.MaritalStatuses(),
		Countries:        models.Countries(),
		PicturePreview:   ed.PicturePreviewURL(),
	}

	if id, editing := ed.TargetID(); editing {
		view.Editing = true
		view.Heading = "Edit Employee"
		view.Action = "/employees/" + strconv.Itoa(id)
		view.Cancel = "/employees/" + strconv.Itoa(id)
	}

	return view
}
