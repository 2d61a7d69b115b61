package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/veles-works/ems-console/internal/emsapi"
	"github.com/veles-works/ems-console/internal/lib/logger/sl"
	"github.com/veles-works/ems-console/internal/metrics"
	"github.com/veles-works/ems-console/internal/models"
)

var (
	// ErrBusy means a submission is already in flight for this editor;
	// the duplicate submit is a no-op.
	ErrBusy = errors.New("a submission is already in progress")
	// ErrValidation means client-side checks failed and nothing was sent.
	ErrValidation = errors.New("the form did not pass validation")
)

// ModeKind tells the editor apart from a fresh create form and an edit
// of an existing record.
type ModeKind int

const (
	// ModeCreate builds a new employee record.
	ModeCreate ModeKind = iota
	// ModeEdit updates the record captured in the snapshot the editor
	// was started from.
	ModeEdit
)

// EmployeeAPI is the slice of the EMS client the editor needs.
type EmployeeAPI interface {
	CreateEmployee(ctx context.Context, payload *emsapi.Payload) (models.Employee, error)
	UpdateEmployee(ctx context.Context, id int, payload *emsapi.Payload) (models.Employee, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
}

// Callbacks are invoked after a successful submission with the record
// the server returned.
type Callbacks struct {
	OnCreated func(models.Employee)
	OnUpdated func(models.Employee)
}

// Deps carries the collaborators an editor is built with.
type Deps struct {
	Log       *slog.Logger
	Metrics   *metrics.Metrics
	API       EmployeeAPI
	Callbacks Callbacks
}

// Values is the scalar field state of the form. Dates are kept in their
// "YYYY-MM-DD" wire form and the linked user and department references
// as decimal id strings, exactly as the form controls post them.
type Values struct {
	EmployeeID     string
	UserID         string
	MobilePhone    string
	DepartmentID   string
	JobTitle       string
	EmploymentType string
	DateJoined     string
	EmployeeStatus string
	DateOfBirth    string
	Gender         string
	MaritalStatus  string
	HomeAddress    string
	Nationality    string
}

func defaultValues() Values {
	return Values{
		EmploymentType: models.EmploymentFullTime,
		EmployeeStatus: models.StatusProbation,
	}
}

// Editor is the dual-mode create/edit form for one employee record. One
// submission can be in flight at a time; everything else about it is
// plain single-session form state.
type Editor struct {
	mu   sync.Mutex
	busy bool

	mode     ModeKind
	original *models.Employee

	values    Values
	picture   pictureState
	fieldErrs map[string]string
	formErr   string
	notice    string

	departments     []models.Department
	departmentsDone bool

	deps Deps
}

// NewCreate starts an editor with every field at its default.
func NewCreate(deps Deps) *Editor {
	return &Editor{
		mode:      ModeCreate,
		values:    defaultValues(),
		fieldErrs: make(map[string]string),
		deps:      deps,
	}
}

// NewEdit starts an editor seeded from the server snapshot. The
// snapshot's stored picture, if any, becomes a read-only preview so a
// submit without touching the control never re-uploads it.
func NewEdit(deps Deps, snapshot models.Employee) *Editor {
	return &Editor{
		mode:      ModeEdit,
		original:  &snapshot,
		values:    valuesFromSnapshot(snapshot),
		picture:   pictureFromSnapshot(snapshot.ProfilePicture),
		fieldErrs: make(map[string]string),
		deps:      deps,
	}
}

// valuesFromSnapshot maps the server record onto form state: a missing
// scalar becomes the empty string, a present date its canonical string,
// and the linked user and department ids come from the nested relation
// objects.
func valuesFromSnapshot(snapshot models.Employee) Values {
	values := Values{
		EmployeeID:     snapshot.EmployeeID,
		MobilePhone:    snapshot.MobilePhone,
		JobTitle:       snapshot.JobTitle,
		EmploymentType: snapshot.EmploymentType,
		EmployeeStatus: snapshot.EmployeeStatus,
		Gender:         snapshot.Gender,
		MaritalStatus:  snapshot.MaritalStatus,
		HomeAddress:    snapshot.HomeAddress,
		Nationality:    snapshot.Nationality,
	}

	if values.EmploymentType == "" {
		values.EmploymentType = models.EmploymentFullTime
	}
	if values.EmployeeStatus == "" {
		values.EmployeeStatus = models.StatusProbation
	}
	if snapshot.User != nil {
		values.UserID = strconv.Itoa(snapshot.User.ID)
	}
	if snapshot.Department != nil {
		values.DepartmentID = strconv.Itoa(snapshot.Department.ID)
	}
	if snapshot.DateJoined != nil && !snapshot.DateJoined.IsZero() {
		values.DateJoined = snapshot.DateJoined.String()
	}
	if snapshot.DateOfBirth != nil && !snapshot.DateOfBirth.IsZero() {
		values.DateOfBirth = snapshot.DateOfBirth.String()
	}

	return values
}

// LoadDepartments fetches the department reference list. It runs at
// most once per editor; a failure is surfaced as a form-level message
// and is not retried.
func (e *Editor) LoadDepartments(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.departmentsDone {
		return
	}
	e.departmentsDone = true

	departments, err := e.deps.API.ListDepartments(ctx)
	if err != nil {
		e.deps.Log.WarnContext(ctx, "Failed to fetch departments", sl.Err(err))
		e.formErr = "Could not load department list."

		return
	}

	e.departments = departments
}

// Submit runs one pass of the submission algorithm: apply the posted
// input, validate, build the multipart payload and dispatch it. The
// returned record is the server's authoritative copy.
func (e *Editor) Submit(ctx context.Context, input Input, file *emsapi.Upload) (models.Employee, error) {
	const opn = "Editor.Submit"
	log := e.deps.Log.With(slog.String("op", opn), slog.String("mode", e.modeLabel()))

	// Claim the busy flag before anything else: a second submit while
	// one is in flight must be a no-op, not a queued duplicate.
	e.mu.Lock()
	if e.busy {
		e.mu.Unlock()
		return models.Employee{}, ErrBusy
	}
	e.busy = true

	// The busy flag clears on every path out of here.
	defer func() {
		e.mu.Lock()
		e.busy = false
		e.mu.Unlock()
	}()

	e.apply(input, file)
	e.formErr = ""
	e.notice = ""

	e.fieldErrs = validateInput(input, e.mode == ModeEdit)
	if len(e.fieldErrs) > 0 {
		e.mu.Unlock()
		log.DebugContext(ctx, "Submission blocked by validation", "fields", len(e.fieldErrs))
		e.deps.Metrics.Submissions.WithLabelValues(e.modeLabel(), "invalid").Inc()

		return models.Employee{}, ErrValidation
	}

	payload := e.buildPayload()
	editing := e.mode == ModeEdit
	var targetID int
	if editing {
		targetID = e.original.ID
	}
	e.mu.Unlock()

	// Dispatch without holding the lock; the busy flag alone guards
	// against a concurrent second submission.
	var result models.Employee
	var err error
	if editing {
		result, err = e.deps.API.UpdateEmployee(ctx, targetID, payload)
	} else {
		result, err = e.deps.API.CreateEmployee(ctx, payload)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		log.WarnContext(ctx, "Submission failed", sl.Err(err))
		e.deps.Metrics.Submissions.WithLabelValues(e.modeLabel(), "failure").Inc()
		e.applySubmitError(err)

		return models.Employee{}, err
	}

	log.InfoContext(ctx, "Submission succeeded", "id", result.ID, "employee_id", result.EmployeeID)
	e.deps.Metrics.Submissions.WithLabelValues(e.modeLabel(), "success").Inc()

	if editing {
		e.notice = "Employee updated successfully!"
		if e.deps.Callbacks.OnUpdated != nil {
			e.deps.Callbacks.OnUpdated(result)
		}
	} else {
		// Reset for rapid successive entry; the notice survives the reset.
		e.values = defaultValues()
		e.picture = pictureState{}
		e.notice = "Employee created successfully!"
		if e.deps.Callbacks.OnCreated != nil {
			e.deps.Callbacks.OnCreated(result)
		}
	}

	return result, nil
}

// apply copies the posted input into the field state and resolves the
// picture tri-state for this pass.
func (e *Editor) apply(input Input, file *emsapi.Upload) {
	e.values = Values{
		EmployeeID:     strings.TrimSpace(input.EmployeeID),
		UserID:         strings.TrimSpace(input.UserID),
		MobilePhone:    strings.TrimSpace(input.MobilePhone),
		DepartmentID:   strings.TrimSpace(input.DepartmentID),
		JobTitle:       strings.TrimSpace(input.JobTitle),
		EmploymentType: input.EmploymentType,
		DateJoined:     strings.TrimSpace(input.DateJoined),
		EmployeeStatus: input.EmployeeStatus,
		DateOfBirth:    strings.TrimSpace(input.DateOfBirth),
		Gender:         input.Gender,
		MaritalStatus:  input.MaritalStatus,
		HomeAddress:    input.HomeAddress,
		Nationality:    input.Nationality,
	}

	// The Employee ID control is disabled in edit mode, so the browser
	// never posts it; the original value is authoritative and immutable.
	if e.mode == ModeEdit {
		e.values.EmployeeID = e.original.EmployeeID
	}

	switch {
	case file != nil:
		e.picture.replace(*file)
	case input.RemovePicture:
		e.picture.clear()
	}
}

// buildPayload translates field state into the outgoing multipart body.
// Create sends only the fields that carry a value; edit sends every
// field, including emptied ones, so previously set values can be
// cleared server-side.
func (e *Editor) buildPayload() *emsapi.Payload {
	payload := emsapi.NewPayload()
	editing := e.mode == ModeEdit

	scalars := []struct {
		name  string
		value string
	}{
		{"employee_id", e.values.EmployeeID},
		{"user_id", normalizeID(e.values.UserID)},
		{"mobile_phone", e.values.MobilePhone},
		{"department_id", normalizeID(e.values.DepartmentID)},
		{"job_title", e.values.JobTitle},
		{"employment_type", e.values.EmploymentType},
		{"date_joined", normalizeDate(e.values.DateJoined)},
		{"employee_status", e.values.EmployeeStatus},
		{"date_of_birth", normalizeDate(e.values.DateOfBirth)},
		{"gender", e.values.Gender},
		{"marital_status", e.values.MaritalStatus},
		{"home_address", e.values.HomeAddress},
		{"nationality", e.values.Nationality},
	}

	for _, scalar := range scalars {
		if scalar.value != "" || editing {
			payload.Set(scalar.name, scalar.value)
		}
	}

	switch e.picture.disposition {
	case PictureReplaced:
		payload.AttachFile("profile_picture", *e.picture.upload)
	case PictureCleared:
		if editing {
			payload.Set("profile_picture", "")
		}
	case PictureUnchanged:
		// Omitted entirely; resending the stored URL would be meaningless
		// to a server expecting either absence or a file.
	}

	return payload
}

// normalizeID reduces a posted reference id to its canonical decimal
// form; validation has already rejected non-numeric input.
func normalizeID(raw string) string {
	if raw == "" {
		return ""
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return ""
	}

	return strconv.Itoa(parsed)
}

// normalizeDate re-parses and re-formats a date so only canonical
// "YYYY-MM-DD" values go out; anything else serializes as unset.
func normalizeDate(raw string) string {
	if raw == "" {
		return ""
	}
	parsed, err := models.ParseDate(raw)
	if err != nil {
		return ""
	}

	return parsed.String()
}

// applySubmitError maps a failed dispatch onto user-visible state,
// distinguishing the structured server error shapes from transport
// failures.
func (e *Editor) applySubmitError(err error) {
	var apiErr *emsapi.APIError
	if !errors.As(err, &apiErr) {
		e.formErr = fmt.Sprintf("An error occurred during submission: %s", err.Error())
		return
	}

	switch apiErr.Kind {
	case emsapi.KindNonField:
		e.formErr = "Submission Error: " + strings.Join(apiErr.Messages, ", ")
	case emsapi.KindFieldErrors:
		for name, messages := range apiErr.Fields {
			e.fieldErrs[name] = strings.Join(messages, " ")
		}
		e.formErr = "Please correct the errors below."
	case emsapi.KindPlain:
		e.formErr = "Submission Error: " + apiErr.Message
	case emsapi.KindUnknown:
		e.formErr = fmt.Sprintf("An unexpected error occurred (status %d).", apiErr.StatusCode)
	}
}

func (e *Editor) modeLabel() string {
	if e.mode == ModeEdit {
		return "edit"
	}

	return "create"
}

// Mode reports whether the editor creates or edits.
func (e *Editor) Mode() ModeKind {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.mode
}

// TargetID returns the internal id of the record under edit. It is
// false in create mode; updates are always keyed by this id, never by
// the human-facing employee identifier.
func (e *Editor) TargetID() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mode != ModeEdit {
		return 0, false
	}

	return e.original.ID, true
}

// Values returns a copy of the current field state.
func (e *Editor) Values() Values {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.values
}

// FieldError returns the validation message for one field, if any.
func (e *Editor) FieldError(name string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.fieldErrs[name]
}

// FieldErrors returns a copy of the per-field validation messages.
func (e *Editor) FieldErrors() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()

	fieldErrs := make(map[string]string, len(e.fieldErrs))
	for name, message := range e.fieldErrs {
		fieldErrs[name] = message
	}

	return fieldErrs
}

// FormError returns the form-level error banner text, if any.
func (e *Editor) FormError() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.formErr
}

// Notice returns and clears the one-shot success message.
func (e *Editor) Notice() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	notice := e.notice
	e.notice = ""

	return notice
}

// Departments returns the reference list fetched at editor start.
func (e *Editor) Departments() []models.Department {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.departments
}

// PictureDisposition reports the current picture tri-state.
func (e *Editor) PictureDisposition() PictureDisposition {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.picture.disposition
}

// PicturePreviewURL returns the stored picture URL shown as a read-only
// preview while the picture is unchanged.
func (e *Editor) PicturePreviewURL() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.picture.disposition != PictureUnchanged {
		return ""
	}

	return e.picture.existingURL
}

// Busy reports whether a submission is in flight.
func (e *Editor) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.busy
}
