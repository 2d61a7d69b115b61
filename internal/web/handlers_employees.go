package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/veles-works/ems-console/internal/editor"
	"github.com/veles-works/ems-console/internal/emsapi"
	"github.com/veles-works/ems-console/internal/lib/logger/sl"
)

func (s *Server) handleEmployeeList(c *gin.Context) {
	s.metrics.PageViews.WithLabelValues("employee_list").Inc()
	ctx := c.Request.Context()
	sess := sessionFrom(c)

	page := listPage{Banner: listBanner(c)}

	employees, err := s.api.ListEmployees(ctx)
	switch {
	case errors.Is(err, emsapi.ErrUnauthorized):
		s.expireSession(c)
		return
	case err != nil:
		s.log.ErrorContext(ctx, "Failed to load employee list", sl.Err(err))
		page.LoadError = "Could not load employee list."
	default:
		page.Employees = employees
	}

	if c.Query("new") == "1" {
		page.Form = s.formView(s.editors.StartCreate(ctx, sess.ID))
	} else if ed, ok := s.editors.Current(sess.ID); ok && ed.Mode() == editor.ModeCreate {
		page.Form = s.formView(ed)
	}

	status := http.StatusOK
	if page.LoadError != "" {
		status = http.StatusBadGateway
	}
	c.HTML(status, "employees", page)
}

func (s *Server) handleEmployeeCreate(c *gin.Context) {
	ctx := c.Request.Context()
	sess := sessionFrom(c)

	ed, err := s.editors.CurrentCreate(sess.ID)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/employees?stale=1")
		return
	}

	input, file, err := bindSubmission(c)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to read submitted form", sl.Err(err))
		c.HTML(http.StatusBadRequest, "error", errorPage{
			Title:   "Bad Request",
			Message: "The submitted form could not be read.",
			Retry:   "/employees?new=1",
		})

		return
	}

	_, err = ed.Submit(ctx, input, file)
	switch {
	case err == nil, errors.Is(err, editor.ErrBusy):
		c.Redirect(http.StatusSeeOther, "/employees")
	case errors.Is(err, emsapi.ErrUnauthorized):
		s.expireSession(c)
	default:
		s.renderListWithForm(c, ed, submitStatus(err))
	}
}

func (s *Server) handleEmployeeDetail(c *gin.Context) {
	s.metrics.PageViews.WithLabelValues("employee_detail").Inc()
	ctx := c.Request.Context()
	sess := sessionFrom(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		s.renderNotFound(c, "Page not found.")
		return
	}

	emp, err := s.api.GetEmployee(ctx, id)
	switch {
	case errors.Is(err, emsapi.ErrUnauthorized):
		s.expireSession(c)
		return
	case errors.Is(err, emsapi.ErrNotFound):
		s.renderNotFound(c, fmt.Sprintf("Employee with ID %d not found.", id))
		return
	case err != nil:
		s.log.ErrorContext(ctx, "Failed to load employee record", sl.Err(err), "id", id)
		c.HTML(http.StatusBadGateway, "error", errorPage{
			Title:   "Employee",
			Message: "Could not load employee record.",
			Retry:   c.Request.URL.RequestURI(),
		})

		return
	}

	page := detailPage{Employee: emp, Tab: detailTab(c.Query("tab")), Banner: detailBanner(c)}

	if c.Query("edit") == "1" {
		page.Form = s.formView(s.editors.StartEdit(ctx, sess.ID, emp))
	} else if ed, edErr := s.editors.CurrentEdit(sess.ID, emp.ID); edErr == nil {
		page.Form = s.formView(ed)
	}

	c.HTML(http.StatusOK, "employee_detail", page)
}

func (s *Server) handleEmployeeUpdate(c *gin.Context) {
	ctx := c.Request.Context()
	sess := sessionFrom(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		s.renderNotFound(c, "Page not found.")
		return
	}
	detailPath := "/employees/" + strconv.Itoa(id)

	ed, err := s.editors.CurrentEdit(sess.ID, id)
	if err != nil {
		c.Redirect(http.StatusSeeOther, detailPath+"?stale=1")
		return
	}

	input, file, err := bindSubmission(c)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to read submitted form", sl.Err(err))
		c.HTML(http.StatusBadRequest, "error", errorPage{
			Title:   "Bad Request",
			Message: "The submitted form could not be read.",
			Retry:   detailPath + "?edit=1",
		})

		return
	}

	_, err = ed.Submit(ctx, input, file)
	switch {
	case err == nil:
		// The redirect target re-fetches the record, so the page always
		// shows the server's authoritative copy.
		s.editors.Discard(sess.ID)
		c.Redirect(http.StatusSeeOther, detailPath+"?updated=1")
	case errors.Is(err, editor.ErrBusy):
		c.Redirect(http.StatusSeeOther, detailPath)
	case errors.Is(err, emsapi.ErrUnauthorized):
		s.expireSession(c)
	default:
		s.renderDetailWithForm(c, id, ed, submitStatus(err))
	}
}

func (s *Server) handleEmployeeDelete(c *gin.Context) {
	ctx := c.Request.Context()
	sess := sessionFrom(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		s.renderNotFound(c, "Page not found.")
		return
	}

	err = s.api.DeleteEmployee(ctx, id)
	switch {
	case errors.Is(err, emsapi.ErrUnauthorized):
		s.expireSession(c)
	case err != nil && !errors.Is(err, emsapi.ErrNotFound):
		s.log.ErrorContext(ctx, "Failed to delete employee", sl.Err(err), "id", id)
		c.Redirect(http.StatusSeeOther, "/employees?delete_failed=1")
	default:
		// Drop any editor still pointed at the removed record.
		if _, edErr := s.editors.CurrentEdit(sess.ID, id); edErr == nil {
			s.editors.Discard(sess.ID)
		}
		c.Redirect(http.StatusSeeOther, "/employees?deleted=1")
	}
}

func (s *Server) handleNotFound(c *gin.Context) {
	s.renderNotFound(c, "Page not found.")
}

func (s *Server) renderNotFound(c *gin.Context, message string) {
	s.metrics.PageViews.WithLabelValues("not_found").Inc()
	c.HTML(http.StatusNotFound, "notfound", errorPage{Title: "Not Found", Message: message})
}

// renderListWithForm re-renders the list page around a form whose
// submission did not go through, preserving the entered values and the
// per-field messages.
func (s *Server) renderListWithForm(c *gin.Context, ed *editor.Editor, status int) {
	ctx := c.Request.Context()
	page := listPage{Form: s.formView(ed)}

	employees, err := s.api.ListEmployees(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load employee list", sl.Err(err))
		page.LoadError = "Could not load employee list."
	} else {
		page.Employees = employees
	}

	c.HTML(status, "employees", page)
}

func (s *Server) renderDetailWithForm(c *gin.Context, id int, ed *editor.Editor, status int) {
	ctx := c.Request.Context()

	emp, err := s.api.GetEmployee(ctx, id)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load employee record", sl.Err(err), "id", id)
		c.HTML(http.StatusBadGateway, "error", errorPage{
			Title:   "Employee",
			Message: "Could not load employee record.",
			Retry:   "/employees/" + strconv.Itoa(id),
		})

		return
	}

	c.HTML(status, "employee_detail", detailPage{Employee: emp, Tab: "overview", Form: s.formView(ed)})
}

// bindSubmission reads one posted pass of the employee form, including
// the optional picture upload.
func bindSubmission(c *gin.Context) (editor.Input, *emsapi.Upload, error) {
	var input editor.Input
	if err := c.ShouldBind(&input); err != nil {
		return editor.Input{}, nil, fmt.Errorf("failed to bind form: %w", err)
	}

	fileHeader, err := c.FormFile("profile_picture")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return input, nil, nil
		}

		return editor.Input{}, nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if fileHeader.Size == 0 {
		return input, nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return editor.Input{}, nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return editor.Input{}, nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return input, &emsapi.Upload{Filename: fileHeader.Filename, Content: content}, nil
}

func submitStatus(err error) int {
	if errors.Is(err, editor.ErrValidation) {
		return http.StatusUnprocessableEntity
	}

	return http.StatusOK
}

func listBanner(c *gin.Context) *banner {
	switch {
	case c.Query("deleted") == "1":
		return &banner{Text: "Employee deleted.", Kind: "success"}
	case c.Query("delete_failed") == "1":
		return &banner{Text: "Failed to delete employee.", Kind: "error"}
	case c.Query("stale") == "1":
		return &banner{Text: "Your editing session is no longer current. Please start again.", Kind: "warning"}
	}

	return nil
}

func detailBanner(c *gin.Context) *banner {
	switch {
	case c.Query("updated") == "1":
		return &banner{Text: "Employee updated successfully!", Kind: "success"}
	case c.Query("stale") == "1":
		return &banner{Text: "Your editing session is no longer current. Please start again.", Kind: "warning"}
	}

	return nil
}

func detailTab(raw string) string {
	switch raw {
	case "personal", "account":
		return raw
	}

	return "overview"
}
