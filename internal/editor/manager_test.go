package editor_test

import (
	"context"
	"testing"

	"github.com/veles-works/ems-console/internal/editor"
	"github.com/veles-works/ems-console/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotB() models.Employee {
	joined, _ := models.ParseDate("2024-03-01")
	born, _ := models.ParseDate("1990-07-15")
	return models.Employee{
		ID:             9,
		EmployeeID:     "B9",
		JobTitle:       "Analyst",
		EmploymentType: models.EmploymentContract,
		DateJoined:     &joined,
		DateOfBirth:    &born,
		EmployeeStatus: models.StatusOnLeave,
		Nationality:    "Brazil",
	}
}

func TestManager_ModeSwitchLeavesNoResidue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mgr := editor.NewManager(newDeps(&fakeAPI{}, editor.Callbacks{}))
	const sessionID = "sess-1"

	// Edit A, abandon it for a create, then edit B.
	edA := mgr.StartEdit(ctx, sessionID, snapshotE7())
	assert.Equal(t, "E7", edA.Values().EmployeeID)

	edCreate := mgr.StartCreate(ctx, sessionID)
	values := edCreate.Values()
	assert.Empty(t, values.EmployeeID, "create after edit must not inherit A's identifier")
	assert.Empty(t, values.JobTitle)
	assert.Equal(t, models.EmploymentFullTime, values.EmploymentType)
	assert.Equal(t, editor.PictureUnchanged, edCreate.PictureDisposition())
	assert.Empty(t, edCreate.PicturePreviewURL(), "A's stored picture must not leak")

	edB := mgr.StartEdit(ctx, sessionID, snapshotB())
	values = edB.Values()
	assert.Equal(t, "B9", values.EmployeeID)
	assert.Equal(t, "Analyst", values.JobTitle)
	assert.Equal(t, models.EmploymentContract, values.EmploymentType)
	assert.Equal(t, "2024-03-01", values.DateJoined)
	assert.Equal(t, "1990-07-15", values.DateOfBirth)
	assert.Equal(t, models.StatusOnLeave, values.EmployeeStatus)
	assert.Empty(t, values.UserID, "B has no linked user; A's must not survive")
	assert.Empty(t, values.DepartmentID)
	assert.Empty(t, edB.PicturePreviewURL())
}

func TestManager_CurrentEditRejectsStaleTargets(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mgr := editor.NewManager(newDeps(&fakeAPI{}, editor.Callbacks{}))
	const sessionID = "sess-2"

	_, err := mgr.CurrentEdit(sessionID, 7)
	assert.ErrorIs(t, err, editor.ErrStale, "no editor started yet")

	mgr.StartEdit(ctx, sessionID, snapshotE7())

	ed, err := mgr.CurrentEdit(sessionID, 7)
	require.NoError(t, err)
	assert.NotNil(t, ed)

	_, err = mgr.CurrentEdit(sessionID, 9)
	assert.ErrorIs(t, err, editor.ErrStale, "submission for a different record")

	mgr.StartCreate(ctx, sessionID)
	_, err = mgr.CurrentEdit(sessionID, 7)
	assert.ErrorIs(t, err, editor.ErrStale, "editor was replaced by a create form")
}

func TestManager_CurrentCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mgr := editor.NewManager(newDeps(&fakeAPI{}, editor.Callbacks{}))
	const sessionID = "sess-3"

	_, err := mgr.CurrentCreate(sessionID)
	assert.ErrorIs(t, err, editor.ErrStale)

	mgr.StartEdit(ctx, sessionID, snapshotE7())
	_, err = mgr.CurrentCreate(sessionID)
	assert.ErrorIs(t, err, editor.ErrStale)

	mgr.StartCreate(ctx, sessionID)
	ed, err := mgr.CurrentCreate(sessionID)
	require.NoError(t, err)
	assert.Equal(t, editor.ModeCreate, ed.Mode())

	mgr.Discard(sessionID)
	_, ok := mgr.Current(sessionID)
	assert.False(t, ok)
}
