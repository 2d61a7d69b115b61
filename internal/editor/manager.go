package editor

import (
	"context"
	"errors"
	"sync"

	"github.com/veles-works/ems-console/internal/models"
)

// ErrStale means the submission targeted an editor that has since been
// replaced or discarded; applying it could mutate the wrong record.
var ErrStale = errors.New("the editing session is no longer current")

// Manager keeps at most one live editor per console session. Starting a
// new editor replaces the previous one wholesale, so no field state or
// picture selection can leak between create and edit passes.
type Manager struct {
	mu      sync.Mutex
	deps    Deps
	editors map[string]*Editor
}

// NewManager creates an empty editor registry.
func NewManager(deps Deps) *Manager {
	return &Manager{deps: deps, editors: make(map[string]*Editor)}
}

// StartCreate opens a fresh create-mode editor for the session,
// discarding whatever editor it had before.
func (m *Manager) StartCreate(ctx context.Context, sessionID string) *Editor {
	ed := NewCreate(m.deps)
	ed.LoadDepartments(ctx)

	m.mu.Lock()
	m.editors[sessionID] = ed
	m.mu.Unlock()

	return ed
}

// StartEdit opens an edit-mode editor seeded from the snapshot,
// discarding whatever editor the session had before.
func (m *Manager) StartEdit(ctx context.Context, sessionID string, snapshot models.Employee) *Editor {
	ed := NewEdit(m.deps, snapshot)
	ed.LoadDepartments(ctx)

	m.mu.Lock()
	m.editors[sessionID] = ed
	m.mu.Unlock()

	return ed
}

// Current returns the session's live editor, if any.
func (m *Manager) Current(sessionID string) (*Editor, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ed, ok := m.editors[sessionID]

	return ed, ok
}

// CurrentCreate returns the session's live editor if it is in create
// mode; anything else makes the pending submission stale.
func (m *Manager) CurrentCreate(sessionID string) (*Editor, error) {
	ed, ok := m.Current(sessionID)
	if !ok || ed.Mode() != ModeCreate {
		return nil, ErrStale
	}

	return ed, nil
}

// CurrentEdit returns the session's live editor if it is editing the
// given record. A submission posted against a replaced or retargeted
// editor is rejected instead of being applied to the wrong record.
func (m *Manager) CurrentEdit(sessionID string, targetID int) (*Editor, error) {
	ed, ok := m.Current(sessionID)
	if !ok {
		return nil, ErrStale
	}
	if id, editing := ed.TargetID(); !editing || id != targetID {
		return nil, ErrStale
	}

	return ed, nil
}

// Discard drops the session's editor, if any.
func (m *Manager) Discard(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.editors, sessionID)
}
