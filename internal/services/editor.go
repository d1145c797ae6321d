package services

import (
	"errors"
	"sync"

	"github.com/assetdeck/backend/internal/access"
	"github.com/assetdeck/backend/internal/models"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for operations on an editor session that
// was never started or has already ended.
var ErrSessionNotFound = errors.New("editor session not found")

// RuleOwner identifies the asset whose rule set an editor session writes
// into. Exactly one of the two ids is set.
type RuleOwner struct {
	FolderID *uuid.UUID `json:"folderID,omitempty"`
	FileID   *uuid.UUID `json:"fileID,omitempty"`
}

// EditorEntry pairs a live editor session with its owning asset.
type EditorEntry struct {
	ID      uuid.UUID
	Owner   RuleOwner
	Session *access.EditorSession
}

// EditorManager tracks live rule-editor sessions. Sessions are transient
// working state: they never touch a committed rule set until Save, and
// ending one discards everything.
type EditorManager struct {
	catalog access.Catalog

	mu       sync.Mutex
	sessions map[uuid.UUID]*EditorEntry
}

func NewEditorManager(catalog access.Catalog) *EditorManager {
	return &EditorManager{
		catalog:  catalog,
		sessions: make(map[uuid.UUID]*EditorEntry),
	}
}

// StartCreate opens a create-mode session for the given asset.
func (m *EditorManager) StartCreate(owner RuleOwner) *EditorEntry {
	entry := &EditorEntry{
		ID:      uuid.New(),
		Owner:   owner,
		Session: access.NewCreateSession(m.catalog),
	}

	m.mu.Lock()
	m.sessions[entry.ID] = entry
	m.mu.Unlock()
	return entry
}

// StartEdit opens an edit-mode session seeded from an existing rule.
func (m *EditorManager) StartEdit(owner RuleOwner, rule models.AccessRule) *EditorEntry {
	entry := &EditorEntry{
		ID:      uuid.New(),
		Owner:   owner,
		Session: access.NewEditSession(m.catalog, rule),
	}

	m.mu.Lock()
	m.sessions[entry.ID] = entry
	m.mu.Unlock()
	return entry
}

// Get returns a live session by id.
func (m *EditorManager) Get(id uuid.UUID) (*EditorEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return entry, nil
}

// End discards a session and all its working state.
func (m *EditorManager) End(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
