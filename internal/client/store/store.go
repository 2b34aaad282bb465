// Package store keeps the client's in-memory copy of notes, folders,
// and the tag index. Every mutation is write-through: the server is
// asked first, and local state changes only after it confirms.
//
// The tag index is additive between fetches: tags removed from a note
// stay listed until the next FetchNotes recomputes the index. This
// mirrors how the index behaves in the UI and is relied upon by the
// tag filter.
package store

import (
	"context"
	"sync"

	"github.com/mpetrov/inkpad/internal/client/models"
	"github.com/mpetrov/inkpad/internal/client/remote"
)

// Snapshotter persists fetched state so it survives restarts. The cache
// package implements it; a nil snapshotter disables persistence.
type Snapshotter interface {
	SaveSnapshot(ctx context.Context, userName string, notes []models.Note, folders []models.Folder) error
	LoadSnapshot(ctx context.Context, userName string) ([]models.Note, []models.Folder, error)
}

type Store struct {
	remote   remote.Client
	snapshot Snapshotter
	userName string

	mu      sync.RWMutex
	notes   []models.Note
	folders []models.Folder
	// tagOrder preserves first-seen order for display; tagSet backs
	// membership checks.
	tagOrder []string
	tagSet   map[string]struct{}
}

func New(client remote.Client, snapshot Snapshotter, userName string) *Store {
	return &Store{
		remote:   client,
		snapshot: snapshot,
		userName: userName,
		tagSet:   map[string]struct{}{},
	}
}

// Notes returns a copy of the note list in its current order.
func (s *Store) Notes() []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.Note, len(s.notes))
	copy(result, s.notes)
	return result
}

// Note returns the note with the given id, or false.
func (s *Store) Note(id string) (models.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.notes {
		if n.ID == id {
			return n, true
		}
	}
	return models.Note{}, false
}

// Folders returns a copy of the folder list.
func (s *Store) Folders() []models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.Folder, len(s.folders))
	copy(result, s.folders)
	return result
}

// Folder returns the folder with the given id, or false.
func (s *Store) Folder(id string) (models.Folder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.folders {
		if f.ID == id {
			return f, true
		}
	}
	return models.Folder{}, false
}

// Tags returns the known tags in first-seen order.
func (s *Store) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]string, len(s.tagOrder))
	copy(result, s.tagOrder)
	return result
}

// FetchNotes replaces the note collection with the server's view and
// recomputes the tag index exactly.
func (s *Store) FetchNotes(ctx context.Context) error {
	notes, err := s.remote.ListNotes(ctx, "updated_at", false)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.notes = notes
	s.rebuildTagIndex()
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// FetchFolders replaces the folder collection with the server's view.
func (s *Store) FetchFolders(ctx context.Context) error {
	folders, err := s.remote.ListFolders(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.folders = folders
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// Sync fetches notes, then folders.
func (s *Store) Sync(ctx context.Context) error {
	if err := s.FetchNotes(ctx); err != nil {
		return err
	}
	return s.FetchFolders(ctx)
}

// LoadOffline restores the last snapshot from the local cache without
// touching the server. The tag index is rebuilt from the snapshot.
func (s *Store) LoadOffline(ctx context.Context) error {
	if s.snapshot == nil {
		return nil
	}
	notes, folders, err := s.snapshot.LoadSnapshot(ctx, s.userName)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.notes = notes
	s.folders = folders
	s.rebuildTagIndex()
	s.mu.Unlock()
	return nil
}

// AddNote creates the note on the server, then prepends the confirmed
// row locally and unions its tags into the index.
func (s *Store) AddNote(ctx context.Context, draft *models.NoteDraft) (*models.Note, error) {
	created, err := s.remote.CreateNote(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.notes = append([]models.Note{*created}, s.notes...)
	s.addTags(created.Tags)
	s.mu.Unlock()

	s.persist(ctx)
	return created, nil
}

// UpdateNote patches the note on the server, then replaces the local
// copy with the confirmed row. New tags join the index; removed tags
// stay until the next fetch.
func (s *Store) UpdateNote(ctx context.Context, id string, patch *models.NotePatch) (*models.Note, error) {
	updated, err := s.remote.UpdateNote(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes[i] = *updated
			break
		}
	}
	s.addTags(updated.Tags)
	s.mu.Unlock()

	s.persist(ctx)
	return updated, nil
}

// DeleteNote removes the note on the server, then locally. The tag
// index is left untouched until the next fetch.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	if err := s.remote.DeleteNote(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// AddFolder creates a folder on the server, then locally.
func (s *Store) AddFolder(ctx context.Context, name string, color *string) (*models.Folder, error) {
	created, err := s.remote.CreateFolder(ctx, name, color)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.folders = append(s.folders, *created)
	s.mu.Unlock()

	s.persist(ctx)
	return created, nil
}

// UpdateFolder patches a folder on the server, then locally.
func (s *Store) UpdateFolder(ctx context.Context, id string, patch *models.FolderPatch) (*models.Folder, error) {
	updated, err := s.remote.UpdateFolder(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.folders {
		if s.folders[i].ID == id {
			s.folders[i] = *updated
			break
		}
	}
	s.mu.Unlock()

	s.persist(ctx)
	return updated, nil
}

// DeleteFolder removes the folder on the server, then locally. Local
// notes filed under it are detached, matching the server's behavior.
func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	if err := s.remote.DeleteFolder(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.folders {
		if s.folders[i].ID == id {
			s.folders = append(s.folders[:i], s.folders[i+1:]...)
			break
		}
	}
	for i := range s.notes {
		if s.notes[i].FolderID != nil && *s.notes[i].FolderID == id {
			s.notes[i].FolderID = nil
		}
	}
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// addTags unions tags into the index. Callers must hold mu.
func (s *Store) addTags(tags []string) {
	for _, tag := range tags {
		if _, ok := s.tagSet[tag]; !ok {
			s.tagSet[tag] = struct{}{}
			s.tagOrder = append(s.tagOrder, tag)
		}
	}
}

// rebuildTagIndex recomputes the index from the current notes. Callers
// must hold mu.
func (s *Store) rebuildTagIndex() {
	s.tagSet = map[string]struct{}{}
	s.tagOrder = nil
	for _, n := range s.notes {
		s.addTags(n.Tags)
	}
}

// persist writes the current state to the snapshot cache, best effort.
func (s *Store) persist(ctx context.Context) {
	if s.snapshot == nil {
		return
	}
	s.mu.RLock()
	notes := make([]models.Note, len(s.notes))
	copy(notes, s.notes)
	folders := make([]models.Folder, len(s.folders))
	copy(folders, s.folders)
	s.mu.RUnlock()
	_ = s.snapshot.SaveSnapshot(ctx, s.userName, notes, folders)
}
