// Package editor implements the note editing session with debounced
// autosave. Edits mark the session dirty and arm a timer; when the
// timer fires (or Save is called) exactly one save runs at a time.
package editor

import (
	"context"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/mpetrov/inkpad/internal/client/models"
	"github.com/mpetrov/inkpad/internal/common"
)

type Status int

const (
	StatusClean Status = iota
	StatusDirty
	StatusSaving
)

func (s Status) String() string {
	switch s {
	case StatusDirty:
		return "dirty"
	case StatusSaving:
		return "saving"
	default:
		return "clean"
	}
}

// SaveFunc performs the actual write; the store provides it.
type SaveFunc func(ctx context.Context, id string, patch *models.NotePatch) (*models.Note, error)

// warnDiscard is a test seam for the discarded-draft warning.
var warnDiscard = func(noteID string) {
	log.Printf("discarding unsaved edits for note %s", noteID)
}

type Editor struct {
	save     SaveFunc
	interval time.Duration

	mu sync.Mutex
	// signalled whenever status leaves StatusSaving, so Save can wait
	// out an in-flight write
	cond   *sync.Cond
	timer  *time.Timer
	status Status

	noteID   string
	title    string
	content  string
	tags     []string
	favorite bool
	// last state confirmed by the server, used to diff edits and to
	// build minimal patches
	savedTitle    string
	savedContent  string
	savedTags     []string
	savedFavorite bool
	// set when edits arrive while a save is in flight
	pendingDirty bool
}

// New creates an editor saving through save, with the autosave interval
// given in seconds (clamped to the allowed range).
func New(save SaveFunc, intervalSeconds int) *Editor {
	e := &Editor{
		save:     save,
		interval: time.Duration(common.ClampAutosaveSeconds(intervalSeconds)) * time.Second,
	}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// SetInterval changes the debounce interval for subsequent edits.
func (e *Editor) SetInterval(seconds int) {
	e.mu.Lock()
	e.interval = time.Duration(common.ClampAutosaveSeconds(seconds)) * time.Second
	e.mu.Unlock()
}

// Open starts a session for the given note. Unsaved edits of the
// previous note are discarded with a warning.
func (e *Editor) Open(note *models.Note) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != StatusClean && e.noteID != "" {
		warnDiscard(e.noteID)
	}
	e.stopTimerLocked()

	e.noteID = note.ID
	e.title = note.Title
	e.content = note.Content
	e.tags = slices.Clone(note.Tags)
	e.favorite = note.IsFavorite
	e.savedTitle = note.Title
	e.savedContent = note.Content
	e.savedTags = slices.Clone(note.Tags)
	e.savedFavorite = note.IsFavorite
	e.status = StatusClean
	e.pendingDirty = false
	e.cond.Broadcast()
}

// Close discards the session. Unsaved edits are dropped with a warning.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != StatusClean && e.noteID != "" {
		warnDiscard(e.noteID)
	}
	e.stopTimerLocked()
	e.noteID = ""
	e.status = StatusClean
	e.pendingDirty = false
	e.cond.Broadcast()
}

func (e *Editor) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *Editor) NoteID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.noteID
}

// SetTitle records an edit. A no-op change does not arm the timer.
func (e *Editor) SetTitle(title string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.noteID == "" || title == e.title {
		return
	}
	e.title = title
	e.markDirtyLocked()
}

// SetContent records an edit. A no-op change does not arm the timer.
func (e *Editor) SetContent(content string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.noteID == "" || content == e.content {
		return
	}
	e.content = content
	e.markDirtyLocked()
}

// SetTags records a tag edit. A no-op change does not arm the timer.
func (e *Editor) SetTags(tags []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.noteID == "" || slices.Equal(tags, e.tags) {
		return
	}
	e.tags = slices.Clone(tags)
	e.markDirtyLocked()
}

// SetFavorite records a favorite toggle.
func (e *Editor) SetFavorite(favorite bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.noteID == "" || favorite == e.favorite {
		return
	}
	e.favorite = favorite
	e.markDirtyLocked()
}

// Save flushes pending edits immediately, bypassing the debounce. It
// waits out an in-flight autosave and keeps saving until the session is
// clean, so edits made during a save are on the server when it returns.
func (e *Editor) Save(ctx context.Context) error {
	for {
		e.mu.Lock()
		if e.noteID == "" || e.status == StatusClean {
			e.mu.Unlock()
			return nil
		}
		if e.status == StatusSaving {
			for e.status == StatusSaving {
				e.cond.Wait()
			}
			e.mu.Unlock()
			continue
		}
		e.stopTimerLocked()
		e.mu.Unlock()

		if err := e.runSave(ctx); err != nil {
			return err
		}
	}
}

// markDirtyLocked transitions to dirty and (re)arms the timer. During a
// save it only flags the pending edits. Callers must hold mu.
func (e *Editor) markDirtyLocked() {
	if e.status == StatusSaving {
		e.pendingDirty = true
		return
	}
	e.status = StatusDirty
	if e.timer == nil {
		e.timer = time.AfterFunc(e.interval, e.autosave)
		return
	}
	e.timer.Reset(e.interval)
}

func (e *Editor) stopTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
	}
}

func (e *Editor) autosave() {
	_ = e.runSave(context.Background())
}

// runSave performs one save cycle. On success the session goes clean
// unless edits arrived mid-save, in which case the timer is re-armed.
// On failure the edits and the dirty state are kept for the next cycle.
// A dirty session whose fields match the last saved state produces an
// empty patch and goes clean without touching the server.
func (e *Editor) runSave(ctx context.Context) error {
	e.mu.Lock()
	if e.status != StatusDirty {
		e.mu.Unlock()
		return nil
	}
	e.status = StatusSaving

	id := e.noteID
	patch := &models.NotePatch{}
	if e.title != e.savedTitle {
		title := e.title
		patch.Title = &title
	}
	if e.content != e.savedContent {
		content := e.content
		patch.Content = &content
	}
	if !slices.Equal(e.tags, e.savedTags) {
		tags := slices.Clone(e.tags)
		patch.Tags = &tags
	}
	if e.favorite != e.savedFavorite {
		favorite := e.favorite
		patch.IsFavorite = &favorite
	}
	if *patch == (models.NotePatch{}) {
		e.status = StatusClean
		e.cond.Broadcast()
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	saved, err := e.save(ctx, id, patch)

	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.cond.Broadcast()

	// The session may have moved to another note mid-save.
	if e.noteID != id {
		return err
	}

	if err != nil {
		e.status = StatusDirty
		if e.timer != nil {
			e.timer.Reset(e.interval)
		} else {
			e.timer = time.AfterFunc(e.interval, e.autosave)
		}
		return err
	}

	e.savedTitle = saved.Title
	e.savedContent = saved.Content
	e.savedTags = slices.Clone(saved.Tags)
	e.savedFavorite = saved.IsFavorite

	if e.pendingDirty {
		e.pendingDirty = false
		e.status = StatusDirty
		if e.timer != nil {
			e.timer.Reset(e.interval)
		} else {
			e.timer = time.AfterFunc(e.interval, e.autosave)
		}
		return nil
	}

	e.status = StatusClean
	return nil
}
