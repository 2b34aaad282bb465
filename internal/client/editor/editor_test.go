package editor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrov/inkpad/internal/client/models"
)

// countingSaver records saves and can be told to fail or block.
type countingSaver struct {
	mu      sync.Mutex
	saves   []models.NotePatch
	fail    error
	blockCh chan struct{}
}

func (s *countingSaver) save(_ context.Context, id string, patch *models.NotePatch) (*models.Note, error) {
	if s.blockCh != nil {
		<-s.blockCh
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	s.saves = append(s.saves, *patch)
	note := &models.Note{ID: id}
	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.Tags != nil {
		note.Tags = *patch.Tags
	}
	if patch.IsFavorite != nil {
		note.IsFavorite = *patch.IsFavorite
	}
	return note, nil
}

func (s *countingSaver) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saves)
}

// newTestEditor builds an editor with a very short debounce. The
// constructor clamps the interval, so tests set it directly.
func newTestEditor(s *countingSaver) *Editor {
	e := New(s.save, 30)
	e.interval = 20 * time.Millisecond
	return e
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestEditsDebounceIntoOneSave(t *testing.T) {
	saver := &countingSaver{}
	e := newTestEditor(saver)
	e.Open(&models.Note{ID: "n1", Title: "Todo", Content: ""})

	e.SetContent("b")
	e.SetContent("bu")
	e.SetContent("buy milk")
	assert.Equal(t, StatusDirty, e.Status())

	waitFor(t, func() bool { return e.Status() == StatusClean })
	assert.Equal(t, 1, saver.count())

	require.Len(t, saver.saves, 1)
	require.NotNil(t, saver.saves[0].Content)
	assert.Equal(t, "buy milk", *saver.saves[0].Content)
	assert.Nil(t, saver.saves[0].Title, "unchanged fields must not be patched")
}

func TestNoOpEditStaysClean(t *testing.T) {
	saver := &countingSaver{}
	e := newTestEditor(saver)
	e.Open(&models.Note{ID: "n1", Title: "Todo", Content: "buy milk"})

	e.SetTitle("Todo")
	e.SetContent("buy milk")
	assert.Equal(t, StatusClean, e.Status())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, saver.count())
}

func TestExplicitSaveBypassesDebounce(t *testing.T) {
	saver := &countingSaver{}
	e := newTestEditor(saver)
	e.interval = time.Hour
	e.Open(&models.Note{ID: "n1"})

	e.SetTitle("Renamed")
	require.NoError(t, e.Save(context.Background()))
	assert.Equal(t, StatusClean, e.Status())
	assert.Equal(t, 1, saver.count())
}

func TestEditsDuringSaveTriggerFollowUp(t *testing.T) {
	saver := &countingSaver{blockCh: make(chan struct{})}
	e := newTestEditor(saver)
	e.Open(&models.Note{ID: "n1"})

	e.SetContent("first")
	waitFor(t, func() bool { return e.Status() == StatusSaving })

	// An edit while saving must not start a second save.
	e.SetContent("first second")
	assert.Equal(t, StatusSaving, e.Status())

	// Receives on a closed channel return immediately, so follow-up
	// saves are not blocked.
	close(saver.blockCh)

	waitFor(t, func() bool { return saver.count() == 2 && e.Status() == StatusClean })
	require.NotNil(t, saver.saves[1].Content)
	assert.Equal(t, "first second", *saver.saves[1].Content)
}

func TestTagAndFavoriteEditsArePatched(t *testing.T) {
	saver := &countingSaver{}
	e := newTestEditor(saver)
	e.interval = time.Hour
	e.Open(&models.Note{ID: "n1", Title: "Todo", Tags: []string{"work"}})

	e.SetTags([]string{"work", "urgent"})
	e.SetFavorite(true)
	assert.Equal(t, StatusDirty, e.Status())

	require.NoError(t, e.Save(context.Background()))
	require.Equal(t, 1, saver.count())

	patch := saver.saves[0]
	require.NotNil(t, patch.Tags)
	assert.Equal(t, []string{"work", "urgent"}, *patch.Tags)
	require.NotNil(t, patch.IsFavorite)
	assert.True(t, *patch.IsFavorite)
	assert.Nil(t, patch.Title, "unchanged fields must not be patched")
	assert.Nil(t, patch.Content)
}

func TestSaveFlushesEditsMadeDuringInFlightSave(t *testing.T) {
	var discarded []string
	orig := warnDiscard
	warnDiscard = func(noteID string) { discarded = append(discarded, noteID) }
	t.Cleanup(func() { warnDiscard = orig })

	saver := &countingSaver{blockCh: make(chan struct{})}
	e := newTestEditor(saver)
	e.interval = time.Hour
	e.Open(&models.Note{ID: "n1"})

	e.SetContent("v1")
	done := make(chan error, 1)
	go func() { done <- e.Save(context.Background()) }()
	waitFor(t, func() bool { return e.Status() == StatusSaving })

	// The final keystrokes arrive while the first save is in flight.
	e.SetContent("v1 final")
	close(saver.blockCh)

	require.NoError(t, <-done)
	assert.Equal(t, StatusClean, e.Status())

	require.Equal(t, 2, saver.count())
	assert.Equal(t, "v1", *saver.saves[0].Content)
	assert.Equal(t, "v1 final", *saver.saves[1].Content)

	// Closing right after Save must have nothing left to discard.
	e.Close()
	assert.Empty(t, discarded)
}

func TestRevertedEditSendsNoPatch(t *testing.T) {
	saver := &countingSaver{}
	e := newTestEditor(saver)
	e.interval = time.Hour
	e.Open(&models.Note{ID: "n1", Content: "original"})

	e.SetContent("changed")
	e.SetContent("original")
	assert.Equal(t, StatusDirty, e.Status())

	require.NoError(t, e.Save(context.Background()))
	assert.Equal(t, StatusClean, e.Status())
	assert.Equal(t, 0, saver.count(), "an empty patch must not reach the server")
}

func TestFailedSaveKeepsEditsAndRetries(t *testing.T) {
	saver := &countingSaver{fail: errors.New("boom")}
	e := newTestEditor(saver)
	e.Open(&models.Note{ID: "n1"})

	e.SetContent("draft")
	waitFor(t, func() bool { return e.Status() == StatusDirty && saver.count() == 0 })

	// Clearing the fault lets the next cycle succeed with the kept edits.
	saver.mu.Lock()
	saver.fail = nil
	saver.mu.Unlock()

	waitFor(t, func() bool { return e.Status() == StatusClean })
	require.Equal(t, 1, saver.count())
	assert.Equal(t, "draft", *saver.saves[0].Content)
}

func TestOpenDiscardsUnsavedDraft(t *testing.T) {
	var discarded []string
	orig := warnDiscard
	warnDiscard = func(noteID string) { discarded = append(discarded, noteID) }
	t.Cleanup(func() { warnDiscard = orig })

	saver := &countingSaver{}
	e := newTestEditor(saver)
	e.interval = time.Hour
	e.Open(&models.Note{ID: "n1", Content: "original"})

	e.SetContent("unsaved edits")
	e.Open(&models.Note{ID: "n2"})

	assert.Equal(t, []string{"n1"}, discarded)
	assert.Equal(t, StatusClean, e.Status())
	assert.Equal(t, 0, saver.count())

	// The discarded draft never reaches the server.
	e.SetContent("new note text")
	require.NoError(t, e.Save(context.Background()))
	require.Equal(t, 1, saver.count())
	assert.Equal(t, "new note text", *saver.saves[0].Content)
}

func TestSetIntervalClampsToBounds(t *testing.T) {
	saver := &countingSaver{}
	e := New(saver.save, 5)
	assert.Equal(t, 10*time.Second, e.interval)

	e.SetInterval(10000)
	assert.Equal(t, 300*time.Second, e.interval)
}
