package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/mpetrov/inkpad/internal/client/models"
	"github.com/mpetrov/inkpad/internal/client/view"
	"github.com/mpetrov/inkpad/internal/common"
)

// errNotLoggedIn guards mutating commands before authentication.
func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		printlnFn("Please log in first")
		return common.ErrorUnauthorized
	}
	return nil
}

// lastShown holds the notes of the most recent listing so commands can
// address them by number.
func (a *App) rememberListing(notes []models.Note) {
	a.lastShown = notes
}

// resolveNote maps a 1-based listing number (or a raw id) to a note id.
func (a *App) resolveNote(arg string) (string, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(a.lastShown) {
			return "", fmt.Errorf("no note %d in the last listing", n)
		}
		return a.lastShown[n-1].ID, nil
	}
	if _, ok := a.store.Note(arg); ok {
		return arg, nil
	}
	return "", fmt.Errorf("unknown note %q", arg)
}

func (a *App) printListing(notes []models.Note) {
	if len(notes) == 0 {
		printlnFn("No notes")
		return
	}
	for i, n := range notes {
		marker := " "
		if n.IsFavorite {
			marker = "*"
		}
		line := fmt.Sprintf("%3d %s %s", i+1, marker, n.Title)
		if folder, ok := a.folderOf(&n); ok {
			line += " [" + folder.Name + "]"
		}
		if len(n.Tags) > 0 {
			line += " #" + strings.Join(n.Tags, " #")
		}
		printlnFn(line)
	}
}

func (a *App) folderOf(n *models.Note) (models.Folder, bool) {
	if n.FolderID == nil {
		return models.Folder{}, false
	}
	return a.store.Folder(*n.FolderID)
}

// List shows all notes. An optional argument picks the sort: date
// (default), title, or favorite.
func (a *App) List(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	q := view.Query{}
	if len(args) > 0 {
		q.Sort = args[0]
	}
	notes := view.Apply(a.store.Notes(), q)
	a.rememberListing(notes)
	a.printListing(notes)
	return nil
}

// Search filters notes by text, or by tag with the "tag:" prefix.
func (a *App) Search(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) == 0 {
		printlnFn("Usage: search <text> | search tag:<tag>")
		return nil
	}

	q := view.Query{}
	terms := make([]string, 0, len(args))
	for _, arg := range args {
		if tag, ok := strings.CutPrefix(arg, "tag:"); ok {
			q.Tag = tag
			continue
		}
		terms = append(terms, arg)
	}
	q.Search = strings.Join(terms, " ")

	notes := view.Apply(a.store.Notes(), q)
	a.rememberListing(notes)
	a.printListing(notes)
	return nil
}

// Show prints one note in full.
func (a *App) Show(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) == 0 {
		printlnFn("Usage: show <n>")
		return nil
	}

	id, err := a.resolveNote(args[0])
	if err != nil {
		log.Println(err.Error())
		return err
	}
	note, _ := a.store.Note(id)

	printlnFn("# " + note.Title)
	if len(note.Tags) > 0 {
		printlnFn("tags: " + strings.Join(note.Tags, ", "))
	}
	printlnFn("updated: " + note.UpdatedAt.Local().Format("2006-01-02 15:04"))
	printlnFn("")
	printlnFn(note.Content)
	return nil
}

// New prompts for a title, body, and tags, and creates the note.
func (a *App) New(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	title, err := GetSimpleText(a.reader, "Title (empty for \""+common.DefaultNoteTitle+"\")", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", os.Stdout)
	if err != nil {
		return err
	}
	tags, err := GetTags(a.reader, os.Stdout)
	if err != nil {
		return err
	}

	note, err := a.store.AddNote(ctx, &models.NoteDraft{Title: title, Content: content, Tags: tags})
	if err != nil {
		log.Printf("failed to create note: %s", err.Error())
		return err
	}
	log.Printf("created %q", note.Title)
	return nil
}

// Edit opens an interactive editing session with autosave. Entered
// lines extend the note body and arm the autosave timer; "t <title>"
// retitles, "tag +x" / "tag -x" edits tags, "fav" toggles the favorite
// flag. The session ends with a line containing only ".", flushing any
// pending save.
func (a *App) Edit(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) == 0 {
		printlnFn("Usage: edit <n>")
		return nil
	}

	id, err := a.resolveNote(args[0])
	if err != nil {
		log.Println(err.Error())
		return err
	}
	note, _ := a.store.Note(id)
	a.editor.Open(&note)

	printlnFn("Editing " + note.Title + " (t <title> retitles, tag +x/-x, fav toggles, single '.' finishes)")
	printlnFn(note.Content)

	content := note.Content
	tags := slices.Clone(note.Tags)
	favorite := note.IsFavorite
	for {
		line, err := a.reader.ReadString('\n')
		if err != nil {
			break
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "." {
			break
		}
		if title, ok := strings.CutPrefix(line, "t "); ok {
			a.editor.SetTitle(strings.TrimSpace(title))
			continue
		}
		if tag, ok := strings.CutPrefix(line, "tag +"); ok {
			tags = addTag(tags, strings.TrimSpace(tag))
			a.editor.SetTags(tags)
			continue
		}
		if tag, ok := strings.CutPrefix(line, "tag -"); ok {
			tags = removeTag(tags, strings.TrimSpace(tag))
			a.editor.SetTags(tags)
			continue
		}
		if line == "fav" {
			favorite = !favorite
			a.editor.SetFavorite(favorite)
			continue
		}
		if content != "" {
			content += "\n"
		}
		content += line
		a.editor.SetContent(content)
	}

	if err := a.editor.Save(ctx); err != nil {
		log.Printf("save failed, edits kept for retry: %s", err.Error())
		return err
	}
	a.editor.Close()
	return nil
}

// Delete removes a note after the write-through confirms.
func (a *App) Delete(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) == 0 {
		printlnFn("Usage: rm <n>")
		return nil
	}

	id, err := a.resolveNote(args[0])
	if err != nil {
		log.Println(err.Error())
		return err
	}
	if err := a.store.DeleteNote(ctx, id); err != nil {
		log.Printf("failed to delete note: %s", err.Error())
		return err
	}
	log.Println("deleted")
	return nil
}

// Fav toggles the favorite flag on a note.
func (a *App) Fav(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) == 0 {
		printlnFn("Usage: fav <n>")
		return nil
	}

	id, err := a.resolveNote(args[0])
	if err != nil {
		log.Println(err.Error())
		return err
	}
	note, _ := a.store.Note(id)
	fav := !note.IsFavorite

	if _, err := a.store.UpdateNote(ctx, id, &models.NotePatch{IsFavorite: &fav}); err != nil {
		log.Printf("failed to update note: %s", err.Error())
		return err
	}
	if fav {
		log.Printf("%q marked favorite", note.Title)
	} else {
		log.Printf("%q unmarked", note.Title)
	}
	return nil
}

func addTag(tags []string, name string) []string {
	if name == "" || slices.Contains(tags, name) {
		return tags
	}
	return append(tags, name)
}

func removeTag(tags []string, name string) []string {
	return slices.DeleteFunc(tags, func(t string) bool { return t == name })
}

// Tag adds and removes tags on a note: tag <n> +work -urgent.
func (a *App) Tag(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) < 2 {
		printlnFn("Usage: tag <n> +<tag> [-<tag> ...]")
		return nil
	}

	id, err := a.resolveNote(args[0])
	if err != nil {
		log.Println(err.Error())
		return err
	}
	note, _ := a.store.Note(id)

	tags := slices.Clone(note.Tags)
	for _, arg := range args[1:] {
		if name, ok := strings.CutPrefix(arg, "+"); ok {
			tags = addTag(tags, name)
			continue
		}
		if name, ok := strings.CutPrefix(arg, "-"); ok {
			tags = removeTag(tags, name)
			continue
		}
		printlnFn("Usage: tag <n> +<tag> [-<tag> ...]")
		return nil
	}
	if tags == nil {
		tags = []string{}
	}

	if _, err := a.store.UpdateNote(ctx, id, &models.NotePatch{Tags: &tags}); err != nil {
		log.Printf("failed to update tags: %s", err.Error())
		return err
	}
	log.Printf("tags now: %s", strings.Join(tags, ", "))
	return nil
}

// Tags prints the tag index in first-seen order.
func (a *App) Tags(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	tags := a.store.Tags()
	if len(tags) == 0 {
		printlnFn("No tags")
		return nil
	}
	for _, tag := range tags {
		printlnFn("#" + tag)
	}
	return nil
}
