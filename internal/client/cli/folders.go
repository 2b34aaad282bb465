package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mpetrov/inkpad/internal/client/models"
)

// resolveFolder maps a 1-based folders-listing number (or a raw id or
// exact name) to a folder id.
func (a *App) resolveFolder(arg string) (string, error) {
	folders := a.store.Folders()
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(folders) {
			return "", fmt.Errorf("no folder %d in the listing", n)
		}
		return folders[n-1].ID, nil
	}
	for _, f := range folders {
		if f.ID == arg || f.Name == arg {
			return f.ID, nil
		}
	}
	return "", fmt.Errorf("unknown folder %q", arg)
}

// Folders lists the user's folders with note counts.
func (a *App) Folders(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	folders := a.store.Folders()
	if len(folders) == 0 {
		printlnFn("No folders")
		return nil
	}

	counts := map[string]int{}
	for _, n := range a.store.Notes() {
		if n.FolderID != nil {
			counts[*n.FolderID]++
		}
	}
	for i, f := range folders {
		printlnFn(fmt.Sprintf("%3d %s (%d notes)", i+1, f.Name, counts[f.ID]))
	}
	return nil
}

// MkDir prompts for a name and creates a folder.
func (a *App) MkDir(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	name, err := GetSimpleText(a.reader, "Folder name", os.Stdout)
	if err != nil {
		return err
	}
	folder, err := a.store.AddFolder(ctx, name, nil)
	if err != nil {
		log.Printf("failed to create folder: %s", err.Error())
		return err
	}
	log.Printf("created folder %q", folder.Name)
	return nil
}

// MvDir renames a folder.
func (a *App) MvDir(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) < 2 {
		printlnFn("Usage: mvdir <n> <new name>")
		return nil
	}

	id, err := a.resolveFolder(args[0])
	if err != nil {
		log.Println(err.Error())
		return err
	}
	name := strings.Join(args[1:], " ")
	if _, err := a.store.UpdateFolder(ctx, id, &models.FolderPatch{Name: &name}); err != nil {
		log.Printf("failed to rename folder: %s", err.Error())
		return err
	}
	log.Printf("renamed to %q", name)
	return nil
}

// RmDir deletes a folder. Its notes are kept and detached.
func (a *App) RmDir(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) == 0 {
		printlnFn("Usage: rmdir <n>")
		return nil
	}

	id, err := a.resolveFolder(args[0])
	if err != nil {
		log.Println(err.Error())
		return err
	}
	if err := a.store.DeleteFolder(ctx, id); err != nil {
		log.Printf("failed to delete folder: %s", err.Error())
		return err
	}
	log.Println("folder deleted, notes kept")
	return nil
}

// Move files a note into a folder; "-" as the folder detaches it.
func (a *App) Move(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) < 2 {
		printlnFn("Usage: move <note> <folder> (folder '-' detaches)")
		return nil
	}

	noteID, err := a.resolveNote(args[0])
	if err != nil {
		log.Println(err.Error())
		return err
	}

	folderID := ""
	if args[1] != "-" {
		folderID, err = a.resolveFolder(args[1])
		if err != nil {
			log.Println(err.Error())
			return err
		}
	}

	if _, err := a.store.UpdateNote(ctx, noteID, &models.NotePatch{FolderID: &folderID}); err != nil {
		log.Printf("failed to move note: %s", err.Error())
		return err
	}
	log.Println("moved")
	return nil
}
