package cli

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/mpetrov/inkpad/internal/client/export"
)

// Export writes a note to disk as txt, md, or fm (markdown with YAML
// frontmatter). The default is md.
func (a *App) Export(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) == 0 {
		printlnFn("Usage: export <n> [txt|md|fm]")
		return nil
	}

	id, err := a.resolveNote(args[0])
	if err != nil {
		log.Println(err.Error())
		return err
	}
	note, _ := a.store.Note(id)

	format := export.FormatMarkdown
	if len(args) > 1 {
		format = args[1]
	}

	path, err := export.WriteFile(a.config.ExportDir, &note, format)
	if err != nil {
		log.Printf("export failed: %s", err.Error())
		return err
	}
	log.Printf("exported to %s", path)
	return nil
}

// Settings shows the profile and walks through editing it. All fields
// are saved in one request; the theme applies immediately on success.
func (a *App) Settings(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	profile, err := a.settings.Load(ctx)
	if err != nil {
		log.Printf("failed to load profile: %s", err.Error())
		return err
	}

	printlnFn("Signed in as " + profile.UserName)
	printlnFn("Display name:      " + profile.DisplayName)
	printlnFn("Theme:             " + profile.Theme)
	printlnFn("Autosave interval: " + strconv.Itoa(profile.AutosaveInterval) + "s")

	change, err := GetSimpleText(a.reader, "Change settings? (y/N)", os.Stdout)
	if err != nil || change != "y" {
		return err
	}

	edited := *profile
	if v, err := GetSimpleText(a.reader, "Display name ["+profile.DisplayName+"]", os.Stdout); err == nil && v != "" {
		edited.DisplayName = v
	}
	if v, err := GetSimpleText(a.reader, "Theme (light/dark/system) ["+profile.Theme+"]", os.Stdout); err == nil && v != "" {
		edited.Theme = v
	}
	if v, err := GetSimpleText(a.reader, "Autosave interval seconds ["+strconv.Itoa(profile.AutosaveInterval)+"]", os.Stdout); err == nil && v != "" {
		if seconds, convErr := strconv.Atoi(v); convErr == nil {
			edited.AutosaveInterval = seconds
		}
	}

	saved, err := a.settings.Save(ctx, &edited)
	if err != nil {
		log.Printf("failed to save settings: %s", err.Error())
		return err
	}
	a.editor.SetInterval(saved.AutosaveInterval)
	log.Println("settings saved")
	return nil
}

// Sync refreshes notes and folders from the server.
func (a *App) Sync(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if err := a.store.Sync(ctx); err != nil {
		log.Printf("sync failed: %s", err.Error())
		return err
	}
	log.Printf("synced %d notes", len(a.store.Notes()))
	return nil
}
