// Package cli implements the interactive terminal front end. It wires
// the remote client, the local state store, the autosave editor, and
// the settings panel into a REPL.
package cli

import (
	"bufio"
	"context"
	"log"
	"os"

	_ "modernc.org/sqlite"

	"github.com/mpetrov/inkpad/internal/client/cache"
	"github.com/mpetrov/inkpad/internal/client/config"
	"github.com/mpetrov/inkpad/internal/client/editor"
	"github.com/mpetrov/inkpad/internal/client/models"
	"github.com/mpetrov/inkpad/internal/client/remote"
	"github.com/mpetrov/inkpad/internal/client/settings"
	"github.com/mpetrov/inkpad/internal/client/store"
	"github.com/mpetrov/inkpad/internal/common"
)

type App struct {
	config   *config.Config
	remote   remote.Client
	cache    *cache.Cache
	store    *store.Store
	editor   *editor.Editor
	settings *settings.Manager
	reader   *bufio.Reader
	userName string
	theme    string
	// notes of the most recent listing, addressed by number in commands
	lastShown []models.Note
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	snapshotCache, err := cache.Open(ctx, c.CacheDBPath)
	if err != nil {
		log.Printf("error initializing local cache: %s", err.Error())
		return nil, err
	}

	apiClient := remote.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)

	app := &App{
		config: c,
		remote: apiClient,
		cache:  snapshotCache,
		reader: bufio.NewReader(os.Stdin),
		theme:  common.ThemeSystem,
	}
	return app, nil
}

// startSession builds the per-user components after a successful login
// or registration.
func (a *App) startSession(ctx context.Context, userName string) {
	a.userName = userName
	a.store = store.New(a.remote, a.cache, userName)
	a.editor = editor.New(a.store.UpdateNote, common.AutosaveDefaultSeconds)
	a.settings = settings.NewManager(a.remote, a.cache, userName, a.applyTheme)

	if profile, err := a.settings.Load(ctx); err == nil {
		a.editor.SetInterval(profile.AutosaveInterval)
		a.applyTheme(profile.Theme)
	}

	if err := a.store.Sync(ctx); err != nil {
		log.Printf("sync failed, loading cached snapshot: %s", err.Error())
		if err := a.store.LoadOffline(ctx); err != nil {
			log.Printf("no cached snapshot: %s", err.Error())
		}
	}
}

func (a *App) endSession() {
	if a.editor != nil {
		a.editor.Close()
	}
	a.userName = ""
	a.store = nil
	a.editor = nil
	a.settings = nil
	a.theme = common.ThemeSystem
}

func (a *App) applyTheme(theme string) {
	if a.theme != theme {
		a.theme = theme
		log.Printf("theme switched to %s", theme)
	}
}

func (a *App) isLoggedIn() bool {
	return a.userName != "" && a.remote.LoggedIn()
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.cache != nil {
			_ = a.cache.Close()
		}
	}()

	log.Println("Welcome to Inkpad CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	s := a.userName
	if a.editor != nil && a.editor.NoteID() != "" {
		s += " editing:" + a.editor.Status().String()
	}
	return "(" + s + ")"
}
