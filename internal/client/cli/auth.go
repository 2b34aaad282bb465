package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/mpetrov/inkpad/internal/common"
)

// Register prompts for credentials and creates an account. On success
// the user is logged in immediately.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.remote.Register(ctx, username, password); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			log.Println("that username is taken")
		} else {
			log.Printf("registration failed: %s", err.Error())
		}
		return err
	}

	log.Println("account created")
	a.startSession(ctx, username)
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.remote.Login(ctx, username, password); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			log.Println("invalid username or password")
		} else {
			log.Printf("login failed: %s", err.Error())
		}
		return err
	}

	a.startSession(ctx, username)
	return nil
}

// Logout flushes any pending edit, invalidates the session, and drops
// session state. The snapshot cache stays on disk.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return nil
	}
	if a.editor != nil {
		_ = a.editor.Save(ctx)
	}
	if err := a.settings.SignOut(ctx); err != nil {
		log.Printf("logout failed: %s", err.Error())
	}
	a.endSession()
	log.Println("logged out")
	return nil
}
