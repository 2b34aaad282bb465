package repomanager

import (
	"context"
	"database/sql"

	"github.com/mpetrov/inkpad/internal/dbx"
	"github.com/mpetrov/inkpad/internal/server/repositories/folders"
	"github.com/mpetrov/inkpad/internal/server/repositories/notes"
	"github.com/mpetrov/inkpad/internal/server/repositories/profiles"
	"github.com/mpetrov/inkpad/internal/server/repositories/refreshtokens"
	"github.com/mpetrov/inkpad/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Notes(db dbx.DBTX) notes.Repository
	Folders(db dbx.DBTX) folders.Repository
	Profiles(db dbx.DBTX) profiles.Repository
}
