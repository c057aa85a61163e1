package repository

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	apperrors "github.com/Taichi-iskw/yt-export/internal/errors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate brings the mirror schema up to date
func Migrate(databaseURL string) error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to load migrations")
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to create migrate instance")
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to run migrations")
	}
	return nil
}
