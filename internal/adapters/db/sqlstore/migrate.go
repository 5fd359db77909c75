package sqlstore

import (
	"context"
	"embed"
	"path"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

func RunMigrations(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	dialect, dir := "sqlite3", DriverSQLite
	if db.Dialector.Name() == DriverPostgres {
		dialect, dir = "postgres", DriverPostgres
	}
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrationsFS)
	if err := goose.UpContext(ctx, sqlDB, path.Join("migrations", dir)); err != nil {
		return err
	}

	return nil
}
