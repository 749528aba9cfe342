package repositories

import (
	"context"
	"database/sql"
	"log"

	"github.com/dmitrijs2005/classnote/internal/migrations"
	"github.com/dmitrijs2005/classnote/internal/repositories/actions"
	"github.com/dmitrijs2005/classnote/internal/repositories/entities"
	"github.com/pressly/goose/v3"
)

type Repositories struct {
	Actions  actions.Repository
	Entities entities.Repository
	DB       *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	// Set the database dialect
	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal("failed to set goose dialect:", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	repos := &Repositories{
		Actions:  actions.NewSQLiteRepository(db),
		Entities: entities.NewSQLiteRepository(db),
		DB:       db,
	}
	return repos, nil
}
