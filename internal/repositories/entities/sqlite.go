// Package entities provides the SQLite-backed local entity store. One
// repository covers every synchronized entity kind; group replacement for
// subtitles and chat messages runs inside a transaction so a half-applied
// swap can never be observed.
package entities

import (
	"database/sql"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}
