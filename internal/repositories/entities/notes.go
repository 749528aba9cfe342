package entities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/classnote/internal/models"
)

func (r *SQLiteRepository) ListNotes(ctx context.Context) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT lecture_id, title, content, generated_at, is_deleted FROM notes
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var result []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.LectureID, &n.Title, &n.Content, &n.GeneratedAt, &n.IsDeleted); err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		result = append(result, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate note rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) GetNote(ctx context.Context, lectureID string) (*models.Note, error) {
	var n models.Note
	err := r.db.QueryRowContext(ctx, `
		SELECT lecture_id, title, content, generated_at, is_deleted FROM notes WHERE lecture_id = ?
	`, lectureID).Scan(&n.LectureID, &n.Title, &n.Content, &n.GeneratedAt, &n.IsDeleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note for lecture %s: %w", lectureID, err)
	}
	return &n, nil
}

func (r *SQLiteRepository) SaveNote(ctx context.Context, n *models.Note) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (lecture_id, title, content, generated_at, is_deleted)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(lecture_id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			generated_at = excluded.generated_at,
			is_deleted = excluded.is_deleted
	`, n.LectureID, n.Title, n.Content, n.GeneratedAt, n.IsDeleted)
	if err != nil {
		return fmt.Errorf("failed to save note for lecture %s: %w", n.LectureID, err)
	}
	return nil
}
