package entities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/classnote/internal/models"
)

func (r *SQLiteRepository) ListLectures(ctx context.Context) ([]models.Lecture, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, course_id, title, date, duration, status,
		       audio_path, pdf_path, transcript_path, summary_path, keywords,
		       created_at, updated_at, is_deleted
		FROM lectures
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list lectures: %w", err)
	}
	defer rows.Close()

	var result []models.Lecture
	for rows.Next() {
		var l models.Lecture
		if err := rows.Scan(&l.ID, &l.CourseID, &l.Title, &l.Date, &l.Duration, &l.Status,
			&l.AudioPath, &l.PDFPath, &l.TranscriptPath, &l.SummaryPath, &l.Keywords,
			&l.CreatedAt, &l.UpdatedAt, &l.IsDeleted); err != nil {
			return nil, fmt.Errorf("failed to scan lecture row: %w", err)
		}
		result = append(result, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lecture rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) GetLecture(ctx context.Context, id string) (*models.Lecture, error) {
	var l models.Lecture
	err := r.db.QueryRowContext(ctx, `
		SELECT id, course_id, title, date, duration, status,
		       audio_path, pdf_path, transcript_path, summary_path, keywords,
		       created_at, updated_at, is_deleted
		FROM lectures WHERE id = ?
	`, id).Scan(&l.ID, &l.CourseID, &l.Title, &l.Date, &l.Duration, &l.Status,
		&l.AudioPath, &l.PDFPath, &l.TranscriptPath, &l.SummaryPath, &l.Keywords,
		&l.CreatedAt, &l.UpdatedAt, &l.IsDeleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lecture %s: %w", id, err)
	}
	return &l, nil
}

func (r *SQLiteRepository) SaveLecture(ctx context.Context, l *models.Lecture) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lectures (id, course_id, title, date, duration, status,
			audio_path, pdf_path, transcript_path, summary_path, keywords,
			created_at, updated_at, is_deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			course_id = excluded.course_id,
			title = excluded.title,
			date = excluded.date,
			duration = excluded.duration,
			status = excluded.status,
			audio_path = excluded.audio_path,
			pdf_path = excluded.pdf_path,
			transcript_path = excluded.transcript_path,
			summary_path = excluded.summary_path,
			keywords = excluded.keywords,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			is_deleted = excluded.is_deleted
	`, l.ID, l.CourseID, l.Title, l.Date, l.Duration, l.Status,
		l.AudioPath, l.PDFPath, l.TranscriptPath, l.SummaryPath, l.Keywords,
		l.CreatedAt, l.UpdatedAt, l.IsDeleted)
	if err != nil {
		return fmt.Errorf("failed to save lecture %s: %w", l.ID, err)
	}
	return nil
}
