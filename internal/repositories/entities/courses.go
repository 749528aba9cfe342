package entities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/classnote/internal/models"
)

func (r *SQLiteRepository) ListCourses(ctx context.Context) ([]models.Course, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, title, description, keywords, syllabus_info, created_at, updated_at, is_deleted
		FROM courses
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var result []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Username, &c.Title, &c.Description, &c.Keywords,
			&c.SyllabusInfo, &c.CreatedAt, &c.UpdatedAt, &c.IsDeleted); err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate course rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	var c models.Course
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, title, description, keywords, syllabus_info, created_at, updated_at, is_deleted
		FROM courses WHERE id = ?
	`, id).Scan(&c.ID, &c.Username, &c.Title, &c.Description, &c.Keywords,
		&c.SyllabusInfo, &c.CreatedAt, &c.UpdatedAt, &c.IsDeleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course %s: %w", id, err)
	}
	return &c, nil
}

func (r *SQLiteRepository) SaveCourse(ctx context.Context, c *models.Course) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO courses (id, username, title, description, keywords, syllabus_info, created_at, updated_at, is_deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			title = excluded.title,
			description = excluded.description,
			keywords = excluded.keywords,
			syllabus_info = excluded.syllabus_info,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			is_deleted = excluded.is_deleted
	`, c.ID, c.Username, c.Title, c.Description, c.Keywords, c.SyllabusInfo,
		c.CreatedAt, c.UpdatedAt, c.IsDeleted)
	if err != nil {
		return fmt.Errorf("failed to save course %s: %w", c.ID, err)
	}
	return nil
}
