package entities

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/classnote/internal/dbx"
	"github.com/dmitrijs2005/classnote/internal/models"
)

func (r *SQLiteRepository) ListSubtitles(ctx context.Context) ([]models.Subtitle, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, lecture_id, timestamp, text_en, text_zh, type, confidence, created_at
		FROM subtitles
		ORDER BY lecture_id, timestamp
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subtitles: %w", err)
	}
	defer rows.Close()

	var result []models.Subtitle
	for rows.Next() {
		var s models.Subtitle
		if err := rows.Scan(&s.ID, &s.LectureID, &s.Timestamp, &s.TextEN, &s.TextZH,
			&s.Type, &s.Confidence, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subtitle row: %w", err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subtitle rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) ReplaceSubtitles(ctx context.Context, lectureID string, subs []models.Subtitle) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM subtitles WHERE lecture_id = ?`, lectureID); err != nil {
			return err
		}
		for _, s := range subs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO subtitles (id, lecture_id, timestamp, text_en, text_zh, type, confidence, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, s.ID, lectureID, s.Timestamp, s.TextEN, s.TextZH, s.Type, s.Confidence, s.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace subtitles for lecture %s: %w", lectureID, err)
	}
	return nil
}
