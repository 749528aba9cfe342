package entities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/classnote/internal/dbx"
	"github.com/dmitrijs2005/classnote/internal/models"
)

func (r *SQLiteRepository) ListChatSessions(ctx context.Context) ([]models.ChatSession, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, lecture_id, title, summary, created_at, updated_at, is_deleted FROM chat_sessions
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}
	defer rows.Close()

	var result []models.ChatSession
	for rows.Next() {
		var s models.ChatSession
		if err := rows.Scan(&s.ID, &s.LectureID, &s.Title, &s.Summary,
			&s.CreatedAt, &s.UpdatedAt, &s.IsDeleted); err != nil {
			return nil, fmt.Errorf("failed to scan chat session row: %w", err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chat session rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) GetChatSession(ctx context.Context, id string) (*models.ChatSession, error) {
	var s models.ChatSession
	err := r.db.QueryRowContext(ctx, `
		SELECT id, lecture_id, title, summary, created_at, updated_at, is_deleted
		FROM chat_sessions WHERE id = ?
	`, id).Scan(&s.ID, &s.LectureID, &s.Title, &s.Summary, &s.CreatedAt, &s.UpdatedAt, &s.IsDeleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat session %s: %w", id, err)
	}
	return &s, nil
}

func (r *SQLiteRepository) SaveChatSession(ctx context.Context, s *models.ChatSession) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_sessions (id, lecture_id, title, summary, created_at, updated_at, is_deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			lecture_id = excluded.lecture_id,
			title = excluded.title,
			summary = excluded.summary,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			is_deleted = excluded.is_deleted
	`, s.ID, s.LectureID, s.Title, s.Summary, s.CreatedAt, s.UpdatedAt, s.IsDeleted)
	if err != nil {
		return fmt.Errorf("failed to save chat session %s: %w", s.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) ListChatMessages(ctx context.Context) ([]models.ChatMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, role, content, sources, timestamp
		FROM chat_messages
		ORDER BY session_id, timestamp
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	var result []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.Sources, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan chat message row: %w", err)
		}
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chat message rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) ReplaceChatMessages(ctx context.Context, sessionID string, msgs []models.ChatMessage) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM chat_messages WHERE session_id = ?`, sessionID); err != nil {
			return err
		}
		for _, m := range msgs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO chat_messages (id, session_id, role, content, sources, timestamp)
				VALUES (?, ?, ?, ?, ?, ?)
			`, m.ID, sessionID, m.Role, m.Content, m.Sources, m.Timestamp); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace chat messages for session %s: %w", sessionID, err)
	}
	return nil
}
