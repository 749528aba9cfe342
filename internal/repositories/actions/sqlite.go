package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/classnote/internal/dbx"
	"github.com/dmitrijs2005/classnote/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, a *models.PendingAction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pending_actions (id, action_type, payload, status, retry_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.ID, string(a.Type), string(a.Payload), string(a.Status), a.RetryCount, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to add action %s: %w", a.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.PendingAction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, action_type, payload, status, retry_count, created_at, updated_at
		FROM pending_actions
		ORDER BY created_at ASC, rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}
	defer rows.Close()

	var result []models.PendingAction
	for rows.Next() {
		var a models.PendingAction
		var typ, status, payload string
		if err := rows.Scan(&a.ID, &typ, &payload, &status, &a.RetryCount, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan action row: %w", err)
		}
		a.Type = models.ActionType(typ)
		a.Status = models.ActionStatus(status)
		a.Payload = []byte(payload)
		result = append(result, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate action rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id string, status models.ActionStatus, retryCount int) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, `
		UPDATE pending_actions SET status = ?, retry_count = ?, updated_at = ? WHERE id = ?
	`, string(status), retryCount, now, id)
	if err != nil {
		return fmt.Errorf("failed to update action %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pending_actions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to remove action %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pending_actions`)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count actions: %w", err)
	}
	return n, nil
}
