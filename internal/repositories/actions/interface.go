package actions

import (
	"context"

	"github.com/dmitrijs2005/classnote/internal/models"
)

// Repository is the durable row store behind the offline queue. The queue
// is its only writer.
type Repository interface {
	// Add persists a new action exactly as given.
	Add(ctx context.Context, a *models.PendingAction) error

	// List returns every persisted action, oldest first.
	List(ctx context.Context) ([]models.PendingAction, error)

	// Update rewrites an action's status and retry counter.
	Update(ctx context.Context, id string, status models.ActionStatus, retryCount int) error

	// Remove deletes an action; removing an absent id is not an error.
	Remove(ctx context.Context, id string) error

	// Count reports how many actions are persisted, in any status.
	Count(ctx context.Context) (int, error)
}
