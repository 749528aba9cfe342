// Package queue implements the durable offline action queue. Actions are
// persisted before execution, drained one at a time, and retried with
// exponential backoff, so server-bound work survives restarts and outages.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/classnote/internal/logging"
	"github.com/dmitrijs2005/classnote/internal/models"
	"github.com/dmitrijs2005/classnote/internal/repositories/actions"
)

const defaultMaxRetries = 3

// Processor executes one action. The payload is the blob stored at enqueue
// time; the processor owns its deserialization.
type Processor func(ctx context.Context, payload json.RawMessage) error

// Subscriber receives the number of actions currently held by the queue
// (pending, processing and failed together).
type Subscriber func(count int)

// Queue is the single process-wide action queue. One drain runs at a time;
// concurrent ProcessQueue calls and scheduler kicks collapse into it.
type Queue struct {
	store  actions.Repository
	online func() bool
	logger logging.Logger

	maxRetries int
	backoff    func(retryCount int) time.Duration

	mu       sync.Mutex
	procs    map[models.ActionType]Processor
	subs     map[int]Subscriber
	nextSub  int
	draining bool
	started  bool

	kick chan struct{}
}

func New(store actions.Repository, online func() bool, logger logging.Logger) *Queue {
	return &Queue{
		store:      store,
		online:     online,
		logger:     logger,
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
		procs:      make(map[models.ActionType]Processor),
		subs:       make(map[int]Subscriber),
		kick:       make(chan struct{}, 1),
	}
}

func defaultBackoff(retryCount int) time.Duration {
	return time.Duration(1<<retryCount) * time.Second
}

// RegisterProcessor associates a handler with an action type. Registering a
// type again replaces the previous handler.
func (q *Queue) RegisterProcessor(actionType models.ActionType, proc Processor) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.procs[actionType] = proc
}

// Enqueue persists a new pending action and returns its id. The payload is
// serialized to JSON unless it already is one. If the device is online the
// scheduler is kicked, but the caller never waits for execution.
func (q *Queue) Enqueue(ctx context.Context, actionType models.ActionType, payload any) (string, error) {
	var raw json.RawMessage
	switch p := payload.(type) {
	case json.RawMessage:
		raw = p
	case []byte:
		raw = p
	default:
		b, err := json.Marshal(payload)
		if err != nil {
			return "", fmt.Errorf("failed to marshal action payload: %w", err)
		}
		raw = b
	}

	now := time.Now().UTC().Format(time.RFC3339)
	action := &models.PendingAction{
		ID:         uuid.NewString(),
		Type:       actionType,
		Payload:    raw,
		Status:     models.ActionStatusPending,
		RetryCount: 0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := q.store.Add(ctx, action); err != nil {
		return "", fmt.Errorf("failed to enqueue action: %w", err)
	}

	q.notify(ctx)

	if q.online() {
		q.Kick()
	}

	return action.ID, nil
}

// Init recovers actions interrupted by a previous process death and starts
// the scheduler goroutine. Subsequent calls are no-ops. The scheduler stops
// when ctx is cancelled.
func (q *Queue) Init(ctx context.Context) error {
	q.mu.Lock()
	if q.started {
		q.mu.Unlock()
		return nil
	}
	q.started = true
	q.mu.Unlock()

	list, err := q.store.List(ctx)
	if err != nil {
		q.mu.Lock()
		q.started = false
		q.mu.Unlock()
		return fmt.Errorf("failed to list actions: %w", err)
	}

	for _, a := range list {
		if a.Status != models.ActionStatusProcessing {
			continue
		}
		// interrupted, not necessarily failed: do not touch the retry count
		if err := q.store.Update(ctx, a.ID, models.ActionStatusPending, a.RetryCount); err != nil {
			q.mu.Lock()
			q.started = false
			q.mu.Unlock()
			return fmt.Errorf("failed to recover action %s: %w", a.ID, err)
		}
		q.logger.Info(ctx, "recovered interrupted action", "action_id", a.ID, "action_type", string(a.Type))
	}

	go q.run(ctx)

	if q.online() {
		q.Kick()
	}

	return nil
}

// Kick wakes the scheduler without blocking. Extra kicks while a drain is
// queued are dropped.
func (q *Queue) Kick() {
	select {
	case q.kick <- struct{}{}:
	default:
	}
}

func (q *Queue) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.kick:
			if err := q.ProcessQueue(ctx); err != nil {
				q.logger.Error(ctx, "queue drain failed", "error", err)
			}
		}
	}
}

// ProcessQueue drains the queue until no pending actions remain. Actions
// enqueued while the drain runs are picked up before it ends. A concurrent
// call while a drain is active is a no-op, as is a call while offline.
// Storage errors abort the drain and propagate; processor errors only mark
// the action for retry.
func (q *Queue) ProcessQueue(ctx context.Context) error {
	if !q.online() {
		return nil
	}

	q.mu.Lock()
	if q.draining {
		q.mu.Unlock()
		return nil
	}
	q.draining = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.draining = false
		q.mu.Unlock()
		q.notify(ctx)
	}()

	q.notify(ctx)

	for {
		list, err := q.store.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list actions: %w", err)
		}

		var pending []models.PendingAction
		for _, a := range list {
			if a.Status == models.ActionStatusPending {
				pending = append(pending, a)
			}
		}
		if len(pending) == 0 {
			return nil
		}

		for i := range pending {
			if err := q.processAction(ctx, &pending[i]); err != nil {
				return err
			}
		}
	}
}

func (q *Queue) processAction(ctx context.Context, action *models.PendingAction) error {
	if err := q.store.Update(ctx, action.ID, models.ActionStatusProcessing, action.RetryCount); err != nil {
		return fmt.Errorf("failed to mark action %s processing: %w", action.ID, err)
	}

	q.mu.Lock()
	proc, ok := q.procs[action.Type]
	q.mu.Unlock()

	if !ok {
		// retrying cannot conjure a handler, drop the action instead of spinning
		q.logger.Warn(ctx, "no processor registered, dropping action",
			"action_id", action.ID, "action_type", string(action.Type))
		if err := q.store.Remove(ctx, action.ID); err != nil {
			return fmt.Errorf("failed to remove action %s: %w", action.ID, err)
		}
		return nil
	}

	procErr := q.invoke(ctx, proc, action.Payload)
	if procErr == nil {
		if err := q.store.Remove(ctx, action.ID); err != nil {
			return fmt.Errorf("failed to remove action %s: %w", action.ID, err)
		}
		return nil
	}

	retryCount := action.RetryCount + 1
	q.logger.Warn(ctx, "action failed",
		"action_id", action.ID, "action_type", string(action.Type),
		"retry_count", retryCount, "error", procErr)

	if retryCount >= q.maxRetries {
		if err := q.store.Update(ctx, action.ID, models.ActionStatusFailed, retryCount); err != nil {
			return fmt.Errorf("failed to mark action %s failed: %w", action.ID, err)
		}
		return nil
	}

	if err := q.store.Update(ctx, action.ID, models.ActionStatusPending, retryCount); err != nil {
		return fmt.Errorf("failed to reschedule action %s: %w", action.ID, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(q.backoff(retryCount)):
	}
	return nil
}

func (q *Queue) invoke(ctx context.Context, proc Processor, payload json.RawMessage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processor panic: %v", r)
		}
	}()
	return proc(ctx, payload)
}

// ListActions returns every persisted action, oldest first.
func (q *Queue) ListActions(ctx context.Context) ([]models.PendingAction, error) {
	return q.store.List(ctx)
}

func (q *Queue) IsOnline() bool {
	return q.online()
}

// Subscribe registers a listener for queue size changes and returns an
// unsubscribe function. The listener is called asynchronously, once right
// away and then whenever the queue contents may have changed.
func (q *Queue) Subscribe(ctx context.Context, fn Subscriber) func() {
	q.mu.Lock()
	id := q.nextSub
	q.nextSub++
	q.subs[id] = fn
	q.mu.Unlock()

	if count, err := q.count(ctx); err == nil {
		go fn(count)
	}

	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		delete(q.subs, id)
	}
}

func (q *Queue) count(ctx context.Context) (int, error) {
	return q.store.Count(ctx)
}

func (q *Queue) notify(ctx context.Context) {
	count, err := q.count(ctx)
	if err != nil {
		q.logger.Warn(ctx, "failed to count queued actions", "error", err)
		return
	}

	q.mu.Lock()
	subs := make([]Subscriber, 0, len(q.subs))
	for _, s := range q.subs {
		subs = append(subs, s)
	}
	q.mu.Unlock()

	for _, s := range subs {
		go s(count)
	}
}
