// Package sync implements the sync engine: queue processors for every
// action type, push snapshot assembly, pull merge with last-write-wins
// conflict resolution, and cross-device file path reconciliation.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/classnote/internal/api"
	"github.com/dmitrijs2005/classnote/internal/filex"
	"github.com/dmitrijs2005/classnote/internal/logging"
	"github.com/dmitrijs2005/classnote/internal/models"
	"github.com/dmitrijs2005/classnote/internal/queue"
	"github.com/dmitrijs2005/classnote/internal/repositories/entities"
)

// Engine layers the sync protocol on the action queue. Public operations
// enqueue and return once the action is durable; the registered processors
// do the actual network I/O and local merges when the queue drains.
type Engine struct {
	queue     *queue.Queue
	client    api.Client
	store     entities.Repository
	dirs      filex.Dirs
	allowList map[string]struct{}
	logger    logging.Logger
}

func New(q *queue.Queue, client api.Client, store entities.Repository, dirs filex.Dirs, settingsAllowList []string, logger logging.Logger) *Engine {
	allow := make(map[string]struct{}, len(settingsAllowList))
	for _, key := range settingsAllowList {
		allow[key] = struct{}{}
	}
	return &Engine{
		queue:     q,
		client:    client,
		store:     store,
		dirs:      dirs,
		allowList: allow,
		logger:    logger,
	}
}

// RegisterProcessors binds a processor to every action type the engine
// owns. Call once before queue.Init.
func (e *Engine) RegisterProcessors() {
	e.queue.RegisterProcessor(models.ActionSyncPush, e.processPush)
	e.queue.RegisterProcessor(models.ActionSyncPull, e.processPull)
	e.queue.RegisterProcessor(models.ActionDeviceRegister, e.processRegisterDevice)
	e.queue.RegisterProcessor(models.ActionDeviceDelete, e.processDeleteDevice)
	e.queue.RegisterProcessor(models.ActionAuthRegister, e.processRegisterAccount)
	e.queue.RegisterProcessor(models.ActionTaskCreate, e.processCreateTask)
	e.queue.RegisterProcessor(models.ActionPurgeItem, e.processPurgeItem)
}

// PushData schedules a full snapshot push. It returns once the action is
// durable, not once the server has the data.
func (e *Engine) PushData(ctx context.Context, baseURL, username string, skipFiles bool) error {
	_, err := e.queue.Enqueue(ctx, models.ActionSyncPush, PushPayload{
		ServerURL: baseURL, Username: username, SkipFiles: skipFiles,
	})
	return err
}

// PullData schedules a pull-and-merge of the server's snapshot.
func (e *Engine) PullData(ctx context.Context, baseURL, username string) error {
	_, err := e.queue.Enqueue(ctx, models.ActionSyncPull, PullPayload{
		ServerURL: baseURL, Username: username,
	})
	return err
}

// Sync schedules a push followed by a pull. The two actions retry
// independently; the drain order guarantees push runs first.
func (e *Engine) Sync(ctx context.Context, baseURL, username string) error {
	if err := e.PushData(ctx, baseURL, username, false); err != nil {
		return err
	}
	return e.PullData(ctx, baseURL, username)
}

func (e *Engine) RegisterDevice(ctx context.Context, baseURL string, device models.DeviceRegistration) error {
	_, err := e.queue.Enqueue(ctx, models.ActionDeviceRegister, RegisterDevicePayload{
		ServerURL: baseURL, Device: device,
	})
	return err
}

func (e *Engine) DeleteDevice(ctx context.Context, baseURL, deviceID string) error {
	_, err := e.queue.Enqueue(ctx, models.ActionDeviceDelete, DeleteDevicePayload{
		ServerURL: baseURL, DeviceID: deviceID,
	})
	return err
}

func (e *Engine) RegisterAccount(ctx context.Context, baseURL, username string) error {
	_, err := e.queue.Enqueue(ctx, models.ActionAuthRegister, RegisterAccountPayload{
		ServerURL: baseURL, Username: username,
	})
	return err
}

func (e *Engine) CreateTask(ctx context.Context, baseURL, taskType string, payload json.RawMessage, priority *int) error {
	_, err := e.queue.Enqueue(ctx, models.ActionTaskCreate, CreateTaskPayload{
		ServerURL: baseURL, TaskType: taskType, Payload: payload, Priority: priority,
	})
	return err
}

func (e *Engine) PurgeItem(ctx context.Context, baseURL, username, itemID, itemType string) error {
	_, err := e.queue.Enqueue(ctx, models.ActionPurgeItem, PurgeItemPayload{
		ServerURL: baseURL, Username: username, ItemID: itemID, ItemType: itemType,
	})
	return err
}

// Direct passthroughs. These are read-only or interactive calls that gain
// nothing from offline replay.

func (e *Engine) GetDevices(ctx context.Context, baseURL, username string) ([]models.Device, error) {
	return e.client.GetDevices(ctx, baseURL, username)
}

func (e *Engine) UploadFile(ctx context.Context, baseURL, localPath string) (string, error) {
	return e.client.UploadFile(ctx, baseURL, localPath)
}

func (e *Engine) DownloadFile(ctx context.Context, baseURL, remoteName, localPath string) error {
	return e.client.DownloadFile(ctx, baseURL, remoteName, localPath)
}

func (e *Engine) Login(ctx context.Context, baseURL, username string) (*models.AuthResponse, error) {
	return e.client.Login(ctx, baseURL, username)
}

func (e *Engine) GetTask(ctx context.Context, baseURL, taskID string) (*models.Task, error) {
	return e.client.GetTask(ctx, baseURL, taskID)
}

func (e *Engine) GetActiveTasks(ctx context.Context, baseURL string) ([]models.Task, error) {
	return e.client.GetActiveTasks(ctx, baseURL)
}

func (e *Engine) processRegisterDevice(ctx context.Context, raw json.RawMessage) error {
	var p RegisterDevicePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("failed to decode device registration payload: %w", err)
	}
	return e.client.RegisterDevice(ctx, p.ServerURL, &p.Device)
}

func (e *Engine) processDeleteDevice(ctx context.Context, raw json.RawMessage) error {
	var p DeleteDevicePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("failed to decode device delete payload: %w", err)
	}
	return e.client.DeleteDevice(ctx, p.ServerURL, p.DeviceID)
}

// processRegisterAccount replays account creation. The server answers a
// duplicate registration with success=false and an "already exists"
// message; at-least-once replay treats that as done.
func (e *Engine) processRegisterAccount(ctx context.Context, raw json.RawMessage) error {
	var p RegisterAccountPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("failed to decode account registration payload: %w", err)
	}

	resp, err := e.client.RegisterUser(ctx, p.ServerURL, p.Username)
	if err != nil {
		return err
	}
	if !resp.Success {
		if strings.Contains(strings.ToLower(resp.Message), "already exists") {
			e.logger.Info(ctx, "account already registered", "username", p.Username)
			return nil
		}
		return fmt.Errorf("registration rejected: %s", resp.Message)
	}
	return nil
}

func (e *Engine) processCreateTask(ctx context.Context, raw json.RawMessage) error {
	var p CreateTaskPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("failed to decode task payload: %w", err)
	}

	task, err := e.client.CreateTask(ctx, p.ServerURL, &models.TaskRequest{
		TaskType: p.TaskType, Payload: p.Payload, Priority: p.Priority,
	})
	if err != nil {
		return err
	}
	e.logger.Info(ctx, "task created", "task_id", task.ID, "task_type", task.TaskType)
	return nil
}

func (e *Engine) processPurgeItem(ctx context.Context, raw json.RawMessage) error {
	var p PurgeItemPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("failed to decode purge payload: %w", err)
	}
	return e.client.PurgeItem(ctx, p.ServerURL, &models.PurgeRequest{
		ID: p.ItemID, ItemType: p.ItemType, Username: p.Username,
	})
}
