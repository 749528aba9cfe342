package models

import "encoding/json"

// ActionType enumerates every operation the offline queue can replay.
// The set is closed: processors are registered per type and unknown rows
// are dropped during a drain rather than retried forever.
type ActionType string

const (
	ActionSyncPush       ActionType = "SYNC_PUSH"
	ActionSyncPull       ActionType = "SYNC_PULL"
	ActionDeviceRegister ActionType = "DEVICE_REGISTER"
	ActionDeviceDelete   ActionType = "DEVICE_DELETE"
	ActionAuthRegister   ActionType = "AUTH_REGISTER"
	ActionTaskCreate     ActionType = "TASK_CREATE"
	ActionPurgeItem      ActionType = "PURGE_ITEM"
)

// ActionStatus is the persisted state of a queued action. Completed actions
// are deleted rather than kept in a terminal state.
type ActionStatus string

const (
	ActionStatusPending    ActionStatus = "pending"
	ActionStatusProcessing ActionStatus = "processing"
	ActionStatusFailed     ActionStatus = "failed"
)

// PendingAction is one durable unit of queued work. Payload is opaque JSON
// owned by the processor registered for Type.
type PendingAction struct {
	ID         string
	Type       ActionType
	Payload    json.RawMessage
	Status     ActionStatus
	RetryCount int
	CreatedAt  string
	UpdatedAt  string
}
