package sync

import (
	"encoding/json"

	"github.com/dmitrijs2005/classnote/internal/models"
)

// Each action type carries its own payload struct. Payloads are persisted as
// JSON in the queue and must stay decodable across releases, so fields carry
// explicit tags. Every payload names the server it targets: a queued action
// may execute long after the active configuration changed.

type PushPayload struct {
	ServerURL string `json:"server_url"`
	Username  string `json:"username"`
	SkipFiles bool   `json:"skip_files,omitempty"`
}

type PullPayload struct {
	ServerURL string `json:"server_url"`
	Username  string `json:"username"`
}

type RegisterDevicePayload struct {
	ServerURL string                    `json:"server_url"`
	Device    models.DeviceRegistration `json:"device"`
}

type DeleteDevicePayload struct {
	ServerURL string `json:"server_url"`
	DeviceID  string `json:"device_id"`
}

type RegisterAccountPayload struct {
	ServerURL string `json:"server_url"`
	Username  string `json:"username"`
}

type CreateTaskPayload struct {
	ServerURL string          `json:"server_url"`
	TaskType  string          `json:"task_type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Priority  *int            `json:"priority,omitempty"`
}

type PurgeItemPayload struct {
	ServerURL string `json:"server_url"`
	Username  string `json:"username"`
	ItemID    string `json:"item_id"`
	ItemType  string `json:"item_type"`
}
