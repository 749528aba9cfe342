package models

import "encoding/json"

// TaskRequest asks the server to run a background job (embedding,
// extraction, graph building). Priority defaults server-side per task type.
type TaskRequest struct {
	TaskType string          `json:"task_type"`
	Payload  json.RawMessage `json:"payload"`
	Priority *int            `json:"priority,omitempty"`
}

// Task is the server's view of a background job.
type Task struct {
	ID          string          `json:"id"`
	TaskType    string          `json:"task_type"`
	Status      string          `json:"status"`
	Priority    int             `json:"priority"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       *string         `json:"error,omitempty"`
	CreatedAt   string          `json:"created_at"`
	StartedAt   *string         `json:"started_at,omitempty"`
	CompletedAt *string         `json:"completed_at,omitempty"`
}
