// Package api talks to the ClassNote sync server over its REST/JSON
// surface. Every method takes the server base URL per call because queued
// action payloads carry their target server with them.
package api

import (
	"context"

	"github.com/dmitrijs2005/classnote/internal/models"
)

type Client interface {
	Ping(ctx context.Context, baseURL string) error

	PushData(ctx context.Context, baseURL string, req *models.PushRequest) error
	PullData(ctx context.Context, baseURL string, username string) (*models.PullResponse, error)

	UploadFile(ctx context.Context, baseURL string, localPath string) (string, error)
	DownloadFile(ctx context.Context, baseURL string, remoteName string, localPath string) error

	RegisterDevice(ctx context.Context, baseURL string, reg *models.DeviceRegistration) error
	DeleteDevice(ctx context.Context, baseURL string, deviceID string) error
	GetDevices(ctx context.Context, baseURL string, username string) ([]models.Device, error)

	RegisterUser(ctx context.Context, baseURL string, username string) (*models.AuthResponse, error)
	Login(ctx context.Context, baseURL string, username string) (*models.AuthResponse, error)

	CreateTask(ctx context.Context, baseURL string, req *models.TaskRequest) (*models.Task, error)
	GetTask(ctx context.Context, baseURL string, taskID string) (*models.Task, error)
	GetActiveTasks(ctx context.Context, baseURL string) ([]models.Task, error)

	PurgeItem(ctx context.Context, baseURL string, req *models.PurgeRequest) error
}
