package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/classnote/internal/api"
	"github.com/dmitrijs2005/classnote/internal/config"
	"github.com/dmitrijs2005/classnote/internal/connectivity"
	"github.com/dmitrijs2005/classnote/internal/filex"
	"github.com/dmitrijs2005/classnote/internal/logging"
	"github.com/dmitrijs2005/classnote/internal/models"
	"github.com/dmitrijs2005/classnote/internal/queue"
	"github.com/dmitrijs2005/classnote/internal/repositories"
	"github.com/dmitrijs2005/classnote/internal/repositories/entities"
	"github.com/dmitrijs2005/classnote/internal/sync"

	_ "modernc.org/sqlite"
)

// syncEngine is the command surface the REPL drives. *sync.Engine satisfies
// it; tests provide a recording stub.
type syncEngine interface {
	PushData(ctx context.Context, baseURL, username string, skipFiles bool) error
	PullData(ctx context.Context, baseURL, username string) error
	Sync(ctx context.Context, baseURL, username string) error
	RegisterDevice(ctx context.Context, baseURL string, device models.DeviceRegistration) error
	DeleteDevice(ctx context.Context, baseURL, deviceID string) error
	RegisterAccount(ctx context.Context, baseURL, username string) error
	CreateTask(ctx context.Context, baseURL, taskType string, payload json.RawMessage, priority *int) error
	PurgeItem(ctx context.Context, baseURL, username, itemID, itemType string) error
	GetDevices(ctx context.Context, baseURL, username string) ([]models.Device, error)
	UploadFile(ctx context.Context, baseURL, localPath string) (string, error)
	DownloadFile(ctx context.Context, baseURL, remoteName, localPath string) error
	Login(ctx context.Context, baseURL, username string) (*models.AuthResponse, error)
	GetActiveTasks(ctx context.Context, baseURL string) ([]models.Task, error)
}

type actionQueue interface {
	Init(ctx context.Context) error
	ListActions(ctx context.Context) ([]models.PendingAction, error)
	Subscribe(ctx context.Context, fn queue.Subscriber) func()
}

type statusWatcher interface {
	Online() bool
	Check(ctx context.Context) bool
	Run(ctx context.Context)
}

type App struct {
	config  *config.Config
	engine  syncEngine
	queue   actionQueue
	watcher statusWatcher
	store   entities.Repository
	dirs    filex.Dirs
	in      io.Reader
	out     io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.NewSlogLogger(slog.Default())

	dirs := filex.NewDirs(c.DataDir)
	if err := dirs.Init(); err != nil {
		log.Printf("error initializing data directories: %s", err.Error())
		return nil, err
	}

	repos, err := repositories.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.RequestTimeout)

	var watcher *connectivity.Watcher
	q := queue.New(repos.Actions, func() bool {
		if watcher == nil {
			return false
		}
		return watcher.Online()
	}, logger)

	watcher = connectivity.NewWatcher(apiClient, c.ServerBaseURL, c.OnlineCheckInterval, func(online bool) {
		if online {
			q.Kick()
		}
	}, logger)

	engine := sync.New(q, apiClient, repos.Entities, dirs, c.SettingsAllowList, logger)
	engine.RegisterProcessors()

	return &App{
		config:  c,
		engine:  engine,
		queue:   q,
		watcher: watcher,
		store:   repos.Entities,
		dirs:    dirs,
		in:      os.Stdin,
		out:     os.Stdout,
	}, nil
}

// Run recovers the queue, starts the connectivity watcher and blocks in the
// read loop until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	if err := a.queue.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize action queue: %w", err)
	}

	unsubscribe := a.queue.Subscribe(ctx, func(count int) {
		log.Printf("pending actions: %d\n", count)
	})
	defer unsubscribe()

	a.watcher.Check(ctx)
	go a.watcher.Run(ctx)

	a.Root(ctx)
	return nil
}

func (a *App) getStatus() string {
	s := ""
	if a.config.Username != "" {
		s = a.config.Username + " "
	}
	if a.watcher.Online() {
		s += "online"
	} else {
		s += "offline"
	}
	return fmt.Sprintf("(%s)", s)
}

// deviceID returns this installation's stable identifier. It prefers the
// configured value, then the locally stored one, and mints a new id on first
// use. The backing setting key is not allow-listed, so it never syncs.
func (a *App) deviceID(ctx context.Context) (string, error) {
	if a.config.DeviceID != "" {
		return a.config.DeviceID, nil
	}

	settings, err := a.store.ListSettings(ctx)
	if err != nil {
		return "", err
	}
	for _, s := range settings {
		if s.Key == "device_id" {
			return s.Value, nil
		}
	}

	id := uuid.NewString()
	err = a.store.SaveSetting(ctx, &models.Setting{
		Key:       "device_id",
		Value:     id,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (a *App) requireUsername() bool {
	if a.config.Username == "" {
		fmt.Fprintln(a.out, "No username configured. Set one with -u or in the config file.")
		return false
	}
	return true
}
