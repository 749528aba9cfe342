package cli

import (
	"context"
	"fmt"
)

func (a *App) status(ctx context.Context) {
	mode := "offline"
	if a.watcher.Online() {
		mode = "online"
	}
	fmt.Fprintf(a.out, "Server:   %s (%s)\n", a.config.ServerBaseURL, mode)
	fmt.Fprintf(a.out, "Username: %s\n", a.config.Username)

	actions, err := a.queue.ListActions(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintf(a.out, "Queued actions: %d\n", len(actions))
}

func (a *App) syncAll(ctx context.Context) {
	if !a.requireUsername() {
		return
	}
	if err := a.engine.Sync(ctx, a.config.ServerBaseURL, a.config.Username); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintln(a.out, "Sync queued (push, then pull)")
}

func (a *App) push(ctx context.Context, args []string) {
	if !a.requireUsername() {
		return
	}
	skipFiles := len(args) > 0 && args[0] == "nofiles"
	if err := a.engine.PushData(ctx, a.config.ServerBaseURL, a.config.Username, skipFiles); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintln(a.out, "Push queued")
}

func (a *App) pull(ctx context.Context) {
	if !a.requireUsername() {
		return
	}
	if err := a.engine.PullData(ctx, a.config.ServerBaseURL, a.config.Username); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintln(a.out, "Pull queued")
}

func (a *App) queueList(ctx context.Context) {
	actions, err := a.queue.ListActions(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	if len(actions) == 0 {
		fmt.Fprintln(a.out, "Queue is empty")
		return
	}
	for _, act := range actions {
		id := act.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(a.out, "%s  %-16s %-10s retries=%d  %s\n",
			id, string(act.Type), string(act.Status), act.RetryCount, act.CreatedAt)
	}
}
