package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

func (a *App) task(ctx context.Context, args []string) {
	taskType := args[0]

	var payload json.RawMessage
	if len(args) > 1 {
		raw := strings.Join(args[1:], " ")
		if !json.Valid([]byte(raw)) {
			fmt.Fprintln(a.out, "Payload must be valid JSON")
			return
		}
		payload = json.RawMessage(raw)
	}

	if err := a.engine.CreateTask(ctx, a.config.ServerBaseURL, taskType, payload, nil); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintf(a.out, "Task %q queued\n", taskType)
}

func (a *App) tasks(ctx context.Context) {
	tasks, err := a.engine.GetActiveTasks(ctx, a.config.ServerBaseURL)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No active tasks")
		return
	}
	for _, t := range tasks {
		fmt.Fprintf(a.out, "%s  %-16s %-10s created %s\n", t.ID, t.TaskType, t.Status, t.CreatedAt)
	}
}

func (a *App) purge(ctx context.Context, itemType, itemID string) {
	if !a.requireUsername() {
		return
	}
	if err := a.engine.PurgeItem(ctx, a.config.ServerBaseURL, a.config.Username, itemID, itemType); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintf(a.out, "Purge of %s %s queued\n", itemType, itemID)
}
