package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/classnote/internal/filex"
)

// upload and download talk to the server directly; unlike queued actions
// they report their result to the user right away.

func (a *App) upload(ctx context.Context, path string) {
	name, err := a.engine.UploadFile(ctx, a.config.ServerBaseURL, path)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintf(a.out, "Uploaded as %q\n", name)
}

func (a *App) download(ctx context.Context, args []string) {
	name := args[0]
	dest := filepath.Join(a.dirs.Cache(), filex.CanonicalFilename(name))
	if len(args) > 1 {
		dest = args[1]
	}

	if err := a.engine.DownloadFile(ctx, a.config.ServerBaseURL, name, dest); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintf(a.out, "Saved to %s\n", dest)
}

func (a *App) usage(ctx context.Context) {
	u := a.dirs.Usage()
	fmt.Fprintf(a.out, "Audio:     %s\n", formatBytes(u.Audio))
	fmt.Fprintf(a.out, "Documents: %s\n", formatBytes(u.Documents))
	fmt.Fprintf(a.out, "Cache:     %s\n", formatBytes(u.Cache))
	fmt.Fprintf(a.out, "Database:  %s\n", formatBytes(u.Database))
	fmt.Fprintf(a.out, "Total:     %s\n", formatBytes(u.Total))

	actions, err := a.queue.ListActions(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintf(a.out, "Queued actions: %d\n", len(actions))
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
