// Package filex resolves the application's data directories and provides
// the path helpers used by synchronization (existence checks, cross-device
// filename canonicalization, storage accounting).
package filex

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// BundleID names the per-user data directory on every platform.
const BundleID = "com.classnoteai"

// Dirs resolves well-known locations under one application data root:
//
//	{root}/audio      — recorded lecture audio
//	{root}/documents  — lecture PDFs
//	{root}/cache      — disposable scratch data
//	{root}/classnoteai.db — the local database
type Dirs struct {
	root string
}

func NewDirs(root string) Dirs {
	return Dirs{root: root}
}

// DefaultRoot returns the platform's conventional per-user data directory
// joined with BundleID:
//
//	macOS:   ~/Library/Application Support/com.classnoteai
//	Windows: %APPDATA%\com.classnoteai
//	other:   ~/.local/share/com.classnoteai
func DefaultRoot() (string, error) {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, BundleID), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", BundleID), nil
	default:
		return filepath.Join(home, ".local", "share", BundleID), nil
	}
}

func (d Dirs) Root() string         { return d.root }
func (d Dirs) Audio() string        { return filepath.Join(d.root, "audio") }
func (d Dirs) Documents() string    { return filepath.Join(d.root, "documents") }
func (d Dirs) Cache() string        { return filepath.Join(d.root, "cache") }
func (d Dirs) DatabasePath() string { return filepath.Join(d.root, "classnoteai.db") }

// Init creates every directory the app writes into. Safe to call repeatedly.
func (d Dirs) Init() error {
	for _, dir := range []string{d.root, d.Audio(), d.Documents(), d.Cache()} {
		if err := EnsureDir(dir); err != nil {
			return err
		}
	}
	return nil
}

// StorageUsage reports on-disk footprint per area, in bytes.
type StorageUsage struct {
	Total     uint64
	Audio     uint64
	Documents uint64
	Cache     uint64
	Database  uint64
}

// Usage walks the data directories and sums file sizes. Missing directories
// count as zero.
func (d Dirs) Usage() StorageUsage {
	u := StorageUsage{
		Audio:     dirSize(d.Audio()),
		Documents: dirSize(d.Documents()),
		Cache:     dirSize(d.Cache()),
	}
	if fi, err := os.Stat(d.DatabasePath()); err == nil {
		u.Database = uint64(fi.Size())
	}
	u.Total = u.Audio + u.Documents + u.Cache + u.Database
	return u
}

func dirSize(dir string) uint64 {
	var total uint64
	_ = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return nil
		}
		if fi, err := entry.Info(); err == nil {
			total += uint64(fi.Size())
		}
		return nil
	})
	return total
}
