package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dir (and parents) if it does not exist yet.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// CanonicalFilename extracts the bare filename from a path that may have
// been produced on another device: POSIX absolute, Windows absolute, or
// already bare. The path is split on both '/' and '\' and the final
// non-empty segment is the canonical name.
//
//	/Users/deviceA/audio/lec1.wav -> lec1.wav
//	C:\Users\X\audio\lec.mp3      -> lec.mp3
//	file.mp3                      -> file.mp3
func CanonicalFilename(remote string) string {
	s := strings.TrimRight(remote, `/\`)
	if i := strings.LastIndexAny(s, `/\`); i >= 0 {
		return s[i+1:]
	}
	return s
}

// LocalizePath rebuilds a remote file reference as a path on this device:
// the canonical filename joined under localDir with this platform's
// separator.
func LocalizePath(remote, localDir string) string {
	return filepath.Join(localDir, CanonicalFilename(remote))
}
