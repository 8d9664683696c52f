// Package archive moves the chat history database or the speech cache out
// of the way so the next run starts fresh.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Rotate moves path (a file or a directory) to <dir>/archive/<name>-<timestamp><ext>
// and returns the new location. SQLite side files (-wal, -shm, -journal)
// move along with a database file.
func Rotate(path string, out io.Writer) (string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%s does not exist", path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}

	archiveDir := filepath.Join(filepath.Dir(path), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	base := filepath.Base(path)
	ext := ""
	if !info.IsDir() {
		ext = filepath.Ext(base)
	}
	name := strings.TrimSuffix(base, ext)

	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", name, time.Now().Format("20060102-150405"), ext))
	if _, err := os.Stat(archivePath); err == nil {
		// Add microseconds to make it unique
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", name, time.Now().Format("20060102-150405.000000"), ext))
	}

	if err := os.Rename(path, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", path, err)
	}

	if !info.IsDir() {
		for _, suffix := range []string{"-wal", "-shm", "-journal"} {
			side := path + suffix
			if _, err := os.Stat(side); err == nil {
				if err := os.Rename(side, archivePath+suffix); err != nil {
					return archivePath, fmt.Errorf("failed to archive %s: %w", side, err)
				}
			}
		}
	}

	fmt.Fprintf(out, "Archived %s to: %s\n", base, archivePath)
	return archivePath, nil
}
