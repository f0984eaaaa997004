package replay

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Discovery errors.
var (
	ErrReplayNotFound = errors.New("replay file not found")
	ErrNoReplays      = errors.New("no replays found")
	ErrNoReplayDir    = errors.New("replay directory is not configured")
)

// File is a replay file found in a replay directory.
type File struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// ListReplays returns the regular files in dir, newest first.
// Modification time stands in for creation time, which is not portable.
func ListReplays(dir string) ([]File, error) {
	if dir == "" {
		return nil, ErrNoReplayDir
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read replay dir: %w", err)
	}

	files := make([]File, 0, len(entries))

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		info, infoErr := entry.Info()
		if infoErr != nil {
			continue
		}

		files = append(files, File{
			Path:    filepath.Join(dir, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})

	return files, nil
}

// FindLastReplay returns the newest replay in dir.
func FindLastReplay(dir string) (string, error) {
	files, err := ListReplays(dir)
	if err != nil {
		return "", err
	}

	if len(files) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoReplays, dir)
	}

	return files[0].Path, nil
}

// ResolvePath picks the replay to analyze. An empty name selects the newest
// replay in dir; otherwise name is used as given, falling back to a path
// relative to dir.
func ResolvePath(name, dir string) (string, error) {
	if name == "" {
		return FindLastReplay(dir)
	}

	if isRegularFile(name) {
		return name, nil
	}

	if dir != "" {
		candidate := filepath.Join(dir, name)
		if isRegularFile(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrReplayNotFound, name)
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}
