package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func NormalizeRepoPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", ErrRepoPathRequired
	}

	expanded, err := ExpandHome(path)
	if err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve repo path: %w", err)
	}

	return absPath, nil
}

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
