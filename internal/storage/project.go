package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	tempoerrors "github.com/abatilo/tempo/internal/errors"
)

// FindProjectRoot walks up from start to the nearest directory holding a .git
// entry. A .git file counts too, so linked worktrees share their own plan.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		if _, statErr := os.Stat(filepath.Join(dir, ".git")); statErr == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", tempoerrors.NotInRepoError{}
		}
		dir = parent
	}
}

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// SanitizePath converts an absolute path to a plan directory name.
// "/Users/abatilo/website" -> "Users-abatilo-website"
func SanitizePath(path string) string {
	result := unsafePathChars.ReplaceAllString(strings.TrimPrefix(path, "/"), "-")
	return strings.Trim(result, "-")
}
