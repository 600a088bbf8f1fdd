// Package config resolves allot's settings: budget defaults, the database
// location and user-supplied file paths.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a user-supplied path for the database, statements and
// snapshots. A leading ~ becomes the home directory and $VAR references are
// replaced from the environment. If the home directory is unknown the ~ is
// kept.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
