// Package pathutil resolves the game and settings paths users write by hand.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// percentVar matches Windows style %VAR% references.
var percentVar = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`)

// Expand resolves a leading ~, $VAR, ${VAR} and %VAR% references, then makes
// the path absolute. Unset %VAR% references are left as written.
func Expand(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		path = home + path[1:]
	}

	path = percentVar.ReplaceAllStringFunc(path, func(ref string) string {
		if value, ok := os.LookupEnv(ref[1 : len(ref)-1]); ok {
			return value
		}
		return ref
	})
	return filepath.Abs(os.ExpandEnv(path))
}

// canonical resolves symlinks where the path exists and folds case on
// platforms whose filesystems ignore it.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		abs = strings.ToLower(abs)
	}
	return abs, nil
}

// SamePath reports whether a and b name the same location.
func SamePath(a, b string) bool {
	ca, err := canonical(a)
	if err != nil {
		return false
	}
	cb, err := canonical(b)
	if err != nil {
		return false
	}
	return ca == cb
}

// FindFold joins elems onto dir, matching each element against the directory
// entries without regard to case. The returned path carries the on-disk case;
// ok is false when any element is missing.
func FindFold(dir string, elems ...string) (string, bool) {
	result := dir
	for _, elem := range elems {
		if _, err := os.Stat(filepath.Join(result, elem)); err == nil {
			result = filepath.Join(result, elem)
			continue
		}

		entries, err := os.ReadDir(result)
		if err != nil {
			return "", false
		}
		match := ""
		for _, entry := range entries {
			if strings.EqualFold(entry.Name(), elem) {
				match = entry.Name()
				break
			}
		}
		if match == "" {
			return "", false
		}
		result = filepath.Join(result, match)
	}
	return result, true
}
