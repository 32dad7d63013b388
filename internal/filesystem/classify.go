package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// IsFilePath reports whether path names a file.
//
//	IsFilePath("README.md") // true
//	IsFilePath("src/")      // false
//	IsFilePath("src")       // false
//	IsFilePath("name.")     // false
func IsFilePath(path string) bool {
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(os.PathSeparator)) {
		return false
	}
	base := filepath.Base(path)
	dot := strings.LastIndexByte(base, '.')
	return dot >= 0 && dot < len(base)-1
}

// IsDirPath is the complement of IsFilePath.
func IsDirPath(path string) bool {
	return !IsFilePath(path)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
