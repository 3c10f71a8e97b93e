// Package filex contains the local file helpers used by the CLI when
// reading files to upload and writing downloaded forks.
package filex

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// EnsureSubdDir creates dirName under the current working directory if it
// does not exist and returns its absolute path.
func EnsureSubdDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// SaveInSubdDir writes data to dirName/name under the working directory.
// Only the base of name is used, so a stored name cannot escape the
// directory.
func SaveInSubdDir(dirName, name string, data []byte) (string, error) {
	dir, err := EnsureSubdDir(dirName)
	if err != nil {
		return "", err
	}

	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	path := filepath.Join(dir, base)
	if err := os.WriteFile(path, data, 0o660); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// DetectContentType picks a MIME type from the file extension, falling
// back to content sniffing.
func DetectContentType(name string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		return t
	}
	return http.DetectContentType(data)
}
