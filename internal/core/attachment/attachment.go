// Package attachment turns a path on disk into a file selection the form can
// check. The MIME type is sniffed from content, never taken from the name.
package attachment

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/colonyops/regform/internal/core/registration"
)

// ErrIsDirectory is returned when the path names a directory.
var ErrIsDirectory = errors.New("path is a directory")

// Load reads the file at path and describes it for the file checker.
func Load(path string) (registration.FileSelection, error) {
	path = ExpandPath(path)

	info, err := os.Stat(path)
	if err != nil {
		return registration.FileSelection{}, fmt.Errorf("stat attachment: %w", err)
	}
	if info.IsDir() {
		return registration.FileSelection{}, fmt.Errorf("load attachment %s: %w", path, ErrIsDirectory)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return registration.FileSelection{}, fmt.Errorf("read attachment: %w", err)
	}

	return registration.FileSelection{
		Name:     filepath.Base(path),
		MimeType: mediaType(mimetype.Detect(data).String()),
		Size:     int64(len(data)),
		Content:  data,
	}, nil
}

// mediaType strips parameters such as "; charset=utf-8".
func mediaType(s string) string {
	mt, _, err := mime.ParseMediaType(s)
	if err != nil {
		return s
	}
	return mt
}

// ExpandPath normalises a path as typed or dropped into a terminal: it trims
// whitespace and surrounding quotes, unescapes spaces and expands a leading ~.
func ExpandPath(path string) string {
	path = strings.TrimSpace(path)
	if len(path) >= 2 {
		if (path[0] == '\'' && path[len(path)-1] == '\'') || (path[0] == '"' && path[len(path)-1] == '"') {
			path = path[1 : len(path)-1]
		}
	}
	path = strings.ReplaceAll(path, `\ `, " ")

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// Describe renders a one-line summary such as "abstract.pdf (1.2 MB, application/pdf)".
func Describe(f registration.FileSelection) string {
	return fmt.Sprintf("%s (%s, %s)", f.Name, humanize.Bytes(uint64(max(f.Size, 0))), f.MimeType)
}
