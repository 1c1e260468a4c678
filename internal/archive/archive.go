// Package archive reads member entries out of a compressed container.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoMatchingEntries indicates a container with zero members matching
// a required extension.
var ErrNoMatchingEntries = errors.New("archive contains no matching entries")

// Reader iterates the members of a zip container. Each member stream is
// opened, consumed and closed before the next; the container is never
// fully buffered in memory.
type Reader struct {
	rc   *zip.ReadCloser
	path string
}

// Open opens the container at path.
func Open(path string) (*Reader, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}

	return &Reader{rc: rc, path: path}, nil
}

// Close releases the underlying container.
func (r *Reader) Close() error {
	return r.rc.Close()
}

// Path returns the container location this reader was opened on.
func (r *Reader) Path() string {
	return r.path
}

// Entries returns the member names whose name ends with ext,
// compared case-insensitively, in container order.
func (r *Reader) Entries(ext string) []string {
	ext = strings.ToLower(ext)

	var names []string

	for _, f := range r.rc.File {
		if strings.HasSuffix(strings.ToLower(f.Name), ext) {
			names = append(names, f.Name)
		}
	}

	return names
}

// ForEach invokes fn with a byte stream for every member matching ext,
// one at a time. Returns the first error from opening a member or from
// fn itself. Matching zero members is not an error here; callers that
// require at least one should check Entries and surface
// ErrNoMatchingEntries.
func (r *Reader) ForEach(ext string, fn func(name string, rd io.Reader) error) error {
	ext = strings.ToLower(ext)

	for _, f := range r.rc.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ext) {
			continue
		}

		rd, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open archive member %s: %w", f.Name, err)
		}

		err = fn(f.Name, rd)

		if closeErr := rd.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close archive member %s: %w", f.Name, closeErr)
		}

		if err != nil {
			return err
		}
	}

	return nil
}
