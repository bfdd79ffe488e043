package filestorage

import "io"

// FileStorage defines the file operations a generation run needs
type FileStorage interface {
	// Open opens a source file for reading
	Open(path string) (io.ReadCloser, error)

	// WriteFile replaces path with data so that readers never observe a
	// partially written file
	WriteFile(path string, data []byte) error
}
