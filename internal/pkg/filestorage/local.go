package filestorage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/yigit/rostersql/internal/pkg/apperrors"
	"github.com/yigit/rostersql/internal/pkg/logger"
)

// Error codes attached to the errors LocalStorage returns
const (
	CodeInputNotFound    = "INPUT_NOT_FOUND"
	CodeInputPermission  = "INPUT_PERMISSION"
	CodeInputRead        = "INPUT_READ"
	CodeOutputPermission = "OUTPUT_PERMISSION"
	CodeOutputWrite      = "OUTPUT_WRITE"
)

// LocalStorage reads and writes files on the local filesystem.
type LocalStorage struct {
	fileMode os.FileMode // Permissions applied to written files
}

// NewLocalStorage creates a new LocalStorage instance.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{fileMode: 0o644}
}

// Open opens path for reading. Missing and unreadable files map onto the
// input error taxonomy so callers can pick an exit code.
func (ls *LocalStorage) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to open input file")
		return nil, classifyInputError(path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, classifyInputError(path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, apperrors.NewCustomError(apperrors.ErrInputRead, "input path is a directory").
			WithCode(CodeInputRead).
			WithDetails(map[string]interface{}{"path": path})
	}
	return f, nil
}

// WriteFile writes data to a temporary file next to path and renames it into
// place once the content is flushed. On failure the temporary file is removed
// and any existing file at path is left untouched.
func (ls *LocalStorage) WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create output directory")
		return classifyOutputError(dir, err)
	}

	tmpPath := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.New().String()+".tmp")
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, ls.fileMode)
	if err != nil {
		logger.Error().Err(err).Str("path", tmpPath).Msg("Failed to create temporary output file")
		return classifyOutputError(path, err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		logger.Error().Err(err).Str("path", tmpPath).Msg("Failed to write output content")
		return classifyOutputError(path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return classifyOutputError(path, err)
	}
	if err := tmp.Close(); err != nil {
		return classifyOutputError(path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		logger.Error().Err(err).Str("from", tmpPath).Str("to", path).Msg("Failed to move output into place")
		return classifyOutputError(path, err)
	}
	committed = true

	logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("Output file written")
	return nil
}

func classifyInputError(path string, err error) error {
	details := map[string]interface{}{"path": path}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return apperrors.NewCustomError(apperrors.ErrInputNotFound, "input file not found").
			WithCode(CodeInputNotFound).
			WithDetails(details)
	case errors.Is(err, fs.ErrPermission):
		return apperrors.NewCustomError(apperrors.ErrInputPermission, "input file permission denied").
			WithCode(CodeInputPermission).
			WithDetails(details)
	default:
		return apperrors.NewCustomError(apperrors.ErrInputRead, fmt.Sprintf("failed to read input: %v", err)).
			WithCode(CodeInputRead).
			WithDetails(details)
	}
}

func classifyOutputError(path string, err error) error {
	details := map[string]interface{}{"path": path}
	if errors.Is(err, fs.ErrPermission) {
		return apperrors.NewCustomError(apperrors.ErrOutputPermission, "output file permission denied").
			WithCode(CodeOutputPermission).
			WithDetails(details)
	}
	return apperrors.NewCustomError(apperrors.ErrOutputWrite, fmt.Sprintf("failed to write output: %v", err)).
		WithCode(CodeOutputWrite).
		WithDetails(details)
}
