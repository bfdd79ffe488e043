package filestorage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/yigit/rostersql/internal/pkg/apperrors"
)

func TestWriteFileCreatesParentAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "insert_students.sql")
	ls := NewLocalStorage()

	if err := ls.WriteFile(path, []byte("BEGIN;")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := ls.WriteFile(path, []byte("COMMIT;")); err != nil {
		t.Fatalf("second write: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "COMMIT;" {
		t.Errorf("content = %q, want %q", got, "COMMIT;")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the output file, found %d entries", len(entries))
	}
}

func TestWriteFileIntoDirectoryPathFails(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.sql")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}

	err := NewLocalStorage().WriteFile(target, []byte("x"))
	if err == nil {
		t.Fatal("expected error when output path is a directory")
	}
	if !apperrors.Is(err, apperrors.ErrOutputWrite, apperrors.ErrOutputPermission) {
		t.Errorf("unexpected error kind: %v", err)
	}
	var ce *apperrors.CustomError
	if !errors.As(err, &ce) || ce.Details["path"] != target {
		t.Errorf("expected output path %q in error details, got %v", target, err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temporary file left behind: %d entries", len(entries))
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := NewLocalStorage().Open(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, apperrors.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
	if apperrors.ExitCode(err) != apperrors.ExitInputNotFound {
		t.Errorf("exit code = %d", apperrors.ExitCode(err))
	}

	var ce *apperrors.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *apperrors.CustomError, got %T", err)
	}
	if ce.Code != CodeInputNotFound {
		t.Errorf("Code = %q, want %q", ce.Code, CodeInputNotFound)
	}
	if ce.Details["path"] == nil {
		t.Error("expected path in error details")
	}
}

func TestOpenDirectory(t *testing.T) {
	_, err := NewLocalStorage().Open(t.TempDir())
	if !errors.Is(err, apperrors.ErrInputRead) {
		t.Fatalf("expected ErrInputRead, got %v", err)
	}
}

func TestOpenReadsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students_raw.txt")
	if err := os.WriteFile(path, []byte("1 - ANA SILVA\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rc, err := NewLocalStorage().Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "1 - ANA SILVA\n" {
		t.Errorf("content = %q", data)
	}
}
