package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/rostersql/internal/app/models"
	"github.com/yigit/rostersql/internal/app/parser"
	"github.com/yigit/rostersql/internal/app/sqlgen"
	"github.com/yigit/rostersql/internal/pkg/apperrors"
	"github.com/yigit/rostersql/internal/pkg/filestorage"
)

var (
	testOwnerID = uuid.MustParse("211dfeb8-7476-4361-92b3-e9e7aa0a7808")
	testClassID = uuid.MustParse("f17d4ae4-8861-42c8-8380-76533dae9c32")
)

const sampleRoster = `
12345678
123456789012
1 - ANA SILVA
01/01/2012
F

7654321
2 - JOÃO D'ANGELO
15/07/2011
M

3 - CARLA DIAS
31/02/2010
F
`

// memStorage keeps files in memory
type memStorage struct {
	files    map[string][]byte
	writeErr error
}

func (m *memStorage) Open(path string) (io.ReadCloser, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, apperrors.ErrInputNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStorage) WriteFile(path string, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func newTestService(storage filestorage.FileStorage) RosterService {
	var n byte
	extractor := parser.NewExtractor(parser.Options{
		OwnerID: testOwnerID,
		ClassID: testClassID,
		NewID: func() uuid.UUID {
			n++
			var id uuid.UUID
			id[15] = n
			return id
		},
		Now: func() time.Time { return time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC) },
	}, zerolog.Nop())
	emitter := sqlgen.NewEmitter(sqlgen.Options{
		Class: models.ClassRecord{ID: testClassID, OwnerID: testOwnerID, Name: "Turma C", Active: true},
	})
	return NewRosterService(storage, extractor, emitter, zerolog.Nop())
}

func TestGenerateWritesOutput(t *testing.T) {
	storage := &memStorage{files: map[string][]byte{"roster.txt": []byte(sampleRoster)}}

	result, err := newTestService(storage).Generate(context.Background(), GenerateRequest{
		InputPath:  "roster.txt",
		OutputPath: "out.sql",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Generated != 2 {
		t.Errorf("Generated = %d, want 2", result.Generated)
	}
	if result.Stats.Dropped != 1 || result.Stats.NameLines != 3 {
		t.Errorf("unexpected stats %+v", result.Stats)
	}
	if result.OutputPath != "out.sql" {
		t.Errorf("OutputPath = %q", result.OutputPath)
	}

	sql := string(storage.files["out.sql"])
	for _, want := range []string{
		"BEGIN;",
		"'ANA SILVA', '2012-01-01', 'F', 'active', NOW(), NOW(), '12345678', '123456789012')",
		"'JOÃO D''ANGELO', '2011-07-15', 'M', 'active', NOW(), NOW(), '7654321', NULL);",
		"COMMIT;",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("expected %q in output:\n%s", want, sql)
		}
	}
	if strings.Contains(sql, "CARLA DIAS") {
		t.Error("record with invalid date must be dropped")
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	storage := &memStorage{files: map[string][]byte{"roster.txt": []byte("\n\n  \n")}}

	result, err := newTestService(storage).Generate(context.Background(), GenerateRequest{
		InputPath:  "roster.txt",
		OutputPath: "out.sql",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Generated != 0 {
		t.Errorf("Generated = %d", result.Generated)
	}
	sql := string(storage.files["out.sql"])
	if !strings.Contains(sql, `INSERT INTO "public"."classes"`) || strings.Contains(sql, `"public"."students"`) {
		t.Errorf("unexpected output for empty roster:\n%s", sql)
	}
}

func TestGenerateDryRun(t *testing.T) {
	storage := &memStorage{files: map[string][]byte{"roster.txt": []byte(sampleRoster)}}
	var stdout bytes.Buffer

	result, err := newTestService(storage).Generate(context.Background(), GenerateRequest{
		InputPath:  "roster.txt",
		OutputPath: "out.sql",
		DryRun:     true,
		Stdout:     &stdout,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, written := storage.files["out.sql"]; written {
		t.Error("dry run must not write the output file")
	}
	if result.OutputPath != "" {
		t.Errorf("OutputPath = %q", result.OutputPath)
	}
	if !strings.HasSuffix(stdout.String(), "COMMIT;") {
		t.Errorf("unexpected dry run output:\n%s", stdout.String())
	}
}

func TestGenerateMissingInput(t *testing.T) {
	storage := &memStorage{files: map[string][]byte{}}
	_, err := newTestService(storage).Generate(context.Background(), GenerateRequest{InputPath: "nope.txt", OutputPath: "out.sql"})
	if !errors.Is(err, apperrors.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
	if len(storage.files) != 0 {
		t.Error("no output may be produced when input is missing")
	}
}

func TestGenerateOutputFailure(t *testing.T) {
	storage := &memStorage{
		files:    map[string][]byte{"roster.txt": []byte(sampleRoster)},
		writeErr: apperrors.ErrOutputPermission,
	}
	_, err := newTestService(storage).Generate(context.Background(), GenerateRequest{InputPath: "roster.txt", OutputPath: "out.sql"})
	if apperrors.ExitCode(err) != apperrors.ExitPermission {
		t.Fatalf("expected permission exit code, got %v", err)
	}
}

func TestGenerateCancelled(t *testing.T) {
	storage := &memStorage{files: map[string][]byte{"roster.txt": []byte(sampleRoster)}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestService(storage).Generate(ctx, GenerateRequest{InputPath: "roster.txt", OutputPath: "out.sql"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGenerateWithLocalStorage(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "students_raw.txt")
	out := filepath.Join(dir, "sql", "insert_students.sql")
	if err := os.WriteFile(in, []byte(sampleRoster), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := newTestService(filestorage.NewLocalStorage()).Generate(context.Background(), GenerateRequest{
		InputPath:  in,
		OutputPath: out,
	})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if result.Generated != 2 || !strings.HasPrefix(string(data), "-- SQL generated automatically\nBEGIN;") {
		t.Errorf("unexpected result %d / %s", result.Generated, data)
	}
}
