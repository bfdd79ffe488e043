package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/yigit/rostersql/internal/app/parser"
	"github.com/yigit/rostersql/internal/app/sqlgen"
	"github.com/yigit/rostersql/internal/pkg/apperrors"
	"github.com/yigit/rostersql/internal/pkg/filestorage"
)

// RosterService defines the roster conversion operations
type RosterService interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
}

// GenerateRequest describes one conversion run
type GenerateRequest struct {
	InputPath  string
	OutputPath string
	// DryRun writes the SQL to Stdout instead of OutputPath
	DryRun bool
	Stdout io.Writer // defaults to os.Stdout
}

// GenerateResult summarizes a finished run
type GenerateResult struct {
	Generated  int // student rows written
	Stats      parser.ExtractStats
	OutputPath string // empty on a dry run
}

// rosterServiceImpl implements the RosterService interface
type rosterServiceImpl struct {
	storage   filestorage.FileStorage
	extractor *parser.Extractor
	emitter   *sqlgen.Emitter
	logger    zerolog.Logger
}

// NewRosterService creates a new roster service instance
func NewRosterService(storage filestorage.FileStorage, extractor *parser.Extractor, emitter *sqlgen.Emitter, lgr zerolog.Logger) RosterService {
	return &rosterServiceImpl{
		storage:   storage,
		extractor: extractor,
		emitter:   emitter,
		logger:    lgr,
	}
}

// Generate reads the roster at req.InputPath, rebuilds its student records
// and writes them as a SQL batch. Input failures abort before any output is
// touched; output is replaced atomically.
func (s *rosterServiceImpl) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := s.readLines(req.InputPath)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("input", req.InputPath).Int("lines", len(lines)).Msg("Roster loaded")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, stats := s.extractor.Extract(lines)
	if stats.Dropped > 0 {
		s.logger.Warn().Int("dropped", stats.Dropped).Msg("Some name lines had no valid birth date and were skipped")
	}

	var buf bytes.Buffer
	generated, err := s.emitter.Emit(&buf, records)
	if err != nil {
		return nil, fmt.Errorf("failed to generate SQL: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &GenerateResult{Generated: generated, Stats: stats}

	if req.DryRun {
		out := req.Stdout
		if out == nil {
			out = os.Stdout
		}
		if _, err := buf.WriteTo(out); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrOutputWrite, err)
		}
		s.logger.Info().Int("students", generated).Msg("Dry run finished")
		return result, nil
	}

	if err := s.storage.WriteFile(req.OutputPath, buf.Bytes()); err != nil {
		return nil, err
	}
	result.OutputPath = req.OutputPath

	s.logger.Info().
		Int("students", generated).
		Int("nameLines", stats.NameLines).
		Str("output", req.OutputPath).
		Msg("SQL batch written")
	return result, nil
}

func (s *rosterServiceImpl) readLines(path string) ([]string, error) {
	rc, err := s.storage.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	lines, err := parser.ReadSource(rc, parser.DetectFormat(path))
	if err != nil {
		s.logger.Error().Err(err).Str("input", path).Msg("Failed to read roster")
		return nil, fmt.Errorf("%s: %w: %v", path, apperrors.ErrInputRead, err)
	}
	return lines, nil
}
