// Package parser rebuilds student records from line-oriented roster exports.
package parser

import (
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/rostersql/internal/app/models"
	"github.com/yigit/rostersql/internal/pkg/apperrors"
	"github.com/yigit/rostersql/internal/pkg/helpers"
)

// RecordStride is how far the cursor moves after a name line: the name line,
// the birth date line and the gender line. It is applied even when the gender
// line is missing, in which case the line after the record is skipped too.
const RecordStride = 3

// Separators include Unicode spaces such as U+00A0, which PDF and HTML
// exports put between the index, the dash and the name.
var nameLinePattern = regexp.MustCompile(`^[\s\p{Z}]*(\p{Nd}+)[\s\p{Z}]+-[\s\p{Z}]+(.+)$`)

// IDGenerator returns a fresh record identifier
type IDGenerator func() uuid.UUID

// Clock returns the current time
type Clock func() time.Time

// Options configures an Extractor
type Options struct {
	OwnerID uuid.UUID
	ClassID uuid.UUID
	NewID   IDGenerator // defaults to uuid.New
	Now     Clock       // defaults to time.Now
}

// ExtractStats summarizes one scan
type ExtractStats struct {
	Lines     int // lines scanned
	NameLines int // name lines matched
	Records   int // records produced
	Dropped   int // name lines dropped for a missing or invalid birth date
}

// Extractor scans roster lines and produces student records
type Extractor struct {
	opts   Options
	logger zerolog.Logger
}

// NewExtractor creates an Extractor, filling in default generators
func NewExtractor(opts Options, lgr zerolog.Logger) *Extractor {
	if opts.NewID == nil {
		opts.NewID = uuid.New
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Extractor{opts: opts, logger: lgr}
}

// NameLine reports whether line anchors a record and returns its index and name
func NameLine(line string) (index string, name string, ok bool) {
	m := nameLinePattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// Extract runs a single forward scan over lines. Lines are expected to be
// trimmed and non-blank. Records come back in scan order.
func (e *Extractor) Extract(lines []string) ([]models.StudentRecord, ExtractStats) {
	stats := ExtractStats{Lines: len(lines)}
	var records []models.StudentRecord

	i := 0
	for i < len(lines) {
		_, name, ok := NameLine(lines[i])
		if !ok {
			i++
			continue
		}
		stats.NameLines++

		birthDate, err := e.birthDate(lines, i)
		if err != nil {
			stats.Dropped++
			e.logger.Debug().Err(err).Int("index", i).Str("name", name).Msg("Dropping record")
			i += RecordStride
			continue
		}

		ids := ClassifyIdentifiers(peek(lines, i-2), peek(lines, i-1))

		var gender sql.NullString
		if i+2 < len(lines) {
			gender = helpers.GetContentNullString(lines[i+2])
		}

		now := e.opts.Now()
		records = append(records, models.StudentRecord{
			ID:         e.opts.NewID(),
			OwnerID:    e.opts.OwnerID,
			ClassID:    e.opts.ClassID,
			Name:       name,
			BirthDate:  birthDate,
			Gender:     gender,
			Enrollment: ids.EnrollmentValue(),
			CensusID:   ids.CensusValue(),
			Status:     models.StudentStatusActive,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		e.logger.Debug().Int("index", i).Str("name", name).Stringer("identifiers", ids.Kind).Msg("Record extracted")

		i += RecordStride
	}

	stats.Records = len(records)
	return records, stats
}

func (e *Extractor) birthDate(lines []string, i int) (time.Time, error) {
	if i+1 >= len(lines) {
		return time.Time{}, apperrors.ErrMissingBirthDate
	}
	d, err := helpers.ParseDayMonthYear(lines[i+1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", apperrors.ErrInvalidBirthDate, lines[i+1], err)
	}
	return d, nil
}

// peek returns lines[i] or "" when i is out of range
func peek(lines []string, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}
