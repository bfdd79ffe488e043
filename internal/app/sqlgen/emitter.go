// Package sqlgen renders extracted roster records as a replayable SQL batch.
package sqlgen

import (
	"fmt"
	"io"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/rostersql/internal/app/models"
	"github.com/yigit/rostersql/internal/pkg/helpers"
)

const (
	DefaultSchema        = "public"
	DefaultClassesTable  = "classes"
	DefaultStudentsTable = "students"
	DefaultHeader        = "SQL generated automatically"
)

var classColumns = []string{
	"id", "owner_id", "name", "series", "letter", "course", "director_email", "active",
	"start_year", "current_year", "start_year_date", "start_calendar_year", "end_calendar_year",
	"archived", "template_id",
}

var studentColumns = []string{
	"id", "owner_id", "class_id", "name", "birth_date", "gender", "status",
	"created_at", "updated_at", "enrollment", "census_id",
}

// Options configures an Emitter
type Options struct {
	Schema        string
	ClassesTable  string
	StudentsTable string
	Header        string             // first comment line, without the leading "--"
	Class         models.ClassRecord // upserted ahead of the students

	// LiteralTimestamps renders each record's CreatedAt/UpdatedAt instead of
	// the database's NOW().
	LiteralTimestamps bool
}

// Emitter builds the SQL batch for one run
type Emitter struct {
	opts Options
	sb   squirrel.StatementBuilderType
}

// NewEmitter creates an Emitter, filling in default table names
func NewEmitter(opts Options) *Emitter {
	if opts.Schema == "" {
		opts.Schema = DefaultSchema
	}
	if opts.ClassesTable == "" {
		opts.ClassesTable = DefaultClassesTable
	}
	if opts.StudentsTable == "" {
		opts.StudentsTable = DefaultStudentsTable
	}
	if opts.Header == "" {
		opts.Header = DefaultHeader
	}
	return &Emitter{
		opts: opts,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Render returns the SQL batch for records: a transaction holding the class
// upsert and, when there is at least one record, a multi-row students insert.
// Rows keep the order of records.
func (e *Emitter) Render(records []models.StudentRecord) (string, error) {
	classSQL, err := e.classUpsert()
	if err != nil {
		return "", err
	}

	statements := []string{
		"-- " + e.opts.Header,
		"BEGIN;",
		"-- Create the class (no-op when it already exists)",
		classSQL + ";",
		"",
		"-- Insert students",
	}

	if len(records) > 0 {
		studentsSQL, err := e.studentsInsert(records)
		if err != nil {
			return "", err
		}
		statements = append(statements, studentsSQL+";")
	}

	statements = append(statements, "COMMIT;")
	return strings.Join(statements, "\n"), nil
}

// Emit writes the rendered batch to w and returns the number of student rows.
func (e *Emitter) Emit(w io.Writer, records []models.StudentRecord) (int, error) {
	out, err := e.Render(records)
	if err != nil {
		return 0, err
	}
	if _, err := io.WriteString(w, out); err != nil {
		return 0, fmt.Errorf("failed to write SQL batch: %w", err)
	}
	return len(records), nil
}

func (e *Emitter) classUpsert() (string, error) {
	c := e.opts.Class

	columns := make([]string, len(classColumns))
	for i, col := range classColumns {
		columns[i] = pgx.Identifier{col}.Sanitize()
	}

	query, args, err := e.sb.Insert(e.table(e.opts.ClassesTable)).
		Columns(columns...).
		Values(
			c.ID, c.OwnerID, c.Name, c.Series, c.Letter, c.Course, c.DirectorEmail, c.Active,
			c.StartYear, c.CurrentYear, c.StartYearDate, c.StartCalendarYear, c.EndCalendarYear,
			c.Archived, c.TemplateID,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build class upsert: %w", err)
	}

	sql, err := inlineArgs(layoutInsert(query), args)
	if err != nil {
		return "", fmt.Errorf("failed to render class upsert: %w", err)
	}
	return sql, nil
}

func (e *Emitter) studentsInsert(records []models.StudentRecord) (string, error) {
	q := e.sb.Insert(e.table(e.opts.StudentsTable)).Columns(studentColumns...)

	for _, r := range records {
		var createdAt, updatedAt any = squirrel.Expr("NOW()"), squirrel.Expr("NOW()")
		if e.opts.LiteralTimestamps {
			createdAt, updatedAt = r.CreatedAt, r.UpdatedAt
		}
		q = q.Values(
			r.ID, r.OwnerID, r.ClassID, r.Name, helpers.FormatSQLDate(r.BirthDate), r.Gender, r.Status,
			createdAt, updatedAt, r.Enrollment, r.CensusID,
		)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build students insert: %w", err)
	}

	sql, err := inlineArgs(layoutInsert(query), args)
	if err != nil {
		return "", fmt.Errorf("failed to render students insert: %w", err)
	}
	return sql, nil
}

func (e *Emitter) table(name string) string {
	return pgx.Identifier{e.opts.Schema, name}.Sanitize()
}
