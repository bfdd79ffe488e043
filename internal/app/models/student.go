package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// StudentStatusActive is the status every imported student starts with
const StudentStatusActive = "active"

// StudentRecord is one student reconstructed from a roster export, shaped
// after the 'students' table it is inserted into
type StudentRecord struct {
	ID         uuid.UUID      `db:"id"`         // Generated per record
	OwnerID    uuid.UUID      `db:"owner_id"`   // Account that owns the class
	ClassID    uuid.UUID      `db:"class_id"`   // Class the student is enrolled in
	Name       string         `db:"name"`       // Raw name text, unescaped
	BirthDate  time.Time      `db:"birth_date"` // Date only
	Gender     sql.NullString `db:"gender"`     // Invalid when the export had no gender line
	Enrollment sql.NullString `db:"enrollment"`
	CensusID   sql.NullString `db:"census_id"`
	Status     string         `db:"status"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}
