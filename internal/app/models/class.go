package models

import "github.com/google/uuid"

// ClassRecord is the fixed class row every imported student belongs to,
// shaped after the 'classes' table
type ClassRecord struct {
	ID                uuid.UUID     `db:"id"`
	OwnerID           uuid.UUID     `db:"owner_id"`
	Name              string        `db:"name"`
	Series            string        `db:"series"`
	Letter            string        `db:"letter"`
	Course            string        `db:"course"`
	DirectorEmail     string        `db:"director_email"`
	Active            bool          `db:"active"`
	StartYear         int           `db:"start_year"`
	CurrentYear       int           `db:"current_year"`
	StartYearDate     string        `db:"start_year_date"` // YYYY-MM-DD
	StartCalendarYear int           `db:"start_calendar_year"`
	EndCalendarYear   int           `db:"end_calendar_year"`
	Archived          bool          `db:"archived"`
	TemplateID        uuid.NullUUID `db:"template_id"`
}
