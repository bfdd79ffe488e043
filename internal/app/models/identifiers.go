package models

import (
	"database/sql"

	"github.com/yigit/rostersql/internal/pkg/helpers"
)

// IdentifierKind tags which optional identifiers were recovered for a record
type IdentifierKind int

const (
	IdentifiersNone IdentifierKind = iota
	IdentifiersEnrollmentOnly
	IdentifiersCensusOnly
	IdentifiersEnrollmentAndCensus
)

// String returns a short label used in logs
func (k IdentifierKind) String() string {
	switch k {
	case IdentifiersEnrollmentOnly:
		return "enrollment"
	case IdentifiersCensusOnly:
		return "census"
	case IdentifiersEnrollmentAndCensus:
		return "enrollment+census"
	default:
		return "none"
	}
}

// Identifiers holds the optional enrollment number and census identifier
// recovered from the lines preceding a name line. Only the fields implied by
// Kind are meaningful.
type Identifiers struct {
	Kind       IdentifierKind
	Enrollment string
	Census     string
}

// NoIdentifiers is the zero variant
func NoIdentifiers() Identifiers {
	return Identifiers{Kind: IdentifiersNone}
}

// EnrollmentOnly attaches an enrollment number without a census identifier
func EnrollmentOnly(enrollment string) Identifiers {
	return Identifiers{Kind: IdentifiersEnrollmentOnly, Enrollment: enrollment}
}

// CensusOnly attaches a census identifier without an enrollment number
func CensusOnly(census string) Identifiers {
	return Identifiers{Kind: IdentifiersCensusOnly, Census: census}
}

// EnrollmentAndCensus attaches both identifiers
func EnrollmentAndCensus(enrollment, census string) Identifiers {
	return Identifiers{Kind: IdentifiersEnrollmentAndCensus, Enrollment: enrollment, Census: census}
}

// EnrollmentValue returns the enrollment number as a nullable column value
func (i Identifiers) EnrollmentValue() sql.NullString {
	if i.Kind != IdentifiersEnrollmentOnly && i.Kind != IdentifiersEnrollmentAndCensus {
		return sql.NullString{}
	}
	return helpers.GetContentNullString(i.Enrollment)
}

// CensusValue returns the census identifier as a nullable column value
func (i Identifiers) CensusValue() sql.NullString {
	if i.Kind != IdentifiersCensusOnly && i.Kind != IdentifiersEnrollmentAndCensus {
		return sql.NullString{}
	}
	return helpers.GetContentNullString(i.Census)
}
