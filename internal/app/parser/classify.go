package parser

import (
	"regexp"

	"github.com/yigit/rostersql/internal/app/models"
)

// Digit runs match any Unicode decimal digit, not only ASCII.
var (
	censusLinePattern     = regexp.MustCompile(`^\p{Nd}{12}$`)
	enrollmentLinePattern = regexp.MustCompile(`^\p{Nd}{7,8}$`)
	digitsLinePattern     = regexp.MustCompile(`^\p{Nd}+$`)
)

// ClassifyIdentifiers inspects the two lines preceding a name line (prev2 is
// the farther one, prev1 the nearer one; either may be empty when the name
// line is at the start of the input) and decides, by shape alone, which
// optional identifiers they carry.
//
// A 12-digit prev1 is a census identifier, and a digit run in prev2 is then
// taken as the enrollment number regardless of its length. Otherwise a 7 or 8
// digit prev1 is an enrollment number. Nothing is ever validated beyond that,
// so an unrelated numeric line can be misattributed.
func ClassifyIdentifiers(prev2, prev1 string) models.Identifiers {
	switch {
	case censusLinePattern.MatchString(prev1):
		if digitsLinePattern.MatchString(prev2) {
			return models.EnrollmentAndCensus(prev2, prev1)
		}
		return models.CensusOnly(prev1)
	case enrollmentLinePattern.MatchString(prev1):
		return models.EnrollmentOnly(prev1)
	default:
		return models.NoIdentifiers()
	}
}
