package parser

import (
	"testing"

	"github.com/yigit/rostersql/internal/app/models"
)

func TestClassifyIdentifiers(t *testing.T) {
	tests := []struct {
		name  string
		prev2 string
		prev1 string
		want  models.Identifiers
	}{
		{"no preceding lines", "", "", models.NoIdentifiers()},
		{"text before name", "TURMA C", "ALUNOS", models.NoIdentifiers()},
		{"eight digit enrollment", "", "12345678", models.EnrollmentOnly("12345678")},
		{"seven digit enrollment", "F", "1234567", models.EnrollmentOnly("1234567")},
		{"census alone", "M", "123456789012", models.CensusOnly("123456789012")},
		{"census at start of input", "", "123456789012", models.CensusOnly("123456789012")},
		{"enrollment and census", "12345678", "123456789012", models.EnrollmentAndCensus("12345678", "123456789012")},
		{"any digit run before census", "42", "123456789012", models.EnrollmentAndCensus("42", "123456789012")},
		{"six digits is not an enrollment", "", "123456", models.NoIdentifiers()},
		{"nine digits is not an enrollment", "", "123456789", models.NoIdentifiers()},
		{"eleven digits is neither", "12345678", "12345678901", models.NoIdentifiers()},
		{"enrollment ignores prev2", "123456789012", "7654321", models.EnrollmentOnly("7654321")},
		{"digits with spaces", "", "1234 5678", models.NoIdentifiers()},
		{"fullwidth enrollment", "", "\uff11\uff12\uff13\uff14\uff15\uff16\uff17\uff18", models.EnrollmentOnly("\uff11\uff12\uff13\uff14\uff15\uff16\uff17\uff18")},
		{"arabic-indic census", "", "\u0661\u0662\u0663\u0664\u0665\u0666\u0667\u0668\u0669\u0660\u0661\u0662", models.CensusOnly("\u0661\u0662\u0663\u0664\u0665\u0666\u0667\u0668\u0669\u0660\u0661\u0662")},
		{"twelve fullwidth digits with ascii enrollment", "12345678", "\uff11\uff12\uff13\uff14\uff15\uff16\uff17\uff18\uff19\uff10\uff11\uff12", models.EnrollmentAndCensus("12345678", "\uff11\uff12\uff13\uff14\uff15\uff16\uff17\uff18\uff19\uff10\uff11\uff12")},
		{"superscript digits are not decimal", "", "\u00b9\u00b2\u00b3\u00b9\u00b2\u00b3\u00b9", models.NoIdentifiers()},
	}
	for _, tt := range tests {
		got := ClassifyIdentifiers(tt.prev2, tt.prev1)
		if got != tt.want {
			t.Errorf("%s: ClassifyIdentifiers(%q, %q) = %+v, want %+v", tt.name, tt.prev2, tt.prev1, got, tt.want)
		}
	}
}

func TestIdentifierValues(t *testing.T) {
	both := models.EnrollmentAndCensus("12345678", "123456789012")
	if v := both.EnrollmentValue(); !v.Valid || v.String != "12345678" {
		t.Errorf("EnrollmentValue = %+v", v)
	}
	if v := both.CensusValue(); !v.Valid || v.String != "123456789012" {
		t.Errorf("CensusValue = %+v", v)
	}

	census := models.CensusOnly("123456789012")
	if census.EnrollmentValue().Valid {
		t.Error("census-only variant must not carry an enrollment")
	}

	enrollment := models.EnrollmentOnly("1234567")
	if enrollment.CensusValue().Valid {
		t.Error("enrollment-only variant must not carry a census id")
	}

	none := models.NoIdentifiers()
	if none.EnrollmentValue().Valid || none.CensusValue().Valid {
		t.Error("empty variant must not carry identifiers")
	}
	if none.Kind.String() != "none" {
		t.Errorf("Kind.String() = %q", none.Kind.String())
	}
}
