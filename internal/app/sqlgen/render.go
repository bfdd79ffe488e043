package sqlgen

import (
	"fmt"
	"strings"

	"github.com/yigit/rostersql/internal/pkg/helpers"
)

// inlineArgs replaces each '?' placeholder in query with the SQL literal of
// the matching argument. query must come from the statement builder so that
// it carries no user data of its own.
func inlineArgs(query string, args []any) (string, error) {
	var b strings.Builder
	b.Grow(len(query) + len(args)*16)

	n := 0
	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		if n >= len(args) {
			return "", fmt.Errorf("placeholder %d has no argument", n+1)
		}
		lit, err := helpers.Literal(args[n])
		if err != nil {
			return "", fmt.Errorf("argument %d: %w", n+1, err)
		}
		b.WriteString(lit)
		n++
	}
	if n != len(args) {
		return "", fmt.Errorf("%d arguments for %d placeholders", len(args), n)
	}
	return b.String(), nil
}

// layoutInsert spreads a single-line INSERT template over several lines, one
// value tuple per line. It must run before inlineArgs.
func layoutInsert(query string) string {
	query = strings.ReplaceAll(query, ",", ", ")
	query = strings.Replace(query, ") VALUES (", ") VALUES\n(", 1)
	query = strings.ReplaceAll(query, "), (", "),\n(")
	query = strings.Replace(query, ") ON CONFLICT", ")\nON CONFLICT", 1)
	return query
}
