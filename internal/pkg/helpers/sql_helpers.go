package helpers

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NullLiteral is the SQL null literal.
const NullLiteral = "NULL"

// GetContentNullString converts a string value to sql.NullString.
// If the string is empty, returns an empty NullString.
// Otherwise, returns a valid NullString with the string value.
func GetContentNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// QuoteLiteral renders s as a single-quoted SQL string literal, doubling
// every embedded single quote.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Literal renders a query argument as an inline SQL literal.
// driver.Valuer implementations (sql.NullString, uuid.UUID, uuid.NullUUID)
// are resolved first, so an invalid nullable renders as NULL.
func Literal(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return NullLiteral, nil
	case driver.Valuer:
		val, err := x.Value()
		if err != nil {
			return "", fmt.Errorf("resolving %T value: %w", v, err)
		}
		if _, again := val.(driver.Valuer); again {
			return "", fmt.Errorf("unsupported nested valuer %T", val)
		}
		return Literal(val)
	case string:
		return QuoteLiteral(x), nil
	case []byte:
		return QuoteLiteral(string(x)), nil
	case bool:
		if x {
			return "true", nil
		}
		return "false", nil
	case int:
		return strconv.Itoa(x), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case time.Time:
		return QuoteLiteral(x.Format(time.RFC3339)), nil
	case fmt.Stringer:
		return QuoteLiteral(x.String()), nil
	default:
		return "", fmt.Errorf("unsupported literal type %T", v)
	}
}
