package repository

import (
	"database/sql"
	"time"
)

// timeLayout is the storage format of every timestamp column.
const timeLayout = time.RFC3339Nano

// parseTime parses a stored timestamp, returning the zero time for an
// empty or malformed value.
func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullableString converts a sql.NullString to a plain string.
func nullableString(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}
