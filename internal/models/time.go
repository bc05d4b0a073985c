package models

import "time"

// timestampLayout is ISO-8601 with fixed millisecond precision. The fixed
// width keeps lexicographic order identical to chronological order, which
// the stores rely on when sorting by timestamp.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is an instant encoded as an ISO-8601 UTC string. Values are
// stored and compared as opaque strings.
type Timestamp string

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return TimestampOf(time.Now())
}

// TimestampOf converts t to a Timestamp.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp(t.UTC().Format(timestampLayout))
}

// Time parses the timestamp. It returns the zero time when t does not
// carry the canonical layout.
func (t Timestamp) Time() time.Time {
	parsed, err := time.Parse(timestampLayout, string(t))
	if err != nil {
		return time.Time{}
	}
	return parsed
}
