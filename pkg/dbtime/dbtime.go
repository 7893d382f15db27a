//nolint:revive // exported
package dbtime

import "time"

// DBNow returns the current time truncated to what the documents tables
// store (unix seconds, UTC).
func DBNow() time.Time {
	return DBTime(time.Now())
}

func DBTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// FromUnix converts a stored unix timestamp back to a UTC time.
func FromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
