package helpers

import (
	"time"
)

// ISOTimestampLayout matches the millisecond ISO-8601 form clients expect,
// e.g. 2025-04-23T12:01:05.123Z.
const ISOTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// NowUTC returns the current time in UTC truncated to milliseconds, the
// precision MongoDB stores.
func NowUTC() time.Time {
	return TruncateToStorage(time.Now())
}

// TruncateToStorage drops sub-millisecond precision and moves t to UTC.
func TruncateToStorage(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// FormatISO formats t in UTC with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOTimestampLayout)
}
