package utils

import "time"

// FromUnixSeconds converts an epoch value in seconds to a UTC time.
// Returns zero time if t<=0 to let callers decide how to render.
func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}

// UnixPtrToTime is the nullable variant used for optional timestamp columns.
func UnixPtrToTime(t *int64) *time.Time {
	if t == nil || *t <= 0 {
		return nil
	}
	v := time.Unix(*t, 0).UTC()
	return &v
}

func TimePtrToUnix(t *time.Time) *int64 {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Unix()
	return &v
}

// LoadLocation falls back to UTC for empty or unknown zone names.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.UTC
}
