package types

import "time"

// UnixToTime converts gateway unix seconds to a UTC time.
// The gateway reports 0 for events that have not happened, which maps to nil.
func UnixToTime(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}

// TimeToUnix converts t to unix seconds, the unit schedule_at is sent in.
func TimeToUnix(t time.Time) int64 {
	return t.Unix()
}
