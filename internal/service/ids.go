package service

import "time"

// nextID picks a fresh numeric id from wall-clock millis, bumped past
// the current maximum so ids are unique and never reused even if the
// clock is behind an earlier record.
func nextID(maxExisting int64) int64 {
	id := time.Now().UnixMilli()
	if id <= maxExisting {
		id = maxExisting + 1
	}
	return id
}
