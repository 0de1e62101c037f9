package service

import "time"

// nowOr returns now() if set, else the wall clock in UTC.
func nowOr(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now().UTC()
}
