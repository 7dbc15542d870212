// ABOUTME: Persisted session slot record
// ABOUTME: Matches the single JSON value stored per browser profile

package models

import "time"

// StoredSession is the value held in the profile's persisted session slot.
// LoginTimestamp is epoch milliseconds of the last successful
// (re)authentication.
type StoredSession struct {
	UserID         int64 `json:"userId"`
	LoginTimestamp int64 `json:"loginTimestamp"`
}

// LoginTime returns the timestamp as a time.Time.
func (s StoredSession) LoginTime() time.Time {
	return time.UnixMilli(s.LoginTimestamp)
}

// ExpiresAt returns the instant the session becomes stale for the given
// expiry window.
func (s StoredSession) ExpiresAt(window time.Duration) time.Time {
	return s.LoginTime().Add(window)
}
