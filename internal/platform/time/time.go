// Package time contains time related helpers
package time

import "time"

// Now is the clock seam used by handlers that stamp responses
var Now = time.Now

// Stamp returns t in UTC as RFC3339 with milliseconds, matching browser toISOString output
func Stamp(t time.Time) string { return t.UTC().Format("2006-01-02T15:04:05.000Z07:00") }
