package matrix

import "time"

// timeNow is a package-level variable for testability.
// Tests can replace this to control time in assertions.
var timeNow = time.Now

// nowRFC3339 formats the current time as a UTC RFC3339 string, the
// timestamp format used everywhere in the matrix.
func nowRFC3339() string {
	return timeNow().UTC().Format(time.RFC3339)
}
