package repository

import (
	"strings"
)

// IsBusy reports whether err looks like transient storage contention that is
// worth retrying: lock timeouts, serialization failures, deadlocks, or the
// generic "database is locked" from embedded stores.
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"database is locked",
		"lock timeout",
		"could not obtain lock",
		"deadlock detected",
		"could not serialize access",
		"too many connections",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
