// Package analytics scores job applications and the pipeline they form.
//
// Every function is pure: results depend only on the records passed in and the
// evaluation instant now. Callers read the clock once at the boundary and pass it down.
package analytics

import (
	"math"
	"time"

	"github.com/jonathan/jobtracker/internal/types"
)

// Record is the subset of an application the engine reads.
type Record struct {
	Company     string
	Position    string
	Status      types.ApplicationStatus
	DateApplied time.Time
	Notes       string
	JobURL      string
}

const day = 24 * time.Hour

// Thresholds shared by health and velocity.
const (
	staleAfterDays   = 14
	pendingAfterDays = 7
)

// DaysSince returns whole days between applied and now, rounded down.
// The distance is absolute, so a future applied date counts forward.
func DaysSince(applied, now time.Time) int {
	d := now.Sub(applied)
	if d < 0 {
		d = -d
	}
	return int(d / day)
}

// roundHalfUp rounds x to the nearest integer with halves going up.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// percentOf returns count/total*100 rounded half-up. total must be non-zero.
func percentOf(count, total int) int {
	return roundHalfUp(float64(count) / float64(total) * 100)
}
