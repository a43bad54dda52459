package sync

import "time"

// StrictlyNewer reports whether a is strictly newer than b. A nil b
// counts as "never recorded" and loses to any time; a nil a is never
// newer. Equal instants favor neither side, so both directions of a
// last-write-wins comparison no-op instead of oscillating.
func StrictlyNewer(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}
