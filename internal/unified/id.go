// Package unified holds the shared view of tasks, folders and subtasks
// that both stores are normalized into. Entities carry a tagged id so a
// record is always either in the local (string) or the remote (integer)
// identifier space, never both.
package unified

import (
	"fmt"
)

// Space tags which identifier space an EntityID belongs to
type Space int

const (
	// SpaceLocal ids are opaque strings minted while signed out
	SpaceLocal Space = iota + 1
	// SpaceRemote ids are integers assigned by the account store.
	// Negative values are optimistic placeholders awaiting confirmation.
	SpaceRemote
)

// EntityID is a tagged union over the two identifier spaces. The zero
// value means "no id yet".
type EntityID struct {
	space  Space
	local  string
	remote int64
}

// LocalID wraps a local-space identifier
func LocalID(id string) EntityID {
	return EntityID{space: SpaceLocal, local: id}
}

// RemoteID wraps a remote-space identifier
func RemoteID(id int64) EntityID {
	return EntityID{space: SpaceRemote, remote: id}
}

// Space returns the id's space tag, or 0 for the zero value
func (id EntityID) Space() Space { return id.space }

// IsZero reports whether the id has been assigned at all
func (id EntityID) IsZero() bool { return id.space == 0 }

// IsLocal reports whether the id lives in the local space
func (id EntityID) IsLocal() bool { return id.space == SpaceLocal }

// IsRemote reports whether the id lives in the remote space
func (id EntityID) IsRemote() bool { return id.space == SpaceRemote }

// IsPlaceholder reports whether the id is an optimistic stand-in that
// has not been confirmed by the account store yet
func (id EntityID) IsPlaceholder() bool { return id.space == SpaceRemote && id.remote < 0 }

// Local returns the local id string; ok is false for other spaces
func (id EntityID) Local() (string, bool) {
	return id.local, id.space == SpaceLocal
}

// Remote returns the remote id; ok is false for other spaces
func (id EntityID) Remote() (int64, bool) {
	return id.remote, id.space == SpaceRemote
}

// Equal reports whether two ids name the same entity
func (id EntityID) Equal(other EntityID) bool {
	return id == other
}

func (id EntityID) String() string {
	switch id.space {
	case SpaceLocal:
		return "local:" + id.local
	case SpaceRemote:
		return fmt.Sprintf("remote:%d", id.remote)
	default:
		return "unassigned"
	}
}
