// Package reconcile merges the signed-out local store into the account
// store when a user signs in. The merge runs exactly once per login
// transition and always ends by clearing the local store.
package reconcile

import "sync"

// Identity describes the signed-in user as reported by the auth observer
type Identity struct {
	ID    string
	Email string
	Name  string
}

// AuthState is one observation of the auth observer
type AuthState struct {
	Authenticated bool
	Pending       bool
	Identity      *Identity
}

// Transition is the change between two auth observations
type Transition int

const (
	// TransitionNone means the auth state did not change
	TransitionNone Transition = iota
	// TransitionLogin means unauthenticated -> authenticated
	TransitionLogin
	// TransitionLogout means authenticated -> unauthenticated.
	// Logout never triggers a back-sync.
	TransitionLogout
)

func (t Transition) String() string {
	switch t {
	case TransitionLogin:
		return "login"
	case TransitionLogout:
		return "logout"
	default:
		return "none"
	}
}

// DetectTransition compares the previous and current authentication
// flags. It is pure; the observer owns the single remembered state.
func DetectTransition(prev, curr bool) Transition {
	switch {
	case !prev && curr:
		return TransitionLogin
	case prev && !curr:
		return TransitionLogout
	default:
		return TransitionNone
	}
}

// Observer holds the one piece of mutable memory the transition logic
// needs: the previously observed authentication flag. Repeated
// observations of the same state report TransitionNone, which debounces
// double-invocation of the reconciler.
type Observer struct {
	mu     sync.Mutex
	prev   bool
	seeded bool
}

// NewObserver starts from the given authentication state
func NewObserver(authenticated bool) *Observer {
	return &Observer{prev: authenticated, seeded: true}
}

// Observe feeds one auth state and returns the transition it caused.
// Pending observations are ignored: the observer waits for the auth
// service to settle before comparing.
func (o *Observer) Observe(state AuthState) Transition {
	if state.Pending {
		return TransitionNone
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.seeded {
		o.prev = state.Authenticated
		o.seeded = true
		return TransitionNone
	}

	t := DetectTransition(o.prev, state.Authenticated)
	o.prev = state.Authenticated
	return t
}
