package sessions

import "errors"

var (
	// ErrSessionExpired is returned for client IDs whose session went idle
	// for longer than the configured expiry.
	ErrSessionExpired = errors.New("session has expired")
	// ErrSessionNotFound is returned when no session was initialised for a client ID.
	ErrSessionNotFound = errors.New("no session exists")
	// ErrSequenceConsumed is returned by Next once every value has been handed out.
	ErrSequenceConsumed = errors.New("sequence consumed")
)

type SessionStore interface {
	// Initialises a session and returns a read-only copy of
	// session state.
	Initialise(clientID string, sequence []float64, seed uint64) (SessionState, error)
	// Should produce a read-only copy of session state.
	Get(clientID string) (SessionState, error)
	// Gets the next value in the dataset to send to the client
	// along with its index.
	Next(clientID string, offsetOverride int, freshConnection bool) (float64, int, error)
	// Registers an acknowledgement from the client for a given index
	// in the sequence.
	// The first return value is whether or not the acknowledged
	// index is the final one in the sequence.
	Ack(clientID string, index int) (bool, error)
}

type SessionState struct {
	Sequence     []float64
	Acknowledged []bool
	// Seed the sequence was generated from, reported back to the client
	// so the dataset can be reproduced offline.
	Seed uint64
}
