package sessions

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type InMemoryStoreParams struct {
	ExpireAfterIdleTime int
	// Now is used in place of time.Now when set, for tests.
	Now func() time.Time
}

func NewInMemoryStore(params *InMemoryStoreParams, logger *logrus.Logger) SessionStore {
	return &inMemoryStore{
		params:   params,
		sessions: map[string]*internalSessionState{},
		logger:   logger,
	}
}

type inMemoryStore struct {
	mu       sync.Mutex
	params   *InMemoryStoreParams
	sessions map[string]*internalSessionState
	logger   *logrus.Logger
}

type internalSessionState struct {
	clientID     string
	sequence     []float64
	seed         uint64
	lastAccessed int
	// Expired sessions are kept as a soft delete so a client reconnecting
	// with the same ID after the expiry is told its session is gone
	// rather than silently receiving a fresh dataset.
	expired      bool
	nextIndex    int
	acknowledged []bool
	mu           sync.Mutex
}

func (s *inMemoryStore) Initialise(clientID string, sequence []float64, seed uint64) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	internalSession, err := s.loadExisting(clientID)
	if err != nil {
		return SessionState{}, err
	}

	if internalSession == nil {
		internalSession = &internalSessionState{
			clientID:     clientID,
			sequence:     sequence,
			seed:         seed,
			lastAccessed: s.now(),
			expired:      false,
			nextIndex:    0,
			acknowledged: make([]bool, len(sequence)),
		}
		s.sessions[clientID] = internalSession
	}

	return internalSession.snapshot(), nil
}

func (s *inMemoryStore) Get(clientID string) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	internalSession, err := s.loadExisting(clientID)
	if err != nil {
		return SessionState{}, err
	}

	if internalSession == nil {
		return SessionState{}, fmt.Errorf("%w for client id (%s)", ErrSessionNotFound, clientID)
	}

	return internalSession.snapshot(), nil
}

func (s *inMemoryStore) Next(clientID string, offsetOverride int, freshConnection bool) (float64, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.loadExisting(clientID)
	if err != nil {
		return 0, 0, err
	}
	if session == nil {
		return 0, 0, fmt.Errorf("%w for client id (%s)", ErrSessionNotFound, clientID)
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	// offset override takes precedence, this is the client provided
	// index of the last value it received.
	if offsetOverride > -1 && offsetOverride+1 < len(session.sequence) {
		s.logger.Debug("choosing offset override")
		index := offsetOverride + 1
		session.nextIndex = index + 1
		return session.sequence[index], index, nil
	}

	// When a client reconnects, the first value that has not been
	// acknowledged takes priority over nextIndex. This covers a
	// disconnect between the server updating its state and the message
	// reaching the client.
	firstNotAcknowledgedIndex := findFirstFalseIndex(session.acknowledged)
	if freshConnection && firstNotAcknowledgedIndex != session.nextIndex &&
		firstNotAcknowledgedIndex > -1 {
		s.logger.Debug("choosing first not acknowledged index, session.nextIndex: ", session.nextIndex, " firstNotAcknowledgedIndex: ", firstNotAcknowledgedIndex)
		value := session.sequence[firstNotAcknowledgedIndex]
		session.nextIndex = firstNotAcknowledgedIndex + 1
		return value, firstNotAcknowledgedIndex, nil
	}

	if session.nextIndex < len(session.sequence) {
		s.logger.Debug("choosing session.nextIndex")
		index := session.nextIndex
		value := session.sequence[index]
		session.nextIndex += 1
		return value, index, nil
	}

	s.logger.Debug("sequence consumed")
	return 0, 0, fmt.Errorf("%w for session with client id (%s)", ErrSequenceConsumed, clientID)
}

func (s *inMemoryStore) Ack(clientID string, index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.loadExisting(clientID)
	if err != nil {
		return false, err
	}
	if session == nil {
		return false, fmt.Errorf("%w for client id (%s)", ErrSessionNotFound, clientID)
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if index < 0 || index >= len(session.acknowledged) {
		return false, fmt.Errorf("acknowledged index %d is out of range for client id (%s)", index, clientID)
	}
	session.acknowledged[index] = true

	return index == len(session.sequence)-1, nil
}

func (s *inMemoryStore) loadExisting(clientID string) (*internalSessionState, error) {
	session := s.sessions[clientID]
	if session != nil {
		expired := s.checkExpiredAndUpdateIfNeeded(session)
		if expired {
			return nil, fmt.Errorf("%w for client id (%s)", ErrSessionExpired, clientID)
		}

		return session, nil
	}

	// Indicates a session has not yet been created for a given client ID.
	return nil, nil
}

func (s *inMemoryStore) checkExpiredAndUpdateIfNeeded(session *internalSessionState) bool {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.expired {
		return true
	}

	now := s.now()

	if session.lastAccessed+s.params.ExpireAfterIdleTime < now {
		s.logger.Debug("Setting session to expired", session.lastAccessed, s.params.ExpireAfterIdleTime, now)
		session.expired = true
	}
	session.lastAccessed = now

	return session.expired
}

func (s *inMemoryStore) now() int {
	if s.params.Now != nil {
		return int(s.params.Now().Unix())
	}
	return int(time.Now().Unix())
}

func (session *internalSessionState) snapshot() SessionState {
	session.mu.Lock()
	defer session.mu.Unlock()

	acknowledged := make([]bool, len(session.acknowledged))
	copy(acknowledged, session.acknowledged)
	return SessionState{
		Sequence:     session.sequence,
		Acknowledged: acknowledged,
		Seed:         session.seed,
	}
}

func findFirstFalseIndex(list []bool) int {
	for i, value := range list {
		if !value {
			return i
		}
	}
	return -1
}
