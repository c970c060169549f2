package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fr3shw3b/sortbench-datagen/pkg/generators"
	"github.com/fr3shw3b/sortbench-datagen/pkg/sessions"
	"github.com/fr3shw3b/sortbench-datagen/pkg/utils"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type ServerParams struct {
	SequenceMessageInterval int
	// MaxSequenceLength bounds the length a client may request,
	// defaults to DefaultMaxSequenceLength when not positive.
	MaxSequenceLength int
}

const (
	DefaultMaxSequenceLength = 0xffff
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// No need for strict CORS checking for this implementation.
		return true
	},
}

type serverImpl struct {
	params *ServerParams
	store  sessions.SessionStore
	logger *logrus.Logger
}

func NewDefaultServer(params *ServerParams, store sessions.SessionStore, logger *logrus.Logger) http.Handler {
	return &serverImpl{
		params,
		store,
		logger,
	}
}

func (s *serverImpl) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websockets upgrade error: ", err)
		return
	}

	defer conn.Close()

	query := r.URL.Query()
	clientID := query.Get(utils.QueryClientID)
	if clientID == "" {
		closeWithCode(conn, utils.CloseCodeMissingClientID, "missing client id")
		return
	}
	logger := s.logger.WithField("clientId", clientID)

	lastReceived, err := deriveLastReceivedIndex(query.Get(utils.QueryLastReceived), s.maxSequenceLength())
	if err != nil {
		logger.Error("Failed to parse lastReceived: ", err)
		closeWithCode(
			conn,
			utils.CloseCodeInvalidLastReceived,
			fmt.Sprintf(
				"if provided, last received index must be an integer less than or equal to %d",
				s.maxSequenceLength(),
			),
		)
		return
	}

	session, err := s.loadOrCreateSession(clientID, query, logger)
	if err != nil {
		logger.Error("Failed to initialise session: ", err)
		s.closeForSessionError(conn, err)
		return
	}

	go s.initSequence(conn, clientID, session, lastReceived, logger)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			logger.Debug("read error: ", err)
			break
		}
		s.handleMessage(message, clientID, conn, logger)
	}

}

// requestError carries the close code a failed dataset request ends with.
type requestError struct {
	code   int
	reason string
	err    error
}

func (e *requestError) Error() string {
	return fmt.Sprintf("%s: %s", e.reason, e.err)
}

func (e *requestError) Unwrap() error {
	return e.err
}

// loadOrCreateSession only generates a dataset when the client does not
// already have a session, a reconnecting client keeps its original data.
func (s *serverImpl) loadOrCreateSession(
	clientID string,
	query url.Values,
	logger *logrus.Entry,
) (sessions.SessionState, error) {
	session, err := s.store.Get(clientID)
	if err == nil {
		logger.Debug("resuming existing session")
		return session, nil
	}
	if !errors.Is(err, sessions.ErrSessionNotFound) {
		return sessions.SessionState{}, err
	}

	dataset, seed, err := s.generate(query, logger)
	if err != nil {
		return sessions.SessionState{}, err
	}
	return s.store.Initialise(clientID, dataset, seed)
}

func (s *serverImpl) generate(query url.Values, logger *logrus.Entry) ([]float64, uint64, error) {
	request, err := utils.DecodeDatasetRequest(query, generators.DefaultSpec())
	if err != nil {
		var paramErr *utils.QueryParamError
		if errors.As(err, &paramErr) && paramErr.Param == utils.QueryLength {
			return nil, 0, s.invalidLength(err)
		}
		return nil, 0, &requestError{code: utils.CloseCodeInvalidGenerator, reason: "invalid generator parameters", err: err}
	}

	maxLength := s.maxSequenceLength()
	if request.Spec.Length < 1 || request.Spec.Length > maxLength {
		return nil, 0, s.invalidLength(fmt.Errorf("length %d out of range", request.Spec.Length))
	}

	descriptor, err := generators.Lookup(request.Generator)
	if err != nil {
		return nil, 0, &requestError{code: utils.CloseCodeInvalidGenerator, reason: "unknown generator", err: err}
	}

	seed := utils.RandomSeed()
	if request.Seed != nil {
		seed = *request.Seed
	}

	dataset, err := descriptor.Run(utils.NewSeededRand(seed), request.Spec)
	if err != nil {
		return nil, 0, &requestError{code: utils.CloseCodeInvalidGenerator, reason: "invalid generator parameters", err: err}
	}
	if len(dataset) == 0 {
		return nil, 0, &requestError{
			code:   utils.CloseCodeInvalidGenerator,
			reason: "invalid generator parameters",
			err:    errors.New("generator produced an empty dataset"),
		}
	}

	logger.Info("generated ", len(dataset), " values with ", request.Generator, " (seed ", seed, ")")
	return dataset, seed, nil
}

func (s *serverImpl) invalidLength(err error) error {
	return &requestError{
		code:   utils.CloseCodeInvalidSequenceCount,
		reason: fmt.Sprintf("length must be an integer between 1 and %d", s.maxSequenceLength()),
		err:    err,
	}
}

func (s *serverImpl) closeForSessionError(conn *websocket.Conn, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		closeWithCode(conn, reqErr.code, reqErr.reason)
		return
	}

	if errors.Is(err, sessions.ErrSessionExpired) {
		closeWithCode(conn, utils.CloseCodeExpiredSession, "session has expired")
		return
	}
	closeWithCode(conn, websocket.CloseInternalServerErr, "failed to initialise session")
}

func (s *serverImpl) initSequence(
	conn *websocket.Conn,
	clientID string,
	session sessions.SessionState,
	lastReceivedIndex int,
	logger *logrus.Entry,
) {
	next, index, err := s.store.Next(clientID, lastReceivedIndex, true)
	for err == nil {
		logger.Debug("next: ", next, " index: ", index)
		msg, innerErr := prepareMessage(session, next, index)
		if innerErr != nil {
			logger.Error("prepare message error: ", innerErr)
			return
		}
		if writeErr := conn.WriteMessage(websocket.BinaryMessage, msg); writeErr != nil {
			// The client resumes from its last acknowledged value on reconnect.
			logger.Debug("write error, stopping stream: ", writeErr)
			return
		}

		// Only pauses the current goroutine!
		time.Sleep(time.Millisecond * time.Duration(s.params.SequenceMessageInterval))

		next, index, err = s.store.Next(clientID, -1, false)
	}

	if !errors.Is(err, sessions.ErrSequenceConsumed) {
		logger.Error("failed to read next value: ", err)
	}
}

func (s *serverImpl) handleMessage(message []byte, clientID string, conn *websocket.Conn, logger *logrus.Entry) {
	if len(message) < 5 || message[0] != utils.AcknowledgementPrefix {
		logger.Debug("ignoring unexpected message: ", message)
		return
	}

	index := utils.ByteArrayToSingleUint32(message[1:5])
	logger.Debug("Received acknowledgement for index: ", index)
	final, err := s.store.Ack(clientID, int(index))
	if err != nil {
		logger.Error("failed to persist client acknowledgement: ", err)
		return
	}

	if final {
		closeWithCode(conn, websocket.CloseNormalClosure, "sequence complete")
		conn.Close()
	}
}

func (s *serverImpl) maxSequenceLength() int {
	if s.params.MaxSequenceLength > 0 {
		return s.params.MaxSequenceLength
	}
	return DefaultMaxSequenceLength
}

func closeWithCode(conn *websocket.Conn, code int, reason string) {
	conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		// This deadline could be made configurable.
		time.Now().Add(1*time.Second),
	)
}

func prepareMessage(session sessions.SessionState, next float64, index int) ([]byte, error) {
	if index < len(session.Sequence)-1 {
		numberInBytes := utils.Float64ToByteArray([]float64{next})
		return append([]byte{utils.NumberInSequencePrefix}, numberInBytes...), nil
	}

	finalMessage := utils.SequenceFinalMessage{
		Number:   next,
		Checksum: utils.CreateChecksum(session.Sequence),
		Seed:     session.Seed,
	}
	messageBytes, err := json.Marshal(&finalMessage)
	if err != nil {
		return nil, err
	}
	return append([]byte{utils.LastNumberInSequencePrefix}, messageBytes...), nil
}

func deriveLastReceivedIndex(queryParam string, max int) (int, error) {
	if queryParam == "" {
		return -1, nil
	}
	lastReceivedIndex, err := strconv.Atoi(queryParam)
	if err != nil {
		return 0, err
	}
	if lastReceivedIndex > max {
		return 0, fmt.Errorf("lastReceivedIndex must be less than or equal to %d", max)
	}
	return lastReceivedIndex, nil
}
