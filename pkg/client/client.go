package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fr3shw3b/sortbench-datagen/pkg/generators"
	"github.com/fr3shw3b/sortbench-datagen/pkg/utils"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	DefaultResultTimeout = 300 * time.Second
)

type Result struct {
	Sequence []float64
	// Seed is the seed the server generated the dataset from,
	// it reproduces the dataset locally with the same generator.
	Seed           uint64
	Checksum       string
	ServerChecksum string
	Success        bool
	Error          error
}

type ClientParams struct {
	ServerHost            string
	ServerPort            int
	SendLastReceivedIndex bool
	MaxReconnectAttempts  int
	Generator             string
	Spec                  generators.SequenceSpec
	// Seed is left for the server to choose when nil.
	Seed *uint64
	// ResultTimeout defaults to DefaultResultTimeout when zero.
	ResultTimeout time.Duration
	// The following are primarily for providing a programmable interface
	// for automated tests to simulate failure.
	// These are references to allow for nil checks
	// so we can skip while allowing an empty string
	// or 0 as valid inputs.
	OverrideClientID          *string
	OverrideLastReceivedIndex *int
}

type clientImpl struct {
	params   *ClientParams
	session  *sessionState
	wsClient *websocket.Conn
	logger   *logrus.Logger
}

type sessionState struct {
	clientID                 string
	sequenceReceived         []float64
	lastReceivedIndex        int
	receivedCompleteSequence bool
	success                  bool
	finalErr                 error
	serverChecksum           string
	seed                     uint64
	done                     chan struct{}
	doneOnce                 sync.Once
	mu                       sync.Mutex
}

func NewDefaultClient(params *ClientParams, logger *logrus.Logger) Client {
	return &clientImpl{params: params, session: &sessionState{
		// Ensure we initialise last received as -1, otherwise it will be 0
		// which is the default empty value and therefore the first message will be skipped.
		lastReceivedIndex: -1,
		done:              make(chan struct{}),
	}, wsClient: nil, logger: logger}
}

func (c *clientImpl) Connect() error {
	id := uuid.New()
	if c.params.OverrideClientID != nil {
		c.session.clientID = *c.params.OverrideClientID
	} else {
		c.session.clientID = id.String()
	}

	return c.connect()
}

func (c *clientImpl) connect() error {

	err := backoff.Retry(c.retryConnect, backoff.WithMaxRetries(
		backoff.NewExponentialBackOff(),
		uint64(c.params.MaxReconnectAttempts),
	))
	if err != nil {
		return err
	}

	go c.handleMessages(c.wsClient)
	return nil
}

// reconnect runs in the background once a connection is lost before the
// dataset is complete, giving up ends the session with the dial error.
func (c *clientImpl) reconnect() {
	if err := c.connect(); err != nil {
		c.session.mu.Lock()
		defer c.session.mu.Unlock()
		c.finish(fmt.Errorf("failed to reconnect: %w", err), false)
	}
}

func (c *clientImpl) handleMessages(conn *websocket.Conn) {
	for !c.finished() {
		_, message, err := conn.ReadMessage()
		if err != nil {
			c.logger.Debug("read message error: ", err)
			conn.Close()
			var closeErr *websocket.CloseError
			// Close frames are dealt with by the close handler.
			if !errors.As(err, &closeErr) && !c.finished() {
				go c.reconnect()
			}
			break
		}
		c.handleMessage(message)
	}
}

func (c *clientImpl) handleMessage(message []byte) {
	if len(message) == 0 {
		return
	}
	c.logger.Debug("Received message: ", message)
	if message[0] == utils.NumberInSequencePrefix {
		c.handleMessageInSequence(message[1:])
	} else if message[0] == utils.LastNumberInSequencePrefix {
		c.handleLastMessageInSequence(message[1:])
	}
}

func (c *clientImpl) handleMessageInSequence(message []byte) {
	c.session.mu.Lock()
	defer c.session.mu.Unlock()

	if len(message) != 8 {
		c.logger.Warn("dropping value with unexpected size ", len(message))
		return
	}

	value := utils.ByteArrayToSingleFloat64(message)
	c.session.sequenceReceived = append(c.session.sequenceReceived, value)
	newIndex := len(c.session.sequenceReceived) - 1
	c.session.lastReceivedIndex = newIndex
	c.logger.Debug("len sequence received: ", len(c.session.sequenceReceived))
	c.sendAck(newIndex)
}

func (c *clientImpl) handleLastMessageInSequence(message []byte) {
	c.session.mu.Lock()
	defer c.session.mu.Unlock()

	finalMessage := &utils.SequenceFinalMessage{}
	err := json.Unmarshal(message, finalMessage)
	// Failure to parse the last message should be deemed one of the
	// possible final errors.
	if err != nil {
		c.finish(err, false)
		return
	}

	c.session.sequenceReceived = append(c.session.sequenceReceived, finalMessage.Number)
	newIndex := len(c.session.sequenceReceived) - 1
	c.session.lastReceivedIndex = newIndex
	c.session.serverChecksum = finalMessage.Checksum
	c.session.seed = finalMessage.Seed
	c.session.receivedCompleteSequence = true

	// Perhaps this isn't necessary as the server will be closing after sending
	// the final number in the sequence with the checksum.
	c.sendAck(newIndex)

	clientChecksum := utils.CreateChecksum(c.session.sequenceReceived)
	if clientChecksum != finalMessage.Checksum {
		c.finish(fmt.Errorf(
			"client checksum %s does not match one from server %s",
			clientChecksum,
			finalMessage.Checksum,
		), false)
		return
	}
	c.finish(nil, true)
}

func (c *clientImpl) sendAck(index int) {
	err := c.wsClient.WriteMessage(websocket.BinaryMessage, append(
		[]byte{utils.AcknowledgementPrefix},
		utils.Uint32ToByteArray([]uint32{uint32(index)})...,
	))
	if err != nil {
		c.logger.Debug("failed to acknowledge index ", index, ": ", err)
	}
}

// finish records the outcome of the session, callers must hold the
// session lock.
func (c *clientImpl) finish(err error, success bool) {
	c.session.doneOnce.Do(func() {
		c.session.finalErr = err
		c.session.success = success
		close(c.session.done)
	})
}

func (c *clientImpl) finished() bool {
	select {
	case <-c.session.done:
		return true
	default:
		return false
	}
}

func (c *clientImpl) retryConnect() error {
	// todo: support TLS.
	url := c.buildUrl()

	wsClient, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return err
	}
	wsClient.SetCloseHandler(c.closeHandler(wsClient))

	c.session.mu.Lock()
	c.wsClient = wsClient
	c.session.mu.Unlock()
	return nil
}

func (c *clientImpl) closeHandler(conn *websocket.Conn) func(code int, text string) error {
	return func(code int, text string) error {
		c.session.mu.Lock()
		defer c.session.mu.Unlock()

		// Implement the default close handler behaviour and then try to reconnect
		// if not complete and the connection was not closed due to known client issues.
		message := websocket.FormatCloseMessage(code, "")
		conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(time.Second))

		if utils.IsKnownClientErrorCode(code) {
			c.finish(fmt.Errorf(
				"client error: code[%s(%d)] reason: %s",
				utils.CloseCodeName(code),
				code,
				text,
			), false)
			return nil
		}
		if code == websocket.CloseInternalServerErr {
			c.finish(fmt.Errorf("server error: %s", text), false)
			return nil
		}

		// We only try to reconnect on unexpected closures before the full sequence has
		// been received by the client.
		if !c.session.receivedCompleteSequence && text != "sequence complete" {
			// Do not let retrying the connection block the close handler,
			// we need to free up the WebSocket connection to complete clean up.
			go c.reconnect()
		}

		return nil
	}
}

func (c *clientImpl) buildUrl() string {
	c.session.mu.Lock()
	defer c.session.mu.Unlock()

	q := url.Values{
		utils.QueryClientID: {c.session.clientID},
	}
	utils.EncodeDatasetRequest(q, utils.DatasetRequest{
		Generator: c.params.Generator,
		Spec:      c.params.Spec,
		Seed:      c.params.Seed,
	})
	if c.params.SendLastReceivedIndex && c.session.lastReceivedIndex > -1 {
		q.Set(utils.QueryLastReceived, strconv.Itoa(c.session.lastReceivedIndex))
	} else if c.params.SendLastReceivedIndex && c.params.OverrideLastReceivedIndex != nil {
		q.Set(utils.QueryLastReceived, strconv.Itoa(*c.params.OverrideLastReceivedIndex))
	}

	url := url.URL{
		// todo: support TLS.
		Scheme:   "ws",
		Host:     fmt.Sprintf("%s:%d", c.params.ServerHost, c.params.ServerPort),
		RawQuery: q.Encode(),
	}
	return url.String()
}

func (c *clientImpl) Close() error {
	c.session.mu.Lock()
	defer c.session.mu.Unlock()
	if c.wsClient == nil {
		return nil
	}
	return c.wsClient.Close()
}

func (c *clientImpl) Result() Result {
	timeout := c.params.ResultTimeout
	if timeout <= 0 {
		timeout = DefaultResultTimeout
	}

	select {
	case <-c.session.done:
	case <-time.After(timeout):
		return Result{Error: fmt.Errorf("timed out after %s waiting to receive full sequence", timeout)}
	}

	c.session.mu.Lock()
	defer c.session.mu.Unlock()

	sequence := make([]float64, len(c.session.sequenceReceived))
	copy(sequence, c.session.sequenceReceived)
	return Result{
		Sequence:       sequence,
		Seed:           c.session.seed,
		Checksum:       utils.CreateChecksum(sequence),
		ServerChecksum: c.session.serverChecksum,
		Error:          c.session.finalErr,
		Success:        c.session.success,
	}
}
