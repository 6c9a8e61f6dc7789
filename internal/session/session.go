package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"arguehub-client/internal/auth"
	"arguehub-client/internal/metrics"
	"arguehub-client/internal/protocol"
	"arguehub-client/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

var (
	ErrInvalidIdentity = errors.New("session: display name is required")
	ErrNoToken         = errors.New("session: no auth token available")
	ErrAlreadyStarted  = errors.New("session: connect already attempted")
)

// Identity names the room, the local participant, and the credential used
// once at connect time. It is immutable for the lifetime of a Conn; changing
// any field means constructing a new Conn.
type Identity struct {
	Room     string
	Username string
	Tokens   auth.TokenSource
}

type ConnState int

const (
	StateIdle ConnState = iota
	StateConnecting
	StateOpen
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

type Options struct {
	// URL is the websocket base, e.g. ws://localhost:1313. The room id is
	// appended as a path segment and the token as a query parameter.
	URL string
	// ConnectTimeout bounds the handshake; zero leaves the transport's own
	// timeout behavior in place.
	ConnectTimeout time.Duration
	// DialMaxRetries allows bounded retry of the initial dial only. A Conn
	// that reached Open and then closed is terminal either way.
	DialMaxRetries int
	DialBackoff    time.Duration
}

// Conn owns the lifecycle of one persistent connection to one room:
// Idle -> Connecting -> Open -> Closed. Closed is terminal; retrying means a
// fresh Conn. Decoded server events are delivered in arrival order on
// Events(), which is closed when the connection closes.
type Conn struct {
	id       string
	identity Identity
	opts     Options

	mu      sync.Mutex
	state   ConnState
	ws      *websocket.Conn
	reason  string
	started bool

	writeMu sync.Mutex

	events      chan protocol.ServerEvent
	closeEvents sync.Once
}

func New(identity Identity, opts Options) *Conn {
	return &Conn{
		id:       uuid.New().String(),
		identity: identity,
		opts:     opts,
		events:   make(chan protocol.ServerEvent, 64),
	}
}

// ID identifies this connection instance in logs.
func (c *Conn) ID() string {
	return c.id
}

func (c *Conn) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CloseReason reports why the connection closed. Empty until Closed.
func (c *Conn) CloseReason() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reason
}

// Events returns the in-order stream of decoded server events. The channel
// is closed once the connection is Closed, so ranging over it is the natural
// consume loop.
func (c *Conn) Events() <-chan protocol.ServerEvent {
	return c.events
}

// Connect validates the identity, dials the room, and announces the join.
// The join intent is always the first payload on the wire. Precondition
// failures (empty display name, missing or expired token) are reported
// synchronously and no connection is attempted.
func (c *Conn) Connect(ctx context.Context) error {
	if strings.TrimSpace(c.identity.Username) == "" {
		return ErrInvalidIdentity
	}
	if c.identity.Tokens == nil {
		return ErrNoToken
	}
	token, ok := c.identity.Tokens.Token()
	if !ok {
		return ErrNoToken
	}
	if err := auth.CheckNotExpired(token, time.Now()); err != nil {
		return fmt.Errorf("%w: %v", ErrNoToken, err)
	}

	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.started = true
	c.state = StateConnecting
	c.mu.Unlock()

	ws, err := c.dial(ctx, token)
	if err != nil {
		c.transitionClosed(fmt.Sprintf("dial failed: %v", err))
		return fmt.Errorf("session: dial %s: %w", c.identity.Room, err)
	}

	c.mu.Lock()
	if c.state == StateClosed {
		// Close raced the dial; honor the close.
		c.mu.Unlock()
		ws.Close()
		return fmt.Errorf("session: closed during connect")
	}
	c.ws = ws
	c.state = StateOpen
	c.mu.Unlock()

	if err := c.writeIntent(protocol.JoinIntent{Room: c.identity.Room, Username: c.identity.Username}); err != nil {
		ws.Close()
		c.transitionClosed(fmt.Sprintf("join failed: %v", err))
		return fmt.Errorf("session: announce join: %w", err)
	}

	metrics.TotalSessions.Inc()
	metrics.ActiveSessions.Inc()
	logger.Info("session %s joined room %s as %s", c.id, c.identity.Room, c.identity.Username)

	go c.readLoop()
	return nil
}

func (c *Conn) dial(ctx context.Context, token string) (*websocket.Conn, error) {
	target := fmt.Sprintf("%s/chat/%s?token=%s",
		strings.TrimRight(c.opts.URL, "/"), url.PathEscape(c.identity.Room), url.QueryEscape(token))

	dialer := websocket.Dialer{HandshakeTimeout: c.opts.ConnectTimeout}

	var ws *websocket.Conn
	operation := func() error {
		conn, _, err := dialer.DialContext(ctx, target, nil)
		if err != nil {
			return err
		}
		ws = conn
		return nil
	}

	expo := backoff.NewExponentialBackOff()
	if c.opts.DialBackoff > 0 {
		expo.InitialInterval = c.opts.DialBackoff
	}
	expo.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(c.opts.DialMaxRetries)), ctx)

	err := backoff.RetryNotify(operation, policy, func(err error, d time.Duration) {
		logger.Warn("session %s dial failed: %v (retrying in %s)", c.id, err, d)
	})
	if err != nil {
		return nil, err
	}
	return ws, nil
}

// Send encodes and writes one intent. Outside Open it is a silent no-op:
// intents are never queued across a reconnect, and a failed write is logged
// rather than surfaced. At-most-once, best effort.
func (c *Conn) Send(intent protocol.Intent) {
	c.mu.Lock()
	open := c.state == StateOpen
	c.mu.Unlock()
	if !open {
		metrics.IntentsDropped.Inc()
		logger.Debug("session %s dropped %T: not open", c.id, intent)
		return
	}
	if err := c.writeIntent(intent); err != nil {
		// Informational only; the read loop notices the closure.
		logger.Error("session %s write error: %v", c.id, err)
	}
}

func (c *Conn) writeIntent(intent protocol.Intent) error {
	payload, err := protocol.Encode(intent)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
		return err
	}
	metrics.IntentsSent.WithLabelValues(string(intent.MessageType())).Inc()
	return nil
}

func (c *Conn) readLoop() {
	defer metrics.ActiveSessions.Dec()

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			c.transitionClosed(closeText(err))
			logger.Info("session %s closed: %s", c.id, closeText(err))
			return
		}

		ev, err := protocol.Decode(data)
		if err != nil {
			// Unknown or malformed payloads must never fail the session.
			metrics.DecodeFailures.Inc()
			logger.Debug("session %s discarded payload: %v", c.id, err)
			continue
		}

		metrics.EventsReceived.WithLabelValues(string(ev.MessageType())).Inc()
		c.events <- ev
	}
}

// Close tears the connection down. Idempotent and safe to call from an
// unmounted view, in any state, any number of times.
func (c *Conn) Close() {
	c.mu.Lock()
	ws := c.ws
	c.mu.Unlock()

	if ws != nil {
		c.writeMu.Lock()
		ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
			time.Now().Add(writeTimeout))
		c.writeMu.Unlock()
		// The read loop observes the closure and finishes the transition.
		ws.Close()
		return
	}
	c.transitionClosed("closed before connect")
}

func (c *Conn) transitionClosed(reason string) {
	c.mu.Lock()
	if c.state != StateClosed {
		c.state = StateClosed
		c.reason = reason
	}
	c.mu.Unlock()
	c.closeEvents.Do(func() { close(c.events) })
}

func closeText(err error) string {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return closeErr.Error()
	}
	return err.Error()
}
