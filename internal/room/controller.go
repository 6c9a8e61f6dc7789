package room

import (
	"context"
	"strings"
	"sync"
	"time"

	"arguehub-client/internal/protocol"
	"arguehub-client/internal/reaction"
	"arguehub-client/internal/session"
	"arguehub-client/internal/state"
	"arguehub-client/pkg/logger"
)

// Options bundles everything a room view needs beyond the identity.
type Options struct {
	Session          session.Options
	ChatLogCap       int
	ReactionLifetime time.Duration
}

// Snapshot is a point-in-time copy of everything the view renders.
type Snapshot struct {
	Joined      bool
	ConnState   session.ConnState
	CloseReason string
	Log         []state.ChatEntry
	Tally       map[protocol.VoteOption]int
	Presence    int
	HasVoted    bool
	Reactions   []reaction.Token
}

// Controller is the live-session glue: it owns exactly one Conn, one State,
// and one reaction Scheduler, and consumes the event stream in a single
// goroutine so reductions are strictly sequential. A Controller whose
// connection has closed is done; re-joining means a new Controller.
type Controller struct {
	conn      *session.Conn
	username  string
	reactions *reaction.Scheduler

	mu sync.Mutex
	st state.State

	done      chan struct{}
	closeOnce sync.Once
}

func New(identity session.Identity, opts Options) *Controller {
	return &Controller{
		conn:      session.New(identity, opts.Session),
		username:  identity.Username,
		reactions: reaction.NewScheduler(opts.ReactionLifetime),
		st:        state.New(opts.ChatLogCap),
		done:      make(chan struct{}),
	}
}

// Join connects and starts consuming events. Precondition failures from the
// connection (empty name, missing token) surface synchronously; after a
// successful Join the only exits are the server closing or Close.
func (c *Controller) Join(ctx context.Context) error {
	if err := c.conn.Connect(ctx); err != nil {
		return err
	}
	go c.loop()
	return nil
}

func (c *Controller) loop() {
	defer close(c.done)
	for ev := range c.conn.Events() {
		c.apply(ev)
	}
}

func (c *Controller) apply(ev protocol.ServerEvent) {
	if re, ok := ev.(protocol.ReactionEvent); ok {
		// Reactions decay, they are never logged.
		c.reactions.Enqueue(re.Reaction, time.Now())
		return
	}
	c.mu.Lock()
	c.st = state.Reduce(c.st, ev)
	c.mu.Unlock()
}

// SendMessage appends the message to the local log and emits the intent.
// The local entry is never rolled back; there is no acknowledgment protocol.
// Outside Open nothing happens, neither wire payload nor store mutation.
func (c *Controller) SendMessage(content string) {
	content = strings.TrimSpace(content)
	if content == "" || c.conn.State() != session.StateOpen {
		return
	}
	c.mu.Lock()
	c.st = state.AppendLocalMessage(c.st, c.username, content, time.Now())
	c.mu.Unlock()
	c.conn.Send(protocol.ChatMessageIntent{Content: content})
}

// CastVote counts the vote locally, marks this participant as having voted,
// and emits the intent. A second vote is rejected before anything mutates.
func (c *Controller) CastVote(option protocol.VoteOption) {
	if c.conn.State() != session.StateOpen {
		return
	}
	c.mu.Lock()
	next, ok := state.CastLocalVote(c.st, option)
	if !ok {
		c.mu.Unlock()
		logger.Debug("vote for %q rejected: already voted or invalid option", option)
		return
	}
	c.st = next
	c.mu.Unlock()
	c.conn.Send(protocol.VoteIntent{Option: option})
}

// SendReaction emits the intent only; the animation token is created when the
// server broadcasts the reaction back.
func (c *Controller) SendReaction(symbol string) {
	if symbol == "" || c.conn.State() != session.StateOpen {
		return
	}
	c.conn.Send(protocol.ReactionIntent{Reaction: symbol})
}

// Snapshot copies the current render state. Reactions are pruned as of now.
func (c *Controller) Snapshot() Snapshot {
	connState := c.conn.State()
	c.mu.Lock()
	st := c.st
	c.mu.Unlock()

	tally := make(map[protocol.VoteOption]int, len(st.Tally))
	for opt, n := range st.Tally {
		tally[opt] = n
	}
	log := make([]state.ChatEntry, len(st.Log))
	copy(log, st.Log)

	return Snapshot{
		Joined:      connState == session.StateOpen,
		ConnState:   connState,
		CloseReason: c.conn.CloseReason(),
		Log:         log,
		Tally:       tally,
		Presence:    st.Presence,
		HasVoted:    st.HasVoted,
		Reactions:   c.reactions.Live(time.Now()),
	}
}

// Done is closed once the event stream has drained, i.e. the connection is
// Closed and every delivered event has been reduced. The view reverts to its
// pre-join form on it.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Close releases the connection and drops pending reaction tokens. Idempotent
// and required on unmount; skipping it leaks a live socket.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.conn.Close()
		c.reactions.Clear()
	})
}
