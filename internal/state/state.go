package state

import (
	"time"

	"arguehub-client/internal/protocol"
)

// SystemUsername tags log entries produced by server notifications.
const SystemUsername = "system"

// ChatEntry is one line of the room log. Entries are append-only and never
// mutated; a local optimistic entry is indistinguishable from a server echo.
type ChatEntry struct {
	Username  string
	Content   string
	Timestamp *int64
}

// State is the aggregate view of one room session. It is a value: Reduce and
// the local operations return a new State and never mutate their input.
type State struct {
	Log      []ChatEntry
	Tally    map[protocol.VoteOption]int
	Presence int
	// HasVoted is sticky for the lifetime of the session instance. It guards
	// local votes only; the tally is a shared aggregate the server owns.
	HasVoted bool

	// logCap bounds the log when positive; zero keeps the full session log.
	logCap int
}

func New(logCap int) State {
	tally := make(map[protocol.VoteOption]int, len(protocol.VoteOptions))
	for _, opt := range protocol.VoteOptions {
		tally[opt] = 0
	}
	return State{Tally: tally, logCap: logCap}
}

// Reduce applies one decoded server event. Reaction events carry no durable
// state and reduce to a no-op here; the room routes them to the reaction
// scheduler instead.
func Reduce(s State, ev protocol.ServerEvent) State {
	switch e := ev.(type) {
	case protocol.ChatMessageEvent:
		return appendEntry(s, ChatEntry{Username: e.Username, Content: e.Content, Timestamp: e.Timestamp})
	case protocol.NotificationEvent:
		return appendEntry(s, ChatEntry{Username: SystemUsername, Content: e.Content})
	case protocol.VoteEvent:
		next := s
		next.Tally = cloneTally(s.Tally)
		next.Tally[e.Option]++
		return next
	case protocol.PresenceEvent:
		// Last write wins; the server is the sole source of truth per message.
		next := s
		next.Presence = e.Count
		return next
	default:
		return s
	}
}

// AppendLocalMessage records this participant's outgoing message immediately,
// before (and regardless of) any server echo. No reconciliation is attempted
// with a later echo of the same content.
func AppendLocalMessage(s State, username, content string, now time.Time) State {
	ts := now.Unix()
	return appendEntry(s, ChatEntry{Username: username, Content: content, Timestamp: &ts})
}

// CastLocalVote increments the tally optimistically and sets the sticky
// HasVoted guard. It reports false, leaving the state untouched, once the
// participant has already voted or the option is outside the closed set.
func CastLocalVote(s State, option protocol.VoteOption) (State, bool) {
	if s.HasVoted || !option.Valid() {
		return s, false
	}
	next := s
	next.Tally = cloneTally(s.Tally)
	next.Tally[option]++
	next.HasVoted = true
	return next, true
}

func appendEntry(s State, entry ChatEntry) State {
	next := s
	log := make([]ChatEntry, len(s.Log), len(s.Log)+1)
	copy(log, s.Log)
	log = append(log, entry)
	if s.logCap > 0 && len(log) > s.logCap {
		log = log[len(log)-s.logCap:]
	}
	next.Log = log
	return next
}

func cloneTally(tally map[protocol.VoteOption]int) map[protocol.VoteOption]int {
	out := make(map[protocol.VoteOption]int, len(tally))
	for opt, n := range tally {
		out[opt] = n
	}
	return out
}
