package state

import (
	"fmt"
	"testing"
	"time"

	"arguehub-client/internal/protocol"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnlyMessagesAndNotificationsReachTheLog(t *testing.T) {
	events := []protocol.ServerEvent{
		protocol.ChatMessageEvent{Username: "ada", Content: "opening"},
		protocol.PresenceEvent{Count: 4},
		protocol.NotificationEvent{Content: "bob joined"},
		protocol.ReactionEvent{Reaction: "😂"},
		protocol.VoteEvent{Option: protocol.VoteFor},
		protocol.ChatMessageEvent{Username: "bob", Content: "rebuttal"},
	}

	s := New(0)
	for _, ev := range events {
		s = Reduce(s, ev)
	}

	require.Len(t, s.Log, 3)
	assert.Equal(t, "opening", s.Log[0].Content)
	assert.Equal(t, SystemUsername, s.Log[1].Username)
	assert.Equal(t, "rebuttal", s.Log[2].Content)
}

func TestPresenceIsLastWriteWins(t *testing.T) {
	s := New(0)
	s = Reduce(s, protocol.PresenceEvent{Count: 5})
	s = Reduce(s, protocol.PresenceEvent{Count: 3})
	assert.Equal(t, 3, s.Presence)
}

func TestVoteEventsAccumulateInTheTally(t *testing.T) {
	s := New(0)
	s = Reduce(s, protocol.VoteEvent{Option: protocol.VoteFor})
	s = Reduce(s, protocol.VoteEvent{Option: protocol.VoteFor})
	s = Reduce(s, protocol.VoteEvent{Option: protocol.VoteAgainst})

	assert.Equal(t, 2, s.Tally[protocol.VoteFor])
	assert.Equal(t, 1, s.Tally[protocol.VoteAgainst])
	// Remote votes never set the local guard.
	assert.False(t, s.HasVoted)
}

func TestLocalVoteIsStickyAndAtMostOnce(t *testing.T) {
	s := New(0)

	s, ok := CastLocalVote(s, protocol.VoteFor)
	require.True(t, ok)
	assert.Equal(t, 1, s.Tally[protocol.VoteFor])
	assert.True(t, s.HasVoted)

	// The second local vote is rejected and changes nothing.
	next, ok := CastLocalVote(s, protocol.VoteAgainst)
	assert.False(t, ok)
	assert.Equal(t, s, next)
	assert.Equal(t, 0, next.Tally[protocol.VoteAgainst])
	assert.True(t, next.HasVoted)

	// Remote vote events still accumulate, the guard stays set.
	next = Reduce(next, protocol.VoteEvent{Option: protocol.VoteAgainst})
	assert.Equal(t, 1, next.Tally[protocol.VoteAgainst])
	assert.True(t, next.HasVoted)
}

func TestLocalVoteRejectsUnknownOption(t *testing.T) {
	s := New(0)
	s, ok := CastLocalVote(s, protocol.VoteOption("MAYBE"))
	assert.False(t, ok)
	assert.False(t, s.HasVoted)
}

func TestLocalMessageIsTimestampedAndAppended(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := New(0)
	s = AppendLocalMessage(s, "ada", "my point stands", now)

	require.Len(t, s.Log, 1)
	assert.Equal(t, "ada", s.Log[0].Username)
	require.NotNil(t, s.Log[0].Timestamp)
	assert.Equal(t, now.Unix(), *s.Log[0].Timestamp)
}

func TestReduceDoesNotMutateItsInput(t *testing.T) {
	s := New(0)
	s = Reduce(s, protocol.ChatMessageEvent{Username: "ada", Content: "one"})

	before := s
	_ = Reduce(s, protocol.ChatMessageEvent{Username: "bob", Content: "two"})
	_ = Reduce(s, protocol.VoteEvent{Option: protocol.VoteFor})

	assert.Len(t, before.Log, 1)
	assert.Equal(t, 0, before.Tally[protocol.VoteFor])
}

func TestLogCapDropsOldestEntries(t *testing.T) {
	s := New(3)
	for i := 0; i < 5; i++ {
		s = Reduce(s, protocol.ChatMessageEvent{Username: "ada", Content: fmt.Sprintf("msg-%d", i)})
	}

	require.Len(t, s.Log, 3)
	assert.Equal(t, "msg-2", s.Log[0].Content)
	assert.Equal(t, "msg-4", s.Log[2].Content)
}
