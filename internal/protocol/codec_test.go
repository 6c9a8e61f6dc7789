package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWireFormat(t *testing.T) {
	testCases := []struct {
		name    string
		intent  Intent
		want    string
		wantErr bool
	}{
		{
			name:   "join",
			intent: JoinIntent{Room: "room-7", Username: "ada"},
			want:   `{"type":"join","room":"room-7","username":"ada"}`,
		},
		{
			name:   "chat message",
			intent: ChatMessageIntent{Content: "hello"},
			want:   `{"type":"chatMessage","content":"hello"}`,
		},
		{
			name:   "reaction",
			intent: ReactionIntent{Reaction: "😂"},
			want:   `{"type":"reaction","extra":{"reaction":"😂"}}`,
		},
		{
			name:   "vote",
			intent: VoteIntent{Option: VoteFor},
			want:   `{"type":"vote","extra":{"option":"FOR"}}`,
		},
		{
			name:    "vote outside the closed option set",
			intent:  VoteIntent{Option: "MAYBE"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := Encode(tc.intent)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(payload))
		})
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	intent := ChatMessageIntent{Content: "same words"}
	first, err := Encode(intent)
	require.NoError(t, err)
	second, err := Encode(intent)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecodeEvents(t *testing.T) {
	ts := int64(1700000000)

	testCases := []struct {
		name    string
		payload string
		want    ServerEvent
	}{
		{
			name:    "chat message with timestamp",
			payload: `{"type":"chatMessage","username":"ada","content":"hi","timestamp":1700000000}`,
			want:    ChatMessageEvent{Username: "ada", Content: "hi", Timestamp: &ts},
		},
		{
			name:    "chat message without timestamp",
			payload: `{"type":"chatMessage","username":"ada","content":"hi"}`,
			want:    ChatMessageEvent{Username: "ada", Content: "hi"},
		},
		{
			name:    "chat message with malformed timestamp",
			payload: `{"type":"chatMessage","username":"ada","content":"hi","timestamp":"not-a-number"}`,
			want:    ChatMessageEvent{Username: "ada", Content: "hi"},
		},
		{
			name:    "notification",
			payload: `{"type":"notification","content":"ada joined"}`,
			want:    NotificationEvent{Content: "ada joined"},
		},
		{
			name:    "reaction",
			payload: `{"type":"reaction","extra":{"reaction":"👍"}}`,
			want:    ReactionEvent{Reaction: "👍"},
		},
		{
			name:    "vote",
			payload: `{"type":"vote","extra":{"option":"AGAINST"}}`,
			want:    VoteEvent{Option: VoteAgainst},
		},
		{
			name:    "presence",
			payload: `{"type":"presence","count":5}`,
			want:    PresenceEvent{Count: 5},
		},
		{
			name:    "presence with missing count",
			payload: `{"type":"presence"}`,
			want:    PresenceEvent{Count: 0},
		},
		{
			name:    "presence with malformed count",
			payload: `{"type":"presence","count":"many"}`,
			want:    PresenceEvent{Count: 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := Decode([]byte(tc.payload))
			require.NoError(t, err)
			assert.Equal(t, tc.want, ev)
		})
	}
}

func TestDecodeRejectsWithoutPanicking(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
	}{
		{name: "unknown future tag", payload: `{"type":"unknown_future_event","whatever":1}`},
		{name: "empty tag", payload: `{"content":"no type"}`},
		{name: "not json", payload: `garbage`},
		{name: "vote without option", payload: `{"type":"vote","extra":{}}`},
		{name: "vote with unknown option", payload: `{"type":"vote","extra":{"option":"MAYBE"}}`},
		{name: "reaction without symbol", payload: `{"type":"reaction"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := Decode([]byte(tc.payload))
			require.Error(t, err)
			assert.Nil(t, ev)
		})
	}
}

func TestDecodeUnknownTypeKeepsRawPayload(t *testing.T) {
	payload := `{"type":"unknown_future_event"}`
	_, err := Decode([]byte(payload))

	var unknown *UnknownTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, MessageType("unknown_future_event"), unknown.Type)
	assert.Equal(t, payload, string(unknown.Raw))
}

func TestRoundTripShapes(t *testing.T) {
	// The two directions share the envelope, so an encoded intent decodes
	// into the event shape matching its tag.
	payload, err := Encode(ChatMessageIntent{Content: "echo"})
	require.NoError(t, err)
	ev, err := Decode(payload)
	require.NoError(t, err)
	assert.IsType(t, ChatMessageEvent{}, ev)

	payload, err = Encode(VoteIntent{Option: VoteFor})
	require.NoError(t, err)
	ev, err = Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, VoteEvent{Option: VoteFor}, ev)

	payload, err = Encode(ReactionIntent{Reaction: "❤️"})
	require.NoError(t, err)
	ev, err = Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, ReactionEvent{Reaction: "❤️"}, ev)
}
