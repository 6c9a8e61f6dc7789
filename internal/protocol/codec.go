package protocol

import (
	"encoding/json"
	"fmt"
)

// wireMessage is the tagged envelope shared by both directions. Extra holds
// the nested payload the reaction and vote messages use.
type wireMessage struct {
	Type     MessageType     `json:"type"`
	Room     string          `json:"room,omitempty"`
	Username string          `json:"username,omitempty"`
	Content  string          `json:"content,omitempty"`
	Extra    *wireExtra      `json:"extra,omitempty"`
	Count    json.RawMessage `json:"count,omitempty"`
	// Raw so an absent or malformed timestamp degrades to nil instead of
	// failing the whole decode.
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
}

type wireExtra struct {
	Reaction string     `json:"reaction,omitempty"`
	Option   VoteOption `json:"option,omitempty"`
}

// UnknownTypeError reports a server message whose tag is outside the closed
// set. Callers are expected to log and discard it; it must never tear down a
// session.
type UnknownTypeError struct {
	Type MessageType
	Raw  []byte
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown message type %q", e.Type)
}

// MalformedEventError reports a recognized tag whose payload is unusable.
type MalformedEventError struct {
	Type   MessageType
	Raw    []byte
	Reason string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed %q event: %s", e.Type, e.Reason)
}

// Encode serializes an intent to its wire payload. Encoding the same intent
// twice yields byte-identical payloads.
func Encode(intent Intent) ([]byte, error) {
	var msg wireMessage
	switch in := intent.(type) {
	case JoinIntent:
		msg = wireMessage{Type: TypeJoin, Room: in.Room, Username: in.Username}
	case ChatMessageIntent:
		msg = wireMessage{Type: TypeChatMessage, Content: in.Content}
	case ReactionIntent:
		msg = wireMessage{Type: TypeReaction, Extra: &wireExtra{Reaction: in.Reaction}}
	case VoteIntent:
		if !in.Option.Valid() {
			return nil, fmt.Errorf("invalid vote option %q", in.Option)
		}
		msg = wireMessage{Type: TypeVote, Extra: &wireExtra{Option: in.Option}}
	default:
		return nil, fmt.Errorf("unsupported intent %T", intent)
	}
	return json.Marshal(msg)
}

// Decode parses a server payload into its event. Unknown tags return
// *UnknownTypeError, recognized tags with unusable payloads return
// *MalformedEventError; neither is fatal to the connection.
func Decode(data []byte) (ServerEvent, error) {
	var msg wireMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, &MalformedEventError{Raw: data, Reason: err.Error()}
	}

	switch msg.Type {
	case TypeChatMessage:
		return ChatMessageEvent{
			Username:  msg.Username,
			Content:   msg.Content,
			Timestamp: decodeTimestamp(msg.Timestamp),
		}, nil
	case TypeNotification:
		return NotificationEvent{Content: msg.Content}, nil
	case TypeReaction:
		if msg.Extra == nil || msg.Extra.Reaction == "" {
			return nil, &MalformedEventError{Type: TypeReaction, Raw: data, Reason: "missing extra.reaction"}
		}
		return ReactionEvent{Reaction: msg.Extra.Reaction}, nil
	case TypeVote:
		if msg.Extra == nil || !msg.Extra.Option.Valid() {
			return nil, &MalformedEventError{Type: TypeVote, Raw: data, Reason: "missing or invalid extra.option"}
		}
		return VoteEvent{Option: msg.Extra.Option}, nil
	case TypePresence:
		return PresenceEvent{Count: decodeCount(msg.Count)}, nil
	default:
		return nil, &UnknownTypeError{Type: msg.Type, Raw: data}
	}
}

// decodeTimestamp tolerates absent or malformed unix-second timestamps; the
// message then displays as present-but-untimed.
func decodeTimestamp(raw json.RawMessage) *int64 {
	if len(raw) == 0 {
		return nil
	}
	var ts int64
	if err := json.Unmarshal(raw, &ts); err != nil {
		return nil
	}
	return &ts
}

func decodeCount(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}
