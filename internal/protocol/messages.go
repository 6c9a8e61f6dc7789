package protocol

type MessageType string

const (
	TypeJoin         MessageType = "join"
	TypeChatMessage  MessageType = "chatMessage"
	TypeNotification MessageType = "notification"
	TypeReaction     MessageType = "reaction"
	TypeVote         MessageType = "vote"
	TypePresence     MessageType = "presence"
)

type VoteOption string

const (
	VoteFor     VoteOption = "FOR"
	VoteAgainst VoteOption = "AGAINST"
)

// VoteOptions is the closed set of poll choices a room offers.
var VoteOptions = []VoteOption{VoteFor, VoteAgainst}

func (o VoteOption) Valid() bool {
	return o == VoteFor || o == VoteAgainst
}

// Intent is a client-originated action awaiting transmission.
type Intent interface {
	MessageType() MessageType
}

type JoinIntent struct {
	Room     string
	Username string
}

type ChatMessageIntent struct {
	Content string
}

type ReactionIntent struct {
	Reaction string
}

type VoteIntent struct {
	Option VoteOption
}

func (JoinIntent) MessageType() MessageType        { return TypeJoin }
func (ChatMessageIntent) MessageType() MessageType { return TypeChatMessage }
func (ReactionIntent) MessageType() MessageType    { return TypeReaction }
func (VoteIntent) MessageType() MessageType        { return TypeVote }

// ServerEvent is a decoded room broadcast.
type ServerEvent interface {
	MessageType() MessageType
}

// ChatMessageEvent carries a participant message. Timestamp is unix seconds
// and nil when the server omitted it or sent something unusable.
type ChatMessageEvent struct {
	Username  string
	Content   string
	Timestamp *int64
}

type NotificationEvent struct {
	Content string
}

type ReactionEvent struct {
	Reaction string
}

type VoteEvent struct {
	Option VoteOption
}

type PresenceEvent struct {
	Count int
}

func (ChatMessageEvent) MessageType() MessageType  { return TypeChatMessage }
func (NotificationEvent) MessageType() MessageType { return TypeNotification }
func (ReactionEvent) MessageType() MessageType     { return TypeReaction }
func (VoteEvent) MessageType() MessageType         { return TypeVote }
func (PresenceEvent) MessageType() MessageType     { return TypePresence }
