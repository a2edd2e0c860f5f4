package messages

// FrameType identifies what a hub frame carries.
type FrameType uint8

// Client to server frames
const (
	// FrameTypeClientJoin announces the client's name and channel
	FrameTypeClientJoin FrameType = iota + 1
	// FrameTypeClientMessage posts Text to ChannelID
	FrameTypeClientMessage
	// FrameTypeClientReaction reacts with Symbol to MessageID
	FrameTypeClientReaction
)

// Server to client frames
const (
	// FrameTypeServerWelcome confirms a join and carries the assigned name in Author
	FrameTypeServerWelcome FrameType = iota + 16
	// FrameTypeServerPost announces a new message
	FrameTypeServerPost
	// FrameTypeServerEdit replaces the text of MessageID
	FrameTypeServerEdit
	// FrameTypeServerReactionAdd announces a reaction by Author
	FrameTypeServerReactionAdd
	// FrameTypeServerReactionRemove withdraws a reaction by Author
	FrameTypeServerReactionRemove
	// FrameTypeServerError reports a rejected client frame in Text
	FrameTypeServerError
)

func (t FrameType) String() string {
	switch t {
	case FrameTypeClientJoin:
		return "join"
	case FrameTypeClientMessage:
		return "message"
	case FrameTypeClientReaction:
		return "reaction"
	case FrameTypeServerWelcome:
		return "welcome"
	case FrameTypeServerPost:
		return "post"
	case FrameTypeServerEdit:
		return "edit"
	case FrameTypeServerReactionAdd:
		return "reaction_add"
	case FrameTypeServerReactionRemove:
		return "reaction_remove"
	case FrameTypeServerError:
		return "error"
	default:
		return "unknown"
	}
}

// Frame is one unit exchanged between the hub and its clients. Unused
// fields are left empty.
type Frame struct {
	Type      FrameType
	ChannelID string
	MessageID string
	Author    string
	Text      string
	Symbol    string
}
