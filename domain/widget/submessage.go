// Package widget holds the submessage events attached to a chat message and
// the decoding rules shared by every widget projection.
// It does not fold events into state; see package projection.
package widget

const MsgTypeWidget = "widget"

// Type identifies which projection a submessage sequence belongs to.
type Type string

const (
	TypePoll    Type = "poll"
	TypeTodo    Type = "todo"
	TypeUnknown Type = "unknown"
)

func (t Type) String() string {
	return string(t)
}

// Submessage is one immutable event attached to a message.
// Content is usually a JSON document encoded as a string, but producers are
// not trusted to respect that, hence the untyped field.
type Submessage struct {
	ID        int64  `json:"id"`
	MessageID int64  `json:"message_id"`
	SenderID  int64  `json:"sender_id"`
	MsgType   string `json:"msg_type"`
	Content   any    `json:"content"`
}

// Text returns the content when it is a string.
func (s Submessage) Text() (string, bool) {
	text, ok := s.Content.(string)
	return text, ok
}
