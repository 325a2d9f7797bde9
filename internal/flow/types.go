// Package flow implements the intake conversation state machine. It is
// transport-neutral: inbound updates arrive as Events, outbound
// messages leave as Replies with abstract keyboard layouts, and the
// Telegram adapter does the rendering. This keeps every transition
// testable without a bot connection.
package flow

// Event is one inbound user action.
type Event struct {
	UserID   int64
	Username string
	Command  string // command name without the slash, "" otherwise
	Text     string // message text, "" for callbacks
	Callback string // callback payload, "" for messages
}

// Button is one keyboard button. Inline buttons carry a callback token
// and/or a URL; reply buttons carry only a label.
type Button struct {
	Label    string
	Callback string
	URL      string
}

// Keyboard describes a reply or inline keyboard, or (Remove) an
// instruction to hide the current reply keyboard.
type Keyboard struct {
	Inline bool
	Rows   [][]Button
	Remove bool
}

// Reply is one outbound message.
type Reply struct {
	Text      string
	Keyboard  *Keyboard
	PhotoPath string // when set, sent as a photo with Text as caption
}
