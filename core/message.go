package core

import (
	"fmt"
	"strings"
)

// Delimiter separates the sender name from the text in a chat payload.
const Delimiter = ":"

// Message is one chat line as carried inside a frame: "<From>:<Text>".
type Message struct {
	From string
	Text string
}

// NewMessage builds a message sent by from.
func NewMessage(from, text string) Message {
	return Message{From: from, Text: text}
}

// Encode returns the wire payload of the message.
func (m Message) Encode() []byte {
	return []byte(m.From + Delimiter + m.Text)
}

// ParseMessage decodes a frame payload. Only the first delimiter splits sender from text,
// so the text itself may contain colons.
func ParseMessage(payload []byte) (Message, error) {
	from, text, found := strings.Cut(string(payload), Delimiter)
	if !found {
		return Message{}, fmt.Errorf("%w: %q", ErrMissingDelimiter, payload)
	}
	return Message{From: from, Text: text}, nil
}

// ValidUsername reports whether name can be used as a sender: non-empty and free of the delimiter.
func ValidUsername(name string) bool {
	return name != "" && !strings.Contains(name, Delimiter)
}
