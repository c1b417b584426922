package bar

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Icon references an image shown next to the action label.
// The empty Icon means no icon. Hosts decide how to resolve it
// (icon theme name, file path, glyph).
type Icon string

// NoIcon is the absent icon.
const NoIcon Icon = ""

// Message is an immutable unit of content for the bar.
// The zero value is an empty message with no action and no token.
type Message[T any] struct {
	id          string
	text        string
	actionLabel string
	hasAction   bool
	icon        Icon
	token       T
	hasToken    bool
}

// NewMessage creates a text-only message with a fresh ULID.
func NewMessage[T any](text string) Message[T] {
	return Message[T]{
		id:   newID(),
		text: text,
	}
}

// WithAction returns a copy of m carrying an action button.
func (m Message[T]) WithAction(label string, icon Icon) Message[T] {
	m.actionLabel = label
	m.hasAction = true
	m.icon = icon
	return m
}

// WithToken returns a copy of m carrying a correlation token.
func (m Message[T]) WithToken(token T) Message[T] {
	m.token = token
	m.hasToken = true
	return m
}

// ID returns the message identifier.
func (m Message[T]) ID() string {
	return m.id
}

// Text returns the message text.
func (m Message[T]) Text() string {
	return m.text
}

// Action returns the action label and whether the message has one.
func (m Message[T]) Action() (string, bool) {
	return m.actionLabel, m.hasAction
}

// HasAction reports whether an action button should be shown.
func (m Message[T]) HasAction() bool {
	return m.hasAction
}

// Icon returns the action icon.
func (m Message[T]) Icon() Icon {
	return m.icon
}

// Token returns the correlation token and whether one was set.
func (m Message[T]) Token() (T, bool) {
	return m.token, m.hasToken
}

func newID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return ulid.Make().String()
	}
	return id.String()
}
