package bar

import (
	"encoding/json"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// StateRecord is the persistable state of a Bar: the visible message, if
// any, and the queue behind it.
type StateRecord[T any] struct {
	Current *Message[T]  `json:"current" yaml:"current"`
	Queue   []Message[T] `json:"queue" yaml:"queue"`
}

// Empty reports whether the record holds nothing to restore.
func (r StateRecord[T]) Empty() bool {
	return r.Current == nil
}

// Len returns the number of messages in the record, current included.
func (r StateRecord[T]) Len() int {
	n := len(r.Queue)
	if r.Current != nil {
		n++
	}
	return n
}

// SaveState captures the visible message and the queue.
func (b *Bar[T]) SaveState() StateRecord[T] {
	rec := StateRecord[T]{Queue: b.queue.Snapshot()}
	if b.hasCurrent {
		current := b.current
		rec.Current = &current
	}
	return rec
}

// RestoreState replaces the bar's state with rec. Without a current message
// the bar ends hidden and any queued entries in rec are discarded. Otherwise
// the current message is shown without a fade, its hide timer restarts at the
// full delay, and the queue is restored in order.
func (b *Bar[T]) RestoreState(rec StateRecord[T]) {
	b.reset()

	if rec.Current == nil {
		if len(rec.Queue) > 0 {
			b.logger.Debug("discarding queued messages without a current message",
				"dropped", len(rec.Queue),
			)
		}
		return
	}

	b.show(*rec.Current, true)
	b.queue.Restore(rec.Queue)

	b.logger.Debug("restored message bar state",
		"message_id", rec.Current.ID(),
		"queue_size", b.queue.Len(),
	)
}

// reset returns the bar to hidden without notifying listeners.
func (b *Bar[T]) reset() {
	b.abortHide()
	b.queue.Clear()
	b.current = Message[T]{}
	b.hasCurrent = false
	b.state = StateHidden
	b.surface.SetVisible(false)
}

// messageRecord is the wire form of a Message. Field order is part of the
// format. NilToken marks a token that is present but nil.
type messageRecord[T any] struct {
	ID          string  `json:"id" yaml:"id"`
	Text        string  `json:"text" yaml:"text"`
	ActionLabel *string `json:"action_label,omitempty" yaml:"action_label,omitempty"`
	ActionIcon  Icon    `json:"action_icon,omitempty" yaml:"action_icon,omitempty"`
	Token       *T      `json:"token,omitempty" yaml:"token,omitempty"`
	NilToken    bool    `json:"nil_token,omitempty" yaml:"nil_token,omitempty"`
}

func (m Message[T]) record() messageRecord[T] {
	rec := messageRecord[T]{
		ID:         m.id,
		Text:       m.text,
		ActionIcon: m.icon,
	}
	if m.hasAction {
		label := m.actionLabel
		rec.ActionLabel = &label
	}
	if m.hasToken {
		if isNil(m.token) {
			rec.NilToken = true
		} else {
			token := m.token
			rec.Token = &token
		}
	}
	return rec
}

// isNil reports whether v is a nil pointer, slice, map, channel, func or
// interface. Such tokens would encode as null and read back as absent.
func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func (m *Message[T]) fromRecord(rec messageRecord[T]) {
	*m = Message[T]{
		id:   rec.ID,
		text: rec.Text,
		icon: rec.ActionIcon,
	}
	if m.id == "" {
		m.id = newID()
	}
	if rec.ActionLabel != nil {
		m.actionLabel = *rec.ActionLabel
		m.hasAction = true
	}
	switch {
	case rec.Token != nil:
		m.token = *rec.Token
		m.hasToken = true
	case rec.NilToken:
		m.hasToken = true
	}
}

// MarshalJSON implements json.Marshaler.
func (m Message[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.record())
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Message[T]) UnmarshalJSON(data []byte) error {
	var rec messageRecord[T]
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	m.fromRecord(rec)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m Message[T]) MarshalYAML() (interface{}, error) {
	return m.record(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Message[T]) UnmarshalYAML(node *yaml.Node) error {
	var rec messageRecord[T]
	if err := node.Decode(&rec); err != nil {
		return err
	}
	m.fromRecord(rec)
	return nil
}

// Codec converts a StateRecord to and from bytes.
type Codec[T any] interface {
	Encode(rec StateRecord[T]) ([]byte, error)
	Decode(data []byte) (StateRecord[T], error)
}

// JSONCodec encodes state records as JSON. Tokens must be JSON-serializable;
// use json.RawMessage as T to carry tokens through without interpreting them.
type JSONCodec[T any] struct{}

// Encode implements Codec.
func (JSONCodec[T]) Encode(rec StateRecord[T]) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

// Decode implements Codec.
func (JSONCodec[T]) Decode(data []byte) (StateRecord[T], error) {
	var rec StateRecord[T]
	if err := json.Unmarshal(data, &rec); err != nil {
		return StateRecord[T]{}, fmt.Errorf("failed to decode state: %w", err)
	}
	return rec, nil
}

// YAMLCodec encodes state records as YAML.
type YAMLCodec[T any] struct{}

// Encode implements Codec.
func (YAMLCodec[T]) Encode(rec StateRecord[T]) ([]byte, error) {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

// Decode implements Codec.
func (YAMLCodec[T]) Decode(data []byte) (StateRecord[T], error) {
	var rec StateRecord[T]
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return StateRecord[T]{}, fmt.Errorf("failed to decode state: %w", err)
	}
	return rec, nil
}
