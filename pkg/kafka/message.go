package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message is the transport-neutral envelope for booking events.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

type MessageBuilder struct {
	msg Message
}

func NewMessage() *MessageBuilder {
	return &MessageBuilder{
		msg: Message{
			Headers:   make(map[string]string),
			Timestamp: time.Now(),
		},
	}
}

func (mb *MessageBuilder) WithKey(key string) *MessageBuilder {
	mb.msg.Key = key
	return mb
}

// WithValue JSON-encodes the payload. Encoding failures leave Value empty and
// surface as ErrEmptyValue at publish time.
func (mb *MessageBuilder) WithValue(value any) *MessageBuilder {
	data, err := json.Marshal(value)
	if err != nil {
		mb.msg.Value = nil
		return mb
	}
	mb.msg.Value = data
	return mb
}

func (mb *MessageBuilder) WithEventType(eventType string) *MessageBuilder {
	mb.msg.Headers[HeaderEventType] = eventType
	return mb
}

func (mb *MessageBuilder) WithSource(source string) *MessageBuilder {
	mb.msg.Headers[HeaderSource] = source
	return mb
}

func (mb *MessageBuilder) Build() Message {
	if mb.msg.Headers[HeaderEventID] == "" {
		mb.msg.Headers[HeaderEventID] = uuid.NewString()
	}
	if mb.msg.Headers[HeaderTimestamp] == "" {
		mb.msg.Headers[HeaderTimestamp] = mb.msg.Timestamp.Format(time.RFC3339)
	}
	return mb.msg
}

// MessageHandler processes a consumed message; a non-nil error marks failure.
type MessageHandler func(ctx context.Context, msg Message) error

func (m *Message) DecodeValue(v any) error {
	return json.Unmarshal(m.Value, v)
}

func (m *Message) EventType() string {
	return m.Headers[HeaderEventType]
}

func (m *Message) EventID() string {
	return m.Headers[HeaderEventID]
}
