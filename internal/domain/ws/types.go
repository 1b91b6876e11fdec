// internal/domain/ws/types.go
package ws

import (
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
)

// EventType represents different real-time event types
type EventType string

const (
	// Connection events
	EventTypePing         EventType = "ping"
	EventTypePong         EventType = "pong"
	EventTypeConnected    EventType = "connected"
	EventTypeDisconnected EventType = "disconnected"
	EventTypeError        EventType = "error"

	// Notification events (client -> server)
	EventTypeNotificationRead    EventType = "notification:read"
	EventTypeNotificationReadAll EventType = "notification:read_all"
	EventTypeNotificationList    EventType = "notification:list"

	// Notification events (server -> client)
	EventTypeNotification      EventType = "notification"
	EventTypeNotificationCount EventType = "notification:count"

	// System events
	EventTypeSystemAlert EventType = "system:alert"

	// Subscription events
	EventTypeSubscribe   EventType = "subscribe"
	EventTypeUnsubscribe EventType = "unsubscribe"
)

// Message is the universal frame exchanged over the socket.
type Message struct {
	Type      EventType   `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	ID        string      `json:"id,omitempty"`
}

// ChannelType names the feeds a client can subscribe to.
type ChannelType string

const (
	ChannelNotifications ChannelType = "notifications"
	ChannelSystem        ChannelType = "system"
)

// SubscribeRequest sent by a client to join channels.
type SubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

// UnsubscribeRequest sent by a client to leave channels.
type UnsubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

// ErrorData for error events
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SystemAlertData for system-wide alerts
type SystemAlertData struct {
	Severity string `json:"severity"` // info, warning, critical
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// NewMessage stamps a frame with a ULID so clients can acknowledge it.
func NewMessage(eventType EventType, data interface{}) *Message {
	return &Message{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
		ID:        ulid.Make().String(),
	}
}

func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	err := json.Unmarshal(data, &msg)
	return &msg, err
}
