package domain

import "time"

// EventType ledger activity kind
type EventType string

const (
	// EventMessagePosted new message on a page
	EventMessagePosted EventType = "message.posted"
	// EventMessageReplied owner replied
	EventMessageReplied EventType = "message.replied"
	// EventVisibilityChanged owner hid or revealed a message
	EventVisibilityChanged EventType = "message.visibility_changed"
)

// Event ledger activity, published after commit
type Event struct {
	Type       EventType `json:"type"`
	MemberID   string    `json:"memberId"`
	MessageID  string    `json:"messageId"`
	MessageNo  int64     `json:"messageNo"`
	Deny       bool      `json:"deny"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewEvent build an event for m
func NewEvent(t EventType, m *Message) Event {
	return Event{
		Type:       t,
		MemberID:   m.MemberID,
		MessageID:  m.ID,
		MessageNo:  m.MessageNo,
		Deny:       m.Deny,
		OccurredAt: time.Now().UTC(),
	}
}
