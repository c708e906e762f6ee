package domain

import (
	"errors"
	"time"
)

var (
	// ErrMemberNotFound owning member does not exist
	ErrMemberNotFound = errors.New("member not found")
	// ErrMessageNotFound message does not exist under the member
	ErrMessageNotFound = errors.New("message not found")
	// ErrAlreadyReplied reply may be set at most once
	ErrAlreadyReplied = errors.New("message already replied")
)

// TimeLayout UTC ISO-8601 with milliseconds
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Author optional poster info, nil 表示匿名
type Author struct {
	DisplayName string `json:"displayName" bson:"display_name"`
	PhotoURL    string `json:"photoURL,omitempty" bson:"photo_url,omitempty"`
}

// Message one entry of a member's ledger
type Message struct {
	ID        string
	MemberID  string
	MessageNo int64
	Body      string
	Author    *Author
	Reply     string
	ReplyAt   *time.Time
	CreateAt  time.Time
	Deny      bool
}

// HasReply report whether the reply was already set
func (m *Message) HasReply() bool {
	return m.Reply != ""
}

// Redacted copy of m with the body replaced when deny is set
func (m *Message) Redacted(placeholder string) *Message {
	out := *m
	if out.Deny {
		out.Body = placeholder
	}
	return &out
}

// MessageView message JSON
type MessageView struct {
	ID        string  `json:"id"`
	MessageNo int64   `json:"messageNo"`
	Message   string  `json:"message"`
	Reply     string  `json:"reply,omitempty"`
	Author    *Author `json:"author,omitempty"`
	Deny      bool    `json:"deny"`
	CreateAt  string  `json:"createAt"`
	ReplyAt   string  `json:"replyAt,omitempty"`
}

// View convert to MessageView
func (m *Message) View() MessageView {
	v := MessageView{
		ID:        m.ID,
		MessageNo: m.MessageNo,
		Message:   m.Body,
		Reply:     m.Reply,
		Author:    m.Author,
		Deny:      m.Deny,
		CreateAt:  FormatTime(m.CreateAt),
	}
	if m.ReplyAt != nil {
		v.ReplyAt = FormatTime(*m.ReplyAt)
	}
	return v
}

// FormatTime format t as UTC TimeLayout
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// PostReq post a message to MemberID's page
type PostReq struct {
	MemberID string  `json:"uid"`
	Body     string  `json:"message"`
	Author   *Author `json:"author,omitempty"`
}

// NormalizedAuthor author 只有在 displayName 非空時保留
func (r PostReq) NormalizedAuthor() *Author {
	if r.Author == nil || r.Author.DisplayName == "" {
		return nil
	}
	a := *r.Author
	return &a
}
