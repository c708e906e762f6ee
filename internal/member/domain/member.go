package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrMemberNotFound no member for the given uid / screen name
	ErrMemberNotFound = errors.New("member not found")
	// ErrScreenNameTaken screen name is held by another uid
	ErrScreenNameTaken = errors.New("screen name already in use")
	// ErrInvalidEmail email has no local part
	ErrInvalidEmail = errors.New("email has no local part")
)

// Member 用來表示使用者, _id 為 provider uid
type Member struct {
	UID         string    `bson:"_id" json:"uid"`
	Email       string    `bson:"email" json:"email"`
	DisplayName string    `bson:"display_name" json:"displayName"`
	PhotoURL    string    `bson:"photo_url" json:"photoURL"`
	ScreenName  string    `bson:"screen_name" json:"screenName"`
	CreatedAt   time.Time `bson:"created_at" json:"-"`
	// MessageCount nil 表示尚未有任何留言
	MessageCount *int64 `bson:"message_count,omitempty" json:"-"`
}

// ScreenNameRecord screen_names document, profile copy keyed by screen name
type ScreenNameRecord struct {
	ScreenName  string    `bson:"_id"`
	UID         string    `bson:"uid"`
	Email       string    `bson:"email"`
	DisplayName string    `bson:"display_name"`
	PhotoURL    string    `bson:"photo_url"`
	CreatedAt   time.Time `bson:"created_at"`
}

// NewScreenNameRecord copy m's profile
func NewScreenNameRecord(m *Member) *ScreenNameRecord {
	return &ScreenNameRecord{
		ScreenName:  m.ScreenName,
		UID:         m.UID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		PhotoURL:    m.PhotoURL,
		CreatedAt:   m.CreatedAt,
	}
}

// ToMember rebuild the member profile
func (r *ScreenNameRecord) ToMember() *Member {
	return &Member{
		UID:         r.UID,
		Email:       r.Email,
		DisplayName: r.DisplayName,
		PhotoURL:    r.PhotoURL,
		ScreenName:  r.ScreenName,
		CreatedAt:   r.CreatedAt,
	}
}

// RegisterReq identity asserted by the provider
type RegisterReq struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// RegisterResult outcome of Register
type RegisterResult struct {
	MemberID   string
	ScreenName string
	// Created false 表示會員已存在
	Created bool
}

// ScreenNameFromEmail strip suffix when email ends with it, otherwise take the local part
func ScreenNameFromEmail(email, suffix string) (string, error) {
	email = strings.TrimSpace(email)
	if suffix != "" && strings.HasSuffix(email, suffix) {
		name := strings.TrimSuffix(email, suffix)
		if name == "" {
			return "", ErrInvalidEmail
		}
		return name, nil
	}

	at := strings.Index(email, "@")
	switch {
	case at == 0:
		return "", ErrInvalidEmail
	case at < 0:
		if email == "" {
			return "", ErrInvalidEmail
		}
		return email, nil
	}
	return email[:at], nil
}
