package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"strings"
	"time"

	"qna_board_service/pkg"
)

const (
	//QueueName definition queue name
	QueueName = "card_render"

	// ContentType rendered card format
	ContentType = "image/jpeg"
	// CacheControl one year shared cache
	CacheControl = "s-maxage=31536000, public"
	// CardPath card page rendered for a message
	CardPath = "/open-graph-img"
)

// ErrURLNotAllowed card url is outside the board origin
var ErrURLNotAllowed = errors.New("url is not an allowed card url")

// Status render status
type Status string

const (
	// StatusPending queued for render
	StatusPending Status = "pending"
	// StatusReady stored in object storage
	StatusReady Status = "ready"
	// StatusFailed last render failed
	StatusFailed Status = "failed"
)

// RenderJob 定義 render 工作訊息
type RenderJob struct {
	CardURL     string    `json:"card_url"`
	ObjectKey   string    `json:"object_key"`
	MemberID    string    `json:"member_id,omitempty"`
	MessageID   string    `json:"message_id,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// Thumbnail 定義 thumbnail 模型
type Thumbnail struct {
	ID        uint   `gorm:"primaryKey"`
	ObjectKey string `gorm:"uniqueIndex;size:128"` // 存於 MinIO 上的 object key
	CardURL   string `gorm:"type:text"`
	MemberID  string `gorm:"index"`
	MessageID string
	Status    Status `gorm:"size:16"`
	Bytes     int
	LastError string `gorm:"type:text"`
	Renders   uint   // 成功 render 次數
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ObjectKeyFor stable object key of a card url
func ObjectKeyFor(cardURL string) string {
	sum := sha256.Sum256([]byte(cardURL))
	return "cards/" + hex.EncodeToString(sum[:]) + ".jpg"
}

// CardURL card page url for text under baseURL
func CardURL(baseURL, text string) string {
	return strings.TrimRight(baseURL, "/") + CardPath + "?text=" + url.QueryEscape(text)
}

// ValidateCardURL raw must be http(s) on baseURL's origin or one of allowedHosts (lower case)
func ValidateCardURL(raw, baseURL string, allowedHosts []string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, ErrURLNotAllowed
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrURLNotAllowed
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, ErrURLNotAllowed
	}
	if strings.EqualFold(u.Host, base.Host) && u.Scheme == base.Scheme {
		return u, nil
	}
	if pkg.Contains(allowedHosts, strings.ToLower(u.Host)) {
		return u, nil
	}
	return nil, ErrURLNotAllowed
}
