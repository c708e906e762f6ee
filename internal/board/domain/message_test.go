package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedacted(t *testing.T) {
	m := &Message{ID: "m1", Body: "secret", Deny: true}
	r := m.Redacted("hidden")
	assert.Equal(t, "hidden", r.Body)
	assert.Equal(t, "secret", m.Body)

	m.Deny = false
	assert.Equal(t, "secret", m.Redacted("hidden").Body)
}

func TestViewJSON(t *testing.T) {
	createAt := time.Date(2024, 3, 1, 9, 30, 0, 123000000, time.FixedZone("KST", 9*3600))
	m := &Message{ID: "m1", MessageNo: 2, Body: "hi", CreateAt: createAt}

	raw, err := json.Marshal(m.View())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"m1","messageNo":2,"message":"hi","deny":false,"createAt":"2024-03-01T00:30:00.123Z"}`, string(raw))

	replyAt := createAt.Add(time.Minute)
	m.Reply = "yo"
	m.ReplyAt = &replyAt
	m.Author = &Author{DisplayName: "Bob"}
	raw, err = json.Marshal(m.View())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"m1","messageNo":2,"message":"hi","reply":"yo","author":{"displayName":"Bob"},"deny":false,"createAt":"2024-03-01T00:30:00.123Z","replyAt":"2024-03-01T00:31:00.123Z"}`, string(raw))
}

func TestNormalizedAuthor(t *testing.T) {
	assert.Nil(t, PostReq{}.NormalizedAuthor())
	assert.Nil(t, PostReq{Author: &Author{PhotoURL: "p"}}.NormalizedAuthor())
	assert.Equal(t, &Author{DisplayName: "A"}, PostReq{Author: &Author{DisplayName: "A"}}.NormalizedAuthor())
}
