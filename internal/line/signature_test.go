package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestValidateSignature(t *testing.T) {
	secret := "channel-secret"
	body := []byte(`{"events":[]}`)

	assert.True(t, ValidateSignature(secret, body, sign(secret, body)))
	assert.False(t, ValidateSignature(secret, body, sign("other-secret", body)))
	assert.False(t, ValidateSignature(secret, []byte(`tampered`), sign(secret, body)))
	assert.False(t, ValidateSignature(secret, body, "not-base64!!!"))
	assert.False(t, ValidateSignature(secret, body, ""))
	assert.False(t, ValidateSignature("", body, sign(secret, body)))
}

func TestParseWebhookBody(t *testing.T) {
	body := []byte(`{
		"destination": "Uabc",
		"events": [
			{
				"type": "message",
				"replyToken": "reply-1",
				"source": {"userId": "U0001", "type": "user"},
				"message": {"id": "m1", "type": "text", "text": "ส่งซ่อม"}
			},
			{
				"type": "follow",
				"replyToken": "reply-2",
				"source": {"userId": "U0002", "type": "user"}
			}
		]
	}`)

	events, err := ParseWebhookBody(body)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "message", events[0].Type)
	assert.Equal(t, "reply-1", events[0].ReplyToken)
	assert.Equal(t, "U0001", events[0].Source.UserID)
	assert.Equal(t, "ส่งซ่อม", events[0].Message.Text)
	assert.Equal(t, "follow", events[1].Type)

	_, err = ParseWebhookBody([]byte("not json"))
	assert.Error(t, err)

	empty, err := ParseWebhookBody([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
