package line

import "encoding/json"

// InboundEvent is one event from a LINE webhook delivery. Only the fields
// this service reacts to are modelled.
type InboundEvent struct {
	Type       string `json:"type"`
	ReplyToken string `json:"replyToken"`
	Source     struct {
		UserID string `json:"userId"`
	} `json:"source"`
	Message struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"message"`
}

// ParseWebhookBody extracts the events array from a raw webhook body.
func ParseWebhookBody(body []byte) ([]InboundEvent, error) {
	var payload struct {
		Events []InboundEvent `json:"events"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	return payload.Events, nil
}
