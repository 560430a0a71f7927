package line

// TextMessage builds a plain text message.
func TextMessage(text string) Message {
	return Message{"type": "text", "text": text}
}

// StatusFlexMessage builds the rich card pushed on a status change: ticket
// short code, the new status label, and a deep link to the history page.
func StatusFlexMessage(repairShortID, statusLabel, detailURL string) Message {
	return Message{
		"type":    "flex",
		"altText": "สถานะการซ่อมอัพเดท",
		"contents": Message{
			"type": "bubble",
			"body": Message{
				"type":   "box",
				"layout": "vertical",
				"contents": []Message{
					{"type": "text", "text": "สถานะการซ่อม", "weight": "bold", "size": "xl", "color": "#00B900"},
					{"type": "text", "text": "รหัสใบซ่อม: " + repairShortID, "size": "xs", "color": "#aaaaaa", "margin": "sm"},
					{"type": "separator", "margin": "md"},
					{"type": "text", "text": statusLabel, "size": "xl", "align": "center", "margin": "lg", "weight": "bold"},
				},
			},
			"footer": Message{
				"type":   "box",
				"layout": "vertical",
				"contents": []Message{
					{
						"type": "button",
						"action": Message{
							"type":  "uri",
							"label": "ดูรายละเอียด",
							"uri":   detailURL,
						},
						"style": "primary",
						"color": "#00B900",
					},
				},
			},
		},
	}
}

// ButtonsTemplate builds a single-button template message used for the
// registration and repair-intake deep links.
func ButtonsTemplate(altText, text, label, uri string) Message {
	return Message{
		"type":    "template",
		"altText": altText,
		"template": Message{
			"type": "buttons",
			"text": text,
			"actions": []Message{
				{"type": "uri", "label": label, "uri": uri},
			},
		},
	}
}
