package models

import "time"

type Message struct {
	ID             string    `bson:"_id" json:"id"`
	ConversationID string    `bson:"conversation_id" json:"conversation_id"`
	Sender         string    `bson:"sender" json:"sender"`
	Text           string    `bson:"text" json:"text"`
	Image          string    `bson:"image,omitempty" json:"image,omitempty"`
	Read           bool      `bson:"read" json:"read"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// Preview is the text shown in conversation list views.
func (m *Message) Preview() string {
	if m.Text != "" {
		return m.Text
	}
	if m.Image != "" {
		return "Sent an image"
	}
	return ""
}
