package models

import "time"

type ConversationStatus string

const (
	StatusPending  ConversationStatus = "pending"
	StatusAccepted ConversationStatus = "accepted"
	StatusBlocked  ConversationStatus = "blocked" // reserved for moderation
)

// Conversation is a single persistent thread between exactly two users.
// Message bodies live in their own collection; the conversation document
// keeps only the denormalized last-message fields needed by list views.
type Conversation struct {
	ID              string             `bson:"_id" json:"id"`
	PairKey         string             `bson:"pair_key" json:"-"`
	Participants    []string           `bson:"participants" json:"participants"`
	Initiator       string             `bson:"initiator" json:"initiator"`
	Status          ConversationStatus `bson:"status" json:"status"`
	LastMessageText string             `bson:"last_message_text,omitempty" json:"last_message_text,omitempty"`
	LastMessageAt   time.Time          `bson:"last_message_at,omitempty" json:"last_message_at,omitempty"`
	LastSender      string             `bson:"last_sender,omitempty" json:"-"`
	UnreadCount     int64              `bson:"unread_count" json:"unread_count"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant that is not userID, or "" if
// userID is not a participant.
func (c *Conversation) OtherParticipant(userID string) string {
	if !c.HasParticipant(userID) {
		return ""
	}
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}
