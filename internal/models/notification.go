package models

import "time"

type NotificationType string

const (
	NotifLike    NotificationType = "like"
	NotifComment NotificationType = "comment"
	NotifFollow  NotificationType = "follow"
	NotifMessage NotificationType = "message"
	NotifRequest NotificationType = "request"
)

type Notification struct {
	ID        string           `bson:"_id" json:"id"`
	Recipient string           `bson:"recipient" json:"recipient"`
	Sender    string           `bson:"sender" json:"sender"`
	Type      NotificationType `bson:"type" json:"type"`
	PostID    string           `bson:"post_id,omitempty" json:"post_id,omitempty"`
	ChatID    string           `bson:"chat_id,omitempty" json:"chat_id,omitempty"`
	Text      string           `bson:"text" json:"text"`
	IsRead    bool             `bson:"is_read" json:"is_read"`
	CreatedAt time.Time        `bson:"created_at" json:"created_at"`
}

// NotificationView is a notification joined with the sender display fields
// the feed UI needs for the avatar and name.
type NotificationView struct {
	Notification `bson:",inline"`
	SenderName   string `json:"sender_name,omitempty"`
	SenderPic    string `json:"sender_pic,omitempty"`
}
