package service

import (
	"context"

	"github.com/fathima-sithara/social-api/internal/models"
)

// Store contracts the services depend on. The Mongo implementations live in
// internal/repository; tests supply in-memory doubles.

type ConversationStore interface {
	FindByPair(ctx context.Context, userA, userB string) (*models.Conversation, error)
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
	CreateIfAbsent(ctx context.Context, conv *models.Conversation) (*models.Conversation, error)
	SetStatus(ctx context.Context, id string, status models.ConversationStatus) error
	ApplyMessage(ctx context.Context, id string, msg *models.Message) error
	ResetUnread(ctx context.Context, id string) error
	ListForUser(ctx context.Context, userID string) ([]*models.Conversation, error)
}

type MessageStore interface {
	Insert(ctx context.Context, msg *models.Message) error
	ListByConversation(ctx context.Context, conversationID string) ([]*models.Message, error)
}

type NotificationStore interface {
	Insert(ctx context.Context, n *models.Notification) error
	ListByRecipient(ctx context.Context, recipient string, limit int64) ([]*models.Notification, error)
	CountUnread(ctx context.Context, recipient string) (int64, error)
	MarkAllRead(ctx context.Context, recipient string) error
	MarkRead(ctx context.Context, recipient, id string) error
}

type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetManyByIDs(ctx context.Context, ids []string) ([]*models.User, error)
}

// BadgeCache caches the unread-notification count per user. A nil cache is
// valid: every count goes to the store.
type BadgeCache interface {
	Get(ctx context.Context, userID string) (int64, bool)
	Set(ctx context.Context, userID string, count int64)
	Invalidate(ctx context.Context, userID string)
}

// EventPublisher pushes message.sent events to the stream consumed by the
// websocket fan-out service. Best effort.
type EventPublisher interface {
	PublishMessageSent(ctx context.Context, conversationID string, msg *models.Message) error
}
