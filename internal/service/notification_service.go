package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fathima-sithara/social-api/internal/models"
)

const DefaultNotificationLimit = 50

// CreateNotification is the tagged payload for NotificationService.Create.
// Which correlation id is legal depends on Type: like/comment carry PostID,
// message/request carry ChatID, follow carries neither.
type CreateNotification struct {
	Recipient string
	Sender    string
	Type      models.NotificationType
	Text      string
	PostID    string
	ChatID    string
}

func (in *CreateNotification) validate() error {
	if in.Recipient == "" || in.Sender == "" {
		return fmt.Errorf("%w: recipient and sender required", ErrInvalidOperation)
	}
	switch in.Type {
	case models.NotifLike, models.NotifComment:
		if in.PostID == "" || in.ChatID != "" {
			return fmt.Errorf("%w: %s notification requires post_id only", ErrInvalidOperation, in.Type)
		}
	case models.NotifMessage, models.NotifRequest:
		if in.ChatID == "" || in.PostID != "" {
			return fmt.Errorf("%w: %s notification requires chat_id only", ErrInvalidOperation, in.Type)
		}
	case models.NotifFollow:
		if in.PostID != "" || in.ChatID != "" {
			return fmt.Errorf("%w: follow notification carries no correlation id", ErrInvalidOperation)
		}
	default:
		return fmt.Errorf("%w: unknown notification type %q", ErrInvalidOperation, in.Type)
	}
	return nil
}

type NotificationService struct {
	store NotificationStore
	users UserStore
	badge BadgeCache // may be nil
	log   *zap.Logger
}

func NewNotificationService(store NotificationStore, users UserStore, badge BadgeCache, log *zap.Logger) *NotificationService {
	return &NotificationService{store: store, users: users, badge: badge, log: log}
}

// Create persists a notification as a side effect of a domain event. A
// self-triggered event (liking your own post) is a silent no-op. A storage
// failure is logged and swallowed: the caller's primary action must never be
// unwound because the notification row did not land. Only a malformed
// payload is reported back, since that is a caller bug, not a delivery
// failure.
func (s *NotificationService) Create(ctx context.Context, in CreateNotification) error {
	if err := in.validate(); err != nil {
		return err
	}
	if in.Recipient == in.Sender {
		return nil
	}
	n := &models.Notification{
		ID:        uuid.NewString(),
		Recipient: in.Recipient,
		Sender:    in.Sender,
		Type:      in.Type,
		PostID:    in.PostID,
		ChatID:    in.ChatID,
		Text:      in.Text,
		IsRead:    false,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, n); err != nil {
		s.log.Warn("notification insert failed",
			zap.String("recipient", in.Recipient),
			zap.String("type", string(in.Type)),
			zap.Error(err))
		return nil
	}
	if s.badge != nil {
		s.badge.Invalidate(ctx, in.Recipient)
	}
	s.log.Debug("notification created",
		zap.String("recipient", in.Recipient),
		zap.String("sender", in.Sender),
		zap.String("type", string(in.Type)))
	return nil
}

// List returns the recipient's feed, newest first, joined with the sender
// display fields the UI needs. Senders that no longer resolve (deleted
// accounts) are returned without display fields rather than dropped.
func (s *NotificationService) List(ctx context.Context, recipient string, limit int64) ([]*models.NotificationView, error) {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}
	rows, err := s.store.ListByRecipient(ctx, recipient, limit)
	if err != nil {
		return nil, err
	}
	senderIDs := make([]string, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, n := range rows {
		if !seen[n.Sender] {
			seen[n.Sender] = true
			senderIDs = append(senderIDs, n.Sender)
		}
	}
	senders, err := s.users.GetManyByIDs(ctx, senderIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.User, len(senders))
	for _, u := range senders {
		byID[u.ID] = u
	}
	out := make([]*models.NotificationView, 0, len(rows))
	for _, n := range rows {
		v := &models.NotificationView{Notification: *n}
		if u, ok := byID[n.Sender]; ok {
			v.SenderName = u.DisplayName()
			v.SenderPic = u.ProfilePic
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipient string) (int64, error) {
	if s.badge != nil {
		if n, ok := s.badge.Get(ctx, recipient); ok {
			return n, nil
		}
	}
	n, err := s.store.CountUnread(ctx, recipient)
	if err != nil {
		return 0, err
	}
	if s.badge != nil {
		s.badge.Set(ctx, recipient, n)
	}
	return n, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipient string) error {
	if err := s.store.MarkAllRead(ctx, recipient); err != nil {
		return err
	}
	if s.badge != nil {
		s.badge.Invalidate(ctx, recipient)
	}
	return nil
}

func (s *NotificationService) MarkRead(ctx context.Context, recipient, id string) error {
	if err := s.store.MarkRead(ctx, recipient, id); err != nil {
		return translateNotFound(err)
	}
	if s.badge != nil {
		s.badge.Invalidate(ctx, recipient)
	}
	return nil
}
