package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/fathima-sithara/social-api/internal/models"
	"github.com/fathima-sithara/social-api/internal/service"
)

// SocialEvent is the envelope the follow/like/comment handlers publish after
// their own state change commits. Each event becomes at most one
// notification; a malformed or failed event is logged and skipped, never
// retried into a notification storm.
type SocialEvent struct {
	Type      string `json:"type"` // follow | like | comment
	ActorID   string `json:"actor_id"`
	TargetID  string `json:"target_id"` // recipient user id
	PostID    string `json:"post_id,omitempty"`
	Text      string `json:"text,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

type Consumer struct {
	reader   *kafka.Reader
	notifier *service.NotificationService
	log      *zap.Logger
}

func NewConsumer(brokers []string, topic, groupID string, notifier *service.NotificationService, log *zap.Logger) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{reader: r, notifier: notifier, log: log}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			c.log.Error("social.events read failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		c.handle(ctx, m.Value)
	}
}

func (c *Consumer) handle(ctx context.Context, raw []byte) {
	var ev SocialEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		c.log.Warn("social event decode failed", zap.Error(err))
		return
	}
	in, ok := ev.Notification()
	if !ok {
		c.log.Warn("unknown social event type", zap.String("type", ev.Type))
		return
	}
	if err := c.notifier.Create(ctx, in); err != nil {
		c.log.Warn("social event rejected", zap.String("type", ev.Type), zap.Error(err))
	}
}

// Notification maps the event onto a notification payload. The second return
// is false for event types this consumer does not understand.
func (ev SocialEvent) Notification() (service.CreateNotification, bool) {
	in := service.CreateNotification{
		Recipient: ev.TargetID,
		Sender:    ev.ActorID,
		Text:      ev.Text,
	}
	switch ev.Type {
	case "follow":
		in.Type = models.NotifFollow
		if in.Text == "" {
			in.Text = "started following you."
		}
	case "like":
		in.Type = models.NotifLike
		in.PostID = ev.PostID
		if in.Text == "" {
			in.Text = "liked your post."
		}
	case "comment":
		in.Type = models.NotifComment
		in.PostID = ev.PostID
		if in.Text == "" {
			in.Text = "commented on your post."
		}
	default:
		return service.CreateNotification{}, false
	}
	return in, true
}

func (c *Consumer) Close() error { return c.reader.Close() }
