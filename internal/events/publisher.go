package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/fathima-sithara/social-api/internal/models"
)

// MessageSentEvent is published after a message append commits. The
// websocket fan-out service consumes it; delivery transport is not this
// service's concern.
type MessageSentEvent struct {
	ConversationID string    `json:"conversation_id"`
	MessageID      string    `json:"message_id"`
	Sender         string    `json:"sender"`
	Text           string    `json:"text,omitempty"`
	Image          string    `json:"image,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	})
	return &Producer{writer: w}
}

func (p *Producer) PublishMessageSent(ctx context.Context, conversationID string, msg *models.Message) error {
	ev := MessageSentEvent{
		ConversationID: conversationID,
		MessageID:      msg.ID,
		Sender:         msg.Sender,
		Text:           msg.Text,
		Image:          msg.Image,
		CreatedAt:      msg.CreatedAt,
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(conversationID),
		Value: b,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error { return p.writer.Close() }
