package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fathima-sithara/social-api/internal/models"
	"github.com/fathima-sithara/social-api/internal/relationship"
	"github.com/fathima-sithara/social-api/internal/repository"
)

// ConversationService orchestrates the two-party chat lifecycle. The store
// owns the pair-uniqueness invariant; this layer owns transition legality
// and the notification fan-out.
type ConversationService struct {
	convs     ConversationStore
	msgs      MessageStore
	users     UserStore
	notifier  *NotificationService
	publisher EventPublisher // may be nil
	log       *zap.Logger
}

func NewConversationService(convs ConversationStore, msgs MessageStore, users UserStore, notifier *NotificationService, publisher EventPublisher, log *zap.Logger) *ConversationService {
	return &ConversationService{
		convs:     convs,
		msgs:      msgs,
		users:     users,
		notifier:  notifier,
		publisher: publisher,
		log:       log,
	}
}

// Start opens (or re-opens) the conversation between initiator and target.
// Calling it repeatedly is always safe: an existing conversation is returned
// unchanged, and a lost creation race resolves to the winner's document.
func (s *ConversationService) Start(ctx context.Context, initiator, target string) (*models.Conversation, error) {
	if initiator == target {
		return nil, ErrInvalidOperation
	}
	if conv, err := s.convs.FindByPair(ctx, initiator, target); err == nil {
		return conv, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	me, err := s.users.GetByID(ctx, initiator)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if _, err := s.users.GetByID(ctx, target); err != nil {
		return nil, translateNotFound(err)
	}

	status := relationship.DecideInitialStatus(me.Following, me.Followers, initiator, target)
	conv := &models.Conversation{
		ID:           uuid.NewString(),
		Participants: []string{initiator, target},
		Initiator:    initiator,
		Status:       status,
	}
	created, err := s.convs.CreateIfAbsent(ctx, conv)
	if err != nil {
		return nil, err
	}
	s.log.Info("conversation started",
		zap.String("conversation_id", created.ID),
		zap.String("initiator", initiator),
		zap.String("status", string(created.Status)))
	return created, nil
}

// SendMessage appends to an existing conversation. Sending never creates a
// conversation implicitly; Start is a distinct step. The message notification
// and the stream event are emitted only after the append has committed, and
// neither can fail the send.
func (s *ConversationService) SendMessage(ctx context.Context, sender, receiver, text, image string) (*models.Message, error) {
	if sender == receiver {
		return nil, ErrInvalidOperation
	}
	conv, err := s.convs.FindByPair(ctx, sender, receiver)
	if err != nil {
		return nil, translateNotFound(err)
	}

	msg := &models.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		Sender:         sender,
		Text:           text,
		Image:          image,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.msgs.Insert(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.convs.ApplyMessage(ctx, conv.ID, msg); err != nil {
		return nil, translateNotFound(err)
	}

	// side effects only after the durable append
	if err := s.notifier.Create(ctx, CreateNotification{
		Recipient: receiver,
		Sender:    sender,
		Type:      models.NotifMessage,
		ChatID:    conv.ID,
		Text:      "sent you a message.",
	}); err != nil {
		s.log.Warn("message notification rejected", zap.Error(err))
	}
	if s.publisher != nil {
		if err := s.publisher.PublishMessageSent(ctx, conv.ID, msg); err != nil {
			s.log.Warn("message.sent publish failed",
				zap.String("conversation_id", conv.ID), zap.Error(err))
		}
	}
	return msg, nil
}

func (s *ConversationService) ListConversations(ctx context.Context, userID string) ([]*models.Conversation, error) {
	return s.convs.ListForUser(ctx, userID)
}

// GetHistory returns the full message sequence between userID and partnerID,
// oldest first. A pair with no conversation yields an empty history, not an
// error: clients probe history before the conversation exists. Fetching
// history also resets the unread counter when the caller is not the author
// of the last message.
func (s *ConversationService) GetHistory(ctx context.Context, userID, partnerID string) ([]*models.Message, error) {
	conv, err := s.convs.FindByPair(ctx, userID, partnerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []*models.Message{}, nil
		}
		return nil, err
	}
	msgs, err := s.msgs.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	if conv.UnreadCount > 0 && conv.LastSender != "" && conv.LastSender != userID {
		if err := s.convs.ResetUnread(ctx, conv.ID); err != nil {
			// history is still valid; the badge will heal on the next read
			s.log.Warn("unread reset failed",
				zap.String("conversation_id", conv.ID), zap.Error(err))
		}
	}
	if msgs == nil {
		msgs = []*models.Message{}
	}
	return msgs, nil
}

// AcceptRequest moves a pending conversation to accepted. Only the recipient
// of the request may accept; the initiator cannot self-accept. Accepting an
// already-accepted conversation is a no-op success.
func (s *ConversationService) AcceptRequest(ctx context.Context, actingUser, conversationID string) (*models.Conversation, error) {
	conv, err := s.convs.GetByID(ctx, conversationID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if !conv.HasParticipant(actingUser) || conv.Initiator == actingUser {
		return nil, ErrForbidden
	}
	if conv.Status == models.StatusAccepted {
		return conv, nil
	}
	if err := s.convs.SetStatus(ctx, conv.ID, models.StatusAccepted); err != nil {
		return nil, translateNotFound(err)
	}
	conv.Status = models.StatusAccepted
	s.log.Info("chat request accepted",
		zap.String("conversation_id", conv.ID),
		zap.String("user", actingUser))
	return conv, nil
}

// ListChatPartners builds the contact list for the chat screen: everyone the
// user follows or is followed by, plus existing conversation partners, each
// annotated with the relationship flags the client sorts on.
func (s *ConversationService) ListChatPartners(ctx context.Context, userID string) ([]*models.ChatPartner, error) {
	me, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	convs, err := s.convs.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if id == "" || id == userID || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}
	for _, id := range me.Following {
		add(id)
	}
	for _, id := range me.Followers {
		add(id)
	}
	for _, c := range convs {
		add(c.OtherParticipant(userID))
	}

	users, err := s.users.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	following := toSet(me.Following)
	followers := toSet(me.Followers)
	out := make([]*models.ChatPartner, 0, len(users))
	for _, u := range users {
		out = append(out, &models.ChatPartner{
			ID:              u.ID,
			Name:            u.DisplayName(),
			ProfilePic:      u.ProfilePic,
			IsMutualFollow:  following[u.ID] && followers[u.ID],
			IsFollowRequest: !following[u.ID] && followers[u.ID],
		})
	}
	return out, nil
}

func toSet(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			m[id] = true
		}
	}
	return m
}
