package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fathima-sithara/social-api/internal/models"
	"github.com/fathima-sithara/social-api/internal/repository"
)

// In-memory store doubles mirroring the Mongo repository semantics: the
// conversation store enforces the canonical pair-key uniqueness the same way
// the unique index does, returning the surviving document to a losing racer.

type memConversationStore struct {
	mu     sync.Mutex
	byID   map[string]*models.Conversation
	byPair map[string]string // pair key -> conversation id
}

func newMemConversationStore() *memConversationStore {
	return &memConversationStore{
		byID:   make(map[string]*models.Conversation),
		byPair: make(map[string]string),
	}
}

func (s *memConversationStore) clone(c *models.Conversation) *models.Conversation {
	cp := *c
	cp.Participants = append([]string(nil), c.Participants...)
	return &cp
}

func (s *memConversationStore) FindByPair(_ context.Context, a, b string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byPair[repository.PairKey(a, b)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s.clone(s.byID[id]), nil
}

func (s *memConversationStore) GetByID(_ context.Context, id string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s.clone(c), nil
}

func (s *memConversationStore) CreateIfAbsent(_ context.Context, conv *models.Conversation) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := repository.PairKey(conv.Participants[0], conv.Participants[1])
	if id, ok := s.byPair[key]; ok {
		return s.clone(s.byID[id]), nil
	}
	now := time.Now().UTC()
	conv.PairKey = key
	conv.CreatedAt = now
	conv.UpdatedAt = now
	s.byID[conv.ID] = s.clone(conv)
	s.byPair[key] = conv.ID
	return s.clone(conv), nil
}

func (s *memConversationStore) SetStatus(_ context.Context, id string, status models.ConversationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *memConversationStore) ApplyMessage(_ context.Context, id string, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.LastMessageText = msg.Preview()
	c.LastMessageAt = msg.CreatedAt
	c.LastSender = msg.Sender
	c.UnreadCount++
	c.UpdatedAt = msg.CreatedAt
	return nil
}

func (s *memConversationStore) ResetUnread(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.UnreadCount = 0
	return nil
}

func (s *memConversationStore) ListForUser(_ context.Context, userID string) ([]*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Conversation
	for _, c := range s.byID {
		if c.HasParticipant(userID) {
			out = append(out, s.clone(c))
		}
	}
	// newest activity first
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].LastMessageAt.After(out[i].LastMessageAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (s *memConversationStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

type memMessageStore struct {
	mu   sync.Mutex
	rows []*models.Message
}

func (s *memMessageStore) Insert(_ context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *msg
	s.rows = append(s.rows, &cp)
	return nil
}

func (s *memMessageStore) ListByConversation(_ context.Context, conversationID string) ([]*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Message
	for _, m := range s.rows {
		if m.ConversationID == conversationID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memNotificationStore struct {
	mu        sync.Mutex
	rows      []*models.Notification
	insertErr error // injected persistence failure
}

func (s *memNotificationStore) Insert(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	cp := *n
	s.rows = append(s.rows, &cp)
	return nil
}

func (s *memNotificationStore) ListByRecipient(_ context.Context, recipient string, limit int64) ([]*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Notification
	for i := len(s.rows) - 1; i >= 0; i-- { // insertion order approximates created_at
		if s.rows[i].Recipient == recipient {
			cp := *s.rows[i]
			out = append(out, &cp)
			if int64(len(out)) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *memNotificationStore) CountUnread(_ context.Context, recipient string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.rows {
		if r.Recipient == recipient && !r.IsRead {
			n++
		}
	}
	return n, nil
}

func (s *memNotificationStore) MarkAllRead(_ context.Context, recipient string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.Recipient == recipient {
			r.IsRead = true
		}
	}
	return nil
}

func (s *memNotificationStore) MarkRead(_ context.Context, recipient, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.ID == id && r.Recipient == recipient {
			r.IsRead = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memNotificationStore) all() []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.Notification(nil), s.rows...)
}

type memUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUserStore(users ...*models.User) *memUserStore {
	m := &memUserStore{users: make(map[string]*models.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (s *memUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) GetManyByIDs(_ context.Context, ids []string) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memBadge struct {
	mu     sync.Mutex
	values map[string]int64
	dels   int
}

func newMemBadge() *memBadge { return &memBadge{values: make(map[string]int64)} }

func (b *memBadge) Get(_ context.Context, userID string) (int64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.values[userID]
	return n, ok
}

func (b *memBadge) Set(_ context.Context, userID string, count int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[userID] = count
}

func (b *memBadge) Invalidate(_ context.Context, userID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.values, userID)
	b.dels++
}

type memPublisher struct {
	mu     sync.Mutex
	events []string // conversation ids
	err    error
}

func (p *memPublisher) PublishMessageSent(_ context.Context, conversationID string, _ *models.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, conversationID)
	return nil
}

var errStorageDown = errors.New("storage down")
