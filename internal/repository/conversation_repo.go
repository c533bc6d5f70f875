package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fathima-sithara/social-api/internal/models"
)

// ConversationRepository owns the conversations collection. It is a dumb
// persistence layer: status-transition legality is the service's job.
type ConversationRepository struct {
	coll *mongo.Collection
}

func NewConversationRepository(coll *mongo.Collection) *ConversationRepository {
	// unique index on the canonical pair key; this is the invariant that
	// makes concurrent create calls for the same pair collapse to one doc
	idx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "pair_key", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("pair_key_uniq"),
		},
		{
			Keys:    bson.D{{Key: "participants", Value: 1}, {Key: "last_message_at", Value: -1}},
			Options: options.Index().SetName("participants_recent_idx"),
		},
	}
	_, _ = coll.Indexes().CreateMany(context.Background(), idx)
	return &ConversationRepository{coll: coll}
}

func (r *ConversationRepository) FindByPair(ctx context.Context, userA, userB string) (*models.Conversation, error) {
	var c models.Conversation
	err := r.coll.FindOne(ctx, bson.M{"pair_key": PairKey(userA, userB)}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ConversationRepository) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	var c models.Conversation
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// CreateIfAbsent inserts conv, treating a duplicate pair key as "someone else
// won the race": the surviving document is fetched and returned instead.
func (r *ConversationRepository) CreateIfAbsent(ctx context.Context, conv *models.Conversation) (*models.Conversation, error) {
	now := time.Now().UTC()
	conv.PairKey = PairKey(conv.Participants[0], conv.Participants[1])
	conv.CreatedAt = now
	conv.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, conv); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.FindByPair(ctx, conv.Participants[0], conv.Participants[1])
		}
		return nil, err
	}
	return conv, nil
}

func (r *ConversationRepository) SetStatus(ctx context.Context, id string, status models.ConversationStatus) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyMessage updates the denormalized last-message fields and bumps the
// unread counter after a message row has been inserted.
func (r *ConversationRepository) ApplyMessage(ctx context.Context, id string, msg *models.Message) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"last_message_text": msg.Preview(),
			"last_message_at":   msg.CreatedAt,
			"last_sender":       msg.Sender,
			"updated_at":        msg.CreatedAt,
		},
		"$inc": bson.M{"unread_count": 1},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ConversationRepository) ResetUnread(ctx context.Context, id string) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"unread_count": int64(0)}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ConversationRepository) ListForUser(ctx context.Context, userID string) ([]*models.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*models.Conversation
	for cur.Next(ctx) {
		var c models.Conversation
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, cur.Err()
}
