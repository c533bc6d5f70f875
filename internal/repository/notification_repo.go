package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fathima-sithara/social-api/internal/models"
)

type NotificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(coll *mongo.Collection) *NotificationRepository {
	// serves both the feed query and the unread-count query
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "recipient", Value: 1}, {Key: "is_read", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("recipient_unread_idx"),
	}
	_, _ = coll.Indexes().CreateOne(context.Background(), idx)
	return &NotificationRepository{coll: coll}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *models.Notification) error {
	_, err := r.coll.InsertOne(ctx, n)
	return err
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipient string, limit int64) ([]*models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cur, err := r.coll.Find(ctx, bson.M{"recipient": recipient}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*models.Notification
	for cur.Next(ctx) {
		var n models.Notification
		if err := cur.Decode(&n); err != nil {
			return nil, err
		}
		out = append(out, &n)
	}
	return out, cur.Err()
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipient string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"recipient": recipient, "is_read": false})
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipient string) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"recipient": recipient, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	return err
}

// MarkRead flips one notification, scoped to the recipient so a user cannot
// dismiss someone else's notification by guessing ids.
func (r *NotificationRepository) MarkRead(ctx context.Context, recipient, id string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "recipient": recipient},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
