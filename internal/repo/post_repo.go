package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	dom "github.com/shivraj-io/Caption-io-Backend/internal/domain"
)

// PostRepo provides post persistence.
type PostRepo interface {
	Create(ctx context.Context, p dom.Post) (dom.Post, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (dom.Post, error)
	// ListByOwner returns the owner's newest posts with the owner summary
	// joined in, capped at limit.
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID, limit int64) ([]dom.PostWithOwner, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoPostRepo implements PostRepo over the posts collection.
type MongoPostRepo struct {
	col *mongo.Collection
}

// NewMongoPostRepo returns a new MongoPostRepo.
func NewMongoPostRepo(db *mongo.Database) *MongoPostRepo {
	return &MongoPostRepo{col: db.Collection("posts")}
}

// Create inserts a new post and returns it with id and timestamps set.
func (r *MongoPostRepo) Create(ctx context.Context, p dom.Post) (dom.Post, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return dom.Post{}, err
	}
	return p, nil
}

// GetByID returns the post by id. mongo.ErrNoDocuments if absent.
func (r *MongoPostRepo) GetByID(ctx context.Context, id primitive.ObjectID) (dom.Post, error) {
	var p dom.Post
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	return p, err
}

// ListByOwner joins each post with its owner's username and email via $lookup,
// newest first.
func (r *MongoPostRepo) ListByOwner(ctx context.Context, ownerID primitive.ObjectID, limit int64) ([]dom.PostWithOwner, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"userId": ownerID}}},
		bson.D{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "owner",
		}}},
		bson.D{{Key: "$unwind", Value: "$owner"}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := make([]dom.PostWithOwner, 0)
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Delete removes the post record. mongo.ErrNoDocuments if nothing matched.
func (r *MongoPostRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
