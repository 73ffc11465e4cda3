package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	dom "github.com/shivraj-io/Caption-io-Backend/internal/domain"
)

// UserRepo provides user persistence.
type UserRepo interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (dom.User, error)
	GetByEmail(ctx context.Context, email string) (dom.User, error)
	// GetByEmailOrUsername returns any user matching either field.
	GetByEmailOrUsername(ctx context.Context, email, username string) (dom.User, error)
	Create(ctx context.Context, u dom.User) (dom.User, error)
}

// MongoUserRepo implements UserRepo over the users collection.
type MongoUserRepo struct {
	col *mongo.Collection
}

// NewMongoUserRepo returns a new MongoUserRepo.
func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{col: db.Collection("users")}
}

// GetByID returns the user by id. mongo.ErrNoDocuments if absent.
func (r *MongoUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (dom.User, error) {
	var u dom.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	return u, err
}

// GetByEmail returns the user by email. mongo.ErrNoDocuments if absent.
func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	var u dom.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	return u, err
}

// GetByEmailOrUsername returns a user matching either field, used for the
// pre-insert conflict check. mongo.ErrNoDocuments if neither matches.
func (r *MongoUserRepo) GetByEmailOrUsername(ctx context.Context, email, username string) (dom.User, error) {
	var u dom.User
	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"username": username},
	}}
	err := r.col.FindOne(ctx, filter).Decode(&u)
	return u, err
}

// Create inserts a new user and returns it with id and timestamps set.
func (r *MongoUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		return dom.User{}, err
	}
	return u, nil
}
