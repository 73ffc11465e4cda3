package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a published image with its caption. FileID is the storage provider's
// deletion handle; empty for records created before the handle was stored.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Caption   string             `bson:"caption"`
	Image     string             `bson:"image"`
	FileID    string             `bson:"fileId,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// Owner is the public summary of a post's author, populated in responses only.
type Owner struct {
	Username string `bson:"username"`
	Email    string `bson:"email"`
}

// PostWithOwner is a Post joined with its owner summary, as produced by the
// list aggregation.
type PostWithOwner struct {
	Post  `bson:",inline"`
	Owner Owner `bson:"owner"`
}
