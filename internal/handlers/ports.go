package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	dom "github.com/shivraj-io/Caption-io-Backend/internal/domain"
)

// UserService is what the auth handler needs from the user service.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (dom.User, error)
	ValidateCredentials(ctx context.Context, email, password string) (dom.User, error)
}

// TokenIssuer signs session tokens for freshly authenticated users.
type TokenIssuer interface {
	Issue(u dom.User) (string, error)
}

// PostService is what the post handler needs from the post service.
type PostService interface {
	GenerateCaption(ctx context.Context, image []byte, mimeType string) (string, error)
	Create(ctx context.Context, owner dom.User, caption string, image []byte, fileName string) (dom.Post, error)
	List(ctx context.Context, ownerID primitive.ObjectID) ([]dom.PostWithOwner, error)
	Delete(ctx context.Context, current dom.User, id primitive.ObjectID) error
}
