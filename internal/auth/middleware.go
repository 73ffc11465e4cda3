package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	dom "github.com/shivraj-io/Caption-io-Backend/internal/domain"
)

// TokenCookieName is the cookie consulted before the Authorization header.
const TokenCookieName = "token"

// ContextUserKey is the gin context key holding the authenticated domain.User.
const ContextUserKey = "current_user"

// UserFinder resolves a token's subject against the credential store.
type UserFinder interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (dom.User, error)
}

// CurrentUser returns the user set by RequireAuth.
func CurrentUser(c *gin.Context) (dom.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return dom.User{}, false
	}
	u, ok := v.(dom.User)
	return u, ok
}

// RequireAuth returns a middleware that extracts a bearer token from the
// token cookie or the Authorization header (cookie wins if both present),
// verifies it and loads the user into context. Any failure is a generic 401.
func RequireAuth(tokens *Issuer, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}
		claims, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}
		id, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}
		u, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}
		c.Set(ContextUserKey, u)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
