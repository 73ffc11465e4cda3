package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	dom "github.com/shivraj-io/Caption-io-Backend/internal/domain"
)

func testUser() dom.User {
	return dom.User{
		ID:       primitive.NewObjectID(),
		Username: "alice",
		Email:    "alice@example.com",
	}
}

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), 7*24*time.Hour)
	u := testUser()

	token, err := issuer.Issue(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), claims.UserID)
	assert.Equal(t, u.Email, claims.Email)
}

func TestIssuer_RejectsWrongSecret(t *testing.T) {
	token, err := NewIssuer([]byte("one"), time.Hour).Issue(testUser())
	require.NoError(t, err)

	_, err = NewIssuer([]byte("other"), time.Hour).Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenInvalid))
}

func TestIssuer_RejectsExpired(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), -time.Minute)
	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenExpired))
}

func TestIssuer_RejectsMalformed(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), time.Hour)

	_, err := issuer.Verify("not.a.token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenInvalid))
}
