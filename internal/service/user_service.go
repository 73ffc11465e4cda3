package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	dom "github.com/shivraj-io/Caption-io-Backend/internal/domain"
	"github.com/shivraj-io/Caption-io-Backend/internal/repo"
	"github.com/shivraj-io/Caption-io-Backend/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidUsername    = errors.New("username must be between 3 and 30 characters")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
)

const bcryptCost = 10

// UserService handles registration and credential checks.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService returns a new UserService.
func NewUserService(r repo.UserRepo) *UserService {
	return &UserService{repo: r}
}

// Register creates a new user with a hashed password. Email conflicts are
// reported before username conflicts.
func (s *UserService) Register(ctx context.Context, username, email, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	// Length is checked on the trimmed value: padding must not let a short
	// username through.
	if n := utf8.RuneCountInString(username); n < 3 || n > 30 {
		return dom.User{}, ErrInvalidUsername
	}

	existing, err := s.repo.GetByEmailOrUsername(ctx, email, username)
	if err == nil {
		if existing.Email == email {
			return dom.User{}, ErrEmailTaken
		}
		return dom.User{}, ErrUsernameTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return dom.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, dom.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		// Race with a concurrent registration: the unique index is the backstop.
		if utils.DuplicateKeyOn(err, "email") {
			return dom.User{}, ErrEmailTaken
		}
		if utils.IsMongoDuplicateKey(err) {
			return dom.User{}, ErrUsernameTaken
		}
		return dom.User{}, err
	}
	return u, nil
}

// ValidateCredentials checks email and password. A missing user and a wrong
// password both yield ErrInvalidCredentials so the caller cannot tell which
// field was wrong.
func (s *UserService) ValidateCredentials(ctx context.Context, email, password string) (dom.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}
