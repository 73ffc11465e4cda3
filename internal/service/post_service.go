package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/shivraj-io/Caption-io-Backend/internal/ai"
	dom "github.com/shivraj-io/Caption-io-Backend/internal/domain"
	"github.com/shivraj-io/Caption-io-Backend/internal/repo"
	"github.com/shivraj-io/Caption-io-Backend/internal/storage"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("not authorized to delete this post")
)

// listLimit is a hard cap on the list result, not a page size.
const listLimit = 50

// ListCache caches per-owner post lists. Satisfied by cache.PostCache.
type ListCache interface {
	GetList(ctx context.Context, ownerID primitive.ObjectID) ([]dom.PostWithOwner, error)
	SetList(ctx context.Context, ownerID primitive.ObjectID, list []dom.PostWithOwner) error
	Invalidate(ctx context.Context, ownerID primitive.ObjectID) error
}

// PostService handles caption generation, post creation, listing and deletion.
type PostService struct {
	posts     repo.PostRepo
	store     storage.Storage
	captioner ai.Captioner
	cache     ListCache
	sf        singleflight.Group
	log       *zap.SugaredLogger
}

// NewPostService creates a PostService. If c is nil, caching is disabled.
func NewPostService(p repo.PostRepo, st storage.Storage, cpt ai.Captioner, c ListCache, log *zap.SugaredLogger) *PostService {
	return &PostService{posts: p, store: st, captioner: cpt, cache: c, log: log}
}

// GenerateCaption encodes the image and asks the captioning model for
// suggestions. Pure preview: nothing is persisted or uploaded.
func (s *PostService) GenerateCaption(ctx context.Context, image []byte, mimeType string) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(image)
	return s.captioner.Caption(ctx, encoded, mimeType)
}

// Create uploads the image under a unique name and persists the post. If the
// insert fails after a successful upload, the uploaded asset is removed again
// on a best-effort basis.
func (s *PostService) Create(ctx context.Context, owner dom.User, caption string, image []byte, fileName string) (dom.Post, error) {
	name := fmt.Sprintf("post_%s_%s", uuid.New().String(), fileName)
	up, err := s.store.Upload(ctx, image, name)
	if err != nil {
		return dom.Post{}, err
	}

	p, err := s.posts.Create(ctx, dom.Post{
		Caption: caption,
		Image:   up.URL,
		FileID:  up.FileID,
		UserID:  owner.ID,
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, up.FileID); delErr != nil {
			s.log.Warnw("could not remove orphaned remote image", "fileId", up.FileID, "error", delErr)
		}
		return dom.Post{}, err
	}
	s.invalidateCache(ctx, owner.ID)
	return p, nil
}

// List returns the owner's newest posts with the owner summary joined in,
// capped at 50.
func (s *PostService) List(ctx context.Context, ownerID primitive.ObjectID) ([]dom.PostWithOwner, error) {
	if s.cache != nil {
		key := "list:" + ownerID.Hex()
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, ownerID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.posts.ListByOwner(ctx, ownerID, listLimit)
			if err != nil {
				return nil, err
			}
			if err := s.cache.SetList(ctx, ownerID, list); err != nil {
				s.log.Warnw("post list cache set failed", "error", err)
			}
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.PostWithOwner), nil
	}
	return s.posts.ListByOwner(ctx, ownerID, listLimit)
}

// Delete removes the post after an ownership check. Remote asset deletion is
// attempted first but its failure never blocks the local delete.
func (s *PostService) Delete(ctx context.Context, current dom.User, id primitive.ObjectID) error {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPostNotFound
		}
		return err
	}
	if p.UserID != current.ID {
		return ErrNotPostOwner
	}

	if p.FileID != "" {
		if err := s.store.Delete(ctx, p.FileID); err != nil {
			s.log.Warnw("could not delete remote image", "fileId", p.FileID, "error", err)
		}
	}

	if err := s.posts.Delete(ctx, id); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	s.invalidateCache(ctx, current.ID)
	return nil
}

func (s *PostService) invalidateCache(ctx context.Context, ownerID primitive.ObjectID) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, ownerID); err != nil {
			s.log.Warnw("post list cache invalidation failed", "error", err)
		}
	}
}
