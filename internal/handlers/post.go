package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shivraj-io/Caption-io-Backend/internal/auth"
	dom "github.com/shivraj-io/Caption-io-Backend/internal/domain"
	"github.com/shivraj-io/Caption-io-Backend/internal/dto"
	"github.com/shivraj-io/Caption-io-Backend/internal/service"
)

// MaxUploadBytes caps a single image upload at 10 MiB.
const MaxUploadBytes = 10 << 20

// PostHandler handles caption generation and post CRUD.
type PostHandler struct {
	posts  PostService
	log    *zap.SugaredLogger
	detail bool
}

// NewPostHandler returns a new PostHandler.
func NewPostHandler(posts PostService, log *zap.SugaredLogger, detail bool) *PostHandler {
	return &PostHandler{posts: posts, log: log, detail: detail}
}

// GenerateCaption godoc
// @Summary      Generate caption suggestions for an image
// @Description  Pure preview: nothing is persisted or uploaded.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "Image file"
// @Success      200  {object}  dto.CaptionResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/generate-caption [post]
func (h *PostHandler) GenerateCaption(c *gin.Context) {
	fh, data, ok := h.readImage(c)
	if !ok {
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file must be an image"})
		return
	}

	caption, err := h.posts.GenerateCaption(c.Request.Context(), data, contentType)
	if err != nil {
		h.log.Errorw("caption generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(h.detail, "failed to generate caption", err))
		return
	}

	c.JSON(http.StatusOK, dto.CaptionResponse{
		Message: "caption generated successfully",
		Caption: caption,
	})
}

// Create godoc
// @Summary      Create a post
// @Description  Uploads the image to storage and persists the post.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image    formData  file    true  "Image file"
// @Param        caption  formData  string  true  "Caption"
// @Success      201  {object}  dto.CreatePostResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/create [post]
func (h *PostHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	fh, data, ok := h.readImage(c)
	if !ok {
		return
	}
	caption := strings.TrimSpace(c.PostForm("caption"))
	if caption == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "caption is required"})
		return
	}

	p, err := h.posts.Create(c.Request.Context(), user, caption, data, fh.Filename)
	if err != nil {
		h.log.Errorw("post creation failed", "user", user.Email, "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(h.detail, "failed to create post", err))
		return
	}

	c.JSON(http.StatusCreated, dto.CreatePostResponse{
		Message: "post created successfully",
		Post: dto.PostResponse{
			ID:        p.ID.Hex(),
			Caption:   p.Caption,
			Image:     p.Image,
			CreatedAt: p.CreatedAt,
		},
	})
}

// List godoc
// @Summary      List the current user's posts
// @Description  Newest first, capped at 50.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListPostsResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := h.posts.List(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Errorw("post list failed", "user", user.Email, "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(h.detail, "failed to fetch posts", err))
		return
	}

	c.JSON(http.StatusOK, dto.ListPostsResponse{
		Message: "posts fetched successfully",
		Count:   len(list),
		Posts:   postsToResponses(list),
	})
}

// Delete godoc
// @Summary      Delete a post
// @Description  Owner only. The remote asset is removed best-effort first.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "post not found"})
		return
	}

	if err := h.posts.Delete(c.Request.Context(), user, id); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "post not found"})
		case errors.Is(err, service.ErrNotPostOwner):
			c.JSON(http.StatusForbidden, gin.H{"message": "not authorized to delete this post"})
		default:
			h.log.Errorw("post delete failed", "user", user.Email, "error", err)
			c.JSON(http.StatusInternalServerError, errorBody(h.detail, "failed to delete post", err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted successfully"})
}

// readImage extracts the uploaded image as a byte buffer, enforcing presence
// and the size cap. On failure it writes the response and returns ok=false.
func (h *PostHandler) readImage(c *gin.Context) (*multipart.FileHeader, []byte, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no image file uploaded"})
		return nil, nil, false
	}
	if fh.Size > MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"message": "image must be 10 MB or smaller"})
		return nil, nil, false
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody(h.detail, "failed to read image", err))
		return nil, nil, false
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody(h.detail, "failed to read image", err))
		return nil, nil, false
	}
	if int64(len(data)) > MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"message": "image must be 10 MB or smaller"})
		return nil, nil, false
	}
	return fh, data, true
}

func currentUser(c *gin.Context) (dom.User, bool) {
	u, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
		return dom.User{}, false
	}
	return u, true
}

func postsToResponses(list []dom.PostWithOwner) []dto.PostWithOwnerResponse {
	out := make([]dto.PostWithOwnerResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.PostWithOwnerResponse{
			ID:        p.ID.Hex(),
			Caption:   p.Caption,
			Image:     p.Image,
			CreatedAt: p.CreatedAt,
			User: dto.PostOwner{
				Username: p.Owner.Username,
				Email:    p.Owner.Email,
			},
		})
	}
	return out
}
