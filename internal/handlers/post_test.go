package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shivraj-io/Caption-io-Backend/internal/auth"
	dom "github.com/shivraj-io/Caption-io-Backend/internal/domain"
	"github.com/shivraj-io/Caption-io-Backend/internal/dto"
	"github.com/shivraj-io/Caption-io-Backend/internal/service"
)

type fakePostService struct {
	captionCalls int
	captionOut   string
	captionErr   error

	created   []dom.Post
	createErr error

	listOut []dom.PostWithOwner
	listErr error

	deletedIDs []primitive.ObjectID
	deleteErr  error
}

func (f *fakePostService) GenerateCaption(_ context.Context, _ []byte, _ string) (string, error) {
	f.captionCalls++
	return f.captionOut, f.captionErr
}

func (f *fakePostService) Create(_ context.Context, owner dom.User, caption string, _ []byte, _ string) (dom.Post, error) {
	if f.createErr != nil {
		return dom.Post{}, f.createErr
	}
	p := dom.Post{
		ID:        primitive.NewObjectID(),
		Caption:   caption,
		Image:     "https://ik.example.com/img.jpg",
		UserID:    owner.ID,
		CreatedAt: time.Now().UTC(),
	}
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakePostService) List(_ context.Context, _ primitive.ObjectID) ([]dom.PostWithOwner, error) {
	return f.listOut, f.listErr
}

func (f *fakePostService) Delete(_ context.Context, _ dom.User, id primitive.ObjectID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func authedUser() dom.User {
	return dom.User{ID: primitive.NewObjectID(), Username: "alice", Email: "alice@example.com"}
}

func newPostRouter(svc *fakePostService, u dom.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPostHandler(svc, zap.NewNop().Sugar(), false)
	authed := r.Group("", func(c *gin.Context) { c.Set(auth.ContextUserKey, u) })
	authed.POST("/api/posts/generate-caption", h.GenerateCaption)
	authed.POST("/api/posts/create", h.Create)
	authed.GET("/api/posts", h.List)
	authed.DELETE("/api/posts/:id", h.Delete)
	return r
}

// multipartBody builds a form with an optional file part (with explicit
// content type) and optional extra fields.
func multipartBody(t *testing.T, fileField, fileName, contentType string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	if fileField != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="`+fileField+`"; filename="`+fileName+`"`)
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func postMultipart(r *gin.Engine, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)
	return w
}

func TestPostHandler_GenerateCaption(t *testing.T) {
	svc := &fakePostService{captionOut: "caption one\ncaption two\ncaption three"}
	r := newPostRouter(svc, authedUser())

	body, ct := multipartBody(t, "image", "pic.png", "image/png", []byte("png-bytes"), nil)
	w := postMultipart(r, "/api/posts/generate-caption", body, ct)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.CaptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, svc.captionOut, resp.Caption)
	assert.Equal(t, 1, svc.captionCalls)
}

func TestPostHandler_GenerateCaption_NoFile(t *testing.T) {
	svc := &fakePostService{}
	r := newPostRouter(svc, authedUser())

	body, ct := multipartBody(t, "", "", "", nil, map[string]string{"other": "x"})
	w := postMultipart(r, "/api/posts/generate-caption", body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no image file uploaded")
	assert.Equal(t, 0, svc.captionCalls)
}

func TestPostHandler_GenerateCaption_NotAnImage(t *testing.T) {
	svc := &fakePostService{}
	r := newPostRouter(svc, authedUser())

	body, ct := multipartBody(t, "image", "notes.txt", "text/plain", []byte("hello"), nil)
	w := postMultipart(r, "/api/posts/generate-caption", body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "file must be an image")
	// The adapter is never reached for non-image uploads.
	assert.Equal(t, 0, svc.captionCalls)
}

func TestPostHandler_GenerateCaption_AdapterError(t *testing.T) {
	svc := &fakePostService{captionErr: errors.New("quota exceeded")}
	r := newPostRouter(svc, authedUser())

	body, ct := multipartBody(t, "image", "pic.jpg", "image/jpeg", []byte("jpg"), nil)
	w := postMultipart(r, "/api/posts/generate-caption", body, ct)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to generate caption")
}

func TestPostHandler_Create(t *testing.T) {
	svc := &fakePostService{}
	u := authedUser()
	r := newPostRouter(svc, u)

	body, ct := multipartBody(t, "image", "beach.jpg", "image/jpeg", []byte("jpg"), map[string]string{"caption": "sunset vibes"})
	w := postMultipart(r, "/api/posts/create", body, ct)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.CreatePostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sunset vibes", resp.Post.Caption)
	assert.NotEmpty(t, resp.Post.ID)
	assert.NotEmpty(t, resp.Post.Image)

	require.Len(t, svc.created, 1)
	assert.Equal(t, u.ID, svc.created[0].UserID)
}

func TestPostHandler_Create_MissingParts(t *testing.T) {
	svc := &fakePostService{}
	r := newPostRouter(svc, authedUser())

	body, ct := multipartBody(t, "image", "beach.jpg", "image/jpeg", []byte("jpg"), nil)
	w := postMultipart(r, "/api/posts/create", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "caption is required")

	body, ct = multipartBody(t, "", "", "", nil, map[string]string{"caption": "no file"})
	w = postMultipart(r, "/api/posts/create", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no image file uploaded")

	assert.Empty(t, svc.created)
}

func TestPostHandler_List(t *testing.T) {
	u := authedUser()
	svc := &fakePostService{listOut: []dom.PostWithOwner{
		{
			Post:  dom.Post{ID: primitive.NewObjectID(), Caption: "first", Image: "url1", UserID: u.ID},
			Owner: dom.Owner{Username: u.Username, Email: u.Email},
		},
		{
			Post:  dom.Post{ID: primitive.NewObjectID(), Caption: "second", Image: "url2", UserID: u.ID},
			Owner: dom.Owner{Username: u.Username, Email: u.Email},
		},
	}}
	r := newPostRouter(svc, u)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ListPostsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Posts, 2)
	assert.Equal(t, "alice", resp.Posts[0].User.Username)
}

func TestPostHandler_Delete(t *testing.T) {
	u := authedUser()

	t.Run("success", func(t *testing.T) {
		svc := &fakePostService{}
		r := newPostRouter(svc, u)
		id := primitive.NewObjectID()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/posts/"+id.Hex(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "post deleted successfully")
		require.Len(t, svc.deletedIDs, 1)
		assert.Equal(t, id, svc.deletedIDs[0])
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		svc := &fakePostService{}
		r := newPostRouter(svc, u)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/posts/not-an-id", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, svc.deletedIDs)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := &fakePostService{deleteErr: service.ErrPostNotFound}
		r := newPostRouter(svc, u)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/posts/"+primitive.NewObjectID().Hex(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("foreign post is forbidden", func(t *testing.T) {
		svc := &fakePostService{deleteErr: service.ErrNotPostOwner}
		r := newPostRouter(svc, u)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/posts/"+primitive.NewObjectID().Hex(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "not authorized to delete this post")
	})
}
