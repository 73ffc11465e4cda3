package dto

import "time"

// PostResponse is the public view of a created post. Internal fields (storage
// handle, owner id) are not echoed back.
type PostResponse struct {
	ID        string    `json:"id"`
	Caption   string    `json:"caption"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostOwner is the owner summary joined into list responses.
type PostOwner struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PostWithOwnerResponse is one entry of the list response.
type PostWithOwnerResponse struct {
	ID        string    `json:"id"`
	Caption   string    `json:"caption"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	User      PostOwner `json:"user"`
}

// ListPostsResponse is the body of GET /posts.
type ListPostsResponse struct {
	Message string                  `json:"message"`
	Count   int                     `json:"count"`
	Posts   []PostWithOwnerResponse `json:"posts"`
}

// CreatePostResponse is the body of POST /posts/create.
type CreatePostResponse struct {
	Message string       `json:"message"`
	Post    PostResponse `json:"post"`
}

// CaptionResponse is the body of POST /posts/generate-caption.
type CaptionResponse struct {
	Message string `json:"message"`
	Caption string `json:"caption"`
}
