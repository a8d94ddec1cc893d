package post

import (
	"Murmur/internal/core/posts"
)

// Handler serves post and comment endpoints
type Handler struct {
	service posts.Service
}

// NewHandler creates a new post handler
func NewHandler(service posts.Service) *Handler {
	return &Handler{service: service}
}

// ListResponse wraps a page of hydrated posts
type ListResponse struct {
	Posts []*posts.ExtendedPost `json:"posts"`
}

func listResponse(found []*posts.ExtendedPost) ListResponse {
	if found == nil {
		found = []*posts.ExtendedPost{}
	}
	return ListResponse{Posts: found}
}
