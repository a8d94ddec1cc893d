package handlers

import (
	"net/http"
	"strconv"

	"Murmur/internal/core/posts"
	"Murmur/internal/core/users"
)

// ParseWindow reads ?limit=&before=&after= into a pagination window
func ParseWindow(r *http.Request) (posts.Window, error) {
	q := r.URL.Query()
	var w posts.Window

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return w, posts.NewValidationError("limit", "must be a positive integer")
		}
		w.Limit = limit
	}
	if q.Has("before") {
		before := q.Get("before")
		w.Before = &before
	}
	if q.Has("after") {
		after := q.Get("after")
		w.After = &after
	}
	return w, w.Validate()
}

// ParsePage reads ?limit=&skip= into an offset page
func ParsePage(r *http.Request) (users.Page, error) {
	q := r.URL.Query()
	var p users.Page

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return p, users.NewValidationError("limit", "must be a positive integer")
		}
		p.Limit = limit
	}
	if raw := q.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return p, users.NewValidationError("skip", "must be a non-negative integer")
		}
		p.Skip = skip
	}
	return p.Normalize(), nil
}
