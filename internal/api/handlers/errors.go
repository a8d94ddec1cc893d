package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Murmur/internal/core/auth"
	"Murmur/internal/core/follows"
	"Murmur/internal/core/messages"
	"Murmur/internal/core/posts"
	"Murmur/internal/core/reactions"
	"Murmur/internal/core/users"
)

// WriteError writes a standardized JSON error response
func WriteError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// WriteJSON writes v as a JSON response body
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// HandleServiceError maps domain errors to HTTP responses. Anything it does
// not recognise is logged and reported as an internal error.
func HandleServiceError(w http.ResponseWriter, err error) {
	var uploadErr *posts.UploadTargetsError

	switch {
	case posts.IsValidationError(err) || users.IsValidationError(err):
		WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	case errors.Is(err, posts.ErrInvalidCursor):
		WriteError(w, http.StatusBadRequest, "InvalidCursor", err.Error())

	case errors.Is(err, follows.ErrSelfFollow),
		errors.Is(err, reactions.ErrInvalidType),
		errors.Is(err, messages.ErrInvalidContent),
		errors.Is(err, messages.ErrSelfMessage):
		WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	case errors.Is(err, auth.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "InvalidCredentials", "Invalid credentials")

	case posts.IsNotFound(err):
		WriteError(w, http.StatusNotFound, "NotFound", err.Error())

	case errors.Is(err, users.ErrUserNotFound), errors.Is(err, reactions.ErrUserNotFound):
		WriteError(w, http.StatusNotFound, "UserNotFound", "User not found")

	case errors.Is(err, follows.ErrNotFollowing),
		errors.Is(err, reactions.ErrReactionNotFound),
		errors.Is(err, messages.ErrMessageNotFound):
		WriteError(w, http.StatusNotFound, "NotFound", err.Error())

	case posts.IsForbidden(err),
		errors.Is(err, messages.ErrNotFriends),
		errors.Is(err, messages.ErrNotSender):
		WriteError(w, http.StatusForbidden, "Forbidden", err.Error())

	case posts.IsConflict(err),
		users.IsConflict(err),
		errors.Is(err, follows.ErrAlreadyFollowing),
		errors.Is(err, reactions.ErrAlreadyReacted):
		WriteError(w, http.StatusConflict, "Conflict", err.Error())

	case errors.As(err, &uploadErr):
		// The post exists; the client retries through the upload-targets endpoint
		log.Printf("Storage unavailable for post %s: %v", uploadErr.PostID, uploadErr.Err)
		WriteJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error":   "StorageUnavailable",
			"message": "Post created but upload targets could not be issued",
			"postId":  uploadErr.PostID,
		})

	default:
		// Don't leak internal error details to clients
		log.Printf("Unexpected error in handler: %v", err)
		WriteError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
