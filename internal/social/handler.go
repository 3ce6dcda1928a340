package social

import (
	"net/http"

	"github.com/fkhayef/chirp/pkg/middleware"
	"github.com/fkhayef/chirp/pkg/response"
)

// Handler handles HTTP requests for social graph queries
type Handler struct {
	service *Service
}

// NewHandler creates a new social handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Following handles GET /user/following
func (h *Handler) Following(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	names, err := h.service.Following(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list following")
		return
	}

	response.JSON(w, http.StatusOK, names)
}

// Followers handles GET /user/followers
func (h *Handler) Followers(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	names, err := h.service.Followers(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list followers")
		return
	}

	response.JSON(w, http.StatusOK, names)
}
