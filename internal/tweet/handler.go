package tweet

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/chirp/pkg/middleware"
	"github.com/fkhayef/chirp/pkg/response"
)

// Handler handles HTTP requests for tweet operations
type Handler struct {
	service *Service
}

// NewHandler creates a new tweet handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the tweet-scoped endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}", h.Detail)
	r.Get("/{id}/likes", h.Likes)
	r.Get("/{id}/replies", h.Replies)
	r.Delete("/{id}", h.Delete)

	return r
}

// UserRoutes returns the router for the requester-scoped tweet endpoints
func (h *Handler) UserRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListOwn)
	r.Post("/", h.Create)
	r.Get("/feed", h.Feed)

	return r
}

// Detail handles GET /tweets/{id}
// @Summary      Get tweet detail
// @Description  Get a tweet with its like and reply counts; requires following the author
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tweet ID"
// @Success      200 {object} response.APIResponse{data=TweetDetailResponse}
// @Failure      401 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /tweets/{id} [get]
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	userID, tweetID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	tweet, err := h.service.Detail(r.Context(), userID, tweetID)
	if err != nil {
		h.visibilityError(w, err, "Failed to get tweet")
		return
	}

	response.JSON(w, http.StatusOK, toDetailResponse(tweet))
}

// Likes handles GET /tweets/{id}/likes
// @Summary      List tweet likes
// @Description  Get the usernames that liked a tweet; requires following the author
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tweet ID"
// @Success      200 {object} response.APIResponse{data=LikesResponse}
// @Failure      401 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /tweets/{id}/likes [get]
func (h *Handler) Likes(w http.ResponseWriter, r *http.Request) {
	userID, tweetID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	likes, err := h.service.Likes(r.Context(), userID, tweetID)
	if err != nil {
		h.visibilityError(w, err, "Failed to list likes")
		return
	}

	response.JSON(w, http.StatusOK, &LikesResponse{Likes: likes})
}

// Replies handles GET /tweets/{id}/replies
// @Summary      List tweet replies
// @Description  Get the replies to a tweet; requires following the author
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tweet ID"
// @Success      200 {object} response.APIResponse{data=RepliesResponse}
// @Failure      401 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /tweets/{id}/replies [get]
func (h *Handler) Replies(w http.ResponseWriter, r *http.Request) {
	userID, tweetID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	replies, err := h.service.Replies(r.Context(), userID, tweetID)
	if err != nil {
		h.visibilityError(w, err, "Failed to list replies")
		return
	}

	replyResponses := make([]*ReplyResponse, len(replies))
	for i, reply := range replies {
		replyResponses[i] = &ReplyResponse{Name: reply.Name, Reply: reply.Body}
	}

	response.JSON(w, http.StatusOK, &RepliesResponse{Replies: replyResponses})
}

// Feed handles GET /user/tweets/feed
// @Summary      Get home timeline
// @Description  Get the four most recent tweets authored by followees
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse{data=[]FeedItemResponse}
// @Router       /user/tweets/feed [get]
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	items, err := h.service.Feed(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to fetch feed")
		return
	}

	feedResponses := make([]*FeedItemResponse, len(items))
	for i, item := range items {
		feedResponses[i] = toFeedResponse(item)
	}

	response.JSON(w, http.StatusOK, feedResponses)
}

// ListOwn handles GET /user/tweets
// @Summary      List own tweets
// @Description  Get the requester's tweets with like and reply counts
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse{data=[]TweetDetailResponse}
// @Router       /user/tweets [get]
func (h *Handler) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	tweets, err := h.service.ListOwn(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list tweets")
		return
	}

	tweetResponses := make([]*TweetDetailResponse, len(tweets))
	for i, tweet := range tweets {
		tweetResponses[i] = toDetailResponse(tweet)
	}

	response.JSON(w, http.StatusOK, tweetResponses)
}

// Create handles POST /user/tweets
// @Summary      Post a tweet
// @Description  Create a tweet attributed to the requester
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateTweetRequest true "Tweet creation request"
// @Success      201 {object} response.APIResponse{data=TweetResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /user/tweets [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateTweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	tweet, err := h.service.Create(r.Context(), userID, req.Tweet)
	if err != nil {
		response.InternalError(w, "Failed to create tweet")
		return
	}

	response.JSON(w, http.StatusCreated, tweet.ToResponse())
}

// Delete handles DELETE /tweets/{id}
// @Summary      Delete a tweet
// @Description  Delete one of the requester's own tweets
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tweet ID"
// @Success      200 {object} response.APIResponse
// @Failure      401 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /tweets/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, tweetID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, tweetID); err != nil {
		if errors.Is(err, ErrTweetNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrNotOwner) {
			response.Unauthorized(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete tweet")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Tweet removed"})
}

// requestIDs pulls the authenticated user ID from the context and the tweet
// ID from the URL, writing the error response itself when either is missing
func (h *Handler) requestIDs(w http.ResponseWriter, r *http.Request) (userID, tweetID int64, ok bool) {
	userID, found := middleware.GetUserID(r.Context())
	if !found {
		response.Unauthorized(w, "Authentication required")
		return 0, 0, false
	}

	tweetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid tweet ID")
		return 0, 0, false
	}

	return userID, tweetID, true
}

// visibilityError maps visibility gate failures onto HTTP responses:
// a missing tweet is 404, a missing follow edge is 401
func (h *Handler) visibilityError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, ErrTweetNotFound) {
		response.NotFound(w, err.Error())
		return
	}
	if errors.Is(err, ErrNotFollowing) {
		response.Unauthorized(w, "Invalid request")
		return
	}
	response.InternalError(w, fallback)
}
