package tweet

// timeLayout matches the date_time strings stored and served by the API
const timeLayout = "2006-01-02 15:04:05"

// CreateTweetRequest represents the request body for posting a tweet
type CreateTweetRequest struct {
	Tweet string `json:"tweet" validate:"required"`
}

// TweetResponse represents a newly created tweet
type TweetResponse struct {
	ID       int64  `json:"id"`
	Tweet    string `json:"tweet"`
	DateTime string `json:"date_time"`
}

// TweetDetailResponse represents a single tweet with its engagement counts
type TweetDetailResponse struct {
	Tweet    string `json:"tweet"`
	Likes    int    `json:"likes"`
	Replies  int    `json:"replies"`
	DateTime string `json:"date_time"`
}

// FeedItemResponse represents one entry of the home timeline
type FeedItemResponse struct {
	Username string `json:"username"`
	Tweet    string `json:"tweet"`
	DateTime string `json:"date_time"`
}

// LikesResponse lists the usernames that liked a tweet
type LikesResponse struct {
	Likes []string `json:"likes"`
}

// ReplyResponse represents a single reply with the replier's display name
type ReplyResponse struct {
	Name  string `json:"name"`
	Reply string `json:"reply"`
}

// RepliesResponse lists the replies to a tweet
type RepliesResponse struct {
	Replies []*ReplyResponse `json:"replies"`
}

// ToResponse converts a Tweet model to a TweetResponse DTO
func (t *Tweet) ToResponse() *TweetResponse {
	return &TweetResponse{
		ID:       t.ID,
		Tweet:    t.Body,
		DateTime: t.CreatedAt.Format(timeLayout),
	}
}

// toDetailResponse converts a TweetWithCounts to a TweetDetailResponse DTO
func toDetailResponse(t *TweetWithCounts) *TweetDetailResponse {
	return &TweetDetailResponse{
		Tweet:    t.Body,
		Likes:    t.Likes,
		Replies:  t.Replies,
		DateTime: t.CreatedAt.Format(timeLayout),
	}
}

// toFeedResponse converts a FeedItem to a FeedItemResponse DTO
func toFeedResponse(item *FeedItem) *FeedItemResponse {
	return &FeedItemResponse{
		Username: item.Username,
		Tweet:    item.Body,
		DateTime: item.CreatedAt.Format(timeLayout),
	}
}
