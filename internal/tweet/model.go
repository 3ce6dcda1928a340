package tweet

import "time"

// Tweet represents a tweet in the system
type Tweet struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"tweet"`
	CreatedAt time.Time `json:"created_at"`
}

// TweetWithCounts is a tweet row joined with its engagement counts
type TweetWithCounts struct {
	Body      string
	Likes     int
	Replies   int
	CreatedAt time.Time
}

// FeedItem is a home-timeline row: a followee's tweet with its author
type FeedItem struct {
	Username  string
	Body      string
	CreatedAt time.Time
}

// Reply is a reply row joined with the replier's display name
type Reply struct {
	Name string
	Body string
}
