package tweet

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrTweetNotFound = errors.New("tweet not found")
	ErrNotFollowing  = errors.New("not following the tweet author")
	ErrNotOwner      = errors.New("not the owner of this tweet")
)

// feedLimit caps the home timeline at the four most recent tweets
const feedLimit = 4

// TweetStore is the persistence surface the service depends on
type TweetStore interface {
	GetByID(ctx context.Context, id int64) (*Tweet, error)
	Create(ctx context.Context, authorID int64, body string) (*Tweet, error)
	Delete(ctx context.Context, id int64) error
	CountLikes(ctx context.Context, tweetID int64) (int, error)
	CountReplies(ctx context.Context, tweetID int64) (int, error)
	LikerUsernames(ctx context.Context, tweetID int64) ([]string, error)
	Replies(ctx context.Context, tweetID int64) ([]*Reply, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*TweetWithCounts, error)
	Feed(ctx context.Context, userID int64, limit int) ([]*FeedItem, error)
}

// FollowStore answers follow-edge lookups for the visibility check
type FollowStore interface {
	IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error)
}

// Service handles tweet business logic
type Service struct {
	store   TweetStore
	follows FollowStore
}

// NewService creates a new tweet service with store dependencies injected
func NewService(store TweetStore, follows FollowStore) *Service {
	return &Service{store: store, follows: follows}
}

// canView decides whether the requester may observe a tweet and its
// engagement data: the tweet must exist and a follow edge must run from the
// requester to its author. There is no implicit self-follow, so an author is
// denied their own tweet here unless an explicit self edge exists; only the
// own-tweets listing bypasses this check.
func (s *Service) canView(ctx context.Context, requesterID, tweetID int64) (*Tweet, error) {
	tweet, err := s.store.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet == nil {
		return nil, ErrTweetNotFound
	}

	following, err := s.follows.IsFollowing(ctx, requesterID, tweet.AuthorID)
	if err != nil {
		return nil, err
	}
	if !following {
		return nil, ErrNotFollowing
	}

	return tweet, nil
}

// Detail returns a tweet with its like and reply counts, gated by visibility
func (s *Service) Detail(ctx context.Context, requesterID, tweetID int64) (*TweetWithCounts, error) {
	tweet, err := s.canView(ctx, requesterID, tweetID)
	if err != nil {
		return nil, err
	}

	likes, err := s.store.CountLikes(ctx, tweetID)
	if err != nil {
		return nil, err
	}

	replies, err := s.store.CountReplies(ctx, tweetID)
	if err != nil {
		return nil, err
	}

	return &TweetWithCounts{
		Body:      tweet.Body,
		Likes:     likes,
		Replies:   replies,
		CreatedAt: tweet.CreatedAt,
	}, nil
}

// Likes returns the usernames that liked a tweet, gated by visibility
func (s *Service) Likes(ctx context.Context, requesterID, tweetID int64) ([]string, error) {
	if _, err := s.canView(ctx, requesterID, tweetID); err != nil {
		return nil, err
	}
	return s.store.LikerUsernames(ctx, tweetID)
}

// Replies returns the replies to a tweet, gated by visibility
func (s *Service) Replies(ctx context.Context, requesterID, tweetID int64) ([]*Reply, error) {
	if _, err := s.canView(ctx, requesterID, tweetID); err != nil {
		return nil, err
	}
	return s.store.Replies(ctx, tweetID)
}

// Feed returns the requester's home timeline: tweets authored by followees,
// newest first, capped at feedLimit entries
func (s *Service) Feed(ctx context.Context, requesterID int64) ([]*FeedItem, error) {
	return s.store.Feed(ctx, requesterID, feedLimit)
}

// ListOwn returns the requester's own tweets with engagement counts.
// No visibility check applies here.
func (s *Service) ListOwn(ctx context.Context, requesterID int64) ([]*TweetWithCounts, error) {
	return s.store.ListByAuthor(ctx, requesterID)
}

// Create posts a new tweet. The author is always the requester; the
// timestamp is assigned at write time.
func (s *Service) Create(ctx context.Context, requesterID int64, body string) (*Tweet, error) {
	return s.store.Create(ctx, requesterID, body)
}

// Delete removes a tweet if and only if the requester authored it
func (s *Service) Delete(ctx context.Context, requesterID, tweetID int64) error {
	tweet, err := s.store.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet == nil {
		return ErrTweetNotFound
	}
	if tweet.AuthorID != requesterID {
		return ErrNotOwner
	}

	return s.store.Delete(ctx, tweetID)
}
