package tweet

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles tweet, like and reply data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new tweet repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a tweet by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Tweet, error) {
	query := `
		SELECT id, author_id, body, created_at
		FROM tweets
		WHERE id = $1
	`

	tweet := &Tweet{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tweet.ID,
		&tweet.AuthorID,
		&tweet.Body,
		&tweet.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tweet: %w", err)
	}

	return tweet, nil
}

// Create inserts a new tweet attributed to the given author
func (r *Repository) Create(ctx context.Context, authorID int64, body string) (*Tweet, error) {
	query := `
		INSERT INTO tweets (author_id, body)
		VALUES ($1, $2)
		RETURNING id, author_id, body, created_at
	`

	tweet := &Tweet{}
	err := r.db.QueryRowContext(ctx, query, authorID, body).Scan(
		&tweet.ID,
		&tweet.AuthorID,
		&tweet.Body,
		&tweet.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tweet: %w", err)
	}

	return tweet, nil
}

// Delete removes a tweet from the database
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM tweets WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}

	return nil
}

// CountLikes returns the number of likes on a tweet
func (r *Repository) CountLikes(ctx context.Context, tweetID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM likes WHERE tweet_id = $1`
	if err := r.db.QueryRowContext(ctx, query, tweetID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// CountReplies returns the number of replies on a tweet
func (r *Repository) CountReplies(ctx context.Context, tweetID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM replies WHERE tweet_id = $1`
	if err := r.db.QueryRowContext(ctx, query, tweetID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count replies: %w", err)
	}
	return count, nil
}

// LikerUsernames returns the usernames of everyone who liked a tweet
func (r *Repository) LikerUsernames(ctx context.Context, tweetID int64) ([]string, error) {
	query := `
		SELECT u.username
		FROM likes l
		JOIN users u ON u.id = l.user_id
		WHERE l.tweet_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, tweetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	defer rows.Close()

	usernames := []string{}
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		usernames = append(usernames, username)
	}

	return usernames, nil
}

// Replies returns the replies to a tweet with the repliers' display names
func (r *Repository) Replies(ctx context.Context, tweetID int64) ([]*Reply, error) {
	query := `
		SELECT u.name, rp.body
		FROM replies rp
		JOIN users u ON u.id = rp.user_id
		WHERE rp.tweet_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, tweetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}
	defer rows.Close()

	replies := []*Reply{}
	for rows.Next() {
		reply := &Reply{}
		if err := rows.Scan(&reply.Name, &reply.Body); err != nil {
			return nil, fmt.Errorf("failed to scan reply: %w", err)
		}
		replies = append(replies, reply)
	}

	return replies, nil
}

// ListByAuthor retrieves all of an author's tweets with like and reply counts
func (r *Repository) ListByAuthor(ctx context.Context, authorID int64) ([]*TweetWithCounts, error) {
	query := `
		SELECT t.body, t.created_at,
			(SELECT COUNT(*) FROM likes l WHERE l.tweet_id = t.id) AS likes,
			(SELECT COUNT(*) FROM replies rp WHERE rp.tweet_id = t.id) AS replies
		FROM tweets t
		WHERE t.author_id = $1
		ORDER BY t.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	defer rows.Close()

	tweets := []*TweetWithCounts{}
	for rows.Next() {
		tweet := &TweetWithCounts{}
		if err := rows.Scan(&tweet.Body, &tweet.CreatedAt, &tweet.Likes, &tweet.Replies); err != nil {
			return nil, fmt.Errorf("failed to scan tweet: %w", err)
		}
		tweets = append(tweets, tweet)
	}

	return tweets, nil
}

// Feed retrieves the newest tweets authored by the user's followees
func (r *Repository) Feed(ctx context.Context, userID int64, limit int) ([]*FeedItem, error) {
	query := `
		SELECT u.username, t.body, t.created_at
		FROM tweets t
		JOIN users u ON u.id = t.author_id
		WHERE t.author_id IN (
			SELECT following_id FROM followers WHERE follower_id = $1
		)
		ORDER BY t.created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer rows.Close()

	items := []*FeedItem{}
	for rows.Next() {
		item := &FeedItem{}
		if err := rows.Scan(&item.Username, &item.Body, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feed item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}
