package social

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles follow-graph queries. Edges are created by seed data;
// there is no endpoint that writes to this table.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new social graph repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// IsFollowing reports whether a follow edge exists from follower to followee
func (r *Repository) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM followers
			WHERE follower_id = $1 AND following_id = $2
		)
	`

	var following bool
	if err := r.db.QueryRowContext(ctx, query, followerID, followeeID).Scan(&following); err != nil {
		return false, fmt.Errorf("failed to check follow edge: %w", err)
	}

	return following, nil
}

// FollowingNames returns the display names of everyone the user follows
func (r *Repository) FollowingNames(ctx context.Context, userID int64) ([]string, error) {
	query := `
		SELECT u.name
		FROM followers f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
	`

	return r.queryNames(ctx, query, userID)
}

// FollowerNames returns the display names of everyone following the user
func (r *Repository) FollowerNames(ctx context.Context, userID int64) ([]string, error) {
	query := `
		SELECT u.name
		FROM followers f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1
	`

	return r.queryNames(ctx, query, userID)
}

func (r *Repository) queryNames(ctx context.Context, query string, userID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan name: %w", err)
		}
		names = append(names, name)
	}

	return names, nil
}
