// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ItsZumar/Recipix-sub000/internal/models"
)

// FollowUser creates a directed follow edge from follower to following.
//
// Self-follows are rejected before any database work. Follower and following
// counts are never stored; they are derived from the edge table at read time,
// so the follow transaction touches only the edge. The PRIMARY KEY on
// (follower_id, following_id) guards concurrent duplicate follows.
func (db *DB) FollowUser(ctx context.Context, followerID, followingID string) (err error) {
	if followerID == followingID {
		return ErrSelfFollow
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	exists, err := db.userExists(ctx, tx, followingID)
	if err != nil {
		return err
	}
	if !exists {
		err = ErrUserNotFound
		return err
	}

	var following int
	if err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_follows WHERE follower_id = ? AND following_id = ?",
		followerID, followingID).Scan(&following); err != nil {
		return fmt.Errorf("failed to check follow edge: %w", err)
	}
	if following > 0 {
		err = ErrAlreadyFollowing
		return err
	}

	if _, err = tx.ExecContext(ctx,
		"INSERT INTO user_follows (follower_id, following_id, created_at) VALUES (?, ?, ?)",
		followerID, followingID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to insert follow edge: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit follow: %w", err)
	}
	return nil
}

// UnfollowUser removes the follow edge.
func (db *DB) UnfollowUser(ctx context.Context, followerID, followingID string) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	exists, err := db.userExists(ctx, db.conn, followingID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}

	result, err := db.conn.ExecContext(ctx,
		"DELETE FROM user_follows WHERE follower_id = ? AND following_id = ?",
		followerID, followingID)
	if err != nil {
		return fmt.Errorf("failed to delete follow edge: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// FollowCounts returns the derived (follower_count, following_count) pair
// for a user, computed from the edge table.
func (db *DB) FollowCounts(ctx context.Context, userID string) (int, int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var followers, following int
	err := db.conn.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM user_follows WHERE following_id = ?),
		(SELECT COUNT(*) FROM user_follows WHERE follower_id = ?)`,
		userID, userID).Scan(&followers, &following)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count follows: %w", err)
	}

	return followers, following, nil
}

// IsFollowing reports whether follower follows following.
func (db *DB) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int
	if err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_follows WHERE follower_id = ? AND following_id = ?",
		followerID, followingID).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return n > 0, nil
}

// ListFollowers returns one page of the users following userID, newest edge
// first, plus the total follower count.
func (db *DB) ListFollowers(ctx context.Context, userID string, limit, offset int) (*models.UserPage, error) {
	return db.listFollowEdges(ctx, userID, "following_id", "follower_id", limit, offset)
}

// ListFollowing returns one page of the users userID follows, newest edge
// first, plus the total following count.
func (db *DB) ListFollowing(ctx context.Context, userID string, limit, offset int) (*models.UserPage, error) {
	return db.listFollowEdges(ctx, userID, "follower_id", "following_id", limit, offset)
}

// listFollowEdges pages one direction of the follow graph. matchColumn is
// the edge column compared to userID, selectColumn the opposite end joined
// to users. Edges order by creation time, newest first, so the most recent
// followers and follows lead the page.
func (db *DB) listFollowEdges(ctx context.Context, userID, matchColumn, selectColumn string, limit, offset int) (*models.UserPage, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	exists, err := db.userExists(ctx, db.conn, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	var total int
	if err := db.conn.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM user_follows WHERE %s = ?", matchColumn),
		userID).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count follow edges: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, fmt.Sprintf(`SELECT
		u.id, u.username, u.display_name, u.avatar_url,
		(SELECT COUNT(*) FROM user_follows WHERE following_id = u.id),
		(SELECT COUNT(*) FROM user_follows WHERE follower_id = u.id)
		FROM user_follows f
		JOIN users u ON u.id = f.%s
		WHERE f.%s = ?
		ORDER BY f.created_at DESC, u.id ASC
		LIMIT ? OFFSET ?`, selectColumn, matchColumn),
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query follow edges: %w", err)
	}
	defer closeQuietly(rows)

	users := make([]models.UserSummary, 0, limit)
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.DisplayName, &u.AvatarURL,
			&u.FollowerCount, &u.FollowingCount); err != nil {
			return nil, fmt.Errorf("failed to scan follow edge: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate follow edges: %w", err)
	}

	return &models.UserPage{
		Users:      users,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}
