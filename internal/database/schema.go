// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

package database

import (
	"context"
	"fmt"
	"time"
)

// createTables creates the schema if it does not exist.
//
// Constraint notes:
//   - recipe_ratings PK(user_id, recipe_id): one rating per user per recipe,
//     re-rating updates in place.
//   - recipe_favorites PK(user_id, recipe_id): the constraint, not just the
//     pre-check, guards against concurrent duplicate favorites.
//   - user_follows PK(follower_id, following_id): same guard for follows;
//     self-follow is rejected in application code.
//   - recipe_views UNIQUE(recipe_id, viewer_id, address): deduplication key
//     for the append-only view ledger. Anonymous viewers share the NULL
//     viewer_id, so distinct anonymous users behind one address collapse to
//     a single view.
func (db *DB) createTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			display_name TEXT DEFAULT '',
			bio TEXT DEFAULT '',
			avatar_url TEXT DEFAULT '',
			is_admin BOOLEAN DEFAULT FALSE,
			password_hash TEXT DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS recipes (
			id UUID PRIMARY KEY,
			author_id UUID NOT NULL,
			title TEXT NOT NULL,
			description TEXT DEFAULT '',
			cuisine TEXT DEFAULT '',
			difficulty TEXT DEFAULT '',
			prep_time_minutes INTEGER DEFAULT 0,
			cook_time_minutes INTEGER DEFAULT 0,
			servings INTEGER DEFAULT 0,
			tags TEXT DEFAULT '',
			image_url TEXT DEFAULT '',
			is_public BOOLEAN DEFAULT TRUE,
			is_published BOOLEAN DEFAULT TRUE,
			rating DOUBLE NOT NULL DEFAULT 0,
			rating_count INTEGER NOT NULL DEFAULT 0,
			favorite_count INTEGER NOT NULL DEFAULT 0,
			view_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS recipe_ratings (
			user_id UUID NOT NULL,
			recipe_id UUID NOT NULL,
			value INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, recipe_id)
		)`,
		`CREATE TABLE IF NOT EXISTS recipe_favorites (
			user_id UUID NOT NULL,
			recipe_id UUID NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, recipe_id)
		)`,
		`CREATE TABLE IF NOT EXISTS user_follows (
			follower_id UUID NOT NULL,
			following_id UUID NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (follower_id, following_id)
		)`,
		`CREATE TABLE IF NOT EXISTS recipe_views (
			recipe_id UUID NOT NULL,
			viewer_id UUID,
			address TEXT NOT NULL,
			user_agent TEXT DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (recipe_id, viewer_id, address)
		)`,
	}

	for _, stmt := range tables {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// createIndexes creates secondary indexes for the hot query paths.
func (db *DB) createIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexes := []string{
		// Listing and search over public recipes
		`CREATE INDEX IF NOT EXISTS idx_recipes_author ON recipes (author_id)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_created_at ON recipes (created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_rating ON recipes (rating)`,
		// Rating recompute scans by recipe
		`CREATE INDEX IF NOT EXISTS idx_ratings_recipe ON recipe_ratings (recipe_id)`,
		// Favorites listing by user
		`CREATE INDEX IF NOT EXISTS idx_favorites_user ON recipe_favorites (user_id)`,
		// Follow graph projections in both directions
		`CREATE INDEX IF NOT EXISTS idx_follows_following ON user_follows (following_id)`,
		// View dedup existence check
		`CREATE INDEX IF NOT EXISTS idx_views_recipe ON recipe_views (recipe_id)`,
	}

	for _, stmt := range indexes {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
