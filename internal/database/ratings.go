// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ItsZumar/Recipix-sub000/internal/models"
)

// RateRecipe records or replaces a user's rating of a recipe and recomputes
// the recipe's aggregate rating fields.
//
// The rating edge is upserted: a second rating by the same user replaces the
// first, it never adds a row. rating and rating_count are then fully
// recomputed from the ratings table inside the same transaction, so the
// stored average can never drift from the edges regardless of interleaving.
// Ratings are never deleted.
func (db *DB) RateRecipe(ctx context.Context, userID, recipeID string, value int) (*models.Recipe, error) {
	if value < 1 || value > 5 {
		return nil, ErrRatingOutOfRange
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	var exists int
	if err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM recipes WHERE id = ?", recipeID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check recipe %s: %w", recipeID, err)
	}
	if exists == 0 {
		err = ErrRecipeNotFound
		return nil, err
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `INSERT INTO recipe_ratings (user_id, recipe_id, value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, recipe_id)
		DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		userID, recipeID, value, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert rating: %w", err)
	}

	// Full recompute from the edges, not an incremental adjustment.
	_, err = tx.ExecContext(ctx, `UPDATE recipes SET
		rating = COALESCE((SELECT AVG(value) FROM recipe_ratings WHERE recipe_id = ?), 0),
		rating_count = (SELECT COUNT(*) FROM recipe_ratings WHERE recipe_id = ?),
		updated_at = ?
		WHERE id = ?`,
		recipeID, recipeID, now, recipeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute rating aggregate: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit rating: %w", err)
	}

	return db.GetRecipe(ctx, recipeID)
}

// GetRating returns the caller's rating of a recipe, or nil if absent.
func (db *DB) GetRating(ctx context.Context, userID, recipeID string) (*models.RecipeRating, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var r models.RecipeRating
	err := db.conn.QueryRowContext(ctx,
		`SELECT user_id, recipe_id, value, created_at, updated_at
		FROM recipe_ratings WHERE user_id = ? AND recipe_id = ?`,
		userID, recipeID,
	).Scan(&r.UserID, &r.RecipeID, &r.Value, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}

	return &r, nil
}
