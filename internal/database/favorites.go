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

// FavoriteRecipe creates the favorite edge and increments the recipe's
// favorite_count in one transaction.
//
// The existence pre-check surfaces ErrAlreadyFavorited for the common case;
// the PRIMARY KEY on (user_id, recipe_id) closes the race between two
// concurrent favorites: the loser's insert fails the constraint, the whole
// transaction rolls back, and its counter increment never lands.
func (db *DB) FavoriteRecipe(ctx context.Context, userID, recipeID string) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	var exists int
	if err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM recipes WHERE id = ?", recipeID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check recipe %s: %w", recipeID, err)
	}
	if exists == 0 {
		err = ErrRecipeNotFound
		return err
	}

	var favorited int
	if err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM recipe_favorites WHERE user_id = ? AND recipe_id = ?",
		userID, recipeID).Scan(&favorited); err != nil {
		return fmt.Errorf("failed to check favorite edge: %w", err)
	}
	if favorited > 0 {
		err = ErrAlreadyFavorited
		return err
	}

	if _, err = tx.ExecContext(ctx,
		"INSERT INTO recipe_favorites (user_id, recipe_id, created_at) VALUES (?, ?, ?)",
		userID, recipeID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to insert favorite edge: %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		"UPDATE recipes SET favorite_count = favorite_count + 1 WHERE id = ?",
		recipeID); err != nil {
		return fmt.Errorf("failed to increment favorite count: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit favorite: %w", err)
	}
	return nil
}

// UnfavoriteRecipe removes the favorite edge and decrements favorite_count
// in one transaction. The decrement is clamped at zero so a drifted counter
// can never go negative.
func (db *DB) UnfavoriteRecipe(ctx context.Context, userID, recipeID string) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	var exists int
	if err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM recipes WHERE id = ?", recipeID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check recipe %s: %w", recipeID, err)
	}
	if exists == 0 {
		err = ErrRecipeNotFound
		return err
	}

	result, err := tx.ExecContext(ctx,
		"DELETE FROM recipe_favorites WHERE user_id = ? AND recipe_id = ?",
		userID, recipeID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite edge: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		err = ErrNotFavorited
		return err
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE recipes SET favorite_count = CASE WHEN favorite_count > 0 THEN favorite_count - 1 ELSE 0 END
		WHERE id = ?`, recipeID); err != nil {
		return fmt.Errorf("failed to decrement favorite count: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit unfavorite: %w", err)
	}
	return nil
}

// IsFavorited reports whether the user has favorited the recipe.
func (db *DB) IsFavorited(ctx context.Context, userID, recipeID string) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int
	if err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM recipe_favorites WHERE user_id = ? AND recipe_id = ?",
		userID, recipeID).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return n > 0, nil
}

// ListFavorites returns one page of the user's favorited recipes, plus the
// total favorite count. Pages follow edge-creation time, newest favorite
// first.
func (db *DB) ListFavorites(ctx context.Context, userID string, limit, offset int) ([]models.Recipe, int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var total int
	if err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM recipe_favorites WHERE user_id = ?", userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count favorites: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM recipes r
		JOIN recipe_favorites f ON f.recipe_id = r.id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, r.id ASC
		LIMIT ? OFFSET ?`, prefixedRecipeColumns("r")),
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer closeQuietly(rows)

	recipes := make([]models.Recipe, 0, limit)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan favorite recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate favorites: %w", err)
	}

	return recipes, total, nil
}
