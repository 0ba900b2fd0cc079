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
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ItsZumar/Recipix-sub000/internal/models"
)

// recipeColumns is the canonical column list scanned by scanRecipe.
const recipeColumns = `id, author_id, title, description, cuisine, difficulty,
	prep_time_minutes, cook_time_minutes, servings, tags, image_url,
	is_public, is_published, rating, rating_count, favorite_count, view_count,
	created_at, updated_at`

// prefixedRecipeColumns qualifies recipeColumns with a table alias for joins.
func prefixedRecipeColumns(alias string) string {
	parts := strings.Split(recipeColumns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanRecipe.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRecipe scans one recipe row in recipeColumns order.
func scanRecipe(row rowScanner) (*models.Recipe, error) {
	var r models.Recipe
	var tags string

	err := row.Scan(
		&r.ID, &r.AuthorID, &r.Title, &r.Description, &r.Cuisine, &r.Difficulty,
		&r.PrepTimeMinutes, &r.CookTimeMinutes, &r.Servings, &tags, &r.ImageURL,
		&r.IsPublic, &r.IsPublished, &r.Rating, &r.RatingCount, &r.FavoriteCount, &r.ViewCount,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Tags = splitTags(tags)
	return &r, nil
}

// joinTags serializes a tag list into the comma-joined storage form.
func joinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return strings.Join(cleaned, ",")
}

// splitTags parses the comma-joined storage form into a tag list.
func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// CreateRecipe inserts a new recipe. ID and timestamps are assigned here;
// engagement counters start at zero.
func (db *DB) CreateRecipe(ctx context.Context, r *models.Recipe) (*models.Recipe, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	r.Rating = 0
	r.RatingCount = 0
	r.FavoriteCount = 0
	r.ViewCount = 0

	_, err := db.conn.ExecContext(ctx, `INSERT INTO recipes (
		id, author_id, title, description, cuisine, difficulty,
		prep_time_minutes, cook_time_minutes, servings, tags, image_url,
		is_public, is_published, rating, rating_count, favorite_count, view_count,
		created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, 0, 0, ?, ?)`,
		r.ID, r.AuthorID, r.Title, r.Description, r.Cuisine, r.Difficulty,
		r.PrepTimeMinutes, r.CookTimeMinutes, r.Servings, joinTags(r.Tags), r.ImageURL,
		r.IsPublic, r.IsPublished, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert recipe: %w", err)
	}

	return r, nil
}

// GetRecipe fetches a single recipe by ID without a visibility gate.
// Callers that serve anonymous or non-owner requests must check the
// public+published flags themselves.
func (db *DB) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM recipes WHERE id = ?", recipeColumns), id)

	recipe, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %s: %w", id, err)
	}

	return recipe, nil
}

// UpdateRecipe updates the mutable fields of a recipe. Engagement counters
// are never touched here; only their dedicated write paths move them.
func (db *DB) UpdateRecipe(ctx context.Context, r *models.Recipe) (*models.Recipe, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	r.UpdatedAt = time.Now().UTC()

	result, err := db.conn.ExecContext(ctx, `UPDATE recipes SET
		title = ?, description = ?, cuisine = ?, difficulty = ?,
		prep_time_minutes = ?, cook_time_minutes = ?, servings = ?,
		tags = ?, image_url = ?, is_public = ?, is_published = ?, updated_at = ?
		WHERE id = ?`,
		r.Title, r.Description, r.Cuisine, r.Difficulty,
		r.PrepTimeMinutes, r.CookTimeMinutes, r.Servings,
		joinTags(r.Tags), r.ImageURL, r.IsPublic, r.IsPublished, r.UpdatedAt,
		r.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update recipe %s: %w", r.ID, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrRecipeNotFound
	}

	return db.GetRecipe(ctx, r.ID)
}

// DeleteRecipe removes a recipe and its engagement edges.
func (db *DB) DeleteRecipe(ctx context.Context, id string) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	result, err := tx.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe %s: %w", id, err)
	}
	if affected, raErr := result.RowsAffected(); raErr == nil && affected == 0 {
		err = ErrRecipeNotFound
		return err
	}

	for _, stmt := range []string{
		"DELETE FROM recipe_ratings WHERE recipe_id = ?",
		"DELETE FROM recipe_favorites WHERE recipe_id = ?",
		"DELETE FROM recipe_views WHERE recipe_id = ?",
	} {
		if _, err = tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("failed to delete recipe edges for %s: %w", id, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recipe delete: %w", err)
	}
	return nil
}

// ListRecipes returns one page of public, published recipes matching the
// filter, plus the total matching count. The count and the page come from
// two queries over the same filter, count first.
func (db *DB) ListRecipes(ctx context.Context, filter *RecipeFilter, limit, offset int) ([]models.Recipe, int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err := ValidateSortField(filter.SortBy); err != nil {
		return nil, 0, err
	}

	where, args := filter.buildWhereClause()

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM recipes %s", where)
	if err := db.conn.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	pageQuery := fmt.Sprintf("SELECT %s FROM recipes %s %s LIMIT ? OFFSET ?",
		recipeColumns, where, filter.buildOrderClause())
	pageArgs := append(append([]interface{}{}, args...), limit, offset)

	rows, err := db.conn.QueryContext(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer closeQuietly(rows)

	recipes := make([]models.Recipe, 0, limit)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate recipes: %w", err)
	}

	return recipes, total, nil
}

// SearchRecipes returns public, published recipes whose title, description,
// or tags contain the query substring (case-insensitive), ordered by rating
// descending. Results are offset-paged; total is the full match count.
func (db *DB) SearchRecipes(ctx context.Context, query string, limit, offset int) ([]models.Recipe, int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	pattern := "%" + escapeLike(query) + "%"
	where := `WHERE is_public = TRUE AND is_published = TRUE
		AND (title ILIKE ? ESCAPE '\' OR description ILIKE ? ESCAPE '\' OR tags ILIKE ? ESCAPE '\')`
	args := []interface{}{pattern, pattern, pattern}

	var total int
	if err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM recipes "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM recipes %s ORDER BY rating DESC, id ASC LIMIT ? OFFSET ?",
			recipeColumns, where),
		append(append([]interface{}{}, args...), limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search recipes: %w", err)
	}
	defer closeQuietly(rows)

	recipes := make([]models.Recipe, 0, limit)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate search results: %w", err)
	}

	return recipes, total, nil
}

// DecorateFavorites fills in IsFavorited for each recipe from the caller's
// favorite edges. The decoration is read-only and touches no counters.
func (db *DB) DecorateFavorites(ctx context.Context, userID string, recipes []models.Recipe) error {
	if userID == "" || len(recipes) == 0 {
		return nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	placeholders := make([]string, len(recipes))
	args := make([]interface{}, 0, len(recipes)+1)
	args = append(args, userID)
	for i, r := range recipes {
		placeholders[i] = "?"
		args = append(args, r.ID)
	}

	rows, err := db.conn.QueryContext(ctx,
		fmt.Sprintf("SELECT recipe_id FROM recipe_favorites WHERE user_id = ? AND recipe_id IN (%s)",
			strings.Join(placeholders, ", ")), args...)
	if err != nil {
		return fmt.Errorf("failed to query favorite decorations: %w", err)
	}
	defer closeQuietly(rows)

	favorited := make(map[string]bool, len(recipes))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan favorite decoration: %w", err)
		}
		favorited[id] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate favorite decorations: %w", err)
	}

	for i := range recipes {
		f := favorited[recipes[i].ID]
		recipes[i].IsFavorited = &f
	}
	return nil
}
