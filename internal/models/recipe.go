// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

// Package models defines the domain entities and API payload types shared by
// the database and HTTP layers.
package models

import (
	"time"
)

// Recipe represents a recipe with its denormalized engagement counters.
//
// The counters (Rating, RatingCount, FavoriteCount, ViewCount) are maintained
// by the database layer: rating fields are fully recomputed from the ratings
// table on every rating write, favorite_count moves incrementally inside the
// favorite transaction, and view_count moves incrementally on deduplicated
// views. Follower-style derived values are never stored on the recipe row.
type Recipe struct {
	ID              string    `json:"id"`
	AuthorID        string    `json:"author_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Cuisine         string    `json:"cuisine,omitempty"`
	Difficulty      string    `json:"difficulty,omitempty"` // easy, medium, hard
	PrepTimeMinutes int       `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes int       `json:"cook_time_minutes,omitempty"`
	Servings        int       `json:"servings,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	IsPublic        bool      `json:"is_public"`
	IsPublished     bool      `json:"is_published"`
	Rating          float64   `json:"rating"`
	RatingCount     int       `json:"rating_count"`
	FavoriteCount   int       `json:"favorite_count"`
	ViewCount       int       `json:"view_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// IsFavorited is populated for authenticated callers only.
	IsFavorited *bool `json:"is_favorited,omitempty"`
}

// RecipeEdge pairs a recipe with its opaque position cursor.
type RecipeEdge struct {
	Cursor string `json:"cursor"`
	Node   Recipe `json:"node"`
}

// PageInfo describes the boundaries of a connection page.
//
// HasNextPage and HasPreviousPage are computed against the total matching
// count at query time; StartCursor and EndCursor are nil for empty pages.
type PageInfo struct {
	HasNextPage     bool    `json:"has_next_page"`
	HasPreviousPage bool    `json:"has_previous_page"`
	StartCursor     *string `json:"start_cursor,omitempty"`
	EndCursor       *string `json:"end_cursor,omitempty"`
}

// RecipeConnection is the paginated recipe listing envelope.
type RecipeConnection struct {
	Edges      []RecipeEdge `json:"edges"`
	PageInfo   PageInfo     `json:"page_info"`
	TotalCount int          `json:"total_count"`
}

// RecipeView is a single row of the append-only view ledger.
// ViewerID is nil for anonymous views; Address is the remote address used
// as part of the deduplication key.
type RecipeView struct {
	RecipeID  string    `json:"recipe_id"`
	ViewerID  *string   `json:"viewer_id,omitempty"`
	Address   string    `json:"address"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RecipeRating is a single user's rating of a recipe. Ratings are upserted,
// never deleted; re-rating replaces the previous value.
type RecipeRating struct {
	UserID    string    `json:"user_id"`
	RecipeID  string    `json:"recipe_id"`
	Value     int       `json:"value"` // 1..5
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
