// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

package database

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ItsZumar/Recipix-sub000/internal/models"
)

func TestCreateAndGetRecipe(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	created := createTestRecipe(t, db, author.ID, "Lasagna")

	got, err := db.GetRecipe(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetRecipe failed: %v", err)
	}
	if got.Title != "Lasagna" {
		t.Errorf("Expected title Lasagna, got %s", got.Title)
	}
	if got.AuthorID != author.ID {
		t.Errorf("Expected author %s, got %s", author.ID, got.AuthorID)
	}
	if !reflect.DeepEqual(got.Tags, []string{"test", "quick"}) {
		t.Errorf("Tags did not round-trip, got %v", got.Tags)
	}
	if got.Rating != 0 || got.RatingCount != 0 || got.FavoriteCount != 0 || got.ViewCount != 0 {
		t.Error("New recipe must start with zeroed counters")
	}
}

func TestGetRecipeNotFound(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.GetRecipe(context.Background(), "missing"); !errors.Is(err, ErrRecipeNotFound) {
		t.Errorf("Expected ErrRecipeNotFound, got %v", err)
	}
}

func TestUpdateRecipe(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	rater := createTestUser(t, db, "rater")
	recipe := createTestRecipe(t, db, author.ID, "Lasagna")

	if _, err := db.RateRecipe(ctx, rater.ID, recipe.ID, 5); err != nil {
		t.Fatalf("RateRecipe failed: %v", err)
	}

	recipe.Title = "Vegetable Lasagna"
	recipe.Difficulty = "medium"
	recipe.Tags = []string{"vegetarian"}

	updated, err := db.UpdateRecipe(ctx, recipe)
	if err != nil {
		t.Fatalf("UpdateRecipe failed: %v", err)
	}
	if updated.Title != "Vegetable Lasagna" || updated.Difficulty != "medium" {
		t.Errorf("Update did not apply: %+v", updated)
	}
	// Counters are owned by their own write paths and must survive updates.
	if updated.RatingCount != 1 || updated.Rating != 5.0 {
		t.Errorf("Update must not touch counters, got rating=%f count=%d",
			updated.Rating, updated.RatingCount)
	}
}

func TestUpdateRecipeNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.UpdateRecipe(context.Background(), &models.Recipe{ID: "missing", Title: "x"})
	if !errors.Is(err, ErrRecipeNotFound) {
		t.Errorf("Expected ErrRecipeNotFound, got %v", err)
	}
}

func TestDeleteRecipeRemovesEdges(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	recipe := createTestRecipe(t, db, author.ID, "Lasagna")

	if _, err := db.RateRecipe(ctx, fan.ID, recipe.ID, 4); err != nil {
		t.Fatalf("RateRecipe failed: %v", err)
	}
	if err := db.FavoriteRecipe(ctx, fan.ID, recipe.ID); err != nil {
		t.Fatalf("FavoriteRecipe failed: %v", err)
	}
	if _, err := db.RecordView(ctx, recipe.ID, &fan.ID, "10.0.0.1", ""); err != nil {
		t.Fatalf("RecordView failed: %v", err)
	}

	if err := db.DeleteRecipe(ctx, recipe.ID); err != nil {
		t.Fatalf("DeleteRecipe failed: %v", err)
	}
	if _, err := db.GetRecipe(ctx, recipe.ID); !errors.Is(err, ErrRecipeNotFound) {
		t.Errorf("Expected ErrRecipeNotFound after delete, got %v", err)
	}

	for _, table := range []string{"recipe_ratings", "recipe_favorites", "recipe_views"} {
		var n int
		if err := db.conn.QueryRow(
			"SELECT COUNT(*) FROM "+table+" WHERE recipe_id = ?", recipe.ID).Scan(&n); err != nil {
			t.Fatalf("Count %s failed: %v", table, err)
		}
		if n != 0 {
			t.Errorf("Table %s still has %d edges after delete", table, n)
		}
	}

	if err := db.DeleteRecipe(ctx, recipe.ID); !errors.Is(err, ErrRecipeNotFound) {
		t.Errorf("Expected ErrRecipeNotFound on double delete, got %v", err)
	}
}

func TestListRecipesVisibilityGate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	createTestRecipe(t, db, author.ID, "Public")

	// Neither a private nor an unpublished recipe may appear in listings.
	private, err := db.CreateRecipe(ctx, &models.Recipe{
		AuthorID: author.ID, Title: "Private", IsPublic: false, IsPublished: true,
	})
	if err != nil {
		t.Fatalf("CreateRecipe private failed: %v", err)
	}
	draft, err := db.CreateRecipe(ctx, &models.Recipe{
		AuthorID: author.ID, Title: "Draft", IsPublic: true, IsPublished: false,
	})
	if err != nil {
		t.Fatalf("CreateRecipe draft failed: %v", err)
	}

	recipes, total, err := db.ListRecipes(ctx, &RecipeFilter{}, 10, 0)
	if err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}
	if total != 1 {
		t.Errorf("Expected total 1 visible recipe, got %d", total)
	}
	for _, r := range recipes {
		if r.ID == private.ID || r.ID == draft.ID {
			t.Errorf("Hidden recipe %s leaked into listing", r.Title)
		}
	}
}

func TestListRecipesFilters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	other := createTestUser(t, db, "other")

	italian, err := db.CreateRecipe(ctx, &models.Recipe{
		AuthorID: author.ID, Title: "Risotto", Cuisine: "italian", Difficulty: "medium",
		Description: "A creamy saffron rice dish from Milan",
		PrepTimeMinutes: 15, CookTimeMinutes: 30, Tags: []string{"rice", "dinner"},
		IsPublic: true, IsPublished: true,
	})
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}
	if _, err := db.CreateRecipe(ctx, &models.Recipe{
		AuthorID: other.ID, Title: "Tacos", Cuisine: "mexican", Difficulty: "easy",
		PrepTimeMinutes: 30, CookTimeMinutes: 10, Tags: []string{"dinner"},
		IsPublic: true, IsPublished: true,
	}); err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	tests := []struct {
		name     string
		filter   RecipeFilter
		expected int
	}{
		{"no filter", RecipeFilter{}, 2},
		{"cuisine", RecipeFilter{Cuisine: "italian"}, 1},
		{"difficulty", RecipeFilter{Difficulty: "easy"}, 1},
		{"author", RecipeFilter{AuthorID: author.ID}, 1},
		{"max prep time", RecipeFilter{MaxPrepTime: 20}, 1},
		{"max cook time", RecipeFilter{MaxCookTime: 15}, 1},
		{"tag match", RecipeFilter{Tags: []string{"rice"}}, 1},
		{"tag or", RecipeFilter{Tags: []string{"rice", "dinner"}}, 2},
		{"title search", RecipeFilter{Search: "riso"}, 1},
		{"description search", RecipeFilter{Search: "saffron"}, 1},
		{"description search case-insensitive", RecipeFilter{Search: "SAFFRON"}, 1},
		{"combined and", RecipeFilter{Cuisine: "italian", Difficulty: "easy"}, 0},
		{"no match", RecipeFilter{Cuisine: "french"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, total, err := db.ListRecipes(ctx, &tt.filter, 10, 0)
			if err != nil {
				t.Fatalf("ListRecipes failed: %v", err)
			}
			if total != tt.expected {
				t.Errorf("Expected %d matches, got %d", tt.expected, total)
			}
		})
	}

	// min_rating filters on the denormalized aggregate.
	if _, err := db.RateRecipe(ctx, other.ID, italian.ID, 5); err != nil {
		t.Fatalf("RateRecipe failed: %v", err)
	}
	_, total, err := db.ListRecipes(ctx, &RecipeFilter{MinRating: 4.5}, 10, 0)
	if err != nil {
		t.Fatalf("ListRecipes min_rating failed: %v", err)
	}
	if total != 1 {
		t.Errorf("Expected 1 recipe at min_rating 4.5, got %d", total)
	}
}

func TestListRecipesSortAllowList(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	createTestRecipe(t, db, author.ID, "Banana Bread")
	createTestRecipe(t, db, author.ID, "Apple Pie")

	recipes, _, err := db.ListRecipes(ctx, &RecipeFilter{SortBy: "title", SortOrder: "asc"}, 10, 0)
	if err != nil {
		t.Fatalf("ListRecipes sorted failed: %v", err)
	}
	if len(recipes) != 2 || recipes[0].Title != "Apple Pie" {
		t.Errorf("Expected Apple Pie first with title asc, got %+v", recipes)
	}

	// A sort field outside the allow-list is a validation error, never SQL.
	for _, field := range []string{"password_hash", "id; DROP TABLE recipes", "unknown"} {
		if _, _, err := db.ListRecipes(ctx, &RecipeFilter{SortBy: field}, 10, 0); err == nil {
			t.Errorf("Sort field %q should be rejected", field)
		}
	}

	// camelCase aliases map to the same columns.
	if _, _, err := db.ListRecipes(ctx, &RecipeFilter{SortBy: "createdAt"}, 10, 0); err != nil {
		t.Errorf("createdAt alias should be accepted: %v", err)
	}
}

func TestSearchRecipes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	if _, err := db.CreateRecipe(ctx, &models.Recipe{
		AuthorID: author.ID, Title: "Chicken Curry", Description: "Spicy and rich",
		Tags: []string{"indian"}, IsPublic: true, IsPublished: true,
	}); err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}
	if _, err := db.CreateRecipe(ctx, &models.Recipe{
		AuthorID: author.ID, Title: "Beef Stew", Description: "Slow cooked curry-scented stew",
		IsPublic: true, IsPublished: true,
	}); err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}
	// Hidden recipes never show up in search.
	if _, err := db.CreateRecipe(ctx, &models.Recipe{
		AuthorID: author.ID, Title: "Secret Curry", IsPublic: false, IsPublished: true,
	}); err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	tests := []struct {
		query    string
		expected int
	}{
		{"curry", 2},    // title + description matches, case-insensitive
		{"CURRY", 2},    // case-insensitive
		{"indian", 1},    // tag match
		{"stew", 1},      // title match
		{"nothing", 0},   // no match
		{"100%_sure", 0}, // LIKE metacharacters are literals, not wildcards
	}

	for _, tt := range tests {
		recipes, total, err := db.SearchRecipes(ctx, tt.query, 10, 0)
		if err != nil {
			t.Fatalf("SearchRecipes %q failed: %v", tt.query, err)
		}
		if total != tt.expected || len(recipes) != tt.expected {
			t.Errorf("Query %q: expected %d results, got total=%d len=%d",
				tt.query, tt.expected, total, len(recipes))
		}
	}
}

func TestDecorateFavorites(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	liked := createTestRecipe(t, db, author.ID, "Liked")
	other := createTestRecipe(t, db, author.ID, "Other")

	if err := db.FavoriteRecipe(ctx, fan.ID, liked.ID); err != nil {
		t.Fatalf("FavoriteRecipe failed: %v", err)
	}

	recipes := []models.Recipe{*liked, *other}
	if err := db.DecorateFavorites(ctx, fan.ID, recipes); err != nil {
		t.Fatalf("DecorateFavorites failed: %v", err)
	}

	if recipes[0].IsFavorited == nil || !*recipes[0].IsFavorited {
		t.Error("Favorited recipe should decorate true")
	}
	if recipes[1].IsFavorited == nil || *recipes[1].IsFavorited {
		t.Error("Unfavorited recipe should decorate false")
	}

	// Anonymous callers get no decoration.
	plain := []models.Recipe{*liked}
	if err := db.DecorateFavorites(ctx, "", plain); err != nil {
		t.Fatalf("DecorateFavorites with empty user failed: %v", err)
	}
	if plain[0].IsFavorited != nil {
		t.Error("Anonymous decoration must leave IsFavorited nil")
	}
}

func TestTagsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		out  []string
	}{
		{"plain", []string{"a", "b"}, []string{"a", "b"}},
		{"trims whitespace", []string{" a ", "b "}, []string{"a", "b"}},
		{"drops empties", []string{"", "a", " "}, []string{"a"}},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitTags(joinTags(tt.in))
			if !reflect.DeepEqual(got, tt.out) {
				t.Errorf("Round trip %v: expected %v, got %v", tt.in, tt.out, got)
			}
		})
	}
}
