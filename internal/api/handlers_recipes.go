// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/ItsZumar/Recipix-sub000/internal/auth"
	"github.com/ItsZumar/Recipix-sub000/internal/database"
	"github.com/ItsZumar/Recipix-sub000/internal/logging"
	"github.com/ItsZumar/Recipix-sub000/internal/metrics"
	"github.com/ItsZumar/Recipix-sub000/internal/models"
	"github.com/ItsZumar/Recipix-sub000/internal/pagination"
)

// ListRecipes returns a paginated recipe connection.
//
// Method: GET
// Path: /api/v1/recipes
//
// Query parameters: first (page size), after (opaque cursor), cuisine,
// difficulty, tags (comma-separated), author_id, max_prep_time,
// max_cook_time, min_rating, q, sort_by, sort_order.
//
// Only public, published recipes are returned regardless of filters.
// Authenticated callers additionally get is_favorited on each node.
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) || !h.requireDB(w) {
		return
	}

	first, offset, filter, err := h.parseListParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), err)
		return
	}

	start := time.Now()

	recipes, totalCount, err := h.db.ListRecipes(r.Context(), filter, first, offset)
	if err != nil {
		respondStorageError(w, err, "Failed to list recipes")
		return
	}

	h.decorateForCaller(r, recipes)

	connection := pagination.BuildRecipeConnection(recipes, offset, totalCount)
	respondSuccess(w, http.StatusOK, connection, start)
}

// parseListParams extracts and validates connection pagination and filter
// parameters for ListRecipes.
func (h *Handler) parseListParams(r *http.Request) (first, offset int, filter *database.RecipeFilter, err error) {
	defaultPageSize, maxPageSize := h.getPageSizeConfig()

	first = getIntParam(r, "first", defaultPageSize)
	after := r.URL.Query().Get("after")

	req := ListRecipesRequest{
		First:     first,
		After:     after,
		SortOrder: r.URL.Query().Get("sort_order"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		return 0, 0, nil, fmt.Errorf("%s: %s", apiErr.Code, apiErr.Message)
	}
	if first > maxPageSize {
		return 0, 0, nil, fmt.Errorf("first must be between 1 and %d", maxPageSize)
	}

	if after != "" {
		cursor, err := pagination.DecodeCursor(after)
		if err != nil {
			return 0, 0, nil, fmt.Errorf("invalid cursor format: %w", err)
		}
		// Cursors name the position of the item they were attached to, so
		// the next page starts immediately after it.
		offset = cursor.Offset + 1
	}

	filter = &database.RecipeFilter{
		Cuisine:     r.URL.Query().Get("cuisine"),
		Difficulty:  r.URL.Query().Get("difficulty"),
		Tags:        parseCommaSeparated(r.URL.Query().Get("tags")),
		AuthorID:    r.URL.Query().Get("author_id"),
		MaxPrepTime: getIntParam(r, "max_prep_time", 0),
		MaxCookTime: getIntParam(r, "max_cook_time", 0),
		Search:      r.URL.Query().Get("q"),
		SortBy:      r.URL.Query().Get("sort_by"),
		SortOrder:   req.SortOrder,
	}

	if minRatingStr := r.URL.Query().Get("min_rating"); minRatingStr != "" {
		minRating, parseErr := strconv.ParseFloat(minRatingStr, 64)
		if parseErr != nil || minRating < 0 || minRating > 5 {
			return 0, 0, nil, fmt.Errorf("min_rating must be a number between 0 and 5")
		}
		filter.MinRating = minRating
	}

	if err := database.ValidateSortField(filter.SortBy); err != nil {
		return 0, 0, nil, err
	}

	return first, offset, filter, nil
}

// SearchRecipes returns a flat list of public recipes matching a free-text
// query against title, description, and tags, ordered by rating.
//
// Method: GET
// Path: /api/v1/recipes/search
func (h *Handler) SearchRecipes(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) || !h.requireDB(w) {
		return
	}

	limit, offset, err := h.parseLimitOffset(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), err)
		return
	}

	req := SearchRecipesRequest{
		Query:  r.URL.Query().Get("q"),
		Limit:  limit,
		Offset: offset,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()

	recipes, totalCount, err := h.db.SearchRecipes(r.Context(), req.Query, limit, offset)
	if err != nil {
		respondStorageError(w, err, "Failed to search recipes")
		return
	}
	metrics.RecordSearch(totalCount)

	h.decorateForCaller(r, recipes)

	if recipes == nil {
		recipes = []models.Recipe{}
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"recipes":     recipes,
		"total_count": totalCount,
		"limit":       limit,
		"offset":      offset,
	}, start)
}

// GetRecipe returns a single recipe by ID.
//
// Method: GET
// Path: /api/v1/recipes/{id}
//
// Unpublished or private recipes are only visible to their owner and to
// admins; everyone else gets 404 so existence is not leaked.
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) || !h.requireDB(w) {
		return
	}

	start := time.Now()
	id := r.PathValue("id")

	recipe, err := h.db.GetRecipe(r.Context(), id)
	if err != nil {
		respondStorageError(w, err, "Failed to retrieve recipe")
		return
	}

	if !recipeVisible(recipe, auth.ClaimsFromContext(r.Context())) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Recipe not found", nil)
		return
	}

	recipes := []models.Recipe{*recipe}
	h.decorateForCaller(r, recipes)

	respondSuccess(w, http.StatusOK, recipes[0], start)
}

// CreateRecipe creates a new recipe owned by the caller.
//
// Method: POST
// Path: /api/v1/recipes
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) || !h.requireDB(w) {
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}

	var req CreateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()

	recipe := &models.Recipe{
		AuthorID:        claims.UserID,
		Title:           req.Title,
		Description:     req.Description,
		Cuisine:         req.Cuisine,
		Difficulty:      req.Difficulty,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        req.Servings,
		Tags:            req.Tags,
		ImageURL:        req.ImageURL,
		IsPublic:        true,
		IsPublished:     true,
	}
	if req.IsPublic != nil {
		recipe.IsPublic = *req.IsPublic
	}
	if req.IsPublished != nil {
		recipe.IsPublished = *req.IsPublished
	}

	created, err := h.db.CreateRecipe(r.Context(), recipe)
	if err != nil {
		respondStorageError(w, err, "Failed to create recipe")
		return
	}

	respondSuccess(w, http.StatusCreated, created, start)
}

// UpdateRecipe updates an existing recipe. Only the owner or an admin may
// update; engagement counters are never touched by updates.
//
// Method: PUT
// Path: /api/v1/recipes/{id}
func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPut) || !h.requireDB(w) {
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}

	var req UpdateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()
	id := r.PathValue("id")

	recipe, err := h.db.GetRecipe(r.Context(), id)
	if err != nil {
		respondStorageError(w, err, "Failed to retrieve recipe")
		return
	}

	if claims.UserID != recipe.AuthorID && !claims.IsAdmin {
		respondError(w, http.StatusForbidden, "FORBIDDEN", "Only the recipe owner may update it", nil)
		return
	}

	applyRecipeUpdate(recipe, &req)

	updated, err := h.db.UpdateRecipe(r.Context(), recipe)
	if err != nil {
		respondStorageError(w, err, "Failed to update recipe")
		return
	}

	respondSuccess(w, http.StatusOK, updated, start)
}

// applyRecipeUpdate copies the present fields of an update request onto the
// recipe. Nil pointers keep the current value.
func applyRecipeUpdate(recipe *models.Recipe, req *UpdateRecipeRequest) {
	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Cuisine != nil {
		recipe.Cuisine = *req.Cuisine
	}
	if req.Difficulty != nil {
		recipe.Difficulty = *req.Difficulty
	}
	if req.PrepTimeMinutes != nil {
		recipe.PrepTimeMinutes = *req.PrepTimeMinutes
	}
	if req.CookTimeMinutes != nil {
		recipe.CookTimeMinutes = *req.CookTimeMinutes
	}
	if req.Servings != nil {
		recipe.Servings = *req.Servings
	}
	if req.ImageURL != nil {
		recipe.ImageURL = *req.ImageURL
	}
	if req.Tags != nil {
		recipe.Tags = req.Tags
	}
	if req.IsPublic != nil {
		recipe.IsPublic = *req.IsPublic
	}
	if req.IsPublished != nil {
		recipe.IsPublished = *req.IsPublished
	}
}

// DeleteRecipe removes a recipe and its engagement edges. Only the owner or
// an admin may delete.
//
// Method: DELETE
// Path: /api/v1/recipes/{id}
func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodDelete) || !h.requireDB(w) {
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}

	start := time.Now()
	id := r.PathValue("id")

	recipe, err := h.db.GetRecipe(r.Context(), id)
	if err != nil {
		respondStorageError(w, err, "Failed to retrieve recipe")
		return
	}

	if claims.UserID != recipe.AuthorID && !claims.IsAdmin {
		respondError(w, http.StatusForbidden, "FORBIDDEN", "Only the recipe owner may delete it", nil)
		return
	}

	if err := h.db.DeleteRecipe(r.Context(), id); err != nil {
		respondStorageError(w, err, "Failed to delete recipe")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"message": "Recipe deleted"}, start)
}

// decorateForCaller populates is_favorited on each recipe for authenticated
// callers. Decoration failures degrade to undecorated responses rather than
// failing the request.
func (h *Handler) decorateForCaller(r *http.Request, recipes []models.Recipe) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil || len(recipes) == 0 {
		return
	}

	if err := h.db.DecorateFavorites(r.Context(), claims.UserID, recipes); err != nil {
		logging.Warn().Err(err).Str("user_id", claims.UserID).Msg("Failed to decorate favorites")
	}
}
