// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

package api

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/ItsZumar/Recipix-sub000/internal/auth"
	"github.com/ItsZumar/Recipix-sub000/internal/database"
	"github.com/ItsZumar/Recipix-sub000/internal/metrics"
	"github.com/ItsZumar/Recipix-sub000/internal/models"
)

// RateRecipe submits or replaces the caller's 1-5 rating of a recipe and
// returns the recipe with its recomputed aggregate.
//
// Method: POST
// Path: /api/v1/recipes/{id}/rate
//
// Re-rating replaces the previous value; the recipe's rating and
// rating_count are always recomputed from the ratings table, so repeated
// submissions of the same value are idempotent.
func (h *Handler) RateRecipe(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) || !h.requireDB(w) {
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}

	var req RateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		metrics.RecordRating("out_of_range")
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()

	target, err := h.db.GetRecipe(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStorageError(w, err, "Failed to retrieve recipe")
		return
	}
	if !recipeVisible(target, claims) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Recipe not found", nil)
		return
	}

	recipe, err := h.db.RateRecipe(r.Context(), claims.UserID, target.ID, req.Value)
	if err != nil {
		metrics.RecordRating(ratingResult(err))
		respondStorageError(w, err, "Failed to rate recipe")
		return
	}
	metrics.RecordRating("created_or_updated")

	h.decorateForCaller(r, []models.Recipe{*recipe})

	respondSuccess(w, http.StatusOK, recipe, start)
}

// ratingResult classifies a rating error for instrumentation.
func ratingResult(err error) string {
	switch {
	case errors.Is(err, database.ErrRatingOutOfRange):
		return "out_of_range"
	case errors.Is(err, database.ErrRecipeNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// remoteAddress extracts the client address without the port. Behind the
// RealIP middleware RemoteAddr is already the forwarded client IP.
func remoteAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// FavoriteRecipe adds the recipe to the caller's favorites. The favorite
// edge and the counter increment commit atomically; favoriting twice is a
// Conflict.
//
// Method: POST
// Path: /api/v1/recipes/{id}/favorite
func (h *Handler) FavoriteRecipe(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) || !h.requireDB(w) {
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}

	start := time.Now()

	target, err := h.db.GetRecipe(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStorageError(w, err, "Failed to retrieve recipe")
		return
	}
	if !recipeVisible(target, claims) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Recipe not found", nil)
		return
	}

	err = h.db.FavoriteRecipe(r.Context(), claims.UserID, target.ID)
	metrics.RecordFavoriteOp("favorite", err)
	if err != nil {
		respondStorageError(w, err, "Failed to favorite recipe")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]bool{"favorited": true}, start)
}

// UnfavoriteRecipe removes the recipe from the caller's favorites.
// Unfavoriting something never favorited is a Conflict.
//
// Method: DELETE
// Path: /api/v1/recipes/{id}/favorite
func (h *Handler) UnfavoriteRecipe(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodDelete) || !h.requireDB(w) {
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}

	start := time.Now()

	err := h.db.UnfavoriteRecipe(r.Context(), claims.UserID, r.PathValue("id"))
	metrics.RecordFavoriteOp("unfavorite", err)
	if err != nil {
		respondStorageError(w, err, "Failed to unfavorite recipe")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]bool{"favorited": false}, start)
}

// ViewRecipe records a view of a recipe and returns the recipe with its
// current view count.
//
// Method: POST
// Path: /api/v1/recipes/{id}/view
//
// Authenticated callers are deduplicated by user ID; anonymous callers by
// remote address. A repeat view returns the recipe unchanged.
func (h *Handler) ViewRecipe(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) || !h.requireDB(w) {
		return
	}

	start := time.Now()

	claims := auth.ClaimsFromContext(r.Context())
	var viewerID *string
	if claims != nil {
		viewerID = &claims.UserID
	}

	before, err := h.db.GetRecipe(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStorageError(w, err, "Failed to retrieve recipe")
		return
	}

	// Hidden recipes answer 404 to everyone but the owner and admins so
	// existence is not leaked.
	if !recipeVisible(before, claims) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Recipe not found", nil)
		return
	}

	recipe, err := h.db.RecordView(r.Context(), before.ID, viewerID, remoteAddress(r), r.UserAgent())
	if err != nil {
		respondStorageError(w, err, "Failed to record view")
		return
	}
	metrics.RecordView(recipe.ViewCount == before.ViewCount)

	h.decorateForCaller(r, []models.Recipe{*recipe})

	respondSuccess(w, http.StatusOK, recipe, start)
}

// ListMyFavorites returns the caller's favorited recipes, most recently
// favorited first.
//
// Method: GET
// Path: /api/v1/me/favorites
func (h *Handler) ListMyFavorites(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) || !h.requireDB(w) {
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}

	limit, offset, err := h.parseLimitOffset(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), err)
		return
	}

	start := time.Now()

	recipes, totalCount, err := h.db.ListFavorites(r.Context(), claims.UserID, limit, offset)
	if err != nil {
		respondStorageError(w, err, "Failed to list favorites")
		return
	}

	// Everything here is favorited by definition.
	favorited := true
	for i := range recipes {
		recipes[i].IsFavorited = &favorited
	}

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
