// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

// errors.go - mapping from storage-layer sentinel errors to API error
// responses. Conflict messages distinguish "already true" from genuinely
// invalid requests so clients can treat repeats as no-ops.
package api

import (
	"errors"
	"net/http"

	"github.com/ItsZumar/Recipix-sub000/internal/database"
)

// respondStorageError maps a database-layer error to the API error taxonomy.
// fallback is the message used for unrecognized errors (reported as a 500).
func respondStorageError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, database.ErrRecipeNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Recipe not found", nil)
	case errors.Is(err, database.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	case errors.Is(err, database.ErrRatingOutOfRange):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Rating value must be between 1 and 5", nil)
	case errors.Is(err, database.ErrSelfFollow):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Users cannot follow themselves", nil)
	case errors.Is(err, database.ErrAlreadyFavorited):
		respondError(w, http.StatusConflict, "CONFLICT", "Recipe is already favorited", nil)
	case errors.Is(err, database.ErrNotFavorited):
		respondError(w, http.StatusConflict, "CONFLICT", "Recipe is not favorited", nil)
	case errors.Is(err, database.ErrAlreadyFollowing):
		respondError(w, http.StatusConflict, "CONFLICT", "Already following this user", nil)
	case errors.Is(err, database.ErrNotFollowing):
		respondError(w, http.StatusConflict, "CONFLICT", "Not following this user", nil)
	default:
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", fallback, err)
	}
}
