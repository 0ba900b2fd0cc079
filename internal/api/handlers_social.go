// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/ItsZumar/Recipix-sub000/internal/auth"
	"github.com/ItsZumar/Recipix-sub000/internal/metrics"
	"github.com/ItsZumar/Recipix-sub000/internal/models"
)

// FollowUser makes the caller follow the target user. Following yourself is
// a validation error; following someone twice is a Conflict.
//
// Method: POST
// Path: /api/v1/users/{id}/follow
func (h *Handler) FollowUser(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) || !h.requireDB(w) {
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}

	start := time.Now()

	err := h.db.FollowUser(r.Context(), claims.UserID, r.PathValue("id"))
	metrics.RecordFollowOp("follow", err)
	if err != nil {
		respondStorageError(w, err, "Failed to follow user")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]bool{"following": true}, start)
}

// UnfollowUser removes the caller's follow edge to the target user.
// Unfollowing someone never followed is a Conflict.
//
// Method: DELETE
// Path: /api/v1/users/{id}/follow
func (h *Handler) UnfollowUser(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodDelete) || !h.requireDB(w) {
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}

	start := time.Now()

	err := h.db.UnfollowUser(r.Context(), claims.UserID, r.PathValue("id"))
	metrics.RecordFollowOp("unfollow", err)
	if err != nil {
		respondStorageError(w, err, "Failed to unfollow user")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]bool{"following": false}, start)
}

// UserFollowers returns a page of the users following the target user,
// most recent followers first.
//
// Method: GET
// Path: /api/v1/users/{id}/followers
func (h *Handler) UserFollowers(w http.ResponseWriter, r *http.Request) {
	h.listFollowPage(w, r, h.db.ListFollowers)
}

// UserFollowing returns a page of the users the target user follows,
// most recently followed first.
//
// Method: GET
// Path: /api/v1/users/{id}/following
func (h *Handler) UserFollowing(w http.ResponseWriter, r *http.Request) {
	h.listFollowPage(w, r, h.db.ListFollowing)
}

// listFollowPage handles the shared shape of the followers and following
// projections.
func (h *Handler) listFollowPage(w http.ResponseWriter, r *http.Request,
	list func(ctx context.Context, userID string, limit, offset int) (*models.UserPage, error),
) {
	if !requireMethod(w, r, http.MethodGet) || !h.requireDB(w) {
		return
	}

	limit, offset, err := h.parseLimitOffset(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), err)
		return
	}

	start := time.Now()

	page, err := list(r.Context(), r.PathValue("id"), limit, offset)
	if err != nil {
		respondStorageError(w, err, "Failed to list follow edges")
		return
	}

	respondSuccess(w, http.StatusOK, page, start)
}

// GetUserSummary returns a user's public profile with follower and
// following counts derived from the follow graph at read time.
//
// Method: GET
// Path: /api/v1/users/{id}
func (h *Handler) GetUserSummary(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) || !h.requireDB(w) {
		return
	}

	start := time.Now()
	id := r.PathValue("id")

	user, err := h.db.GetUser(r.Context(), id)
	if err != nil {
		respondStorageError(w, err, "Failed to retrieve user")
		return
	}

	followers, following, err := h.db.FollowCounts(r.Context(), id)
	if err != nil {
		respondStorageError(w, err, "Failed to derive follow counts")
		return
	}

	summary := models.UserSummary{
		ID:             user.ID,
		Username:       user.Username,
		DisplayName:    user.DisplayName,
		AvatarURL:      user.AvatarURL,
		FollowerCount:  followers,
		FollowingCount: following,
	}

	respondSuccess(w, http.StatusOK, summary, start)
}
