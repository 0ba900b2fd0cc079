// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

package database

import (
	"errors"
	"io"

	"github.com/ItsZumar/Recipix-sub000/internal/logging"
)

// Sentinel errors returned by the engagement operations. The API layer maps
// these to HTTP status codes with errors.Is.
var (
	// ErrRecipeNotFound is returned when the recipe does not exist or the
	// caller is not allowed to see it.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrRatingOutOfRange is returned for rating values outside 1..5.
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")

	// ErrAlreadyFavorited is returned when the favorite edge already exists.
	ErrAlreadyFavorited = errors.New("recipe already favorited")

	// ErrNotFavorited is returned when removing a favorite edge that does
	// not exist.
	ErrNotFavorited = errors.New("recipe not favorited")

	// ErrSelfFollow is returned when a user attempts to follow themselves.
	ErrSelfFollow = errors.New("users cannot follow themselves")

	// ErrAlreadyFollowing is returned when the follow edge already exists.
	ErrAlreadyFollowing = errors.New("already following user")

	// ErrNotFollowing is returned when removing a follow edge that does
	// not exist.
	ErrNotFollowing = errors.New("not following user")
)

// closeQuietly closes a resource and explicitly ignores any error.
// Use this for cleanup operations in error paths where Close() errors are
// not actionable. Satisfies errcheck by acknowledging the ignored error.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}

// logWarnCheckpoint logs a failed pre-close checkpoint. Checkpointing is
// best-effort; the close proceeds regardless.
func logWarnCheckpoint(err error) {
	logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
}

// rollbackOnError rolls back tx when *errp is non-nil, logging rollback
// failures against the original error.
func rollbackOnError(tx interface{ Rollback() error }, errp *error) {
	if *errp == nil {
		return
	}
	if rbErr := tx.Rollback(); rbErr != nil {
		logging.Error().
			Err(rbErr).
			AnErr("original_error", *errp).
			Msg("Transaction rollback failed")
	}
}
