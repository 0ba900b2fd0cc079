// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ItsZumar/Recipix-sub000/internal/logging"
	"github.com/ItsZumar/Recipix-sub000/internal/metrics"
	"github.com/ItsZumar/Recipix-sub000/internal/models"
)

// RecordView registers a view of a recipe, deduplicated on the
// (recipe_id, viewer_id, address) key. viewerID is nil for anonymous views,
// so all anonymous viewers behind one address count once.
//
// The ledger insert and the counter increment are deliberately decoupled:
// once the dedup check has passed, the view counts. A failed ledger insert
// is logged at warn level and the view_count increment proceeds anyway, so
// the counter can run ahead of the ledger but a view is never lost to a
// ledger failure. A duplicate view changes nothing and is not an error.
//
// Two concurrent first views of the same key can both pass the dedup check
// and both increment the counter; the view counter is an engagement signal,
// not an exact count, and tolerates that imprecision.
func (db *DB) RecordView(ctx context.Context, recipeID string, viewerID *string, address, userAgent string) (*models.Recipe, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	recipe, err := db.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	seen, err := db.hasViewed(ctx, recipeID, viewerID, address)
	if err != nil {
		return nil, err
	}
	if seen {
		return recipe, nil
	}

	if _, err := db.conn.ExecContext(ctx,
		`INSERT INTO recipe_views (recipe_id, viewer_id, address, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		recipeID, viewerID, address, userAgent, time.Now().UTC()); err != nil {
		// Best-effort ledger: the view still counts.
		metrics.ViewLedgerFailures.Inc()
		logging.Warn().
			Err(err).
			Str("recipe_id", recipeID).
			Str("address", address).
			Msg("Failed to record view ledger entry, incrementing count anyway")
	}

	if _, err := db.conn.ExecContext(ctx,
		"UPDATE recipes SET view_count = view_count + 1 WHERE id = ?", recipeID); err != nil {
		return nil, fmt.Errorf("failed to increment view count: %w", err)
	}

	return db.GetRecipe(ctx, recipeID)
}

// hasViewed checks the dedup key against the view ledger. A nil viewerID
// matches only the anonymous rows for the same address.
func (db *DB) hasViewed(ctx context.Context, recipeID string, viewerID *string, address string) (bool, error) {
	var n int
	var err error

	if viewerID == nil {
		err = db.conn.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM recipe_views WHERE recipe_id = ? AND viewer_id IS NULL AND address = ?",
			recipeID, address).Scan(&n)
	} else {
		err = db.conn.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM recipe_views WHERE recipe_id = ? AND viewer_id = ? AND address = ?",
			recipeID, *viewerID, address).Scan(&n)
	}
	if err != nil {
		return false, fmt.Errorf("failed to check view ledger: %w", err)
	}

	return n > 0, nil
}

// ViewCount returns the ledger row count for a recipe. Test and diagnostic
// helper; the served counter is recipes.view_count.
func (db *DB) ViewCount(ctx context.Context, recipeID string) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int
	if err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM recipe_views WHERE recipe_id = ?", recipeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count view ledger rows: %w", err)
	}
	return n, nil
}
