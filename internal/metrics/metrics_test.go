// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordDBQuery tests database query metric recording
func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		duration  time.Duration
		err       error
	}{
		{
			name:      "successful SELECT query",
			operation: "SELECT",
			table:     "recipes",
			duration:  10 * time.Millisecond,
			err:       nil,
		},
		{
			name:      "successful INSERT query",
			operation: "INSERT",
			table:     "recipe_ratings",
			duration:  5 * time.Millisecond,
			err:       nil,
		},
		{
			name:      "failed query",
			operation: "UPDATE",
			table:     "recipes",
			duration:  100 * time.Millisecond,
			err:       errors.New("constraint violation"),
		},
		{
			name:      "fast query under 1ms",
			operation: "SELECT",
			table:     "users",
			duration:  500 * time.Microsecond,
			err:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table))

			RecordDBQuery(tt.operation, tt.table, tt.duration, tt.err)

			after := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table))
			wantDelta := 0.0
			if tt.err != nil {
				wantDelta = 1.0
			}
			if after-before != wantDelta {
				t.Errorf("error counter delta = %v, want %v", after-before, wantDelta)
			}
		})
	}
}

func TestRecordRating(t *testing.T) {
	before := testutil.ToFloat64(RatingsSubmitted.WithLabelValues("created_or_updated"))
	RecordRating("created_or_updated")
	after := testutil.ToFloat64(RatingsSubmitted.WithLabelValues("created_or_updated"))

	if after-before != 1 {
		t.Errorf("ratings counter delta = %v, want 1", after-before)
	}
}

func TestRecordFavoriteOp(t *testing.T) {
	beforeOK := testutil.ToFloat64(FavoriteOperations.WithLabelValues("favorite", "success"))
	beforeFail := testutil.ToFloat64(FavoriteOperations.WithLabelValues("unfavorite", "failure"))

	RecordFavoriteOp("favorite", nil)
	RecordFavoriteOp("unfavorite", errors.New("not favorited"))

	if d := testutil.ToFloat64(FavoriteOperations.WithLabelValues("favorite", "success")) - beforeOK; d != 1 {
		t.Errorf("favorite success delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(FavoriteOperations.WithLabelValues("unfavorite", "failure")) - beforeFail; d != 1 {
		t.Errorf("unfavorite failure delta = %v, want 1", d)
	}
}

func TestRecordFollowOp(t *testing.T) {
	before := testutil.ToFloat64(FollowOperations.WithLabelValues("follow", "success"))
	RecordFollowOp("follow", nil)

	if d := testutil.ToFloat64(FollowOperations.WithLabelValues("follow", "success")) - before; d != 1 {
		t.Errorf("follow success delta = %v, want 1", d)
	}
}

func TestRecordView(t *testing.T) {
	beforeRecorded := testutil.ToFloat64(ViewsRecorded)
	beforeDeduped := testutil.ToFloat64(ViewsDeduplicated)

	RecordView(false)
	RecordView(true)
	RecordView(true)

	if d := testutil.ToFloat64(ViewsRecorded) - beforeRecorded; d != 1 {
		t.Errorf("recorded views delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(ViewsDeduplicated) - beforeDeduped; d != 2 {
		t.Errorf("deduplicated views delta = %v, want 2", d)
	}
}

func TestRecordSearch(t *testing.T) {
	before := testutil.ToFloat64(SearchQueries)
	RecordSearch(7)
	RecordSearch(0)

	if d := testutil.ToFloat64(SearchQueries) - before; d != 2 {
		t.Errorf("search queries delta = %v, want 2", d)
	}
}

func TestRecordLogin(t *testing.T) {
	beforeOK := testutil.ToFloat64(LoginAttempts.WithLabelValues("success"))
	beforeFail := testutil.ToFloat64(LoginAttempts.WithLabelValues("failure"))

	RecordLogin(true)
	RecordLogin(false)

	if d := testutil.ToFloat64(LoginAttempts.WithLabelValues("success")) - beforeOK; d != 1 {
		t.Errorf("login success delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(LoginAttempts.WithLabelValues("failure")) - beforeFail; d != 1 {
		t.Errorf("login failure delta = %v, want 1", d)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if d := testutil.ToFloat64(APIActiveRequests) - before; d != 1 {
		t.Errorf("active requests delta = %v, want 1", d)
	}

	TrackActiveRequest(false)
	if d := testutil.ToFloat64(APIActiveRequests) - before; d != 0 {
		t.Errorf("active requests delta after release = %v, want 0", d)
	}
}
