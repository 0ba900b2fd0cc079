// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

// Package metrics provides Prometheus instrumentation for database query
// performance, API endpoint latency and throughput, and recipe engagement
// activity (ratings, favorites, follows, views).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	DBConnectionPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "duckdb_connection_pool_size",
			Help: "Current number of database connections in use",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Engagement Metrics
	RatingsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratings_submitted_total",
			Help: "Total number of rating submissions",
		},
		[]string{"result"}, // "created_or_updated", "out_of_range", "not_found", "error"
	)

	FavoriteOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorite_operations_total",
			Help: "Total number of favorite and unfavorite operations",
		},
		[]string{"operation", "result"}, // operation: "favorite", "unfavorite"
	)

	FollowOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "follow_operations_total",
			Help: "Total number of follow and unfollow operations",
		},
		[]string{"operation", "result"}, // operation: "follow", "unfollow"
	)

	ViewsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_views_recorded_total",
			Help: "Total number of recipe views that incremented the view counter",
		},
	)

	ViewsDeduplicated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_views_deduplicated_total",
			Help: "Total number of recipe views skipped as duplicates",
		},
	)

	ViewLedgerFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_view_ledger_failures_total",
			Help: "Total number of view ledger writes that failed while the counter still advanced",
		},
	)

	// Search Metrics
	SearchQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_search_queries_total",
			Help: "Total number of recipe search queries",
		},
	)

	SearchResultCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_search_result_count",
			Help:    "Number of matching recipes per search query",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	// Authentication Metrics
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"}, // "success", "failure"
	)

	TokenValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_validations_total",
			Help: "Total number of JWT validation attempts",
		},
		[]string{"result"}, // "valid", "invalid"
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRating records a rating submission and its outcome
func RecordRating(result string) {
	RatingsSubmitted.WithLabelValues(result).Inc()
}

// RecordFavoriteOp records a favorite or unfavorite operation
func RecordFavoriteOp(operation string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	FavoriteOperations.WithLabelValues(operation, result).Inc()
}

// RecordFollowOp records a follow or unfollow operation
func RecordFollowOp(operation string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	FollowOperations.WithLabelValues(operation, result).Inc()
}

// RecordView records the outcome of a view submission
func RecordView(deduplicated bool) {
	if deduplicated {
		ViewsDeduplicated.Inc()
	} else {
		ViewsRecorded.Inc()
	}
}

// RecordSearch records a search query and its result size
func RecordSearch(resultCount int) {
	SearchQueries.Inc()
	SearchResultCount.Observe(float64(resultCount))
}

// RecordLogin records a login attempt outcome
func RecordLogin(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	LoginAttempts.WithLabelValues(result).Inc()
}
