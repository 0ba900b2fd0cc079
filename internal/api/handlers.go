// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

// Package api provides the HTTP surface: recipe listing and search, recipe
// CRUD, engagement endpoints (ratings, favorites, follows, views), user
// summaries, authentication, and health checks.
package api

import (
	"time"

	"github.com/ItsZumar/Recipix-sub000/internal/auth"
	"github.com/ItsZumar/Recipix-sub000/internal/config"
	"github.com/ItsZumar/Recipix-sub000/internal/database"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: shared response and parsing helpers
//   - handlers_recipes.go: recipe listing, search, and CRUD
//   - handlers_engagement.go: ratings, favorites, views
//   - handlers_social.go: follow graph and user summaries
//   - handlers_auth.go: login
//   - handlers_health.go: health and readiness endpoints
type Handler struct {
	db         *database.DB
	config     *config.Config
	jwtManager *auth.JWTManager
	startTime  time.Time
}

// NewHandler creates a new API handler with all required dependencies.
func NewHandler(db *database.DB, cfg *config.Config, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		db:         db,
		config:     cfg,
		jwtManager: jwtManager,
		startTime:  time.Now(),
	}
}

// getPageSizeConfig returns page size configuration with safe defaults.
func (h *Handler) getPageSizeConfig() (defaultPageSize, maxPageSize int) {
	defaultPageSize, maxPageSize = 20, 100
	if h.config != nil {
		defaultPageSize = h.config.API.DefaultPageSize
		maxPageSize = h.config.API.MaxPageSize
	}
	return defaultPageSize, maxPageSize
}
