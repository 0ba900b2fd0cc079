// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

package api

import (
	"github.com/ItsZumar/Recipix-sub000/internal/auth"
)

// Router wires handlers and middleware into the HTTP routing tree.
type Router struct {
	handler       *Handler
	middleware    *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router from the handler and authentication middleware.
// Rate limit and CORS settings are taken from the handler's configuration.
func NewRouter(handler *Handler, middleware *auth.Middleware) *Router {
	sec := &handler.config.Security
	chiMw := NewChiMiddlewareFromConfig(
		sec.CORSOrigins,
		sec.RateLimitReqs,
		sec.RateLimitWindow,
		sec.RateLimitDisabled,
	)

	return &Router{
		handler:       handler,
		middleware:    middleware,
		chiMiddleware: chiMw,
	}
}
