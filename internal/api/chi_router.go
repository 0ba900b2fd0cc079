// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

// Package api provides HTTP routing using the Chi router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ItsZumar/Recipix-sub000/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
// This allows our existing middleware to work with Chi's r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// chiPathValue bridges Chi URL params to Go 1.22+'s r.PathValue().
// Handlers read path parameters with r.PathValue regardless of router.
func chiPathValue(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())
		if rctx != nil {
			for i, key := range rctx.URLParams.Keys {
				if i < len(rctx.URLParams.Values) {
					r.SetPathValue(key, rctx.URLParams.Values[i])
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// SetupChi configures all HTTP routes using the Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(chiMiddleware(middleware.RequestID)) // X-Request-ID header with logging context
	r.Use(chimiddleware.RealIP)                // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)             // Recover from panics
	r.Use(router.chiMiddleware.CORS())         // CORS must be global to handle OPTIONS preflight

	// ========================
	// Health Endpoints
	// ========================
	// Permissive rate limiting so monitoring tools can poll frequently
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitHealth))
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// ========================
	// Authentication Endpoints
	// ========================
	// Strict rate limiting for brute force prevention
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitAuth))
		r.Use(APISecurityHeaders())

		// Login has the strictest rate limiting (5 attempts per 5 minutes)
		r.With(router.chiMiddleware.RateLimitCustom(RateLimitLogin)).Post("/login", router.handler.Login)
	})

	// ========================
	// Recipe Endpoints
	// ========================
	r.Route("/api/v1/recipes", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(chiPathValue) // Bridge Chi URL params to r.PathValue()
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		// Read operations are public but identify the caller when a
		// token is present, so responses can carry viewer state.
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(chiMiddleware(router.middleware.Identify))

			r.Get("/", router.handler.ListRecipes)
			r.Get("/search", router.handler.SearchRecipes)
			r.Get("/{id}", router.handler.GetRecipe)
			r.Post("/{id}/view", router.handler.ViewRecipe)
		})

		// Write operations require authentication
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitCustom(RateLimitWrite))
			r.Use(chiMiddleware(router.middleware.Authenticate))

			r.Post("/", router.handler.CreateRecipe)
			r.Put("/{id}", router.handler.UpdateRecipe)
			r.Delete("/{id}", router.handler.DeleteRecipe)
			r.Post("/{id}/rate", router.handler.RateRecipe)
			r.Post("/{id}/favorite", router.handler.FavoriteRecipe)
			r.Delete("/{id}/favorite", router.handler.UnfavoriteRecipe)
		})
	})

	// ========================
	// User and Follow Graph Endpoints
	// ========================
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(chiPathValue) // Bridge Chi URL params to r.PathValue()
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		// Read operations
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(chiMiddleware(router.middleware.Identify))

			r.Get("/{id}", router.handler.GetUserSummary)
			r.Get("/{id}/followers", router.handler.UserFollowers)
			r.Get("/{id}/following", router.handler.UserFollowing)
		})

		// Follow edge mutations require authentication
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitCustom(RateLimitWrite))
			r.Use(chiMiddleware(router.middleware.Authenticate))

			r.Post("/{id}/follow", router.handler.FollowUser)
			r.Delete("/{id}/follow", router.handler.UnfollowUser)
		})
	})

	// ========================
	// Authenticated User Endpoints
	// ========================
	r.Route("/api/v1/me", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(router.middleware.Authenticate))

		r.Get("/favorites", router.handler.ListMyFavorites)
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}
