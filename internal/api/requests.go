// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

// Package api provides HTTP request validation structs with
// go-playground/validator tags. These structs are used to validate incoming
// API request parameters before processing.
//
// Example usage:
//
//	req := ListRecipesRequest{
//	    First: getIntParam(r, "first", 20),
//	    After: r.URL.Query().Get("after"),
//	}
//	if err := validateRequest(&req); err != nil {
//	    respondError(w, http.StatusBadRequest, err.Code, err.Message, nil)
//	    return
//	}
package api

// ListRecipesRequest represents the validated query parameters for
// GET /recipes connection pagination.
//
// Fields:
//   - First: Page size (1-100, default from config)
//   - After: Base64url-encoded offset cursor
//   - SortOrder: Sort direction (asc or desc)
type ListRecipesRequest struct {
	First     int    `validate:"min=1"`
	After     string `validate:"omitempty,base64url"`
	SortOrder string `validate:"omitempty,oneof=asc desc ASC DESC"`
}

// SearchRecipesRequest represents the validated query parameters for
// GET /recipes/search.
type SearchRecipesRequest struct {
	Query  string `validate:"required,min=1,max=200"`
	Limit  int    `validate:"min=1"`
	Offset int    `validate:"min=0,max=1000000"`
}

// CreateRecipeRequest represents the request body for POST /recipes.
type CreateRecipeRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=200"`
	Description     string   `json:"description" validate:"max=5000"`
	Cuisine         string   `json:"cuisine" validate:"max=100"`
	Difficulty      string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	PrepTimeMinutes int      `json:"prep_time_minutes" validate:"min=0,max=10080"`
	CookTimeMinutes int      `json:"cook_time_minutes" validate:"min=0,max=10080"`
	Servings        int      `json:"servings" validate:"min=0,max=1000"`
	ImageURL        string   `json:"image_url" validate:"omitempty,url,max=2000"`
	Tags            []string `json:"tags" validate:"max=20,dive,min=1,max=50"`
	IsPublic        *bool    `json:"is_public"`
	IsPublished     *bool    `json:"is_published"`
}

// UpdateRecipeRequest represents the request body for PUT /recipes/{id}.
// All fields are optional; absent fields keep their current value.
type UpdateRecipeRequest struct {
	Title           *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Description     *string  `json:"description" validate:"omitempty,max=5000"`
	Cuisine         *string  `json:"cuisine" validate:"omitempty,max=100"`
	Difficulty      *string  `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	PrepTimeMinutes *int     `json:"prep_time_minutes" validate:"omitempty,min=0,max=10080"`
	CookTimeMinutes *int     `json:"cook_time_minutes" validate:"omitempty,min=0,max=10080"`
	Servings        *int     `json:"servings" validate:"omitempty,min=0,max=1000"`
	ImageURL        *string  `json:"image_url" validate:"omitempty,url,max=2000"`
	Tags            []string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
	IsPublic        *bool    `json:"is_public"`
	IsPublished     *bool    `json:"is_published"`
}

// RateRecipeRequest represents the request body for POST /recipes/{id}/rate.
// The 1-5 range is enforced again at the storage layer; this catches obvious
// garbage before a transaction is opened.
type RateRecipeRequest struct {
	Value int `json:"value" validate:"required,min=1,max=5"`
}

// LoginRequestValidation represents the validated request body for
// POST /auth/login. Named differently from models.LoginRequest to avoid
// conflicts.
type LoginRequestValidation struct {
	Username string `validate:"required,min=1"`
	Password string `validate:"required,min=1"`
}
