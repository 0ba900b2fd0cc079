// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/ItsZumar/Recipix-sub000/internal/database"
	"github.com/ItsZumar/Recipix-sub000/internal/metrics"
	"github.com/ItsZumar/Recipix-sub000/internal/models"
)

// Login authenticates a user and returns a JWT.
//
// Method: POST
// Path: /api/v1/auth/login
//
// Registered users are verified against their bcrypt password hash. The
// configured admin account (ADMIN_USERNAME/ADMIN_PASSWORD) is accepted as a
// fallback when no such user exists in the database.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err)
		return
	}

	validationReq := LoginRequestValidation{
		Username: req.Username,
		Password: req.Password,
	}
	if apiErr := validateRequest(&validationReq); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	if h.jwtManager == nil {
		respondError(w, http.StatusInternalServerError, "AUTH_NOT_CONFIGURED", "JWT manager not initialized", nil)
		return
	}

	userID, isAdmin, ok := h.verifyCredentials(r, &req)
	metrics.RecordLogin(ok)
	if !ok {
		respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
		return
	}

	token, expiresAt, err := h.jwtManager.GenerateToken(userID, req.Username, isAdmin)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "TOKEN_GENERATION_FAILED", "Failed to generate authentication token", err)
		return
	}

	h.setAuthCookie(w, r, token, expiresAt)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.LoginResponse{
			Token:     token,
			ExpiresAt: expiresAt,
			Username:  req.Username,
			UserID:    userID,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// verifyCredentials checks the supplied credentials against the user store
// and the configured admin account.
func (h *Handler) verifyCredentials(r *http.Request, req *models.LoginRequest) (userID string, isAdmin, ok bool) {
	if h.db != nil {
		user, err := h.db.GetUserByUsername(r.Context(), req.Username)
		switch {
		case err == nil:
			if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
				return "", false, false
			}
			return user.ID, user.IsAdmin, true
		case !errors.Is(err, database.ErrUserNotFound):
			return "", false, false
		}
	}

	if h.config != nil &&
		h.config.Security.AdminUsername != "" &&
		req.Username == h.config.Security.AdminUsername &&
		req.Password == h.config.Security.AdminPassword {
		return fmt.Sprintf("%s-001", req.Username), true, true
	}

	return "", false, false
}

// setAuthCookie sets the authentication cookie
func (h *Handler) setAuthCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
}
