// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthenticateMiddleware(t *testing.T) {
	m := NewMiddleware(testJWTManager(t))

	token, _, err := m.jwtManager.GenerateToken("user-1", "alice", false)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedUserID string
	}{
		{"valid token", "Bearer " + token, http.StatusOK, "user-1"},
		{"lowercase scheme", "bearer " + token, http.StatusOK, "user-1"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc123", http.StatusUnauthorized, ""},
		{"empty token", "Bearer ", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID string
			handler := m.Authenticate(func(w http.ResponseWriter, r *http.Request) {
				if claims := ClaimsFromContext(r.Context()); claims != nil {
					gotUserID = claims.UserID
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if gotUserID != tt.expectedUserID {
				t.Errorf("Expected user ID %q, got %q", tt.expectedUserID, gotUserID)
			}
		})
	}
}

func TestIdentifyMiddleware(t *testing.T) {
	m := NewMiddleware(testJWTManager(t))

	token, _, err := m.jwtManager.GenerateToken("user-1", "alice", false)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	t.Run("anonymous passes through", func(t *testing.T) {
		called := false
		handler := m.Identify(func(w http.ResponseWriter, r *http.Request) {
			called = true
			if claims := ClaimsFromContext(r.Context()); claims != nil {
				t.Errorf("Anonymous request should carry no claims, got %+v", claims)
			}
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		w := httptest.NewRecorder()
		handler(w, req)

		if !called {
			t.Error("Handler should be called for anonymous requests")
		}
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("valid token resolves claims", func(t *testing.T) {
		handler := m.Identify(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil || claims.UserID != "user-1" {
				t.Errorf("Expected claims for user-1, got %+v", claims)
			}
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("invalid token is rejected, not anonymous", func(t *testing.T) {
		handler := m.Identify(func(w http.ResponseWriter, r *http.Request) {
			t.Error("Handler must not run for an invalid token")
		})

		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		w := httptest.NewRecorder()
		handler(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})
}
