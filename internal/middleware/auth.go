// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling.
package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/vitrine-go/internal/model"
	"github.com/olegiv/vitrine-go/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request-scoped data.
const (
	ContextKeyUser ContextKey = "user"
	ContextKeyRole ContextKey = "role"
)

// SessionKeyUserID is the session key storing the signed-in user's ID.
const SessionKeyUserID = "user_id"

// errorResponse is the JSON error envelope shared by all API responses.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WriteError writes a JSON error response in the API envelope.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{Success: false, Error: message})
}

// Auth creates middleware that requires an authenticated session.
// Unauthenticated requests receive a 401 JSON error.
func Auth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), SessionKeyUserID)
			if userID == 0 {
				WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LoadUser creates middleware that loads the current user and their role
// into the request context. This should be used after Auth middleware.
func LoadUser(sm *scs.SessionManager, db *store.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), SessionKeyUserID)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := queries.GetUser(r.Context(), userID)
			if err != nil {
				// Stale session referencing a deleted user
				_ = sm.Destroy(r.Context())
				WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)

			role, err := queries.GetRole(r.Context(), user.RoleID)
			if err == nil {
				ctx = context.WithValue(ctx, ContextKeyRole, role)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(model.User)
	if !ok {
		return nil
	}
	return &user
}

// GetRole retrieves the current user's role from the request context.
// Returns nil if no role is in context.
func GetRole(r *http.Request) *model.Role {
	role, ok := r.Context().Value(ContextKeyRole).(model.Role)
	if !ok {
		return nil
	}
	return &role
}

// GetUserID returns the current user's ID from context, or 0 if not found.
// Safe to use in logging where a zero-value is acceptable.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}

// GetUserIDPtr returns a pointer to the current user's ID from context,
// or nil if not found. Useful for optional user ID fields in event logging.
func GetUserIDPtr(r *http.Request) *int64 {
	if user := GetUser(r); user != nil {
		id := user.ID
		return &id
	}
	return nil
}

// roleLevel returns a numeric level for role hierarchy.
// Higher level = more permissions. Unknown roles have no admin access.
func roleLevel(role string) int {
	switch role {
	case model.RoleAdmin:
		return 2
	case model.RoleStaff:
		return 1
	default:
		return 0
	}
}

// RequireRole creates middleware that requires a minimum user role.
// Roles are hierarchical: admin > staff.
// For example, RequireRole("staff") allows both admin and staff users.
func RequireRole(minRole string) func(http.Handler) http.Handler {
	minLevel := roleLevel(minRole)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if roleLevel(user.RoleName) < minLevel {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", user.ID,
					"user_role", user.RoleName,
					"required_role", minRole,
					"remote_addr", r.RemoteAddr,
				)
				WriteError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin creates middleware that requires admin role.
// Shorthand for RequireRole(model.RoleAdmin).
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(model.RoleAdmin)
}

// RequirePermission creates middleware that requires the current user's
// role to grant a named permission. This should be used after LoadUser.
func RequirePermission(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			role := GetRole(r)
			if role == nil || !role.HasPermission(perm) {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", user.ID,
					"user_role", user.RoleName,
					"required_permission", perm,
					"remote_addr", r.RemoteAddr,
				)
				WriteError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
