// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/vitrine-go/internal/auth"
	"github.com/olegiv/vitrine-go/internal/middleware"
	"github.com/olegiv/vitrine-go/internal/store"
)

// LoginRequest is the POST /api/auth/login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. Failed attempts feed the lockout
// tracker; a success renews the session token before storing the user id.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		WriteBadRequest(w, "username and password are required")
		return
	}

	if locked, remaining := h.login.IsAccountLocked(req.Username); locked {
		slog.Warn("login attempt on locked account", "username", req.Username,
			"ip", middleware.GetClientIP(r))
		WriteError(w, http.StatusTooManyRequests,
			fmt.Sprintf("account temporarily locked, try again in %s", remaining.Round(time.Second)))
		return
	}

	user, err := h.queries.GetUserByUsername(r.Context(), req.Username)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		slog.Error("fetching user", "error", err)
		WriteInternalError(w)
		return
	}

	valid := false
	if err == nil {
		valid, err = auth.CheckPassword(req.Password, user.PasswordHash)
		if err != nil {
			slog.Error("verifying password", "username", req.Username, "error", err)
			WriteInternalError(w)
			return
		}
	}
	if !valid {
		locked, _ := h.login.RecordFailedAttempt(req.Username)
		slog.Warn("user authentication failed", "username", req.Username,
			"ip", middleware.GetClientIP(r), "locked", locked)
		WriteError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	h.login.RecordSuccessfulLogin(req.Username)

	// Upgrade the stored hash transparently when parameters have changed.
	if auth.NeedsRehash(user.PasswordHash) {
		if hash, err := auth.HashPassword(req.Password); err == nil {
			_, err = h.queries.UpdateUser(r.Context(), store.UpdateUserParams{
				ID:           user.ID,
				Username:     user.Username,
				PasswordHash: hash,
				Email:        user.Email,
				FullName:     user.FullName,
				RoleID:       user.RoleID,
				UpdatedAt:    time.Now().UTC(),
			})
			if err != nil {
				slog.Error("rehashing password", "username", user.Username, "error", err)
			}
		}
	}

	if err := h.queries.UpdateUserLastLogin(r.Context(), user.ID, time.Now().UTC()); err != nil {
		slog.Error("updating last login", "username", user.Username, "error", err)
	}

	// Renew to prevent session fixation.
	if err := h.sm.RenewToken(r.Context()); err != nil {
		slog.Error("renewing session token", "error", err)
		WriteInternalError(w)
		return
	}
	h.sm.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	slog.Info("user logged in", "username", user.Username, "role", user.RoleName)
	WriteResource(w, http.StatusOK, "user", user)
}

// Logout handles POST /api/auth/logout, destroying the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sm.Destroy(r.Context()); err != nil {
		slog.Error("destroying session", "error", err)
		WriteInternalError(w)
		return
	}
	WriteOK(w)
}

// Me handles GET /api/auth/me, returning the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	WriteResource(w, http.StatusOK, "user", user)
}
