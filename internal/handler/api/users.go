// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/olegiv/vitrine-go/internal/auth"
	"github.com/olegiv/vitrine-go/internal/middleware"
	"github.com/olegiv/vitrine-go/internal/model"
	"github.com/olegiv/vitrine-go/internal/store"
)

// MinPasswordLength is the minimum accepted password length for admin accounts.
const MinPasswordLength = 8

// UserRequest is the create/update payload for a back-office account.
// Role is the role name. On update an empty Password keeps the current one.
type UserRequest struct {
	ID       int64   `json:"id,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// ListUsers handles GET /api/admin/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.listWindow(r)

	items, err := h.queries.ListUsers(r.Context(), store.ListUsersParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		slog.Error("listing users", "error", err)
		WriteInternalError(w)
		return
	}
	total, err := h.queries.CountUsers(r.Context())
	if err != nil {
		slog.Error("counting users", "error", err)
		WriteInternalError(w)
		return
	}

	if items == nil {
		items = []model.User{}
	}
	WriteList(w, "users", items, NewPagination(total, limit, offset))
}

// CreateUser handles POST /api/admin/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if req.Username == nil || strings.TrimSpace(*req.Username) == "" {
		WriteBadRequest(w, "username is required")
		return
	}
	if req.Password == nil || len(*req.Password) < MinPasswordLength {
		WriteBadRequest(w, "password must be at least 8 characters")
		return
	}
	if req.Email == nil || strings.TrimSpace(*req.Email) == "" {
		WriteBadRequest(w, "email is required")
		return
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(*req.Email)); err != nil {
		WriteBadRequest(w, "invalid email address")
		return
	}

	roleName := model.RoleStaff
	if req.Role != nil && *req.Role != "" {
		roleName = *req.Role
	}
	role, err := h.queries.GetRoleByName(r.Context(), roleName)
	if errors.Is(err, sql.ErrNoRows) {
		WriteBadRequest(w, "unknown role")
		return
	}
	if err != nil {
		slog.Error("fetching role", "role", roleName, "error", err)
		WriteInternalError(w)
		return
	}

	hash, err := auth.HashPassword(*req.Password)
	if err != nil {
		slog.Error("hashing password", "error", err)
		WriteInternalError(w)
		return
	}

	now := time.Now().UTC()
	params := store.CreateUserParams{
		Username:     strings.TrimSpace(*req.Username),
		PasswordHash: hash,
		Email:        strings.TrimSpace(*req.Email),
		RoleID:       role.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.FullName != nil {
		params.FullName = strings.TrimSpace(*req.FullName)
	}

	user, err := h.queries.CreateUser(r.Context(), params)
	if err != nil {
		// Unique constraint on username surfaces here on both backends.
		slog.Warn("creating user failed", "username", params.Username, "error", err)
		WriteBadRequest(w, "username or email already in use")
		return
	}

	slog.Info("user created", "username", user.Username, "role", user.RoleName)
	WriteResource(w, http.StatusCreated, "user", user)
}

// UpdateUser handles PUT /api/admin/users. Password is optional and only
// rehashed when provided.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if req.ID <= 0 {
		WriteBadRequest(w, "id is required")
		return
	}

	existing, err := h.queries.GetUser(r.Context(), req.ID)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "user not found")
		return
	}
	if err != nil {
		slog.Error("fetching user", "id", req.ID, "error", err)
		WriteInternalError(w)
		return
	}

	params := store.UpdateUserParams{
		ID:        existing.ID,
		Username:  existing.Username,
		Email:     existing.Email,
		FullName:  existing.FullName,
		RoleID:    existing.RoleID,
		UpdatedAt: time.Now().UTC(),
	}
	if req.Username != nil {
		if strings.TrimSpace(*req.Username) == "" {
			WriteBadRequest(w, "username cannot be empty")
			return
		}
		params.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			WriteBadRequest(w, "invalid email address")
			return
		}
		params.Email = email
	}
	if req.FullName != nil {
		params.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Role != nil && *req.Role != "" {
		role, err := h.queries.GetRoleByName(r.Context(), *req.Role)
		if errors.Is(err, sql.ErrNoRows) {
			WriteBadRequest(w, "unknown role")
			return
		}
		if err != nil {
			slog.Error("fetching role", "role", *req.Role, "error", err)
			WriteInternalError(w)
			return
		}
		params.RoleID = role.ID
	}
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < MinPasswordLength {
			WriteBadRequest(w, "password must be at least 8 characters")
			return
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			slog.Error("hashing password", "error", err)
			WriteInternalError(w)
			return
		}
		params.PasswordHash = hash
	}

	user, err := h.queries.UpdateUser(r.Context(), params)
	if err != nil {
		slog.Error("updating user", "id", req.ID, "error", err)
		WriteInternalError(w)
		return
	}
	WriteResource(w, http.StatusOK, "user", user)
}

// DeleteUser handles DELETE /api/admin/users?id=N. Users cannot delete
// their own account.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idFromQuery(r)
	if err != nil || id <= 0 {
		WriteBadRequest(w, "invalid id")
		return
	}
	if current := middleware.GetUser(r); current != nil && current.ID == id {
		WriteBadRequest(w, "cannot delete your own account")
		return
	}

	err = h.queries.DeleteUser(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "user not found")
		return
	}
	if err != nil {
		slog.Error("deleting user", "id", id, "error", err)
		WriteInternalError(w)
		return
	}
	WriteOK(w)
}

// ListRoles handles GET /api/admin/roles.
func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.queries.ListRoles(r.Context())
	if err != nil {
		slog.Error("listing roles", "error", err)
		WriteInternalError(w)
		return
	}
	if roles == nil {
		roles = []model.Role{}
	}
	WriteResource(w, http.StatusOK, "roles", roles)
}
