// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the application
// including User, Role, content entities and site settings structures.
package model

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Built-in role names.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Permission strings carried in Role.Permissions.
const (
	PermManageContent  = "manage_content"
	PermManageContact  = "manage_contact"
	PermManageSettings = "manage_settings"
	PermManageUsers    = "manage_users"
)

// User represents an admin back-office account.
type User struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"` // Never expose in JSON
	Email        string       `json:"email"`
	FullName     string       `json:"full_name"`
	RoleID       int64        `json:"role_id"`
	RoleName     string       `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	LastLoginAt  sql.NullTime `json:"last_login_at,omitempty"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.RoleName == RoleAdmin
}

// Role represents a back-office role with a JSON permission list.
type Role struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Permissions string `json:"permissions"` // JSON array of permission strings
}

// HasPermission reports whether the role grants the named permission.
// A permissions value of "*" or a list containing "*" grants everything.
func (r *Role) HasPermission(perm string) bool {
	if r.Permissions == "*" {
		return true
	}
	var perms []string
	if err := json.Unmarshal([]byte(r.Permissions), &perms); err != nil {
		return false
	}
	for _, p := range perms {
		if p == "*" || p == perm {
			return true
		}
	}
	return false
}
