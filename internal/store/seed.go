// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/vitrine-go/internal/auth"
	"github.com/olegiv/vitrine-go/internal/model"
)

// Default admin credentials
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Seed creates the built-in roles, the default admin account and the default
// settings rows. Each step is guarded by an existence check so running at
// every startup never duplicates data.
func Seed(ctx context.Context, db *DB) error {
	queries := New(db)

	adminRole, err := seedRoles(ctx, queries)
	if err != nil {
		return err
	}

	if err := seedAdminUser(ctx, queries, adminRole); err != nil {
		return err
	}

	return seedSettings(ctx, queries)
}

func seedRoles(ctx context.Context, queries *Queries) (model.Role, error) {
	adminRole, err := queries.GetRoleByName(ctx, model.RoleAdmin)
	switch {
	case err == nil:
		return adminRole, nil
	case !errors.Is(err, sql.ErrNoRows):
		return model.Role{}, fmt.Errorf("checking for admin role: %w", err)
	}

	adminRole, err = queries.CreateRole(ctx, CreateRoleParams{
		Name:        model.RoleAdmin,
		Description: "Full access to the back office",
		Permissions: `["*"]`,
	})
	if err != nil {
		return model.Role{}, fmt.Errorf("creating admin role: %w", err)
	}

	staffPerms := fmt.Sprintf(`[%q, %q]`, model.PermManageContent, model.PermManageContact)
	if _, err := queries.CreateRole(ctx, CreateRoleParams{
		Name:        model.RoleStaff,
		Description: "Content and contact management",
		Permissions: staffPerms,
	}); err != nil {
		return model.Role{}, fmt.Errorf("creating staff role: %w", err)
	}

	slog.Info("created built-in roles")
	return adminRole, nil
}

func seedAdminUser(ctx context.Context, queries *Queries, adminRole model.Role) error {
	_, err := queries.GetUserByUsername(ctx, DefaultAdminUsername)
	switch {
	case err == nil:
		slog.Info("admin user already exists, skipping seed")
		return nil
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Username:     DefaultAdminUsername,
		PasswordHash: passwordHash,
		FullName:     DefaultAdminName,
		RoleID:       adminRole.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"username", user.Username,
		"password", DefaultAdminPassword,
	)

	return nil
}

func seedSettings(ctx context.Context, queries *Queries) error {
	existing, err := queries.ListSettings(ctx)
	if err != nil {
		return fmt.Errorf("listing settings: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	defaults := model.DefaultSiteSettings()
	now := time.Now()
	rows := []UpsertSettingParams{
		{Key: model.SettingKeySiteName, Value: defaults.SiteName},
		{Key: model.SettingKeySiteDescription, Value: ""},
		{Key: model.SettingKeyContactEmail, Value: ""},
		{Key: model.SettingKeyContactPhone, Value: ""},
		{Key: model.SettingKeyAddress, Value: ""},
		{Key: model.SettingKeyBusinessHours, Value: ""},
		{Key: model.SettingKeyFacebookURL, Value: ""},
		{Key: model.SettingKeyInstagramURL, Value: ""},
		{Key: model.SettingKeyContactFormEnabled, Value: "true"},
		{Key: model.SettingKeyItemsPerPage, Value: fmt.Sprintf("%d", defaults.ItemsPerPage)},
	}
	for _, row := range rows {
		row.Type = model.SettingTypeFor(row.Key)
		row.UpdatedAt = now
		if _, err := queries.UpsertSetting(ctx, row); err != nil {
			return fmt.Errorf("seeding setting %s: %w", row.Key, err)
		}
	}

	slog.Info("seeded default settings", "count", len(rows))
	return nil
}
