// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/vitrine-go/internal/model"
)

const userColumns = `u.id, u.username, u.password_hash, u.email, u.full_name, u.role_id, r.name,
	u.created_at, u.updated_at, u.last_login_at`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.FullName, &u.RoleID, &u.RoleName,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	return u, err
}

// CreateUserParams holds fields for CreateUser.
type CreateUserParams struct {
	Username     string
	PasswordHash string
	Email        string
	FullName     string
	RoleID       int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUser inserts a user and returns the stored row with its role name.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	var id int64
	err := q.queryRow(ctx, `
		INSERT INTO admin_users (username, password_hash, email, full_name, role_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		arg.Username, arg.PasswordHash, arg.Email, arg.FullName, arg.RoleID,
		arg.CreatedAt, arg.UpdatedAt).Scan(&id)
	if err != nil {
		return model.User{}, err
	}
	return q.GetUser(ctx, id)
}

// GetUser fetches a user by id.
func (q *Queries) GetUser(ctx context.Context, id int64) (model.User, error) {
	return scanUser(q.queryRow(ctx, `
		SELECT `+userColumns+`
		FROM admin_users u JOIN roles r ON r.id = u.role_id
		WHERE u.id = ?`, id))
}

// GetUserByUsername fetches a user by username.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return scanUser(q.queryRow(ctx, `
		SELECT `+userColumns+`
		FROM admin_users u JOIN roles r ON r.id = u.role_id
		WHERE u.username = ?`, username))
}

// ListUsersParams holds pagination for ListUsers.
type ListUsersParams struct {
	Limit  int64
	Offset int64
}

// ListUsers returns users ordered by username.
func (q *Queries) ListUsers(ctx context.Context, arg ListUsersParams) ([]model.User, error) {
	rows, err := q.query(ctx, `
		SELECT `+userColumns+`
		FROM admin_users u JOIN roles r ON r.id = u.role_id
		ORDER BY u.username
		LIMIT ? OFFSET ?`, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	return items, rows.Err()
}

// CountUsers returns the total number of users.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.queryRow(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&n)
	return n, err
}

// UpdateUserParams holds fields for UpdateUser. PasswordHash is applied only
// when non-empty so updates need not resend the password.
type UpdateUserParams struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	FullName     string
	RoleID       int64
	UpdatedAt    time.Time
}

// UpdateUser updates a user and returns the stored row.
// Returns sql.ErrNoRows if the id does not exist.
func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) (model.User, error) {
	var id int64
	err := q.queryRow(ctx, `
		UPDATE admin_users
		SET username = ?, email = ?, full_name = ?, role_id = ?, updated_at = ?,
		    password_hash = CASE WHEN ? = '' THEN password_hash ELSE ? END
		WHERE id = ?
		RETURNING id`,
		arg.Username, arg.Email, arg.FullName, arg.RoleID, arg.UpdatedAt,
		arg.PasswordHash, arg.PasswordHash, arg.ID).Scan(&id)
	if err != nil {
		return model.User{}, err
	}
	return q.GetUser(ctx, id)
}

// UpdateUserLastLogin records a successful login.
func (q *Queries) UpdateUserLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := q.exec(ctx,
		`UPDATE admin_users SET last_login_at = ? WHERE id = ?`, at, id)
	return err
}

// DeleteUser removes a user. Returns sql.ErrNoRows if the id does not exist.
func (q *Queries) DeleteUser(ctx context.Context, id int64) error {
	var deleted int64
	return q.queryRow(ctx, `DELETE FROM admin_users WHERE id = ? RETURNING id`, id).Scan(&deleted)
}

// GetRole fetches a role by id.
func (q *Queries) GetRole(ctx context.Context, id int64) (model.Role, error) {
	var r model.Role
	err := q.queryRow(ctx,
		`SELECT id, name, description, permissions FROM roles WHERE id = ?`, id).
		Scan(&r.ID, &r.Name, &r.Description, &r.Permissions)
	return r, err
}

// GetRoleByName fetches a role by its unique name.
func (q *Queries) GetRoleByName(ctx context.Context, name string) (model.Role, error) {
	var r model.Role
	err := q.queryRow(ctx,
		`SELECT id, name, description, permissions FROM roles WHERE name = ?`, name).
		Scan(&r.ID, &r.Name, &r.Description, &r.Permissions)
	return r, err
}

// ListRoles returns all roles.
func (q *Queries) ListRoles(ctx context.Context) ([]model.Role, error) {
	rows, err := q.query(ctx,
		`SELECT id, name, description, permissions FROM roles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Role
	for rows.Next() {
		var r model.Role
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.Permissions); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// CreateRoleParams holds fields for CreateRole.
type CreateRoleParams struct {
	Name        string
	Description string
	Permissions string
}

// CreateRole inserts a role and returns the stored row.
func (q *Queries) CreateRole(ctx context.Context, arg CreateRoleParams) (model.Role, error) {
	var r model.Role
	err := q.queryRow(ctx, `
		INSERT INTO roles (name, description, permissions)
		VALUES (?, ?, ?)
		RETURNING id, name, description, permissions`,
		arg.Name, arg.Description, arg.Permissions).
		Scan(&r.ID, &r.Name, &r.Description, &r.Permissions)
	return r, err
}
