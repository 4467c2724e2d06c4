// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olegiv/vitrine-go/internal/middleware"
	"github.com/olegiv/vitrine-go/internal/model"
)

func createTestUser(t *testing.T, h *Handler, payload string) map[string]any {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/users", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.CreateUser(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("creating user: status %d: %s", rec.Code, rec.Body.String())
	}
	return decodeEnvelope(t, rec)["user"].(map[string]any)
}

func TestCreateUser(t *testing.T) {
	h := newTestHandler(t)

	user := createTestUser(t, h,
		`{"username":"marta","password":"s3cret-pass","email":"marta@example.com","full_name":"Marta K","role":"staff"}`)

	if user["username"] != "marta" {
		t.Errorf("username = %v", user["username"])
	}
	if user["role"] != model.RoleStaff {
		t.Errorf("role = %v, want staff", user["role"])
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Error("password hash must not appear in JSON")
	}
}

func TestCreateUser_Validation(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name    string
		payload string
	}{
		{"missing username", `{"password":"s3cret-pass","email":"a@example.com"}`},
		{"short password", `{"username":"bob","password":"short","email":"a@example.com"}`},
		{"missing email", `{"username":"bob","password":"s3cret-pass"}`},
		{"bad email", `{"username":"bob","password":"s3cret-pass","email":"nope"}`},
		{"unknown role", `{"username":"bob","password":"s3cret-pass","email":"a@example.com","role":"owner"}`},
		{"duplicate username", `{"username":"admin","password":"s3cret-pass","email":"a@example.com"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/users",
				strings.NewReader(tt.payload))
			rec := httptest.NewRecorder()
			h.CreateUser(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestUpdateUser_RoleAndPassword(t *testing.T) {
	h := newTestHandler(t)
	user := createTestUser(t, h,
		`{"username":"nick","password":"s3cret-pass","email":"nick@example.com","role":"staff"}`)
	id := int64(user["id"].(float64))

	before, err := h.queries.GetUser(context.Background(), id)
	if err != nil {
		t.Fatalf("fetching user: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/admin/users", strings.NewReader(fmt.Sprintf(
		`{"id":%d,"role":"admin","password":"brand-new-pass"}`, id)))
	rec := httptest.NewRecorder()
	h.UpdateUser(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	after, err := h.queries.GetUser(context.Background(), id)
	if err != nil {
		t.Fatalf("fetching user: %v", err)
	}
	if after.RoleName != model.RoleAdmin {
		t.Errorf("role = %q, want admin", after.RoleName)
	}
	if after.PasswordHash == before.PasswordHash {
		t.Error("password hash unchanged after password update")
	}
}

func TestUpdateUser_KeepsPasswordWhenOmitted(t *testing.T) {
	h := newTestHandler(t)
	user := createTestUser(t, h,
		`{"username":"olga","password":"s3cret-pass","email":"olga@example.com"}`)
	id := int64(user["id"].(float64))

	before, _ := h.queries.GetUser(context.Background(), id)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/users", strings.NewReader(fmt.Sprintf(
		`{"id":%d,"full_name":"Olga P"}`, id)))
	rec := httptest.NewRecorder()
	h.UpdateUser(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	after, _ := h.queries.GetUser(context.Background(), id)
	if after.PasswordHash != before.PasswordHash {
		t.Error("password hash changed on metadata-only update")
	}
	if after.FullName != "Olga P" {
		t.Errorf("full_name = %q, want Olga P", after.FullName)
	}
}

func TestDeleteUser_Self(t *testing.T) {
	h := newTestHandler(t)

	admin, err := h.queries.GetUserByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("fetching seeded admin: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/admin/users?id=%d", admin.ID), nil)
	ctx := context.WithValue(req.Context(), middleware.ContextKeyUser, admin)
	rec := httptest.NewRecorder()
	h.DeleteUser(rec, req.WithContext(ctx))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("deleting own account: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDeleteUser(t *testing.T) {
	h := newTestHandler(t)
	user := createTestUser(t, h,
		`{"username":"temp","password":"s3cret-pass","email":"temp@example.com"}`)
	id := int64(user["id"].(float64))

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/admin/users?id=%d", id), nil)
	rec := httptest.NewRecorder()
	h.DeleteUser(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/admin/users?id=%d", id), nil)
	rec = httptest.NewRecorder()
	h.DeleteUser(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("repeat delete: status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestListRoles(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/roles", nil)
	rec := httptest.NewRecorder()
	h.ListRoles(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	roles := decodeEnvelope(t, rec)["roles"].([]any)

	names := map[string]bool{}
	for _, r := range roles {
		names[r.(map[string]any)["name"].(string)] = true
	}
	if !names[model.RoleAdmin] || !names[model.RoleStaff] {
		t.Errorf("seeded roles missing: %v", names)
	}
}
