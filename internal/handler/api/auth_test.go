// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/argon2"

	"github.com/olegiv/vitrine-go/internal/middleware"
	"github.com/olegiv/vitrine-go/internal/model"
	"github.com/olegiv/vitrine-go/internal/store"
)

// doLogin posts credentials through the session middleware so the handler
// can write to the session.
func doLogin(t *testing.T, h *Handler, payload string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.sm.LoadAndSave(http.HandlerFunc(h.Login)).ServeHTTP(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	h := newTestHandler(t)

	rec := doLogin(t, h, `{"username":"admin","password":"changeme"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	envelopeSuccess(t, body, true)
	user := body["user"].(map[string]any)
	if user["username"] != "admin" {
		t.Errorf("username = %v", user["username"])
	}
	if user["role"] != model.RoleAdmin {
		t.Errorf("role = %v, want admin", user["role"])
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Error("password hash must not appear in JSON")
	}

	if len(rec.Result().Cookies()) == 0 {
		t.Error("login response set no session cookie")
	}

	// Login records last_login_at
	stored, err := h.queries.GetUserByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("fetching admin: %v", err)
	}
	if !stored.LastLoginAt.Valid {
		t.Error("last_login_at not stamped")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newTestHandler(t)

	rec := doLogin(t, h, `{"username":"admin","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	envelopeSuccess(t, decodeEnvelope(t, rec), false)
}

func TestLogin_UnknownUser(t *testing.T) {
	h := newTestHandler(t)

	// Same response as a wrong password, no user enumeration
	rec := doLogin(t, h, `{"username":"nobody","password":"whatever"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	h := newTestHandler(t)

	rec := doLogin(t, h, `{"username":"admin"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestLogin_LockoutAfterRepeatedFailures(t *testing.T) {
	h := newTestHandler(t)

	for i := 0; i < 5; i++ {
		rec := doLogin(t, h, `{"username":"admin","password":"wrong"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status = %d, want %d", i+1, rec.Code, http.StatusUnauthorized)
		}
	}

	// Even the correct password is refused while locked
	rec := doLogin(t, h, `{"username":"admin","password":"changeme"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("locked account: status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

func TestLogin_RehashesLegacyHash(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()

	admin, err := h.queries.GetUserByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("fetching admin: %v", err)
	}

	// Store a hash with weaker parameters than the current defaults
	salt := []byte("somesalt16bytes!")
	sum := argon2.IDKey([]byte("password"), salt, 1, 16384, 1, 32)
	legacy := fmt.Sprintf("$argon2id$v=%d$m=16384,t=1,p=1$%s$%s",
		argon2.Version,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum))
	if _, err := h.queries.UpdateUser(ctx, store.UpdateUserParams{
		ID:           admin.ID,
		Username:     admin.Username,
		PasswordHash: legacy,
		Email:        admin.Email,
		FullName:     admin.FullName,
		RoleID:       admin.RoleID,
		UpdatedAt:    time.Now().UTC(),
	}); err != nil {
		t.Fatalf("storing legacy hash: %v", err)
	}

	rec := doLogin(t, h, `{"username":"admin","password":"password"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	after, err := h.queries.GetUserByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("fetching admin: %v", err)
	}
	if after.PasswordHash == legacy {
		t.Error("legacy hash not upgraded on login")
	}
}

func TestLogout(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.sm.LoadAndSave(http.HandlerFunc(h.Logout)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	envelopeSuccess(t, decodeEnvelope(t, rec), true)
}

func TestMe(t *testing.T) {
	h := newTestHandler(t)

	admin, err := h.queries.GetUserByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("fetching admin: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	ctx := context.WithValue(req.Context(), middleware.ContextKeyUser, admin)
	rec := httptest.NewRecorder()
	h.Me(rec, req.WithContext(ctx))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	user := decodeEnvelope(t, rec)["user"].(map[string]any)
	if user["username"] != "admin" {
		t.Errorf("username = %v", user["username"])
	}
}

func TestMe_Unauthenticated(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
