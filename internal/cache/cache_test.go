// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/olegiv/vitrine-go/internal/model"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(Options{DefaultTTL: time.Minute})
	t.Cleanup(func() { c.Close() })
	return c
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}
}

func TestMemoryCache_Miss(t *testing.T) {
	c := newTestCache(t)

	_, err := c.Get(context.Background(), "absent")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after expiry, got %v", err)
	}
}

func TestMemoryCache_GetReturnsCopy(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("abc"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	first, _ := c.Get(ctx, "k")
	first[0] = 'X'

	second, _ := c.Get(ctx, "k")
	if string(second) != "abc" {
		t.Errorf("cached value mutated through returned slice: %q", second)
	}
}

func TestMemoryCache_Closed(t *testing.T) {
	c := NewMemoryCache(Options{DefaultTTL: time.Minute})
	c.Close()

	if _, err := c.Get(context.Background(), "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("expected ErrCacheClosed, got %v", err)
	}
	if err := c.Set(context.Background(), "k", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("expected ErrCacheClosed, got %v", err)
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), 0)
	c.Get(ctx, "k")
	c.Get(ctx, "missing")

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Sets != 1 {
		t.Errorf("stats = %+v, want one hit, one miss, one set", stats)
	}
}

func TestNew_DefaultsToMemory(t *testing.T) {
	c, err := New(Options{DefaultTTL: time.Minute})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	if _, ok := c.(*MemoryCache); !ok {
		t.Errorf("New without Redis URL should return *MemoryCache, got %T", c)
	}
}

func TestSettingsCache_LoadsOnceAndInvalidates(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	loads := 0
	loader := func(context.Context) (model.SiteSettings, error) {
		loads++
		s := model.DefaultSiteSettings()
		s.SiteName = "Loaded"
		return s, nil
	}

	sc := NewSettingsCache(c, loader, time.Minute)

	for i := 0; i < 3; i++ {
		settings, err := sc.Get(ctx)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if settings.SiteName != "Loaded" {
			t.Errorf("SiteName = %q, want %q", settings.SiteName, "Loaded")
		}
	}
	if loads != 1 {
		t.Errorf("loads = %d, want 1 (subsequent reads should hit the cache)", loads)
	}

	sc.Invalidate(ctx)
	if _, err := sc.Get(ctx); err != nil {
		t.Fatalf("Get after invalidate: %v", err)
	}
	if loads != 2 {
		t.Errorf("loads = %d, want 2 after invalidation", loads)
	}
}

func TestSettingsCache_LoaderError(t *testing.T) {
	c := newTestCache(t)

	wantErr := errors.New("store down")
	sc := NewSettingsCache(c, func(context.Context) (model.SiteSettings, error) {
		return model.SiteSettings{}, wantErr
	}, time.Minute)

	settings, err := sc.Get(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected loader error, got %v", err)
	}
	// Defaults come back alongside the error so callers can degrade gracefully
	if settings.ItemsPerPage != model.DefaultSiteSettings().ItemsPerPage {
		t.Errorf("expected default settings on error, got %+v", settings)
	}
}
