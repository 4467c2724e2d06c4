// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/vitrine-go/internal/model"
	"github.com/olegiv/vitrine-go/internal/store"
	"github.com/olegiv/vitrine-go/internal/util"
)

// MaxUploadSize limits gallery image uploads to 10 MB.
const MaxUploadSize = 10 << 20

// GalleryUpdateRequest is the metadata patch payload for a gallery item.
// Image files are immutable after upload; replace the item instead.
type GalleryUpdateRequest struct {
	ID       int64   `json:"id"`
	Title    *string `json:"title,omitempty"`
	Category *string `json:"category,omitempty"`
}

// ListGalleryItems handles GET /api/gallery with an optional category filter.
func (h *Handler) ListGalleryItems(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.listWindow(r)
	category := r.URL.Query().Get("category")

	items, err := h.queries.ListGalleryItems(r.Context(), store.ListGalleryItemsParams{
		Category: category,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		slog.Error("listing gallery items", "error", err)
		WriteInternalError(w)
		return
	}
	total, err := h.queries.CountGalleryItems(r.Context(), category)
	if err != nil {
		slog.Error("counting gallery items", "error", err)
		WriteInternalError(w)
		return
	}

	if items == nil {
		items = []model.GalleryItem{}
	}
	WriteList(w, "gallery", items, NewPagination(total, limit, offset))
}

// ListGalleryCategories handles GET /api/gallery/categories.
func (h *Handler) ListGalleryCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.queries.ListGalleryCategories(r.Context())
	if err != nil {
		slog.Error("listing gallery categories", "error", err)
		WriteInternalError(w)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	WriteResource(w, http.StatusOK, "categories", categories)
}

// CreateGalleryItem handles POST /api/admin/gallery. The request is
// multipart/form-data with an image file plus title and category fields.
// The original is re-encoded (stripping EXIF) and thumb/display variants
// are generated alongside it.
func (h *Handler) CreateGalleryItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		WriteBadRequest(w, "invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteBadRequest(w, "image file is required")
		return
	}
	defer file.Close()

	filename, err := util.SanitizeFilename(header.Filename)
	if err != nil {
		WriteBadRequest(w, "invalid filename")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		title = strings.TrimSuffix(filename, path.Ext(filename))
	}
	category := strings.TrimSpace(r.FormValue("category"))

	id := uuid.New().String()
	result, err := h.images.ProcessImage(file, id, filename)
	if err != nil {
		slog.Warn("gallery upload rejected", "filename", filename, "error", err)
		WriteBadRequest(w, "unsupported or corrupt image file")
		return
	}

	imageURL := uploadURL("originals", id, filename)
	thumbURL := imageURL

	variants, err := h.images.CreateAllVariants(result.FilePath, id, filename)
	if err != nil {
		slog.Error("gallery thumbnail generation failed", "id", id, "error", err)
	}
	for _, v := range variants {
		switch v.Type {
		case "display":
			imageURL = uploadURL("display", id, filename)
		case "thumb":
			thumbURL = uploadURL("thumb", id, filename)
		}
	}

	now := time.Now().UTC()
	item, err := h.queries.CreateGalleryItem(r.Context(), store.CreateGalleryItemParams{
		Title:     title,
		ImageURL:  imageURL,
		ThumbURL:  thumbURL,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		slog.Error("creating gallery item", "error", err)
		if delErr := h.images.DeleteImageFiles(id); delErr != nil {
			slog.Error("cleaning up gallery files", "id", id, "error", delErr)
		}
		WriteInternalError(w)
		return
	}
	WriteResource(w, http.StatusCreated, "item", item)
}

// UpdateGalleryItem handles PUT /api/admin/gallery, patching title and
// category only.
func (h *Handler) UpdateGalleryItem(w http.ResponseWriter, r *http.Request) {
	var req GalleryUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if req.ID <= 0 {
		WriteBadRequest(w, "id is required")
		return
	}

	existing, err := h.queries.GetGalleryItem(r.Context(), req.ID)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "gallery item not found")
		return
	}
	if err != nil {
		slog.Error("fetching gallery item", "id", req.ID, "error", err)
		WriteInternalError(w)
		return
	}

	params := store.UpdateGalleryItemParams{
		ID:        existing.ID,
		Title:     existing.Title,
		ImageURL:  existing.ImageURL,
		ThumbURL:  existing.ThumbURL,
		Category:  existing.Category,
		UpdatedAt: time.Now().UTC(),
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			WriteBadRequest(w, "title cannot be empty")
			return
		}
		params.Title = strings.TrimSpace(*req.Title)
	}
	if req.Category != nil {
		params.Category = strings.TrimSpace(*req.Category)
	}

	item, err := h.queries.UpdateGalleryItem(r.Context(), params)
	if err != nil {
		slog.Error("updating gallery item", "id", req.ID, "error", err)
		WriteInternalError(w)
		return
	}
	WriteResource(w, http.StatusOK, "item", item)
}

// DeleteGalleryItem handles DELETE /api/admin/gallery?id=N, removing the
// stored row and the image files on disk.
func (h *Handler) DeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	id, err := idFromQuery(r)
	if err != nil || id <= 0 {
		WriteBadRequest(w, "invalid id")
		return
	}

	item, err := h.queries.GetGalleryItem(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "gallery item not found")
		return
	}
	if err != nil {
		slog.Error("fetching gallery item", "id", id, "error", err)
		WriteInternalError(w)
		return
	}

	if err := h.queries.DeleteGalleryItem(r.Context(), id); err != nil {
		slog.Error("deleting gallery item", "id", id, "error", err)
		WriteInternalError(w)
		return
	}

	if fileID := uploadID(item.ImageURL); fileID != "" {
		if err := h.images.DeleteImageFiles(fileID); err != nil {
			slog.Error("deleting gallery files", "id", fileID, "error", err)
		}
	}
	WriteOK(w)
}

// uploadURL builds the public URL for a stored upload.
func uploadURL(variant, id, filename string) string {
	return "/uploads/" + path.Join(variant, id, filename)
}

// uploadID extracts the upload identifier from a /uploads/<variant>/<id>/...
// URL. Returns "" for external or malformed URLs.
func uploadID(url string) string {
	parts := strings.Split(strings.TrimPrefix(url, "/"), "/")
	if len(parts) < 4 || parts[0] != "uploads" {
		return ""
	}
	if _, err := uuid.Parse(parts[2]); err != nil {
		return ""
	}
	return parts[2]
}
