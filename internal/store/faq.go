// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/vitrine-go/internal/model"
)

const faqColumns = "id, question, answer, category, order_index, created_at, updated_at"

func scanFAQItem(row interface{ Scan(...any) error }) (model.FAQItem, error) {
	var f model.FAQItem
	err := row.Scan(&f.ID, &f.Question, &f.Answer, &f.Category, &f.OrderIndex, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

// CreateFAQItemParams holds fields for CreateFAQItem.
type CreateFAQItemParams struct {
	Question  string
	Answer    string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateFAQItem inserts a FAQ item and returns the stored row. The order
// index is assigned inside the statement so concurrent inserts in the same
// category cannot collide.
func (q *Queries) CreateFAQItem(ctx context.Context, arg CreateFAQItemParams) (model.FAQItem, error) {
	return scanFAQItem(q.queryRow(ctx, `
		INSERT INTO faq_items (question, answer, category, order_index, created_at, updated_at)
		VALUES (?, ?, ?,
			(SELECT COALESCE(MAX(f.order_index), 0) + 1 FROM faq_items f WHERE f.category = ?),
			?, ?)
		RETURNING `+faqColumns,
		arg.Question, arg.Answer, arg.Category, arg.Category, arg.CreatedAt, arg.UpdatedAt))
}

// GetFAQItem fetches a FAQ item by id.
func (q *Queries) GetFAQItem(ctx context.Context, id int64) (model.FAQItem, error) {
	return scanFAQItem(q.queryRow(ctx,
		`SELECT `+faqColumns+` FROM faq_items WHERE id = ?`, id))
}

// ListFAQItemsParams holds filtering and pagination for ListFAQItems.
// An empty Category matches all items.
type ListFAQItemsParams struct {
	Category string
	Limit    int64
	Offset   int64
}

// ListFAQItems returns FAQ items grouped by category in display order.
func (q *Queries) ListFAQItems(ctx context.Context, arg ListFAQItemsParams) ([]model.FAQItem, error) {
	rows, err := q.query(ctx, `
		SELECT `+faqColumns+` FROM faq_items
		WHERE (? = '' OR category = ?)
		ORDER BY category, order_index, id
		LIMIT ? OFFSET ?`, arg.Category, arg.Category, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.FAQItem
	for rows.Next() {
		f, err := scanFAQItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

// CountFAQItems returns the number of FAQ items matching the category filter.
func (q *Queries) CountFAQItems(ctx context.Context, category string) (int64, error) {
	var n int64
	err := q.queryRow(ctx,
		`SELECT COUNT(*) FROM faq_items WHERE (? = '' OR category = ?)`,
		category, category).Scan(&n)
	return n, err
}

// UpdateFAQItemParams holds fields for UpdateFAQItem.
type UpdateFAQItemParams struct {
	ID         int64
	Question   string
	Answer     string
	Category   string
	OrderIndex int64
	UpdatedAt  time.Time
}

// UpdateFAQItem updates a FAQ item and returns the stored row.
// Returns sql.ErrNoRows if the id does not exist.
func (q *Queries) UpdateFAQItem(ctx context.Context, arg UpdateFAQItemParams) (model.FAQItem, error) {
	return scanFAQItem(q.queryRow(ctx, `
		UPDATE faq_items
		SET question = ?, answer = ?, category = ?, order_index = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+faqColumns,
		arg.Question, arg.Answer, arg.Category, arg.OrderIndex, arg.UpdatedAt, arg.ID))
}

// DeleteFAQItem removes a FAQ item. Returns sql.ErrNoRows if the id does not exist.
func (q *Queries) DeleteFAQItem(ctx context.Context, id int64) error {
	var deleted int64
	return q.queryRow(ctx, `DELETE FROM faq_items WHERE id = ? RETURNING id`, id).Scan(&deleted)
}
