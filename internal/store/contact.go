// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/vitrine-go/internal/model"
)

const contactColumns = "id, reference, name, email, phone, subject, message, status, response_message, user_agent, created_at, updated_at"

func scanContactSubmission(row interface{ Scan(...any) error }) (model.ContactSubmission, error) {
	var c model.ContactSubmission
	err := row.Scan(&c.ID, &c.Reference, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message,
		&c.Status, &c.ResponseMessage, &c.UserAgent, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// CreateContactSubmissionParams holds fields for CreateContactSubmission.
type CreateContactSubmissionParams struct {
	Reference string
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	UserAgent string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateContactSubmission inserts a submission with status new and returns
// the stored row.
func (q *Queries) CreateContactSubmission(ctx context.Context, arg CreateContactSubmissionParams) (model.ContactSubmission, error) {
	return scanContactSubmission(q.queryRow(ctx, `
		INSERT INTO contact_submissions (reference, name, email, phone, subject, message, status, user_agent, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 'new', ?, ?, ?)
		RETURNING `+contactColumns,
		arg.Reference, arg.Name, arg.Email, arg.Phone, arg.Subject, arg.Message,
		arg.UserAgent, arg.CreatedAt, arg.UpdatedAt))
}

// GetContactSubmission fetches a submission by id.
func (q *Queries) GetContactSubmission(ctx context.Context, id int64) (model.ContactSubmission, error) {
	return scanContactSubmission(q.queryRow(ctx,
		`SELECT `+contactColumns+` FROM contact_submissions WHERE id = ?`, id))
}

// ListContactSubmissionsParams holds filtering and pagination for
// ListContactSubmissions. An empty Status matches all submissions.
type ListContactSubmissionsParams struct {
	Status string
	Limit  int64
	Offset int64
}

// ListContactSubmissions returns submissions, newest first.
func (q *Queries) ListContactSubmissions(ctx context.Context, arg ListContactSubmissionsParams) ([]model.ContactSubmission, error) {
	rows, err := q.query(ctx, `
		SELECT `+contactColumns+` FROM contact_submissions
		WHERE (? = '' OR status = ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, arg.Status, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.ContactSubmission
	for rows.Next() {
		c, err := scanContactSubmission(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// CountContactSubmissions returns the number of submissions matching the
// status filter.
func (q *Queries) CountContactSubmissions(ctx context.Context, status string) (int64, error) {
	var n int64
	err := q.queryRow(ctx,
		`SELECT COUNT(*) FROM contact_submissions WHERE (? = '' OR status = ?)`,
		status, status).Scan(&n)
	return n, err
}

// CountContactSubmissionsByStatus returns one row per status present in the
// table with its submission count.
func (q *Queries) CountContactSubmissionsByStatus(ctx context.Context) ([]model.ContactStatusCount, error) {
	rows, err := q.query(ctx,
		`SELECT status, COUNT(*) FROM contact_submissions GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []model.ContactStatusCount
	for rows.Next() {
		var c model.ContactStatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// UpdateContactSubmissionParams holds fields for UpdateContactSubmission.
type UpdateContactSubmissionParams struct {
	ID              int64
	Status          string
	ResponseMessage string
	UpdatedAt       time.Time
}

// UpdateContactSubmission updates the triage fields of a submission and
// returns the stored row. Returns sql.ErrNoRows if the id does not exist.
func (q *Queries) UpdateContactSubmission(ctx context.Context, arg UpdateContactSubmissionParams) (model.ContactSubmission, error) {
	return scanContactSubmission(q.queryRow(ctx, `
		UPDATE contact_submissions
		SET status = ?, response_message = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+contactColumns,
		arg.Status, arg.ResponseMessage, arg.UpdatedAt, arg.ID))
}

// DeleteContactSubmission removes a submission. Returns sql.ErrNoRows if the
// id does not exist.
func (q *Queries) DeleteContactSubmission(ctx context.Context, id int64) error {
	var deleted int64
	return q.queryRow(ctx, `DELETE FROM contact_submissions WHERE id = ? RETURNING id`, id).Scan(&deleted)
}

// PurgeClosedContactSubmissions deletes closed submissions not touched since
// cutoff and returns how many were removed. Called by the scheduler.
func (q *Queries) PurgeClosedContactSubmissions(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.exec(ctx,
		`DELETE FROM contact_submissions WHERE status = 'closed' AND updated_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
