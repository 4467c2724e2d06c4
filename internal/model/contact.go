// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Contact submission statuses
const (
	ContactStatusNew        = "new"
	ContactStatusInProgress = "in_progress"
	ContactStatusResolved   = "resolved"
	ContactStatusClosed     = "closed"
)

// ContactSubmission represents a message sent through the contact form.
// Reference is the opaque identifier returned to the submitter.
type ContactSubmission struct {
	ID              int64     `json:"id"`
	Reference       string    `json:"reference"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Subject         string    `json:"subject"`
	Message         string    `json:"message"`
	Status          string    `json:"status"`
	ResponseMessage string    `json:"response_message"`
	UserAgent       string    `json:"user_agent"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ValidContactStatus reports whether s is a known submission status.
func ValidContactStatus(s string) bool {
	switch s {
	case ContactStatusNew, ContactStatusInProgress, ContactStatusResolved, ContactStatusClosed:
		return true
	}
	return false
}

// ContactStatusCount is one row of the per-status aggregation.
type ContactStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}
