// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Testimonial statuses
const (
	TestimonialStatusPending  = "pending"
	TestimonialStatusApproved = "approved"
	TestimonialStatusRejected = "rejected"
)

// Rating bounds for testimonials.
const (
	RatingMin = 1
	RatingMax = 5
)

// Testimonial represents a customer review. Public submissions start as
// pending and only approved ones are served to the site.
type Testimonial struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Content       string    `json:"content"`
	CustomerPhoto string    `json:"customer_photo"`
	Rating        int64     `json:"rating"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidTestimonialStatus reports whether s is a known testimonial status.
func ValidTestimonialStatus(s string) bool {
	switch s {
	case TestimonialStatusPending, TestimonialStatusApproved, TestimonialStatusRejected:
		return true
	}
	return false
}
