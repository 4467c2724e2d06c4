// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"fmt"
	"strconv"
	"time"
)

// Setting value types
const (
	SettingTypeString = "string"
	SettingTypeInt    = "int"
	SettingTypeBool   = "bool"
)

// Setting keys
const (
	SettingKeySiteName           = "site_name"
	SettingKeySiteDescription    = "site_description"
	SettingKeyContactEmail       = "contact_email"
	SettingKeyContactPhone       = "contact_phone"
	SettingKeyAddress            = "address"
	SettingKeyBusinessHours      = "business_hours"
	SettingKeyFacebookURL        = "facebook_url"
	SettingKeyInstagramURL       = "instagram_url"
	SettingKeyContactFormEnabled = "contact_form_enabled"
	SettingKeyItemsPerPage       = "items_per_page"
)

// Setting represents a single site settings row.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Type      string    `json:"type"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SiteSettings is the typed view of the settings table. Handlers and the
// scheduler read this struct instead of re-parsing raw values.
type SiteSettings struct {
	SiteName           string `json:"site_name"`
	SiteDescription    string `json:"site_description"`
	ContactEmail       string `json:"contact_email"`
	ContactPhone       string `json:"contact_phone"`
	Address            string `json:"address"`
	BusinessHours      string `json:"business_hours"`
	FacebookURL        string `json:"facebook_url"`
	InstagramURL       string `json:"instagram_url"`
	ContactFormEnabled bool   `json:"contact_form_enabled"`
	ItemsPerPage       int    `json:"items_per_page"`
}

// DefaultSiteSettings returns the settings applied before any rows exist.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteName:           "Vitrine",
		ContactFormEnabled: true,
		ItemsPerPage:       12,
	}
}

// SiteSettingsFromRows folds raw settings rows into the typed struct,
// starting from defaults so missing keys keep sane values.
func SiteSettingsFromRows(rows []Setting) (SiteSettings, error) {
	s := DefaultSiteSettings()
	for _, row := range rows {
		switch row.Key {
		case SettingKeySiteName:
			s.SiteName = row.Value
		case SettingKeySiteDescription:
			s.SiteDescription = row.Value
		case SettingKeyContactEmail:
			s.ContactEmail = row.Value
		case SettingKeyContactPhone:
			s.ContactPhone = row.Value
		case SettingKeyAddress:
			s.Address = row.Value
		case SettingKeyBusinessHours:
			s.BusinessHours = row.Value
		case SettingKeyFacebookURL:
			s.FacebookURL = row.Value
		case SettingKeyInstagramURL:
			s.InstagramURL = row.Value
		case SettingKeyContactFormEnabled:
			v, err := strconv.ParseBool(row.Value)
			if err != nil {
				return s, fmt.Errorf("setting %s: %w", row.Key, err)
			}
			s.ContactFormEnabled = v
		case SettingKeyItemsPerPage:
			v, err := strconv.Atoi(row.Value)
			if err != nil {
				return s, fmt.Errorf("setting %s: %w", row.Key, err)
			}
			if v > 0 {
				s.ItemsPerPage = v
			}
		}
	}
	return s, nil
}

// SettingTypeFor returns the declared value type for a known key, defaulting
// to string for keys added at runtime.
func SettingTypeFor(key string) string {
	switch key {
	case SettingKeyContactFormEnabled:
		return SettingTypeBool
	case SettingKeyItemsPerPage:
		return SettingTypeInt
	}
	return SettingTypeString
}

// ValidateSettingValue checks a raw value against the declared type for key.
func ValidateSettingValue(key, value string) error {
	switch SettingTypeFor(key) {
	case SettingTypeBool:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("setting %s: expected boolean, got %q", key, value)
		}
	case SettingTypeInt:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("setting %s: expected integer, got %q", key, value)
		}
	}
	return nil
}
