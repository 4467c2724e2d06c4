// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteSettingsFromRows(t *testing.T) {
	rows := []Setting{
		{Key: SettingKeySiteName, Value: "Acme Plumbing"},
		{Key: SettingKeyContactEmail, Value: "info@acme.test"},
		{Key: SettingKeyContactFormEnabled, Value: "false"},
		{Key: SettingKeyItemsPerPage, Value: "24"},
		{Key: "unknown_key", Value: "ignored"},
	}

	s, err := SiteSettingsFromRows(rows)
	require.NoError(t, err)

	assert.Equal(t, "Acme Plumbing", s.SiteName)
	assert.Equal(t, "info@acme.test", s.ContactEmail)
	assert.False(t, s.ContactFormEnabled)
	assert.Equal(t, 24, s.ItemsPerPage)
}

func TestSiteSettingsFromRows_Defaults(t *testing.T) {
	s, err := SiteSettingsFromRows(nil)
	require.NoError(t, err)

	assert.Equal(t, "Vitrine", s.SiteName)
	assert.True(t, s.ContactFormEnabled)
	assert.Equal(t, 12, s.ItemsPerPage)
}

func TestSiteSettingsFromRows_BadValues(t *testing.T) {
	_, err := SiteSettingsFromRows([]Setting{
		{Key: SettingKeyContactFormEnabled, Value: "maybe"},
	})
	assert.Error(t, err)

	_, err = SiteSettingsFromRows([]Setting{
		{Key: SettingKeyItemsPerPage, Value: "lots"},
	})
	assert.Error(t, err)

	// Non-positive page sizes fall back to the default
	s, err := SiteSettingsFromRows([]Setting{
		{Key: SettingKeyItemsPerPage, Value: "0"},
	})
	require.NoError(t, err)
	assert.Equal(t, 12, s.ItemsPerPage)
}

func TestSettingTypeFor(t *testing.T) {
	assert.Equal(t, SettingTypeBool, SettingTypeFor(SettingKeyContactFormEnabled))
	assert.Equal(t, SettingTypeInt, SettingTypeFor(SettingKeyItemsPerPage))
	assert.Equal(t, SettingTypeString, SettingTypeFor(SettingKeySiteName))
	assert.Equal(t, SettingTypeString, SettingTypeFor("custom_key"))
}

func TestValidateSettingValue(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{name: "valid bool", key: SettingKeyContactFormEnabled, value: "true"},
		{name: "invalid bool", key: SettingKeyContactFormEnabled, value: "yep", wantErr: true},
		{name: "valid int", key: SettingKeyItemsPerPage, value: "30"},
		{name: "invalid int", key: SettingKeyItemsPerPage, value: "thirty", wantErr: true},
		{name: "string accepts anything", key: SettingKeySiteName, value: "Any & Value"},
		{name: "unknown key is string", key: "custom_key", value: "123abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSettingValue(tt.key, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
