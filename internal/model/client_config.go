package model

import (
	"fmt"
	"strings"
)

const clientLogoURLTemplate = "/admin/clients/%s/logo"

// ClientConfig is the rendering-time configuration bundle served to the
// feedback pages. Nested blocks are always present so consumers can index
// into them without presence checks; empty members are omitted.
type ClientConfig struct {
	ClientID        string          `json:"clientID"`
	IsActive        bool            `json:"isActive"`
	ClientName      string          `json:"clientName"`
	LogoURL         string          `json:"logoUrl,omitempty"`
	GoogleReviewURL string          `json:"googleReviewUrl,omitempty"`
	CustomPageText  CustomPageText  `json:"customPageText"`
	ThemeColors     ThemeColors     `json:"themeColors"`
	FontPreferences FontPreferences `json:"fontPreferences"`
}

// LogoURL returns the serving path for the client's uploaded logo, or an
// empty string when no logo has been stored.
func (client Client) LogoURL() string {
	if len(client.LogoData) == 0 {
		return ""
	}
	return fmt.Sprintf(clientLogoURLTemplate, client.ID)
}

// Config builds the ClientConfig view of the client record.
func (client Client) Config() ClientConfig {
	return ClientConfig{
		ClientID:        client.ID,
		IsActive:        client.IsActive,
		ClientName:      strings.TrimSpace(client.ClientName),
		LogoURL:         client.LogoURL(),
		GoogleReviewURL: strings.TrimSpace(client.GoogleReviewURL),
		CustomPageText:  client.CustomPageText,
		ThemeColors:     client.ThemeColors,
		FontPreferences: client.FontPreferences,
	}
}
