package domain

import "time"

// HeaderSettings holds the site-wide header configuration. The site normally
// has a single document; GetActive creates one with these defaults when the
// collection is empty.
type HeaderSettings struct {
	ID                    string    `json:"id"`
	SiteTitle             string    `json:"site_title"`
	SiteSubtitle          string    `json:"site_subtitle"`
	HeaderLogoURL         string    `json:"header_logo_url"`
	HeaderBackgroundColor string    `json:"header_background_color"`
	HeaderTextColor       string    `json:"header_text_color"`
	ShowHeader            bool      `json:"show_header"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// DefaultHeaderSettings returns the document created when none exists yet.
func DefaultHeaderSettings(now time.Time) *HeaderSettings {
	return &HeaderSettings{
		SiteTitle:             "Your Site Title",
		HeaderBackgroundColor: "#ffffff",
		HeaderTextColor:       "#000000",
		ShowHeader:            true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}
