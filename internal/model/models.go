package model

import "time"

// CustomPageText holds per-client copy overrides for the feedback pages.
// Empty fields fall back to documented defaults at render time.
type CustomPageText struct {
	WelcomeMessage         string `gorm:"size:500" json:"welcomeMessage,omitempty"`
	PositiveFeedbackPrompt string `gorm:"size:500" json:"positiveFeedbackPrompt,omitempty"`
	NegativeFeedbackPrompt string `gorm:"size:500" json:"negativeFeedbackPrompt,omitempty"`
	ThankYouMessageTitle   string `gorm:"size:500" json:"thankYouMessageTitle,omitempty"`
	ThankYouMessageBody    string `gorm:"size:1000" json:"thankYouMessageBody,omitempty"`
	SubmitButtonText       string `gorm:"size:100" json:"submitButtonText,omitempty"`
}

// ThemeColors holds per-client color overrides expressed as CSS color values.
type ThemeColors struct {
	Primary         string `gorm:"size:50" json:"primary,omitempty"`
	Secondary       string `gorm:"size:50" json:"secondary,omitempty"`
	PageBackground  string `gorm:"size:50" json:"pageBackground,omitempty"`
	TextColor       string `gorm:"size:50" json:"textColor,omitempty"`
	ButtonTextColor string `gorm:"size:50" json:"buttonTextColor,omitempty"`
}

// FontPreferences holds per-client font family overrides.
type FontPreferences struct {
	PrimaryFont   string `gorm:"size:200" json:"primaryFont,omitempty"`
	SecondaryFont string `gorm:"size:200" json:"secondaryFont,omitempty"`
}

// Client is a tenant business collecting feedback, with its own branding and
// review link.
type Client struct {
	ID                string          `gorm:"primaryKey;size:36"`
	ClientName        string          `gorm:"not null;size:200"`
	IsActive          bool            `gorm:"not null;default:true"`
	GoogleReviewURL   string          `gorm:"size:500"`
	NotificationEmail string          `gorm:"size:320"`
	LogoData          []byte          `gorm:"type:blob"`
	LogoContentType   string          `gorm:"size:100"`
	CustomPageText    CustomPageText  `gorm:"embedded;embeddedPrefix:text_"`
	ThemeColors       ThemeColors     `gorm:"embedded;embeddedPrefix:color_"`
	FontPreferences   FontPreferences `gorm:"embedded;embeddedPrefix:font_"`
	CreatedAt         time.Time       `gorm:"autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime"`
}

// NegativeFeedback is one free-text submission tied to a client and contact.
type NegativeFeedback struct {
	ID           string    `gorm:"primaryKey;size:36"`
	ClientID     string    `gorm:"index;not null;size:36"`
	ContactID    string    `gorm:"not null;size:100"`
	FeedbackText string    `gorm:"not null;size:4000"`
	IP           string    `gorm:"size:64"`
	UserAgent    string    `gorm:"size:400"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// PositiveReaction records a thumbs-up tap before the browser is redirected
// to the client's review link.
type PositiveReaction struct {
	ID        string    `gorm:"primaryKey;size:36"`
	ClientID  string    `gorm:"index;not null;size:36"`
	ContactID string    `gorm:"not null;size:100"`
	IP        string    `gorm:"size:64"`
	UserAgent string    `gorm:"size:400"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
