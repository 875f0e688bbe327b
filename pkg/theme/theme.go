package theme

import (
	"strings"

	"github.com/MarkoPoloResearchLab/reviewloop/internal/model"
)

// Default values applied whenever a client configuration omits a field.
// These are the documented fallbacks; rendered pages must never show an
// empty string where one of them applies.
const (
	DefaultPrimaryColor    = "#4A90E2"
	DefaultSecondaryColor  = "#50E3C2"
	DefaultPageBackground  = "#FFFFFF"
	DefaultTextColor       = "#333333"
	DefaultButtonTextColor = "#FFFFFF"
	DefaultPrimaryFont     = "Arial, sans-serif"
	DefaultSecondaryFont   = "Helvetica, sans-serif"

	DefaultWelcomeMessagePrefix   = "Feedback for "
	DefaultWelcomeMessage         = "Feedback"
	DefaultPositiveFeedbackPrompt = "Tap 👍 or 👎 to let us know how we did."
	DefaultNegativeFeedbackPrompt = "We're sorry to hear that. Please let us know how we can improve our service."
	DefaultThankYouMessageTitle   = "Thank you for your feedback!"
	DefaultThankYouMessageBody    = "We appreciate you taking the time to help us improve our service."
	DefaultSubmitButtonText       = "Submit Feedback"
)

// Resolved carries the effective presentation values for one client page.
// Every field is non-empty after Resolve.
type Resolved struct {
	PrimaryColor    string
	SecondaryColor  string
	PageBackground  string
	TextColor       string
	ButtonTextColor string
	PrimaryFont     string
	SecondaryFont   string

	WelcomeMessage         string
	PositiveFeedbackPrompt string
	NegativeFeedbackPrompt string
	ThankYouMessageTitle   string
	ThankYouMessageBody    string
	SubmitButtonText       string
}

// Resolve derives the effective theme for a client configuration, applying
// the documented default for every absent or blank field. The same derivation
// backs every rendered state so branding survives error and unavailable
// screens.
func Resolve(configuration model.ClientConfig) Resolved {
	return Resolved{
		PrimaryColor:    fallback(configuration.ThemeColors.Primary, DefaultPrimaryColor),
		SecondaryColor:  fallback(configuration.ThemeColors.Secondary, DefaultSecondaryColor),
		PageBackground:  fallback(configuration.ThemeColors.PageBackground, DefaultPageBackground),
		TextColor:       fallback(configuration.ThemeColors.TextColor, DefaultTextColor),
		ButtonTextColor: fallback(configuration.ThemeColors.ButtonTextColor, DefaultButtonTextColor),
		PrimaryFont:     fallback(configuration.FontPreferences.PrimaryFont, DefaultPrimaryFont),
		SecondaryFont:   fallback(configuration.FontPreferences.SecondaryFont, DefaultSecondaryFont),

		WelcomeMessage:         fallback(configuration.CustomPageText.WelcomeMessage, defaultWelcomeMessage(configuration.ClientName)),
		PositiveFeedbackPrompt: fallback(configuration.CustomPageText.PositiveFeedbackPrompt, DefaultPositiveFeedbackPrompt),
		NegativeFeedbackPrompt: fallback(configuration.CustomPageText.NegativeFeedbackPrompt, DefaultNegativeFeedbackPrompt),
		ThankYouMessageTitle:   fallback(configuration.CustomPageText.ThankYouMessageTitle, DefaultThankYouMessageTitle),
		ThankYouMessageBody:    fallback(configuration.CustomPageText.ThankYouMessageBody, DefaultThankYouMessageBody),
		SubmitButtonText:       fallback(configuration.CustomPageText.SubmitButtonText, DefaultSubmitButtonText),
	}
}

func defaultWelcomeMessage(clientName string) string {
	trimmedName := strings.TrimSpace(clientName)
	if trimmedName == "" {
		return DefaultWelcomeMessage
	}
	return DefaultWelcomeMessagePrefix + trimmedName
}

func fallback(value string, defaultValue string) string {
	trimmedValue := strings.TrimSpace(value)
	if trimmedValue == "" {
		return defaultValue
	}
	return trimmedValue
}
