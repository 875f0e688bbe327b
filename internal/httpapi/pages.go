package httpapi

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MarkoPoloResearchLab/reviewloop/internal/model"
	"github.com/MarkoPoloResearchLab/reviewloop/pkg/theme"
)

const (
	feedbackTemplateName = "feedback"
	thankYouTemplateName = "thank_you"
	notFoundTemplateName = "not_found"
	pageHTMLContentType  = "text/html; charset=utf-8"

	queryParameterClientID  = "clientID"
	queryParameterContactID = "contactID"

	pageStateForm          = "form"
	pageStateMissingClient = "missing_client"
	pageStateUnknownClient = "unknown_client"
	pageStateInactive      = "inactive"

	pageMessageMissingClient = "This feedback link is missing its client identifier. Please use the link you were sent."
	pageMessageUnknownClient = "We could not load the configuration for this feedback page. Please try again later."
	pageMessageInactive      = "This feedback page is currently unavailable."
)

type feedbackPageData struct {
	State           string
	Message         string
	Theme           theme.Resolved
	ThemeStyles     template.CSS
	ClientID        string
	ContactID       string
	ClientName      string
	LogoURL         string
	GoogleReviewURL string
}

type staticPageData struct {
	Theme       theme.Resolved
	ThemeStyles template.CSS
}

// pageStyleTemplate receives the resolved theme values; see themeStyleBlock
// for the argument order.
const pageStyleTemplate = `
body { margin: 0; background: %s; color: %s; font-family: %s; }
.review-container { min-height: 100vh; display: flex; align-items: center; justify-content: center; padding: 16px; }
.review-card { width: 100%%; max-width: 640px; background: rgba(255, 255, 255, 0.92); border-radius: 12px; box-shadow: 0 8px 24px rgba(0, 0, 0, 0.12); padding: 32px; text-align: center; }
.logo-wrap { margin-bottom: 24px; }
.logo { max-width: 180px; max-height: 180px; }
h1 { font-size: 1.6rem; margin: 0 0 16px; }
.prompt { font-family: %s; font-size: 1.1rem; margin: 0 0 24px; }
.thumb-row { display: flex; justify-content: center; gap: 48px; margin-top: 24px; }
.thumb { width: 120px; height: 120px; border: none; border-radius: 50%%; font-size: 56px; cursor: pointer; transition: transform 0.15s; }
.thumb:hover { transform: scale(1.05); }
.thumb-up { background: %s; color: %s; }
.thumb-down { background: %s; color: %s; }
textarea { width: 100%%; box-sizing: border-box; padding: 12px; border-radius: 8px; border: 1px solid %s; font-family: inherit; font-size: 1rem; resize: none; }
.submit-row { display: flex; justify-content: center; margin-top: 24px; }
.action-button { background: %s; color: %s; border: none; border-radius: 8px; padding: 12px 32px; font-size: 1rem; cursor: pointer; }
.action-button:disabled { opacity: 0.6; cursor: not-allowed; }
.notice { margin-top: 24px; font-size: 0.95rem; }
.notice-error { color: #B00020; }
`

func themeStyleBlock(resolvedTheme theme.Resolved) template.CSS {
	return template.CSS(fmt.Sprintf(pageStyleTemplate,
		resolvedTheme.PageBackground,
		resolvedTheme.TextColor,
		resolvedTheme.PrimaryFont,
		resolvedTheme.SecondaryFont,
		resolvedTheme.PrimaryColor,
		resolvedTheme.ButtonTextColor,
		resolvedTheme.SecondaryColor,
		resolvedTheme.ButtonTextColor,
		resolvedTheme.SecondaryColor,
		resolvedTheme.PrimaryColor,
		resolvedTheme.ButtonTextColor,
	))
}

// FeedbackPageHandlers renders the end-user feedback flow pages.
type FeedbackPageHandlers struct {
	database         *gorm.DB
	logger           *zap.Logger
	feedbackTemplate *template.Template
	thankYouTemplate *template.Template
	notFoundTemplate *template.Template
}

// NewFeedbackPageHandlers constructs handlers that render the feedback pages.
func NewFeedbackPageHandlers(database *gorm.DB, logger *zap.Logger) *FeedbackPageHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackPageHandlers{
		database:         database,
		logger:           logger,
		feedbackTemplate: template.Must(template.New(feedbackTemplateName).Parse(feedbackTemplateHTML)),
		thankYouTemplate: template.Must(template.New(thankYouTemplateName).Parse(thankYouTemplateHTML)),
		notFoundTemplate: template.Must(template.New(notFoundTemplateName).Parse(notFoundTemplateHTML)),
	}
}

// RenderFeedbackPage renders the reaction/feedback page for the client named
// by the clientID query parameter. Every state, including the error and
// unavailable screens, is themed through the same derivation so client
// branding survives failures.
func (handlers *FeedbackPageHandlers) RenderFeedbackPage(context *gin.Context) {
	clientIdentifier := strings.TrimSpace(context.Query(queryParameterClientID))
	contactIdentifier := strings.TrimSpace(context.Query(queryParameterContactID))

	if clientIdentifier == "" {
		handlers.renderFeedback(context, http.StatusBadRequest, feedbackPageData{
			State:   pageStateMissingClient,
			Message: pageMessageMissingClient,
			Theme:   theme.Resolve(model.ClientConfig{}),
		})
		return
	}

	var client model.Client
	if findErr := handlers.database.First(&client, "id = ?", clientIdentifier).Error; findErr != nil {
		handlers.renderFeedback(context, http.StatusNotFound, feedbackPageData{
			State:   pageStateUnknownClient,
			Message: pageMessageUnknownClient,
			Theme:   theme.Resolve(model.ClientConfig{}),
		})
		return
	}

	configuration := client.Config()
	resolvedTheme := theme.Resolve(configuration)

	if !client.IsActive {
		handlers.renderFeedback(context, http.StatusOK, feedbackPageData{
			State:      pageStateInactive,
			Message:    pageMessageInactive,
			Theme:      resolvedTheme,
			ClientName: configuration.ClientName,
			LogoURL:    configuration.LogoURL,
		})
		return
	}

	handlers.renderFeedback(context, http.StatusOK, feedbackPageData{
		State:           pageStateForm,
		Theme:           resolvedTheme,
		ClientID:        configuration.ClientID,
		ContactID:       contactIdentifier,
		ClientName:      configuration.ClientName,
		LogoURL:         configuration.LogoURL,
		GoogleReviewURL: configuration.GoogleReviewURL,
	})
}

func (handlers *FeedbackPageHandlers) renderFeedback(context *gin.Context, statusCode int, data feedbackPageData) {
	data.ThemeStyles = themeStyleBlock(data.Theme)

	var buffer bytes.Buffer
	if executeErr := handlers.feedbackTemplate.Execute(&buffer, data); executeErr != nil {
		handlers.logger.Error("render_feedback_page", zap.Error(executeErr))
		context.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{jsonKeyError: "page_render_failed"})
		return
	}
	context.Data(statusCode, pageHTMLContentType, buffer.Bytes())
}

// RenderThankYouPage renders the static positive-reaction screen.
func (handlers *FeedbackPageHandlers) RenderThankYouPage(context *gin.Context) {
	resolvedTheme := theme.Resolve(model.ClientConfig{})
	data := staticPageData{Theme: resolvedTheme, ThemeStyles: themeStyleBlock(resolvedTheme)}

	var buffer bytes.Buffer
	if executeErr := handlers.thankYouTemplate.Execute(&buffer, data); executeErr != nil {
		handlers.logger.Error("render_thank_you_page", zap.Error(executeErr))
		context.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{jsonKeyError: "page_render_failed"})
		return
	}
	context.Data(http.StatusOK, pageHTMLContentType, buffer.Bytes())
}

// RenderNotFoundPage renders the generic screen for unmatched routes.
func (handlers *FeedbackPageHandlers) RenderNotFoundPage(context *gin.Context) {
	resolvedTheme := theme.Resolve(model.ClientConfig{})
	data := staticPageData{Theme: resolvedTheme, ThemeStyles: themeStyleBlock(resolvedTheme)}

	var buffer bytes.Buffer
	if executeErr := handlers.notFoundTemplate.Execute(&buffer, data); executeErr != nil {
		handlers.logger.Error("render_not_found_page", zap.Error(executeErr))
		context.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{jsonKeyError: "page_render_failed"})
		return
	}
	context.Data(http.StatusNotFound, pageHTMLContentType, buffer.Bytes())
}
