package httpapi_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MarkoPoloResearchLab/reviewloop/internal/httpapi"
	"github.com/MarkoPoloResearchLab/reviewloop/internal/model"
	"github.com/MarkoPoloResearchLab/reviewloop/pkg/theme"
)

const (
	feedbackPagePath = "/feedback"
	thankYouPagePath = "/thank-you"
	adminPagePath    = "/admin"
)

func newPageRouter(database *gorm.DB) *gin.Engine {
	pageHandlers := httpapi.NewFeedbackPageHandlers(database, zap.NewNop())
	adminPageHandlers := httpapi.NewAdminPageHandlers(zap.NewNop())

	router := gin.New()
	router.GET(feedbackPagePath, pageHandlers.RenderFeedbackPage)
	router.GET(thankYouPagePath, pageHandlers.RenderThankYouPage)
	router.GET(adminPagePath, adminPageHandlers.RenderAdminPage)
	router.NoRoute(pageHandlers.RenderNotFoundPage)
	return router
}

func TestRenderFeedbackPageWithoutClientIdentifier(testingT *testing.T) {
	database := newTestDatabase(testingT)
	router := newPageRouter(database)

	response := performRequest(router, httptestNewRequest(http.MethodGet, feedbackPagePath))

	require.Equal(testingT, http.StatusBadRequest, response.Code)
	pageBody := response.Body.String()
	require.Contains(testingT, pageBody, "missing its client identifier")
	require.NotContains(testingT, pageBody, `id="reaction-section"`)
	require.Contains(testingT, pageBody, theme.DefaultPageBackground)
}

func TestRenderFeedbackPageUnknownClient(testingT *testing.T) {
	database := newTestDatabase(testingT)
	router := newPageRouter(database)

	response := performRequest(router, httptestNewRequest(http.MethodGet, feedbackPagePath+"?clientID=missing"))

	require.Equal(testingT, http.StatusNotFound, response.Code)
	pageBody := response.Body.String()
	require.Contains(testingT, pageBody, "could not load the configuration")
	require.NotContains(testingT, pageBody, `id="reaction-section"`)
}

func TestRenderFeedbackPageInactiveClientKeepsBranding(testingT *testing.T) {
	database := newTestDatabase(testingT)
	router := newPageRouter(database)

	seedClient(testingT, database, model.Client{
		ID:          testClientID,
		ClientName:  testClientName,
		IsActive:    false,
		ThemeColors: model.ThemeColors{PageBackground: "#ABCDEF"},
	})

	response := performRequest(router, httptestNewRequest(http.MethodGet, feedbackPagePath+"?clientID="+testClientID))

	require.Equal(testingT, http.StatusOK, response.Code)
	pageBody := response.Body.String()
	require.Contains(testingT, pageBody, "currently unavailable")
	require.Contains(testingT, pageBody, "#ABCDEF")
	require.NotContains(testingT, pageBody, `id="reaction-section"`)
	require.NotContains(testingT, pageBody, `id="feedback-form"`)
}

func TestRenderFeedbackPageFormState(testingT *testing.T) {
	database := newTestDatabase(testingT)
	router := newPageRouter(database)

	seedClient(testingT, database, model.Client{
		ID:              testClientID,
		ClientName:      testClientName,
		IsActive:        true,
		GoogleReviewURL: testGoogleReviewURL,
		LogoData:        []byte("png-bytes"),
		LogoContentType: "image/png",
	})

	target := feedbackPagePath + "?clientID=" + testClientID + "&contactID=" + testContactID
	response := performRequest(router, httptestNewRequest(http.MethodGet, target))

	require.Equal(testingT, http.StatusOK, response.Code)
	pageBody := response.Body.String()
	require.Contains(testingT, pageBody, `id="reaction-section"`)
	require.Contains(testingT, pageBody, `id="feedback-form"`)
	require.Contains(testingT, pageBody, "Feedback for "+testClientName)
	require.Contains(testingT, pageBody, theme.DefaultSubmitButtonText)
	require.Contains(testingT, pageBody, "/admin/clients/"+testClientID+"/logo")
	require.Contains(testingT, pageBody, testGoogleReviewURL)
	require.Contains(testingT, pageBody, testContactID)
}

func TestRenderFeedbackPageAppliesStoredTheme(testingT *testing.T) {
	database := newTestDatabase(testingT)
	router := newPageRouter(database)

	seedClient(testingT, database, model.Client{
		ID:             testClientID,
		ClientName:     testClientName,
		IsActive:       true,
		CustomPageText: model.CustomPageText{WelcomeMessage: "Howdy partner"},
		ThemeColors:    model.ThemeColors{Primary: "#112233"},
	})

	response := performRequest(router, httptestNewRequest(http.MethodGet, feedbackPagePath+"?clientID="+testClientID))

	require.Equal(testingT, http.StatusOK, response.Code)
	pageBody := response.Body.String()
	require.Contains(testingT, pageBody, "Howdy partner")
	require.Contains(testingT, pageBody, "#112233")
	require.Contains(testingT, pageBody, theme.DefaultSecondaryColor)
}

func TestRenderThankYouPage(testingT *testing.T) {
	database := newTestDatabase(testingT)
	router := newPageRouter(database)

	response := performRequest(router, httptestNewRequest(http.MethodGet, thankYouPagePath))

	require.Equal(testingT, http.StatusOK, response.Code)
	require.Contains(testingT, response.Body.String(), theme.DefaultThankYouMessageTitle)
}

func TestRenderAdminPage(testingT *testing.T) {
	database := newTestDatabase(testingT)
	router := newPageRouter(database)

	response := performRequest(router, httptestNewRequest(http.MethodGet, adminPagePath))

	require.Equal(testingT, http.StatusOK, response.Code)
	pageBody := response.Body.String()
	require.Contains(testingT, pageBody, "Client Administration")
	require.Contains(testingT, pageBody, `id="create-form"`)
}

func TestRenderNotFoundPage(testingT *testing.T) {
	database := newTestDatabase(testingT)
	router := newPageRouter(database)

	response := performRequest(router, httptestNewRequest(http.MethodGet, "/no-such-page"))

	require.Equal(testingT, http.StatusNotFound, response.Code)
	require.Contains(testingT, response.Body.String(), "404")
}
