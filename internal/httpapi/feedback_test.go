package httpapi_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MarkoPoloResearchLab/reviewloop/internal/httpapi"
	"github.com/MarkoPoloResearchLab/reviewloop/internal/model"
)

const (
	negativeFeedbackPath = "/api/feedback/negative"
	positiveReactionPath = "/api/feedback/positive"
)

type recordingNotifier struct {
	notifications []model.NegativeFeedback
	failWith      error
}

func (notifier *recordingNotifier) NotifyNegativeFeedback(ctx context.Context, client model.Client, feedback model.NegativeFeedback) error {
	notifier.notifications = append(notifier.notifications, feedback)
	return notifier.failWith
}

func newFeedbackRouter(database *gorm.DB, notifier httpapi.FeedbackNotifier) *gin.Engine {
	feedbackHandlers := httpapi.NewPublicFeedbackHandlers(database, zap.NewNop(), notifier)

	router := gin.New()
	router.POST(negativeFeedbackPath, feedbackHandlers.CreateNegativeFeedback)
	router.POST(positiveReactionPath, feedbackHandlers.LogPositiveReaction)
	return router
}

func newJSONRequest(target string, body string) *http.Request {
	request := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	request.Header.Set("Content-Type", "application/json")
	return request
}

func TestCreateNegativeFeedbackPersistsSubmission(testingT *testing.T) {
	database := newTestDatabase(testingT)
	notifier := &recordingNotifier{}
	router := newFeedbackRouter(database, notifier)

	seedClient(testingT, database, model.Client{ID: testClientID, ClientName: testClientName, IsActive: true})

	requestBody := `{"clientID":"` + testClientID + `","contactID":"` + testContactID + `","feedbackText":"The wait was too long."}`
	response := performRequest(router, newJSONRequest(negativeFeedbackPath, requestBody))

	require.Equal(testingT, http.StatusOK, response.Code)
	require.JSONEq(testingT, `{"status":"ok"}`, response.Body.String())

	var storedFeedback model.NegativeFeedback
	require.NoError(testingT, database.First(&storedFeedback, "client_id = ?", testClientID).Error)
	require.Equal(testingT, testContactID, storedFeedback.ContactID)
	require.Equal(testingT, "The wait was too long.", storedFeedback.FeedbackText)
	require.NotEmpty(testingT, storedFeedback.IP)

	require.Len(testingT, notifier.notifications, 1)
	require.Equal(testingT, storedFeedback.ID, notifier.notifications[0].ID)
}

func TestCreateNegativeFeedbackSucceedsWhenNotifierFails(testingT *testing.T) {
	database := newTestDatabase(testingT)
	notifier := &recordingNotifier{failWith: errors.New("smtp unavailable")}
	router := newFeedbackRouter(database, notifier)

	seedClient(testingT, database, model.Client{ID: testClientID, ClientName: testClientName, IsActive: true})

	requestBody := `{"clientID":"` + testClientID + `","contactID":"` + testContactID + `","feedbackText":"Slow service"}`
	response := performRequest(router, newJSONRequest(negativeFeedbackPath, requestBody))

	require.Equal(testingT, http.StatusOK, response.Code)

	var feedbackCount int64
	require.NoError(testingT, database.Model(&model.NegativeFeedback{}).Count(&feedbackCount).Error)
	require.EqualValues(testingT, 1, feedbackCount)
}

func TestCreateNegativeFeedbackRejectsBadSubmissions(testingT *testing.T) {
	database := newTestDatabase(testingT)
	router := newFeedbackRouter(database, nil)

	seedClient(testingT, database, model.Client{ID: testClientID, ClientName: testClientName, IsActive: true})
	seedClient(testingT, database, model.Client{ID: "client-paused", ClientName: "Paused", IsActive: false})

	testCases := []struct {
		name           string
		requestBody    string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "malformed json",
			requestBody:    "{not json",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid_json",
		},
		{
			name:           "missing contact",
			requestBody:    `{"clientID":"` + testClientID + `","feedbackText":"hello"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "missing_fields",
		},
		{
			name:           "blank feedback text",
			requestBody:    `{"clientID":"` + testClientID + `","contactID":"` + testContactID + `","feedbackText":"   "}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "missing_fields",
		},
		{
			name:           "unknown client",
			requestBody:    `{"clientID":"missing","contactID":"` + testContactID + `","feedbackText":"hello"}`,
			expectedStatus: http.StatusNotFound,
			expectedError:  "unknown_client",
		},
		{
			name:           "inactive client",
			requestBody:    `{"clientID":"client-paused","contactID":"` + testContactID + `","feedbackText":"hello"}`,
			expectedStatus: http.StatusForbidden,
			expectedError:  "client_inactive",
		},
	}

	for _, testCase := range testCases {
		testingT.Run(testCase.name, func(subTest *testing.T) {
			response := performRequest(router, newJSONRequest(negativeFeedbackPath, testCase.requestBody))
			require.Equal(subTest, testCase.expectedStatus, response.Code)
			require.JSONEq(subTest, `{"error":"`+testCase.expectedError+`"}`, response.Body.String())
		})
	}

	var feedbackCount int64
	require.NoError(testingT, database.Model(&model.NegativeFeedback{}).Count(&feedbackCount).Error)
	require.Zero(testingT, feedbackCount)
}

func TestLogPositiveReactionPersistsReaction(testingT *testing.T) {
	database := newTestDatabase(testingT)
	router := newFeedbackRouter(database, nil)

	seedClient(testingT, database, model.Client{ID: testClientID, ClientName: testClientName, IsActive: true})

	requestBody := `{"clientID":"` + testClientID + `","contactID":"` + testContactID + `"}`
	response := performRequest(router, newJSONRequest(positiveReactionPath, requestBody))

	require.Equal(testingT, http.StatusOK, response.Code)
	require.JSONEq(testingT, `{"status":"ok"}`, response.Body.String())

	var storedReaction model.PositiveReaction
	require.NoError(testingT, database.First(&storedReaction, "client_id = ?", testClientID).Error)
	require.Equal(testingT, testContactID, storedReaction.ContactID)
}

func TestLogPositiveReactionRejectsBadSubmissions(testingT *testing.T) {
	database := newTestDatabase(testingT)
	router := newFeedbackRouter(database, nil)

	seedClient(testingT, database, model.Client{ID: "client-paused", ClientName: "Paused", IsActive: false})

	testCases := []struct {
		name           string
		requestBody    string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing client",
			requestBody:    `{"contactID":"` + testContactID + `"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "missing_fields",
		},
		{
			name:           "unknown client",
			requestBody:    `{"clientID":"missing","contactID":"` + testContactID + `"}`,
			expectedStatus: http.StatusNotFound,
			expectedError:  "unknown_client",
		},
		{
			name:           "inactive client",
			requestBody:    `{"clientID":"client-paused","contactID":"` + testContactID + `"}`,
			expectedStatus: http.StatusForbidden,
			expectedError:  "client_inactive",
		},
	}

	for _, testCase := range testCases {
		testingT.Run(testCase.name, func(subTest *testing.T) {
			response := performRequest(router, newJSONRequest(positiveReactionPath, testCase.requestBody))
			require.Equal(subTest, testCase.expectedStatus, response.Code)
			require.JSONEq(subTest, `{"error":"`+testCase.expectedError+`"}`, response.Body.String())
		})
	}

	var reactionCount int64
	require.NoError(testingT, database.Model(&model.PositiveReaction{}).Count(&reactionCount).Error)
	require.Zero(testingT, reactionCount)
}

func TestFeedbackSubmissionsAreRateLimited(testingT *testing.T) {
	database := newTestDatabase(testingT)
	router := newFeedbackRouter(database, nil)

	seedClient(testingT, database, model.Client{ID: testClientID, ClientName: testClientName, IsActive: true})

	requestBody := `{"clientID":"` + testClientID + `","contactID":"` + testContactID + `","feedbackText":"hello"}`

	limitedResponses := 0
	for requestIndex := 0; requestIndex < 20; requestIndex++ {
		response := performRequest(router, newJSONRequest(negativeFeedbackPath, requestBody))
		if response.Code == http.StatusTooManyRequests {
			limitedResponses++
			require.JSONEq(testingT, `{"error":"rate_limited"}`, response.Body.String())
		}
	}

	require.Positive(testingT, limitedResponses)
}
