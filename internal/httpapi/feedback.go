package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MarkoPoloResearchLab/reviewloop/internal/model"
	"github.com/MarkoPoloResearchLab/reviewloop/internal/storage"
)

const (
	errorValueRateLimited    = "rate_limited"
	errorValueClientInactive = "client_inactive"

	jsonKeyStatus  = "status"
	statusValueOK  = "ok"
	feedbackIPMax  = 64
	feedbackUAMax  = 400
	contactIDMax   = 100
	feedbackMaxLen = 4000

	defaultRateWindow            = 30 * time.Second
	defaultMaxRequestsPerIPBurst = 6
)

var errClientInactive = errors.New("httpapi: client is inactive")

// PublicFeedbackHandlers accepts the reaction and feedback submissions from
// the end-user feedback pages.
type PublicFeedbackHandlers struct {
	database                  *gorm.DB
	logger                    *zap.Logger
	feedbackNotifier          FeedbackNotifier
	rateWindow                time.Duration
	maxRequestsPerIPPerWindow int
	rateCountersByIP          map[string]int
	rateCountersMutex         sync.Mutex
}

// NewPublicFeedbackHandlers constructs handlers for the public feedback routes.
func NewPublicFeedbackHandlers(database *gorm.DB, logger *zap.Logger, notifier FeedbackNotifier) *PublicFeedbackHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicFeedbackHandlers{
		database:                  database,
		logger:                    logger,
		feedbackNotifier:          resolveFeedbackNotifier(notifier),
		rateWindow:                defaultRateWindow,
		maxRequestsPerIPPerWindow: defaultMaxRequestsPerIPBurst,
		rateCountersByIP:          make(map[string]int),
	}
}

type negativeFeedbackRequest struct {
	ClientID     string `json:"clientID"`
	ContactID    string `json:"contactID"`
	FeedbackText string `json:"feedbackText"`
}

type positiveReactionRequest struct {
	ClientID  string `json:"clientID"`
	ContactID string `json:"contactID"`
}

// CreateNegativeFeedback stores one free-text feedback submission.
func (handlers *PublicFeedbackHandlers) CreateNegativeFeedback(context *gin.Context) {
	clientIP := context.ClientIP()
	if handlers.isRateLimited(clientIP) {
		context.JSON(http.StatusTooManyRequests, gin.H{jsonKeyError: errorValueRateLimited})
		return
	}

	var payload negativeFeedbackRequest
	if bindErr := context.ShouldBindJSON(&payload); bindErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueInvalidJSON})
		return
	}

	payload.ClientID = strings.TrimSpace(payload.ClientID)
	payload.ContactID = strings.TrimSpace(payload.ContactID)
	payload.FeedbackText = strings.TrimSpace(payload.FeedbackText)

	if payload.ClientID == "" || payload.ContactID == "" || payload.FeedbackText == "" {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueMissingFields})
		return
	}

	client, clientErr := handlers.loadActiveClient(context, payload.ClientID)
	if clientErr != nil {
		return
	}

	feedback := model.NegativeFeedback{
		ID:           storage.NewID(),
		ClientID:     client.ID,
		ContactID:    truncate(payload.ContactID, contactIDMax),
		FeedbackText: truncate(payload.FeedbackText, feedbackMaxLen),
		IP:           truncate(clientIP, feedbackIPMax),
		UserAgent:    truncate(context.Request.UserAgent(), feedbackUAMax),
	}

	if createErr := handlers.database.Create(&feedback).Error; createErr != nil {
		handlers.logger.Warn("save_feedback", zap.Error(createErr))
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueSaveFailed})
		return
	}

	applyFeedbackNotification(context.Request.Context(), handlers.logger, handlers.feedbackNotifier, client, feedback)

	context.JSON(http.StatusOK, gin.H{jsonKeyStatus: statusValueOK})
}

// LogPositiveReaction records a thumbs-up tap. Callers treat the request as
// fire-and-forget; the browser navigates to the review link regardless.
func (handlers *PublicFeedbackHandlers) LogPositiveReaction(context *gin.Context) {
	clientIP := context.ClientIP()
	if handlers.isRateLimited(clientIP) {
		context.JSON(http.StatusTooManyRequests, gin.H{jsonKeyError: errorValueRateLimited})
		return
	}

	var payload positiveReactionRequest
	if bindErr := context.ShouldBindJSON(&payload); bindErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueInvalidJSON})
		return
	}

	payload.ClientID = strings.TrimSpace(payload.ClientID)
	payload.ContactID = strings.TrimSpace(payload.ContactID)

	if payload.ClientID == "" || payload.ContactID == "" {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueMissingFields})
		return
	}

	client, clientErr := handlers.loadActiveClient(context, payload.ClientID)
	if clientErr != nil {
		return
	}

	reaction := model.PositiveReaction{
		ID:        storage.NewID(),
		ClientID:  client.ID,
		ContactID: truncate(payload.ContactID, contactIDMax),
		IP:        truncate(clientIP, feedbackIPMax),
		UserAgent: truncate(context.Request.UserAgent(), feedbackUAMax),
	}

	if createErr := handlers.database.Create(&reaction).Error; createErr != nil {
		handlers.logger.Warn("save_positive_reaction", zap.Error(createErr))
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueSaveFailed})
		return
	}

	context.JSON(http.StatusOK, gin.H{jsonKeyStatus: statusValueOK})
}

// loadActiveClient resolves a client and writes the error response itself
// when the record is missing or inactive.
func (handlers *PublicFeedbackHandlers) loadActiveClient(context *gin.Context, clientID string) (model.Client, error) {
	var client model.Client
	if findErr := handlers.database.First(&client, "id = ?", clientID).Error; findErr != nil {
		context.JSON(http.StatusNotFound, gin.H{jsonKeyError: errorValueUnknownClient})
		return model.Client{}, findErr
	}
	if !client.IsActive {
		context.JSON(http.StatusForbidden, gin.H{jsonKeyError: errorValueClientInactive})
		return model.Client{}, errClientInactive
	}
	return client, nil
}

func (handlers *PublicFeedbackHandlers) isRateLimited(ip string) bool {
	nowBucket := time.Now().Unix() / int64(handlers.rateWindow.Seconds())
	key := fmt.Sprintf("%s:%d", ip, nowBucket)

	handlers.rateCountersMutex.Lock()
	defer handlers.rateCountersMutex.Unlock()

	handlers.rateCountersByIP[key]++
	return handlers.rateCountersByIP[key] > handlers.maxRequestsPerIPPerWindow
}
