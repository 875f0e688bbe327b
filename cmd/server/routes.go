package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MarkoPoloResearchLab/reviewloop/internal/httpapi"
)

const (
	pageRouteRoot     = "/"
	pageRouteFeedback = "/feedback"
	pageRouteThankYou = "/thank-you"
	pageRouteAdmin    = "/admin"

	publicRouteClientConfig     = "/client-config/:clientID"
	publicRouteNegativeFeedback = "/api/feedback/negative"
	publicRoutePositiveFeedback = "/api/feedback/positive"

	adminRouteClients    = "/admin/clients"
	adminRouteClientLogo = "/admin/clients/:id/logo"

	corsOriginWildcard      = "*"
	corsHeaderAuthorization = "Authorization"
	corsHeaderContentType   = "Content-Type"
	httpMethodGet           = "GET"
	httpMethodOptions       = "OPTIONS"
	httpMethodPost          = "POST"
)

var (
	corsAllowedMethods = []string{httpMethodPost, httpMethodGet, httpMethodOptions}
	corsAllowedHeaders = []string{corsHeaderAuthorization, corsHeaderContentType}
	corsExposedHeaders = []string{corsHeaderContentType}
	corsAllowOrigins   = []string{corsOriginWildcard}
)

func newRouter(database *gorm.DB, logger *zap.Logger, adminBearerToken string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpapi.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsAllowOrigins,
		AllowMethods:     corsAllowedMethods,
		AllowHeaders:     corsAllowedHeaders,
		ExposeHeaders:    corsExposedHeaders,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	feedbackNotifier := httpapi.NewEmailFeedbackNotifier(nil)

	feedbackPages := httpapi.NewFeedbackPageHandlers(database, logger)
	adminPage := httpapi.NewAdminPageHandlers(logger)
	configHandlers := httpapi.NewClientConfigHandlers(database, logger)
	feedbackHandlers := httpapi.NewPublicFeedbackHandlers(database, logger, feedbackNotifier)
	adminHandlers := httpapi.NewClientAdminHandlers(database, logger)

	registerFrontendRoutes(router, feedbackPages, adminPage)
	registerBackendRoutes(router, configHandlers, feedbackHandlers, adminHandlers, adminBearerToken)

	return router
}

func registerFrontendRoutes(
	router *gin.Engine,
	feedbackPages *httpapi.FeedbackPageHandlers,
	adminPage *httpapi.AdminPageHandlers,
) {
	router.GET(pageRouteRoot, feedbackPages.RenderFeedbackPage)
	router.GET(pageRouteFeedback, feedbackPages.RenderFeedbackPage)
	router.GET(pageRouteThankYou, feedbackPages.RenderThankYouPage)
	router.GET(pageRouteAdmin, adminPage.RenderAdminPage)
	router.NoRoute(feedbackPages.RenderNotFoundPage)
}

func registerBackendRoutes(
	router *gin.Engine,
	configHandlers *httpapi.ClientConfigHandlers,
	feedbackHandlers *httpapi.PublicFeedbackHandlers,
	adminHandlers *httpapi.ClientAdminHandlers,
	adminBearerToken string,
) {
	router.GET(publicRouteClientConfig, configHandlers.GetClientConfig)
	router.POST(publicRouteNegativeFeedback, feedbackHandlers.CreateNegativeFeedback)
	router.POST(publicRoutePositiveFeedback, feedbackHandlers.LogPositiveReaction)

	// The logo route stays public so the feedback pages can load client
	// branding without credentials.
	router.GET(adminRouteClientLogo, adminHandlers.ClientLogo)

	adminGroup := router.Group(adminRouteClients)
	adminGroup.Use(httpapi.AdminAuthMiddleware(adminBearerToken))
	adminGroup.GET("", adminHandlers.ListClients)
	adminGroup.POST("", adminHandlers.CreateClient)
}
