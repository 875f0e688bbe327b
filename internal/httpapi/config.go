package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MarkoPoloResearchLab/reviewloop/internal/model"
)

// ClientConfigHandlers serves the per-client rendering configuration used by
// the feedback pages.
type ClientConfigHandlers struct {
	database *gorm.DB
	logger   *zap.Logger
}

// NewClientConfigHandlers constructs handlers for the client-config route.
func NewClientConfigHandlers(database *gorm.DB, logger *zap.Logger) *ClientConfigHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientConfigHandlers{database: database, logger: logger}
}

// GetClientConfig returns the ClientConfig record for one client. Inactive
// clients are returned as-is; callers decide how to render the inactive
// state so the stored theme can still color the unavailable screen.
func (handlers *ClientConfigHandlers) GetClientConfig(context *gin.Context) {
	clientIdentifier := strings.TrimSpace(context.Param("clientID"))
	if clientIdentifier == "" {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueMissingClient})
		return
	}

	var client model.Client
	if findErr := handlers.database.First(&client, "id = ?", clientIdentifier).Error; findErr != nil {
		context.JSON(http.StatusNotFound, gin.H{jsonKeyError: errorValueUnknownClient})
		return
	}

	context.JSON(http.StatusOK, client.Config())
}
