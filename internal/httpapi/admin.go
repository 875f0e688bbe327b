package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MarkoPoloResearchLab/reviewloop/internal/model"
	"github.com/MarkoPoloResearchLab/reviewloop/internal/storage"
)

const (
	jsonKeyError      = "error"
	jsonKeyClients    = "clients"
	jsonKeyClientData = "clientData"

	errorValueInvalidJSON        = "invalid_json"
	errorValueMissingFields      = "missing_fields"
	errorValueInvalidClientData  = "invalid_client_data"
	errorValueInvalidActiveValue = "invalid_is_active"
	errorValueInvalidLogo        = "invalid_logo"
	errorValueSaveFailed         = "save_failed"
	errorValueQueryFailed        = "query_failed"
	errorValueMissingClient      = "missing_client"
	errorValueUnknownClient      = "unknown_client"

	multipartFieldClientData = "clientData"
	multipartFieldLogoFile   = "logoFile"

	queryParameterSearch   = "search"
	queryParameterIsActive = "isActive"

	searchNameColumnExpr = "LOWER(client_name) LIKE ?"
	activeFlagColumnExpr = "is_active = ?"

	logoContentTypePNG  = "image/png"
	logoContentTypeJPEG = "image/jpeg"
	logoContentTypeSVG  = "image/svg+xml"

	defaultMaxLogoSizeBytes  = 2 << 20
	fallbackLogoContentType  = "application/octet-stream"
	logoCacheControlValue    = "public, max-age=300"
	clientNameMaxLength      = 200
	notificationEmailMaxLen  = 320
	googleReviewURLMaxLength = 500
)

var (
	errLogoTooLarge    = errors.New("httpapi: logo upload exceeds size limit")
	errLogoContentType = errors.New("httpapi: unsupported logo content type")
)

var allowedLogoContentTypes = map[string]struct{}{
	logoContentTypePNG:  {},
	logoContentTypeJPEG: {},
	logoContentTypeSVG:  {},
}

// ClientAdminHandlers implements the staff-facing client directory REST API.
type ClientAdminHandlers struct {
	database         *gorm.DB
	logger           *zap.Logger
	maxLogoSizeBytes int64
}

// NewClientAdminHandlers constructs handlers for the admin client routes.
func NewClientAdminHandlers(database *gorm.DB, logger *zap.Logger) *ClientAdminHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientAdminHandlers{
		database:         database,
		logger:           logger,
		maxLogoSizeBytes: defaultMaxLogoSizeBytes,
	}
}

type clientDataPayload struct {
	ClientName        string                `json:"clientName"`
	GoogleReviewURL   string                `json:"googleReviewUrl"`
	NotificationEmail string                `json:"notificationEmail"`
	IsActive          *bool                 `json:"isActive"`
	CustomPageText    model.CustomPageText  `json:"customPageText"`
	ThemeColors       model.ThemeColors     `json:"themeColors"`
	FontPreferences   model.FontPreferences `json:"fontPreferences"`
}

type clientResponse struct {
	ClientID          string `json:"clientID"`
	ClientName        string `json:"clientName"`
	IsActive          bool   `json:"isActive"`
	GoogleReviewURL   string `json:"googleReviewUrl"`
	NotificationEmail string `json:"notificationEmail"`
	LogoURL           string `json:"logoUrl"`
	CreatedAt         string `json:"createdAt"`
}

func newClientResponse(client model.Client) clientResponse {
	return clientResponse{
		ClientID:          client.ID,
		ClientName:        client.ClientName,
		IsActive:          client.IsActive,
		GoogleReviewURL:   client.GoogleReviewURL,
		NotificationEmail: client.NotificationEmail,
		LogoURL:           client.LogoURL(),
		CreatedAt:         client.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ListClients returns the client directory, optionally narrowed by a name
// substring and an active-status flag.
func (handlers *ClientAdminHandlers) ListClients(context *gin.Context) {
	listQuery := handlers.database.Model(&model.Client{})

	searchTerm := strings.TrimSpace(context.Query(queryParameterSearch))
	if searchTerm != "" {
		pattern := strings.ToLower(strings.ReplaceAll(searchTerm, "%", ""))
		listQuery = listQuery.Where(searchNameColumnExpr, "%"+pattern+"%")
	}

	activeFilter := strings.TrimSpace(context.Query(queryParameterIsActive))
	if activeFilter != "" {
		activeValue, parseErr := strconv.ParseBool(activeFilter)
		if parseErr != nil {
			context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueInvalidActiveValue})
			return
		}
		listQuery = listQuery.Where(activeFlagColumnExpr, activeValue)
	}

	var clients []model.Client
	if queryErr := listQuery.Order("created_at ASC").Find(&clients).Error; queryErr != nil {
		handlers.logger.Warn("list_clients", zap.Error(queryErr))
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueQueryFailed})
		return
	}

	clientResponses := make([]clientResponse, 0, len(clients))
	for _, client := range clients {
		clientResponses = append(clientResponses, newClientResponse(client))
	}

	context.JSON(http.StatusOK, gin.H{jsonKeyClients: clientResponses})
}

// CreateClient accepts a multipart submission carrying a JSON clientData
// field plus an optional logo file, and stores a new client record.
func (handlers *ClientAdminHandlers) CreateClient(context *gin.Context) {
	clientDataField := strings.TrimSpace(context.PostForm(multipartFieldClientData))
	if clientDataField == "" {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueMissingFields})
		return
	}

	var payload clientDataPayload
	if unmarshalErr := json.Unmarshal([]byte(clientDataField), &payload); unmarshalErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueInvalidClientData})
		return
	}

	payload.ClientName = strings.TrimSpace(payload.ClientName)
	payload.GoogleReviewURL = strings.TrimSpace(payload.GoogleReviewURL)
	payload.NotificationEmail = strings.TrimSpace(payload.NotificationEmail)
	if payload.ClientName == "" {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueMissingFields})
		return
	}

	logoData, logoContentType, logoErr := handlers.readLogoUpload(context)
	if logoErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueInvalidLogo})
		return
	}

	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	client := model.Client{
		ID:                storage.NewID(),
		ClientName:        truncate(payload.ClientName, clientNameMaxLength),
		IsActive:          isActive,
		GoogleReviewURL:   truncate(payload.GoogleReviewURL, googleReviewURLMaxLength),
		NotificationEmail: truncate(payload.NotificationEmail, notificationEmailMaxLen),
		LogoData:          logoData,
		LogoContentType:   logoContentType,
		CustomPageText:    payload.CustomPageText,
		ThemeColors:       payload.ThemeColors,
		FontPreferences:   payload.FontPreferences,
	}

	if createErr := handlers.database.Create(&client).Error; createErr != nil {
		handlers.logger.Warn("save_client", zap.Error(createErr))
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueSaveFailed})
		return
	}

	context.JSON(http.StatusOK, gin.H{jsonKeyClientData: newClientResponse(client)})
}

func (handlers *ClientAdminHandlers) readLogoUpload(context *gin.Context) ([]byte, string, error) {
	fileHeader, fileErr := context.FormFile(multipartFieldLogoFile)
	if fileErr != nil {
		// The logo upload is optional; a missing part is not an error.
		return nil, "", nil
	}
	if fileHeader.Size > handlers.maxLogoSizeBytes {
		return nil, "", errLogoTooLarge
	}

	contentType := strings.TrimSpace(fileHeader.Header.Get("Content-Type"))
	if _, allowed := allowedLogoContentTypes[contentType]; !allowed {
		return nil, "", errLogoContentType
	}

	file, openErr := fileHeader.Open()
	if openErr != nil {
		return nil, "", openErr
	}
	defer func() {
		_ = file.Close()
	}()

	logoData, readErr := io.ReadAll(io.LimitReader(file, handlers.maxLogoSizeBytes))
	if readErr != nil {
		return nil, "", readErr
	}

	return logoData, contentType, nil
}

// ClientLogo serves the stored logo bytes referenced by a client's logoUrl.
func (handlers *ClientAdminHandlers) ClientLogo(context *gin.Context) {
	clientIdentifier := strings.TrimSpace(context.Param("id"))
	if clientIdentifier == "" {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueMissingClient})
		return
	}

	var client model.Client
	if findErr := handlers.database.First(&client, "id = ?", clientIdentifier).Error; findErr != nil {
		context.JSON(http.StatusNotFound, gin.H{jsonKeyError: errorValueUnknownClient})
		return
	}

	if len(client.LogoData) == 0 {
		context.AbortWithStatus(http.StatusNotFound)
		return
	}

	contentType := strings.TrimSpace(client.LogoContentType)
	if contentType == "" {
		contentType = fallbackLogoContentType
	}
	context.Header("Cache-Control", logoCacheControlValue)
	context.Data(http.StatusOK, contentType, client.LogoData)
}

func truncate(input string, max int) string {
	if len(input) <= max {
		return input
	}
	return input[:max]
}
