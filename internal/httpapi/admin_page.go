package httpapi

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const adminTemplateName = "admin"

// AdminPageHandlers renders the staff-facing client directory page. The page
// is a static shell; its embedded script drives the directory REST API.
type AdminPageHandlers struct {
	logger        *zap.Logger
	adminTemplate *template.Template
}

// NewAdminPageHandlers constructs handlers that render the admin page.
func NewAdminPageHandlers(logger *zap.Logger) *AdminPageHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminPageHandlers{
		logger:        logger,
		adminTemplate: template.Must(template.New(adminTemplateName).Parse(adminTemplateHTML)),
	}
}

// RenderAdminPage writes the client administration page response.
func (handlers *AdminPageHandlers) RenderAdminPage(context *gin.Context) {
	var buffer bytes.Buffer
	if executeErr := handlers.adminTemplate.Execute(&buffer, nil); executeErr != nil {
		handlers.logger.Error("render_admin_page", zap.Error(executeErr))
		context.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{jsonKeyError: "page_render_failed"})
		return
	}
	context.Data(http.StatusOK, pageHTMLContentType, buffer.Bytes())
}
