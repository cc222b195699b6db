package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/budget_approval_app/internal/apperrors"
	portssvc "github.com/SscSPs/budget_approval_app/internal/core/ports/services"
	"github.com/SscSPs/budget_approval_app/internal/dto"
	"github.com/SscSPs/budget_approval_app/internal/middleware"
)

// templateHandler serves the built-in budget templates.
type templateHandler struct {
	templateService portssvc.TemplateSvcFacade
}

func newTemplateHandler(ts portssvc.TemplateSvcFacade) *templateHandler {
	return &templateHandler{
		templateService: ts,
	}
}

// registerTemplateRoutes registers routes for budget templates.
func registerTemplateRoutes(rg *gin.RouterGroup, templateService portssvc.TemplateSvcFacade) {
	h := newTemplateHandler(templateService)

	templates := rg.Group("/templates")
	{
		templates.GET("", h.listTemplates)
		templates.GET("/:name", h.getTemplateByName)
	}
}

// listTemplates returns the names and descriptions of all templates.
func (h *templateHandler) listTemplates(c *gin.Context) {
	templates := h.templateService.ListTemplates(c.Request.Context())

	res := make([]dto.TemplateResponse, len(templates))
	for i := range templates {
		res[i] = dto.ToTemplateResponse(&templates[i], false)
	}
	c.JSON(http.StatusOK, gin.H{"templates": res})
}

// getTemplateByName returns one template including its item skeleton.
func (h *templateHandler) getTemplateByName(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	template, err := h.templateService.GetTemplateByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Template not found", slog.String("template_name", name))
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		} else {
			logger.Error("Failed to get template", slog.String("template_name", name), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve template"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateResponse(template, true))
}
