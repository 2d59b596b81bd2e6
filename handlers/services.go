package handlers

import (
	"net/http"

	"lexdraft/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves the services/forms browsing endpoints.
type CatalogHandler struct {
	Svc catalog.CatalogService
}

func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Svc: svc}
}

// ListServicesHandler handles GET /api/services.
func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.Svc.ListServices()
	if err != nil {
		getLogger(c).Error("Error fetching services", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching services"})
		return
	}
	c.JSON(http.StatusOK, services)
}

// ListFormsHandler handles GET /api/forms?service_id=N.
func (h *CatalogHandler) ListFormsHandler(c *gin.Context) {
	serviceID := c.Query("service_id")
	if serviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service ID is required"})
		return
	}

	forms, err := h.Svc.ListForms(serviceID)
	if err != nil {
		getLogger(c).Error("Error fetching forms", zap.String("serviceID", serviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching forms"})
		return
	}
	c.JSON(http.StatusOK, forms)
}

// FormDetailsHandler handles GET /api/form-details?form_id=N.
func (h *CatalogHandler) FormDetailsHandler(c *gin.Context) {
	formID := c.Query("form_id")
	if formID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Form ID is required"})
		return
	}

	details, err := h.Svc.FormDetails(formID)
	if err != nil {
		getLogger(c).Error("Error fetching form details", zap.String("formID", formID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching form details"})
		return
	}
	if details == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		return
	}
	c.JSON(http.StatusOK, details)
}
