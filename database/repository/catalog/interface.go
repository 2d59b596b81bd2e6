package catalogRepo

import "lexdraft/models"

// CatalogRepository provides read access to the service and form catalog.
type CatalogRepository interface {
	// GetAllServices retrieves every service offered by the platform.
	GetAllServices() ([]models.Service, error)
	// GetFormsByService retrieves the joined service/form rows for a service.
	GetFormsByService(serviceID string) ([]models.ServiceForm, error)
	// GetFormByID retrieves a single form.
	GetFormByID(formID string) (*models.Form, error)
	// GetFormDetails retrieves a form with its question categories and questions.
	GetFormDetails(formID string) (*models.FormDetails, error)
}
