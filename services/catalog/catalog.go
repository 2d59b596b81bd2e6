package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	catalogRepo "lexdraft/database/repository/catalog"
	"lexdraft/models"
	"lexdraft/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	servicesCacheKey = "catalog:services"
	servicesCacheTTL = 5 * time.Minute
)

// CatalogService exposes the service/form catalog to handlers.
type CatalogService interface {
	// ListServices returns every offered service. An empty catalog is a
	// valid empty slice, never an error.
	ListServices() ([]models.Service, error)
	// ListForms returns the forms of a service joined with the service name.
	ListForms(serviceID string) ([]models.ServiceForm, error)
	// FormDetails returns a form with its categories and questions, or
	// (nil, nil) when the form does not exist.
	FormDetails(formID string) (*models.FormDetails, error)
}

// DefaultCatalogService reads from Mongo through a Redis cache.
type DefaultCatalogService struct {
	Repo  catalogRepo.CatalogRepository
	Cache *redis.Client
}

// ListServices serves the service list from cache when possible. Cache
// failures degrade to the repository, never to an error.
func (s *DefaultCatalogService) ListServices() ([]models.Service, error) {
	ctx := context.Background()

	if s.Cache != nil {
		data, err := s.Cache.Get(ctx, servicesCacheKey).Result()
		if err == nil {
			var services []models.Service
			if jsonErr := json.Unmarshal([]byte(data), &services); jsonErr == nil {
				return services, nil
			}
		} else if err != redis.Nil {
			utils.GetLogger().Warn("ListServices: cache read failed", zap.Error(err))
		}
	}

	services, err := s.Repo.GetAllServices()
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}
	if services == nil {
		services = []models.Service{}
	}

	if s.Cache != nil {
		if b, jsonErr := json.Marshal(services); jsonErr == nil {
			if err := s.Cache.Set(ctx, servicesCacheKey, b, servicesCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("ListServices: cache write failed", zap.Error(err))
			}
		}
	}
	return services, nil
}

// ListForms returns the joined service/form rows for a service.
func (s *DefaultCatalogService) ListForms(serviceID string) ([]models.ServiceForm, error) {
	forms, err := s.Repo.GetFormsByService(serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load forms for service %s: %w", serviceID, err)
	}
	if forms == nil {
		forms = []models.ServiceForm{}
	}
	return forms, nil
}

// FormDetails returns everything the wizard needs to render a form.
func (s *DefaultCatalogService) FormDetails(formID string) (*models.FormDetails, error) {
	details, err := s.Repo.GetFormDetails(formID)
	if err != nil {
		return nil, fmt.Errorf("failed to load form details for %s: %w", formID, err)
	}
	return details, nil
}
