package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"lexdraft/database"
	"lexdraft/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	services   *mongo.Collection
	forms      *mongo.Collection
	categories *mongo.Collection
	questions  *mongo.Collection
}

// NewMongoCatalogRepo creates a new instance of CatalogRepository using MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.MongoClient.Database("lexdraft")
	repo := &MongoCatalogRepo{
		services:   db.Collection("services"),
		forms:      db.Collection("forms"),
		categories: db.Collection("ques_categories"),
		questions:  db.Collection("input_ques"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create catalog indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCatalogRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.services.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "service_id", Value: 1}}, Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("services index: %w", err)
	}
	if _, err := r.forms.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "form_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "service_id", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("forms index: %w", err)
	}
	if _, err := r.questions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "form_id", Value: 1}},
	}); err != nil {
		return fmt.Errorf("questions index: %w", err)
	}
	return nil
}

// GetAllServices retrieves every service document.
func (r *MongoCatalogRepo) GetAllServices() ([]models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.services.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

// GetFormsByService retrieves the forms of a service joined with the service name.
func (r *MongoCatalogRepo) GetFormsByService(serviceID string) ([]models.ServiceForm, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var service models.Service
	err := r.services.FindOne(ctx, bson.M{"service_id": serviceID}).Decode(&service)
	if err == mongo.ErrNoDocuments {
		return []models.ServiceForm{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service %s: %w", serviceID, err)
	}

	cursor, err := r.forms.Find(ctx, bson.M{"service_id": serviceID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forms for service %s: %w", serviceID, err)
	}
	defer cursor.Close(ctx)

	var forms []models.Form
	if err := cursor.All(ctx, &forms); err != nil {
		return nil, fmt.Errorf("failed to decode forms: %w", err)
	}

	rows := make([]models.ServiceForm, 0, len(forms))
	for _, f := range forms {
		rows = append(rows, models.ServiceForm{
			ServiceID:   service.ServiceID,
			ServiceName: service.ServiceName,
			FormID:      f.FormID,
			FormName:    f.FormName,
			FormLink:    f.FormLink,
		})
	}
	return rows, nil
}

// GetFormByID retrieves a single form document.
func (r *MongoCatalogRepo) GetFormByID(formID string) (*models.Form, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var form models.Form
	err := r.forms.FindOne(ctx, bson.M{"form_id": formID}).Decode(&form)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch form %s: %w", formID, err)
	}
	return &form, nil
}

// GetFormDetails retrieves the form, the categories the form's questions
// belong to, and the questions themselves.
func (r *MongoCatalogRepo) GetFormDetails(formID string) (*models.FormDetails, error) {
	form, err := r.GetFormByID(formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, nil
	}

	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.questions.Find(ctx, bson.M{"form_id": formID},
		options.Find().SetSort(bson.D{{Key: "ques_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions for form %s: %w", formID, err)
	}
	defer cursor.Close(ctx)

	var questions []models.InputQuestion
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}

	catIDs := make([]int, 0, len(questions))
	seen := make(map[int]bool)
	for _, q := range questions {
		if !seen[q.CategoryID] {
			seen[q.CategoryID] = true
			catIDs = append(catIDs, q.CategoryID)
		}
	}

	var categories []models.QuestionCategory
	if len(catIDs) > 0 {
		catCursor, err := r.categories.Find(ctx, bson.M{"id": bson.M{"$in": catIDs}})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch question categories: %w", err)
		}
		defer catCursor.Close(ctx)
		if err := catCursor.All(ctx, &categories); err != nil {
			return nil, fmt.Errorf("failed to decode question categories: %w", err)
		}
	}

	return &models.FormDetails{
		Form:       *form,
		Categories: categories,
		Questions:  questions,
	}, nil
}
