package documentRepo

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

// MongoDocumentRepo implements DocumentRepository using MongoDB.
type MongoDocumentRepo struct {
	coll *mongo.Collection
}

// NewMongoDocumentRepo creates a new instance of DocumentRepository using MongoDB.
func NewMongoDocumentRepo() DocumentRepository {
	coll := database.MongoClient.Database("lexdraft").Collection("documents")
	repo := &MongoDocumentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create document indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoDocumentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Upsert inserts or replaces a document by its ID.
func (r *MongoDocumentRepo) Upsert(doc *models.Document) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": doc.ID}, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert document %s: %w", doc.ID, err)
	}
	return nil
}

// GetByID retrieves a document by its ID.
func (r *MongoDocumentRepo) GetByID(id string) (*models.Document, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doc models.Document
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document %s: %w", id, err)
	}
	return &doc, nil
}

// GetAll retrieves every stored document with its embedding.
func (r *MongoDocumentRepo) GetAll() ([]models.Document, error) {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return docs, nil
}

// List retrieves summaries only, leaving text and embeddings behind.
func (r *MongoDocumentRepo) List() ([]models.DocumentSummary, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	projection := bson.M{"id": 1, "metadata.source": 1, "metadata.upload_timestamp": 1}
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode document summaries: %w", err)
	}

	summaries := make([]models.DocumentSummary, 0, len(docs))
	for _, d := range docs {
		summaries = append(summaries, models.DocumentSummary{
			ID:        d.ID,
			Source:    d.Metadata.Source,
			Timestamp: d.Metadata.UploadTimestamp,
		})
	}
	return summaries, nil
}

// Delete removes a document by its ID.
func (r *MongoDocumentRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("document %s not found", id)
	}
	return nil
}

// UpdateEmbedding replaces the stored vector of a document.
func (r *MongoDocumentRepo) UpdateEmbedding(id string, embedding []float32) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"embedding": embedding}})
	if err != nil {
		return fmt.Errorf("failed to update embedding for %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("document %s not found", id)
	}
	return nil
}
