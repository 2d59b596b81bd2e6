package documentRepo

import "lexdraft/models"

// DocumentRepository stores uploaded documents with their embeddings.
type DocumentRepository interface {
	// Upsert inserts or replaces a document by its ID.
	Upsert(doc *models.Document) error
	// GetByID retrieves a document. Returns (nil, nil) when absent.
	GetByID(id string) (*models.Document, error)
	// GetAll retrieves every stored document, embeddings included.
	GetAll() ([]models.Document, error)
	// List retrieves lightweight summaries of every stored document.
	List() ([]models.DocumentSummary, error)
	// Delete removes a document by its ID.
	Delete(id string) error
	// UpdateEmbedding replaces the stored vector of a document.
	UpdateEmbedding(id string, embedding []float32) error
}
