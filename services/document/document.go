package document

import (
	"context"
	"fmt"
	"strings"
	"time"

	documentRepo "lexdraft/database/repository/document"
	"lexdraft/models"
	"lexdraft/services/storage"
	"lexdraft/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadResult is what POST /api/upload reports back.
type UploadResult struct {
	DocumentID string `json:"document_id"`
	FileName   string `json:"file_name"`
	WordCount  int    `json:"word_count"`
	Paragraphs int    `json:"paragraphs"`
}

// DocumentService manages the uploaded-document store and retrieval over it.
type DocumentService interface {
	// ProcessUpload extracts, embeds, and persists an uploaded file.
	ProcessUpload(ctx context.Context, localPath, filename string) (*UploadResult, error)
	// PreviewFile extracts text without storing anything.
	PreviewFile(localPath, filename string) (*Extraction, error)
	// List returns summaries of every stored document.
	List() ([]models.DocumentSummary, error)
	// Get returns a stored document, or (nil, nil) when absent.
	Get(id string) (*models.Document, error)
	// Delete removes a stored document.
	Delete(id string) error
	// Retrieve returns the topK most similar documents to the query.
	Retrieve(ctx context.Context, query string, topK int) ([]models.DocumentMatch, error)
	// Reembed recomputes and stores the embedding of one document.
	Reembed(ctx context.Context, id string) error
	// IngestText stores raw text without an embedding; callers enqueue a
	// background re-embed afterwards.
	IngestText(ctx context.Context, text string, meta models.DocumentMetadata) (string, error)
}

// DefaultDocumentService is the production implementation of DocumentService.
type DefaultDocumentService struct {
	Repo     documentRepo.DocumentRepository
	Embedder Embedder
	Storage  storage.StorageService
}

// ProcessUpload runs the full ingestion pipeline: extract text, push the raw
// file to remote storage, embed, and upsert into the document store.
func (s *DefaultDocumentService) ProcessUpload(ctx context.Context, localPath, filename string) (*UploadResult, error) {
	extraction, err := ExtractText(localPath, filename)
	if err != nil {
		return nil, err
	}

	docID := fmt.Sprintf("doc_%d", time.Now().Unix())

	var storageID string
	if s.Storage != nil {
		storageID, err = s.Storage.UploadFile(ctx, localPath, "lexdraft/uploads")
		if err != nil {
			// The document store is the source of truth for retrieval; a
			// failed raw-file upload is logged but does not fail ingestion.
			utils.GetLogger().Warn("ProcessUpload: raw file upload failed",
				zap.String("file", filename), zap.Error(err))
			storageID = ""
		}
	}

	embedding, err := s.Embedder.Embed(ctx, extraction.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed document: %w", err)
	}

	doc := models.Document{
		ID:        docID,
		Text:      extraction.Text,
		Embedding: embedding,
		Metadata: models.DocumentMetadata{
			Source:          filename,
			TextLength:      len(extraction.Text),
			WordCount:       extraction.WordCount,
			Paragraphs:      extraction.Paragraphs,
			FileType:        extraction.FileType,
			UploadTimestamp: time.Now().Unix(),
			StorageID:       storageID,
		},
	}

	if err := s.Repo.Upsert(&doc); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	utils.GetLogger().Info("ProcessUpload: document ingested",
		zap.String("id", docID), zap.String("file", filename),
		zap.Int("words", extraction.WordCount))

	return &UploadResult{
		DocumentID: docID,
		FileName:   filename,
		WordCount:  extraction.WordCount,
		Paragraphs: extraction.Paragraphs,
	}, nil
}

// PreviewFile extracts text without touching the store.
func (s *DefaultDocumentService) PreviewFile(localPath, filename string) (*Extraction, error) {
	return ExtractText(localPath, filename)
}

// List returns summaries of every stored document.
func (s *DefaultDocumentService) List() ([]models.DocumentSummary, error) {
	summaries, err := s.Repo.List()
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []models.DocumentSummary{}
	}
	return summaries, nil
}

// Get returns a stored document by ID.
func (s *DefaultDocumentService) Get(id string) (*models.Document, error) {
	return s.Repo.GetByID(id)
}

// Delete removes a stored document and its remote copy when one exists.
func (s *DefaultDocumentService) Delete(id string) error {
	doc, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("document %s not found", id)
	}

	if s.Storage != nil && doc.Metadata.StorageID != "" {
		if err := s.Storage.DeleteFile(context.Background(), doc.Metadata.StorageID); err != nil {
			utils.GetLogger().Warn("Delete: failed to remove remote copy",
				zap.String("id", id), zap.Error(err))
		}
	}
	return s.Repo.Delete(id)
}

// IngestText stores raw text with no embedding yet. The batch embed endpoint
// pairs this with a queued Reembed so embedding failures retry without
// blocking the request.
func (s *DefaultDocumentService) IngestText(ctx context.Context, text string, meta models.DocumentMetadata) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text provided")
	}

	id := fmt.Sprintf("doc_%s", uuid.New().String())
	if meta.UploadTimestamp == 0 {
		meta.UploadTimestamp = time.Now().Unix()
	}
	meta.TextLength = len(text)
	meta.WordCount = len(strings.Fields(text))

	doc := models.Document{ID: id, Text: text, Metadata: meta}
	if err := s.Repo.Upsert(&doc); err != nil {
		return "", fmt.Errorf("failed to store document: %w", err)
	}
	return id, nil
}

// Reembed recomputes the embedding of one stored document. Used by the
// background re-embedding worker.
func (s *DefaultDocumentService) Reembed(ctx context.Context, id string) error {
	doc, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("document %s not found", id)
	}

	embedding, err := s.Embedder.Embed(ctx, doc.Text)
	if err != nil {
		return fmt.Errorf("failed to embed document %s: %w", id, err)
	}
	return s.Repo.UpdateEmbedding(id, embedding)
}
