// File: services/document/retrieval.go
package document

import (
	"context"
	"fmt"
	"math"
	"sort"

	"lexdraft/models"
	"lexdraft/utils"

	"go.uber.org/zap"
)

// SimilarityThreshold is the floor below which a match is discarded.
// Similarity is 1 - cosine distance, so higher means more relevant.
const SimilarityThreshold = 0.7

// Retrieve embeds the query and ranks stored documents by cosine similarity,
// dropping matches under the threshold and returning the rest ordered by
// similarity descending.
func (s *DefaultDocumentService) Retrieve(ctx context.Context, query string, topK int) ([]models.DocumentMatch, error) {
	if query == "" {
		return []models.DocumentMatch{}, nil
	}

	queryVec, err := s.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	docs, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	matches := RankBySimilarity(queryVec, docs, topK, SimilarityThreshold)
	utils.GetLogger().Info("Retrieve: query served",
		zap.String("query", query), zap.Int("matches", len(matches)))
	return matches, nil
}

// RankBySimilarity scores docs against queryVec and keeps the topK at or
// above threshold, ordered by similarity descending.
func RankBySimilarity(queryVec []float32, docs []models.Document, topK int, threshold float64) []models.DocumentMatch {
	matches := make([]models.DocumentMatch, 0, len(docs))
	for _, doc := range docs {
		if len(doc.Embedding) == 0 {
			continue
		}
		sim := CosineSimilarity(queryVec, doc.Embedding)
		if sim < threshold {
			continue
		}
		matches = append(matches, models.DocumentMatch{
			ID:          doc.ID,
			Text:        doc.Text,
			Metadata:    doc.Metadata,
			Similarity:  sim,
			RawDistance: 1 - sim,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero-length vectors score zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
