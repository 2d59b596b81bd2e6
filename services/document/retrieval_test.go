package document

import (
	"math"
	"testing"

	"lexdraft/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docWithEmbedding(id string, embedding []float32) models.Document {
	return models.Document{
		ID:        id,
		Text:      "text for " + id,
		Embedding: embedding,
		Metadata:  models.DocumentMetadata{Source: id + ".txt"},
	}
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0}, []float32{1, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)

	// Scale invariance.
	a := []float32{3, 4}
	b := []float32{30, 40}
	assert.InDelta(t, 1.0, CosineSimilarity(a, b), 1e-6)
}

func TestCosineSimilarityDegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, CosineSimilarity(nil, []float32{1, 2}))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1, 2}, []float32{1}))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 2}))
}

func TestRankBySimilarityFiltersBelowThreshold(t *testing.T) {
	query := []float32{1, 0}
	docs := []models.Document{
		docWithEmbedding("close", []float32{1, 0.1}),
		docWithEmbedding("orthogonal", []float32{0, 1}),
		docWithEmbedding("opposite", []float32{-1, 0}),
	}

	matches := RankBySimilarity(query, docs, 10, SimilarityThreshold)
	require.Len(t, matches, 1)
	assert.Equal(t, "close", matches[0].ID)
	assert.GreaterOrEqual(t, matches[0].Similarity, SimilarityThreshold)
}

func TestRankBySimilarityOrdersDescending(t *testing.T) {
	query := []float32{1, 0}
	docs := []models.Document{
		docWithEmbedding("mid", []float32{1, 0.5}),
		docWithEmbedding("best", []float32{1, 0.01}),
		docWithEmbedding("worst", []float32{1, 0.9}),
	}

	matches := RankBySimilarity(query, docs, 10, 0)
	require.Len(t, matches, 3)
	assert.Equal(t, "best", matches[0].ID)
	assert.Equal(t, "mid", matches[1].ID)
	assert.Equal(t, "worst", matches[2].ID)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Similarity, matches[i].Similarity)
	}
}

func TestRankBySimilarityTruncatesToTopK(t *testing.T) {
	query := []float32{1, 0}
	docs := []models.Document{
		docWithEmbedding("a", []float32{1, 0.1}),
		docWithEmbedding("b", []float32{1, 0.2}),
		docWithEmbedding("c", []float32{1, 0.3}),
	}

	matches := RankBySimilarity(query, docs, 2, 0)
	assert.Len(t, matches, 2)
}

func TestRankBySimilaritySkipsUnembeddedDocs(t *testing.T) {
	query := []float32{1, 0}
	docs := []models.Document{
		docWithEmbedding("pending", nil),
		docWithEmbedding("ready", []float32{1, 0}),
	}

	matches := RankBySimilarity(query, docs, 10, 0)
	require.Len(t, matches, 1)
	assert.Equal(t, "ready", matches[0].ID)
}

func TestRankBySimilarityRawDistance(t *testing.T) {
	query := []float32{1, 0}
	docs := []models.Document{docWithEmbedding("exact", []float32{2, 0})}

	matches := RankBySimilarity(query, docs, 1, 0)
	require.Len(t, matches, 1)
	// Distance is 1 - similarity, so an exact direction match is ~0.
	assert.True(t, math.Abs(matches[0].RawDistance) < 1e-6)
}
