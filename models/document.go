// models/document.go
package models

// DocumentMetadata describes an uploaded document's extraction results.
type DocumentMetadata struct {
	Source          string `bson:"source" json:"source"`
	TextLength      int    `bson:"text_length" json:"text_length"`
	WordCount       int    `bson:"word_count" json:"word_count"`
	Paragraphs      int    `bson:"paragraphs" json:"paragraphs"`
	FileType        string `bson:"file_type" json:"file_type"`
	UploadTimestamp int64  `bson:"upload_timestamp" json:"upload_timestamp"`
	StorageID       string `bson:"storage_id,omitempty" json:"storage_id,omitempty"`
}

// Document is an uploaded legal document held in the retrieval store.
type Document struct {
	ID        string           `bson:"id" json:"id"`
	Text      string           `bson:"text" json:"text"`
	Embedding []float32        `bson:"embedding" json:"-"`
	Metadata  DocumentMetadata `bson:"metadata" json:"metadata"`
}

// DocumentMatch is a retrieval hit for a query, ordered by similarity.
type DocumentMatch struct {
	ID          string           `json:"id"`
	Text        string           `json:"text"`
	Metadata    DocumentMetadata `json:"metadata"`
	Similarity  float64          `json:"similarity"`
	RawDistance float64          `json:"raw_distance"`
}

// DocumentSummary is the listing entry for GET /api/documents.
type DocumentSummary struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	Timestamp int64  `json:"timestamp"`
}
