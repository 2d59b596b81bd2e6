package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"lexdraft/config"
	"lexdraft/models"
	"lexdraft/services/document"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocumentService struct {
	uploadResult *document.UploadResult
	uploadErr    error
	extraction   *document.Extraction
	doc          *models.Document
	summaries    []models.DocumentSummary
	deletedID    string
}

func (f *fakeDocumentService) ProcessUpload(_ context.Context, localPath, filename string) (*document.UploadResult, error) {
	return f.uploadResult, f.uploadErr
}

func (f *fakeDocumentService) PreviewFile(localPath, filename string) (*document.Extraction, error) {
	return f.extraction, f.uploadErr
}

func (f *fakeDocumentService) List() ([]models.DocumentSummary, error) { return f.summaries, nil }
func (f *fakeDocumentService) Get(id string) (*models.Document, error) { return f.doc, nil }

func (f *fakeDocumentService) Delete(id string) error {
	f.deletedID = id
	return nil
}

func (f *fakeDocumentService) Retrieve(context.Context, string, int) ([]models.DocumentMatch, error) {
	return nil, nil
}

func (f *fakeDocumentService) Reembed(context.Context, string) error { return nil }

func (f *fakeDocumentService) IngestText(context.Context, string, models.DocumentMetadata) (string, error) {
	return "doc_x", nil
}

func setTestUploadDir(t *testing.T) {
	t.Helper()
	prev := config.AppConfig.UploadDir
	config.AppConfig.UploadDir = t.TempDir()
	t.Cleanup(func() { config.AppConfig.UploadDir = prev })
}

func multipartUpload(t *testing.T, handler gin.HandlerFunc, field, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	router := gin.New()
	router.POST("/api/upload", handler)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUploadHandlerNoFilePart(t *testing.T) {
	h := NewDocumentHandler(&fakeDocumentService{})

	w := multipartUpload(t, h.UploadHandler, "", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file part", responseMessage(t, w))
}

func TestUploadHandlerSuccess(t *testing.T) {
	svc := &fakeDocumentService{uploadResult: &document.UploadResult{
		DocumentID: "doc_1700000000", FileName: "lease.txt", WordCount: 42, Paragraphs: 3,
	}}
	h := NewDocumentHandler(svc)
	setTestUploadDir(t)

	w := multipartUpload(t, h.UploadHandler, "document", "lease.txt", "some lease text with enough words inside it to pass")
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "doc_1700000000", body["document_id"])
	assert.Equal(t, "lease.txt", body["file_name"])
	assert.EqualValues(t, 42, body["word_count"])
}

func TestUploadHandlerRejectedExtraction(t *testing.T) {
	h := NewDocumentHandler(&fakeDocumentService{uploadErr: document.ErrUnsupportedFileType})
	setTestUploadDir(t)

	w := multipartUpload(t, h.UploadHandler, "document", "archive.zip", "zzz")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, responseMessage(t, w), "unsupported file type")
}

func TestGetHandlerNotFound(t *testing.T) {
	h := NewDocumentHandler(&fakeDocumentService{})

	router := gin.New()
	router.GET("/api/document/:id", h.GetHandler)

	w := getRequest(t, router, "/api/document/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Document not found", body["error"])
}

func TestPreviewHandlerTruncatesText(t *testing.T) {
	long := make([]byte, 600)
	for i := range long {
		long[i] = 'a'
	}
	h := NewDocumentHandler(&fakeDocumentService{doc: &models.Document{
		ID: "doc_1", Text: string(long),
		Metadata: models.DocumentMetadata{Source: "lease.txt"},
	}})

	router := gin.New()
	router.GET("/api/document-preview/:id", h.PreviewHandler)

	w := getRequest(t, router, "/api/document-preview/doc_1")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Preview string `json:"preview"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Preview, 503)
	assert.True(t, bytes.HasSuffix([]byte(body.Preview), []byte("...")))
}

func TestDeleteHandler(t *testing.T) {
	svc := &fakeDocumentService{doc: &models.Document{ID: "doc_1"}}
	h := NewDocumentHandler(svc)

	router := gin.New()
	router.DELETE("/api/document/:id", h.DeleteHandler)

	req := httptest.NewRequest(http.MethodDelete, "/api/document/doc_1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "doc_1", svc.deletedID)
}

func TestListHandlerReportsCount(t *testing.T) {
	h := NewDocumentHandler(&fakeDocumentService{summaries: []models.DocumentSummary{
		{ID: "doc_1", Source: "lease.txt"},
		{ID: "doc_2", Source: "deed.docx"},
	}})

	router := gin.New()
	router.GET("/api/documents", h.ListHandler)

	w := getRequest(t, router, "/api/documents")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Documents []models.DocumentSummary `json:"documents"`
		Count     int                      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Documents, 2)
}
