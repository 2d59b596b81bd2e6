package wizard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"lexdraft/models"
	"lexdraft/services/catalog"
	"lexdraft/services/storage"
	"lexdraft/utils"

	"github.com/google/uuid"
	"github.com/nguyenthenguyen/docx"
	"go.uber.org/zap"
)

var (
	ErrFormNotFound    = errors.New("form not found")
	ErrSessionNotFound = errors.New("wizard session not found")
	ErrNoDocument      = errors.New("no document has been assembled for this session")
)

// WizardService owns the typed state of guided document-drafting flows and
// assembles the final document from a form template.
type WizardService interface {
	// Start creates a session for a form at StepQuestions.
	Start(ctx context.Context, formID string) (*models.WizardSession, error)
	// Get returns the current session state.
	Get(ctx context.Context, sessionID string) (*models.WizardSession, error)
	// SubmitAnswers merges answers and advances the step once every question
	// is answered.
	SubmitAnswers(ctx context.Context, sessionID string, answers map[string]string) (*models.WizardSession, error)
	// Reset discards a session and its assembled output.
	Reset(ctx context.Context, sessionID string) error
	// AssembleContent fills the form template with answers and returns an
	// HTML preview plus the session the output belongs to.
	AssembleContent(ctx context.Context, sessionID, formID string, answers map[string]string) (string, string, error)
	// FinalDocumentPath returns the local path of the assembled DOCX.
	FinalDocumentPath(ctx context.Context, sessionID string) (string, error)
}

// DefaultWizardService is the production implementation of WizardService.
type DefaultWizardService struct {
	Catalog  catalog.CatalogService
	Storage  storage.StorageService
	Sessions SessionStore
	DocsDir  string
}

func (s *DefaultWizardService) docsDir() string {
	if s.DocsDir != "" {
		return s.DocsDir
	}
	return "./docs"
}

// Start validates the form and creates a fresh session at StepQuestions.
func (s *DefaultWizardService) Start(ctx context.Context, formID string) (*models.WizardSession, error) {
	details, err := s.Catalog.FormDetails(formID)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, ErrFormNotFound
	}

	now := time.Now()
	session := &models.WizardSession{
		ID:        uuid.New().String(),
		FormID:    formID,
		Step:      models.StepQuestions,
		Answers:   map[string]string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist wizard session: %w", err)
	}
	return session, nil
}

// Get returns the session state.
func (s *DefaultWizardService) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// SubmitAnswers merges answers into the session. The session advances to
// StepReview once an answer exists for every question of the form.
func (s *DefaultWizardService) SubmitAnswers(ctx context.Context, sessionID string, answers map[string]string) (*models.WizardSession, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Answers == nil {
		session.Answers = map[string]string{}
	}
	for k, v := range answers {
		session.Answers[k] = v
	}

	details, err := s.Catalog.FormDetails(session.FormID)
	if err != nil {
		return nil, err
	}
	if details != nil && allAnswered(details.Questions, session.Answers) {
		session.Step = models.StepReview
	}
	session.UpdatedAt = time.Now()

	if err := s.Sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist wizard session: %w", err)
	}
	return session, nil
}

// Reset discards the session and removes any assembled output file.
func (s *DefaultWizardService) Reset(ctx context.Context, sessionID string) error {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	if session.OutputPath != "" {
		if err := os.Remove(session.OutputPath); err != nil && !os.IsNotExist(err) {
			utils.GetLogger().Warn("Reset: failed to remove assembled document",
				zap.String("session", sessionID), zap.Error(err))
		}
	}
	return s.Sessions.Delete(ctx, sessionID)
}

// AssembleContent downloads the form template, substitutes every "#<n>"
// placeholder with its answer, writes the assembled DOCX, and returns an HTML
// preview. When sessionID is empty a new session is created, so the original
// stateless final-content call still works.
func (s *DefaultWizardService) AssembleContent(ctx context.Context, sessionID, formID string, answers map[string]string) (string, string, error) {
	details, err := s.Catalog.FormDetails(formID)
	if err != nil {
		return "", "", err
	}
	if details == nil {
		return "", "", ErrFormNotFound
	}

	if s.Storage == nil {
		return "", "", fmt.Errorf("document assembly requires the storage service")
	}
	templatePath, err := s.Storage.FetchTemplate(ctx, details.Form.FormLink)
	if err != nil {
		return "", "", fmt.Errorf("could not download form template: %w", err)
	}
	defer os.Remove(templatePath)

	var session *models.WizardSession
	if sessionID != "" {
		session, err = s.Sessions.Get(ctx, sessionID)
		if err != nil {
			return "", "", err
		}
	}
	now := time.Now()
	if session == nil {
		session = &models.WizardSession{
			ID:        uuid.New().String(),
			FormID:    formID,
			Answers:   map[string]string{},
			CreatedAt: now,
		}
	}

	if err := os.MkdirAll(s.docsDir(), 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create docs directory: %w", err)
	}
	outputPath := filepath.Join(s.docsDir(), session.ID+".docx")

	content, err := fillTemplate(templatePath, outputPath, answers)
	if err != nil {
		return "", "", err
	}

	for k, v := range answers {
		session.Answers[k] = v
	}
	session.Step = models.StepDone
	session.OutputPath = outputPath
	session.UpdatedAt = now
	if err := s.Sessions.Set(ctx, session); err != nil {
		return "", "", fmt.Errorf("failed to persist wizard session: %w", err)
	}

	return renderPreviewHTML(content), session.ID, nil
}

// FinalDocumentPath returns the path of the assembled DOCX for download.
func (s *DefaultWizardService) FinalDocumentPath(ctx context.Context, sessionID string) (string, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session.OutputPath == "" {
		return "", ErrNoDocument
	}
	if _, err := os.Stat(session.OutputPath); err != nil {
		return "", ErrNoDocument
	}
	return session.OutputPath, nil
}

// fillTemplate applies the placeholder answers to the template DOCX, writes
// the result to outputPath, and returns the assembled plain text.
func fillTemplate(templatePath, outputPath string, answers map[string]string) (string, error) {
	r, err := docx.ReadDocxFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to open form template: %w", err)
	}
	defer r.Close()

	d := r.Editable()
	for _, n := range numericKeys(answers) {
		key := strconv.Itoa(n)
		if err := d.Replace("#"+key, answers[key], -1); err != nil {
			return "", fmt.Errorf("failed to replace placeholder #%s: %w", key, err)
		}
	}

	if err := d.WriteToFile(outputPath); err != nil {
		return "", fmt.Errorf("failed to write assembled document: %w", err)
	}
	return docxPlainText(d.GetContent()), nil
}

func allAnswered(questions []models.InputQuestion, answers map[string]string) bool {
	for _, q := range questions {
		if strings.TrimSpace(answers[strconv.Itoa(q.QuesID)]) == "" {
			return false
		}
	}
	return len(questions) > 0
}

var xmlTagRe = regexp.MustCompile(`<[^>]+>`)

// docxPlainText strips the document.xml markup, keeping paragraph breaks.
func docxPlainText(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	return xmlTagRe.ReplaceAllString(content, "")
}

// renderPreviewHTML wraps each paragraph of the assembled text in a <p> tag.
func renderPreviewHTML(text string) string {
	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(line)
		sb.WriteString("</p>")
	}
	return sb.String()
}
