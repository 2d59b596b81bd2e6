package wizard

import (
	"context"
	"testing"

	"lexdraft/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSessionStore struct {
	sessions map[string]*models.WizardSession
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]*models.WizardSession{}}
}

func (s *memSessionStore) Get(_ context.Context, id string) (*models.WizardSession, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (s *memSessionStore) Set(_ context.Context, session *models.WizardSession) error {
	cp := *session
	s.sessions[session.ID] = &cp
	return nil
}

func (s *memSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type fakeCatalog struct {
	details map[string]*models.FormDetails
}

func (f *fakeCatalog) ListServices() ([]models.Service, error)            { return nil, nil }
func (f *fakeCatalog) ListForms(string) ([]models.ServiceForm, error)     { return nil, nil }
func (f *fakeCatalog) FormDetails(id string) (*models.FormDetails, error) { return f.details[id], nil }

func twoQuestionForm(formID string) *models.FormDetails {
	return &models.FormDetails{
		Form: models.Form{FormID: formID, FormName: "Rental Agreement"},
		Questions: []models.InputQuestion{
			{QuesID: 1, FormID: formID, Question: "Landlord name?"},
			{QuesID: 2, FormID: formID, Question: "Tenant name?"},
		},
	}
}

func newTestWizard(t *testing.T) (*DefaultWizardService, *memSessionStore) {
	t.Helper()
	store := newMemSessionStore()
	svc := &DefaultWizardService{
		Catalog:  &fakeCatalog{details: map[string]*models.FormDetails{"f1": twoQuestionForm("f1")}},
		Sessions: store,
		DocsDir:  t.TempDir(),
	}
	return svc, store
}

func TestStartCreatesSessionAtQuestions(t *testing.T) {
	svc, store := newTestWizard(t)

	session, err := svc.Start(context.Background(), "f1")
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "f1", session.FormID)
	assert.Equal(t, models.StepQuestions, session.Step)
	assert.Empty(t, session.Answers)
	assert.Contains(t, store.sessions, session.ID)
}

func TestStartUnknownForm(t *testing.T) {
	svc, _ := newTestWizard(t)

	_, err := svc.Start(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestSubmitAnswersStaysOnQuestionsUntilComplete(t *testing.T) {
	svc, _ := newTestWizard(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, "f1")
	require.NoError(t, err)

	session, err = svc.SubmitAnswers(ctx, session.ID, map[string]string{"1": "Jane Doe"})
	require.NoError(t, err)
	assert.Equal(t, models.StepQuestions, session.Step)

	session, err = svc.SubmitAnswers(ctx, session.ID, map[string]string{"2": "John Roe"})
	require.NoError(t, err)
	assert.Equal(t, models.StepReview, session.Step)
	assert.Equal(t, "Jane Doe", session.Answers["1"])
	assert.Equal(t, "John Roe", session.Answers["2"])
}

func TestSubmitAnswersBlankAnswerDoesNotAdvance(t *testing.T) {
	svc, _ := newTestWizard(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, "f1")
	require.NoError(t, err)

	session, err = svc.SubmitAnswers(ctx, session.ID, map[string]string{"1": "Jane Doe", "2": "   "})
	require.NoError(t, err)
	assert.Equal(t, models.StepQuestions, session.Step)
}

func TestSubmitAnswersUnknownSession(t *testing.T) {
	svc, _ := newTestWizard(t)

	_, err := svc.SubmitAnswers(context.Background(), "nope", map[string]string{"1": "x"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestResetDropsSession(t *testing.T) {
	svc, store := newTestWizard(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, "f1")
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, session.ID))
	assert.NotContains(t, store.sessions, session.ID)

	_, err = svc.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestResetUnknownSessionIsNoop(t *testing.T) {
	svc, _ := newTestWizard(t)
	assert.NoError(t, svc.Reset(context.Background(), "nope"))
}

func TestFinalDocumentPathWithoutAssembly(t *testing.T) {
	svc, _ := newTestWizard(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, "f1")
	require.NoError(t, err)

	_, err = svc.FinalDocumentPath(ctx, session.ID)
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestAllAnswered(t *testing.T) {
	questions := twoQuestionForm("f1").Questions

	assert.False(t, allAnswered(questions, map[string]string{"1": "a"}))
	assert.False(t, allAnswered(questions, map[string]string{"1": "a", "2": " "}))
	assert.True(t, allAnswered(questions, map[string]string{"1": "a", "2": "b"}))
	assert.False(t, allAnswered(nil, map[string]string{"1": "a"}))
}

func TestRenderPreviewHTML(t *testing.T) {
	text := "First clause.\n\nSecond clause.\n"
	assert.Equal(t, "<p>First clause.</p><p>Second clause.</p>", renderPreviewHTML(text))
}
