package chat

import (
	"context"
	"sort"
	"sync"
	"testing"

	"lexdraft/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRetriever struct {
	matches []models.DocumentMatch
	err     error
}

func (f *fakeRetriever) Retrieve(context.Context, string, int) ([]models.DocumentMatch, error) {
	return f.matches, f.err
}

type fakeGenerator struct {
	mu      sync.Mutex
	reply   string
	err     error
	calls   int
	prompts []string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

// memTranscriptStore mirrors the Redis store's contract: sequence numbers are
// reserved up front and turns sort by Seq on read.
type memTranscriptStore struct {
	mu    sync.Mutex
	seqs  map[string]int64
	turns map[string][]models.ChatTurn
}

func newMemTranscriptStore() *memTranscriptStore {
	return &memTranscriptStore{
		seqs:  map[string]int64{},
		turns: map[string][]models.ChatTurn{},
	}
}

func (s *memTranscriptStore) NextSeq(_ context.Context, sessionID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs[sessionID]++
	return s.seqs[sessionID], nil
}

func (s *memTranscriptStore) Append(_ context.Context, sessionID string, turn models.ChatTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns[sessionID] = append(s.turns[sessionID], turn)
	return nil
}

func (s *memTranscriptStore) History(_ context.Context, sessionID string) ([]models.ChatTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := append([]models.ChatTurn(nil), s.turns[sessionID]...)
	sort.Slice(turns, func(i, j int) bool { return turns[i].Seq < turns[j].Seq })
	return turns, nil
}

func (s *memTranscriptStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.turns, sessionID)
	delete(s.seqs, sessionID)
	return nil
}

func match(id, text, source string, sim float64) models.DocumentMatch {
	return models.DocumentMatch{
		ID:         id,
		Text:       text,
		Metadata:   models.DocumentMetadata{Source: source},
		Similarity: sim,
	}
}

func TestChatNoMatchesSkipsGenerator(t *testing.T) {
	gen := &fakeGenerator{reply: "should not be used"}
	svc := &DefaultChatService{
		Docs:        &fakeRetriever{},
		Generator:   gen,
		Transcripts: newMemTranscriptStore(),
	}

	reply, err := svc.Chat(context.Background(), "s1", "what does clause 4 mean?")
	require.NoError(t, err)
	assert.Equal(t, NoContextReply, reply)
	assert.Zero(t, gen.calls)
}

func TestChatGroundsPromptOnMatches(t *testing.T) {
	gen := &fakeGenerator{reply: "Clause 4 covers termination."}
	svc := &DefaultChatService{
		Docs:      &fakeRetriever{matches: []models.DocumentMatch{match("d1", "clause 4 text", "lease.pdf", 0.9)}},
		Generator: gen,
	}

	reply, err := svc.Chat(context.Background(), "", "what does clause 4 mean?")
	require.NoError(t, err)
	assert.Equal(t, "Clause 4 covers termination.", reply)
	require.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.prompts[0], "clause 4 text")
	assert.Contains(t, gen.prompts[0], "what does clause 4 mean?")
}

func TestChatAppendsOneTurnPerExchange(t *testing.T) {
	store := newMemTranscriptStore()
	svc := &DefaultChatService{
		Docs:        &fakeRetriever{matches: []models.DocumentMatch{match("d1", "text", "a.txt", 0.8)}},
		Generator:   &fakeGenerator{reply: "answer"},
		Transcripts: store,
	}
	ctx := context.Background()

	_, err := svc.Chat(ctx, "s1", "first")
	require.NoError(t, err)
	_, err = svc.Chat(ctx, "s1", "second")
	require.NoError(t, err)

	turns, err := svc.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "first", turns[0].User)
	assert.Equal(t, "answer", turns[0].Bot)
	assert.Equal(t, "second", turns[1].User)
}

// History must read in submission order even when a later submission's
// response lands in the store first.
func TestHistoryOrdersBySubmissionNotCompletion(t *testing.T) {
	store := newMemTranscriptStore()
	svc := &DefaultChatService{Transcripts: store}
	ctx := context.Background()

	seqA, err := store.NextSeq(ctx, "s1")
	require.NoError(t, err)
	seqB, err := store.NextSeq(ctx, "s1")
	require.NoError(t, err)

	// The second submission completes first.
	require.NoError(t, store.Append(ctx, "s1", models.ChatTurn{Seq: seqB, User: "second", Bot: "b"}))
	require.NoError(t, store.Append(ctx, "s1", models.ChatTurn{Seq: seqA, User: "first", Bot: "a"}))

	turns, err := svc.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "first", turns[0].User)
	assert.Equal(t, "second", turns[1].User)
}

func TestQueryNoMatches(t *testing.T) {
	svc := &DefaultChatService{
		Docs:      &fakeRetriever{},
		Generator: &fakeGenerator{},
	}

	resp, err := svc.Query(context.Background(), "", "anything")
	require.NoError(t, err)
	assert.False(t, resp.HasAnswer)
	assert.Zero(t, resp.Confidence)
	assert.Equal(t, "No relevant documents found to answer your question.", resp.Response)
	assert.Empty(t, resp.Sources)
}

func TestQueryReportsConfidenceAndSources(t *testing.T) {
	svc := &DefaultChatService{
		Docs: &fakeRetriever{matches: []models.DocumentMatch{
			match("d1", "lease text", "lease.pdf", 0.92),
			match("d2", "deed text", "deed.docx", 0.75),
		}},
		Generator: &fakeGenerator{reply: "The notice period is 30 days."},
	}

	resp, err := svc.Query(context.Background(), "", "how long is the notice period?")
	require.NoError(t, err)
	assert.True(t, resp.HasAnswer)
	assert.Equal(t, 0.92, resp.Confidence)
	assert.Equal(t, []string{"lease.pdf", "deed.docx"}, resp.Sources)
	assert.Equal(t, "The notice period is 30 days.", resp.Response)
}

func TestHistoryEmptySession(t *testing.T) {
	svc := &DefaultChatService{Transcripts: newMemTranscriptStore()}

	turns, err := svc.History(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, turns)
}
