package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lexdraft/models"
	"lexdraft/services/document"
	"lexdraft/utils"

	"go.uber.org/zap"
)

// NoContextReply is returned when retrieval finds nothing relevant enough to
// answer from.
const NoContextReply = "I don't have enough information to answer that question based on the uploaded documents."

// ChatService answers user messages grounded on the uploaded document store.
type ChatService interface {
	// Chat handles a conversational turn and returns the assistant reply.
	Chat(ctx context.Context, sessionID, input string) (string, error)
	// Query runs the QA flow and returns an answer with attribution.
	Query(ctx context.Context, sessionID, query string) (*models.QueryResponse, error)
	// History returns the session transcript in submission order.
	History(ctx context.Context, sessionID string) ([]models.ChatTurn, error)
}

// Retriever is the slice of the document service chat depends on.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]models.DocumentMatch, error)
}

// DefaultChatService is the production implementation of ChatService.
type DefaultChatService struct {
	Docs        Retriever
	Generator   Generator
	Transcripts TranscriptStore
}

var _ Retriever = (*document.DefaultDocumentService)(nil)

// Chat retrieves context for the input, generates a grounded reply, and
// appends the finished turn to the session transcript in submission order.
func (s *DefaultChatService) Chat(ctx context.Context, sessionID, input string) (string, error) {
	// Reserve the transcript slot before any slow work so concurrent
	// submissions land in the order they arrived.
	var seq int64
	if s.Transcripts != nil && sessionID != "" {
		var err error
		seq, err = s.Transcripts.NextSeq(ctx, sessionID)
		if err != nil {
			return "", err
		}
	}

	matches, err := s.Docs.Retrieve(ctx, input, 3)
	if err != nil {
		return "", fmt.Errorf("retrieval failed: %w", err)
	}

	var reply string
	if len(matches) == 0 {
		reply = NoContextReply
	} else {
		reply, err = s.Generator.GenerateContent(ctx, buildChatPrompt(input, matches))
		if err != nil {
			return "", fmt.Errorf("failed to generate response: %w", err)
		}
	}

	if s.Transcripts != nil && sessionID != "" {
		turn := models.ChatTurn{Seq: seq, User: input, Bot: reply, At: time.Now()}
		if err := s.Transcripts.Append(ctx, sessionID, turn); err != nil {
			utils.GetLogger().Warn("Chat: failed to append transcript turn",
				zap.String("session", sessionID), zap.Error(err))
		}
	}

	utils.GetLogger().Info("Chat: reply generated", zap.String("session", sessionID))
	return reply, nil
}

// Query answers a question over the document store with confidence and
// source attribution.
func (s *DefaultChatService) Query(ctx context.Context, sessionID, query string) (*models.QueryResponse, error) {
	var seq int64
	if s.Transcripts != nil && sessionID != "" {
		var err error
		seq, err = s.Transcripts.NextSeq(ctx, sessionID)
		if err != nil {
			return nil, err
		}
	}

	matches, err := s.Docs.Retrieve(ctx, query, 5)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	resp := &models.QueryResponse{Sources: []string{}}
	if len(matches) == 0 {
		resp.Response = "No relevant documents found to answer your question."
		return resp, nil
	}

	answer, err := s.Generator.GenerateContent(ctx, buildQueryPrompt(query, matches))
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	resp.Response = answer
	resp.HasAnswer = true
	// The top match's similarity stands in for answer confidence.
	resp.Confidence = matches[0].Similarity
	for _, m := range matches {
		if m.Metadata.Source != "" {
			resp.Sources = append(resp.Sources, m.Metadata.Source)
		}
	}

	if s.Transcripts != nil && sessionID != "" {
		turn := models.ChatTurn{Seq: seq, User: query, Bot: answer, At: time.Now()}
		if err := s.Transcripts.Append(ctx, sessionID, turn); err != nil {
			utils.GetLogger().Warn("Query: failed to append transcript turn",
				zap.String("session", sessionID), zap.Error(err))
		}
	}
	return resp, nil
}

// History returns the session transcript in submission order.
func (s *DefaultChatService) History(ctx context.Context, sessionID string) ([]models.ChatTurn, error) {
	if s.Transcripts == nil || sessionID == "" {
		return []models.ChatTurn{}, nil
	}
	return s.Transcripts.History(ctx, sessionID)
}

func buildChatPrompt(input string, matches []models.DocumentMatch) string {
	var sb strings.Builder
	sb.WriteString("You are a legal documentation assistant. Answer the user's message using only the context below. ")
	sb.WriteString("If the context does not cover the question, say so.\n\n")
	for i, m := range matches {
		fmt.Fprintf(&sb, "Context %d (%s):\n%s\n\n", i+1, m.Metadata.Source, m.Text)
	}
	fmt.Fprintf(&sb, "User message: %s", input)
	return sb.String()
}

func buildQueryPrompt(query string, matches []models.DocumentMatch) string {
	var sb strings.Builder
	sb.WriteString("Answer the question concisely using only the documents below.\n\n")
	for i, m := range matches {
		fmt.Fprintf(&sb, "Document %d (%s):\n%s\n\n", i+1, m.Metadata.Source, m.Text)
	}
	fmt.Fprintf(&sb, "Question: %s", query)
	return sb.String()
}
