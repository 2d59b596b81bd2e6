// models/chat.go
package models

import "time"

// ChatTurn is one user/bot exchange in a transcript. Seq is assigned when the
// submission is accepted, so turns read back in submission order even when
// responses resolve out of order.
type ChatTurn struct {
	Seq  int64     `json:"seq"`
	User string    `json:"user"`
	Bot  string    `json:"bot"`
	At   time.Time `json:"at"`
}

// ChatRequest is the payload for POST /api/chat.
type ChatRequest struct {
	Input     string `json:"input"`
	SessionID string `json:"session_id"`
}

// QueryRequest is the payload for POST /api/query.
type QueryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

// QueryResponse carries a QA answer with attribution.
type QueryResponse struct {
	Response   string   `json:"response"`
	Confidence float64  `json:"confidence"`
	HasAnswer  bool     `json:"has_answer"`
	Sources    []string `json:"sources"`
}
