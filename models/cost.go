package models

// CostRecord is one append-only cost fact for a single message. Records are
// never mutated; aggregates are always recomputed by scanning.
type CostRecord struct {
	// ID is a fresh UUID per record, never reused.
	ID        string `json:"id"`
	ChatID    string `json:"chatId"`
	MessageID string `json:"messageId"`

	Model        string  `json:"model"`
	InputTokens  int64   `json:"inputTokens"`
	OutputTokens int64   `json:"outputTokens"`
	Cost         float64 `json:"cost"`

	Timestamp int64 `json:"timestamp"`
}
