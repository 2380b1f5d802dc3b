package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/enablehq/enable/logging"
	"github.com/enablehq/enable/models"
	"github.com/enablehq/enable/pricing"
	"github.com/enablehq/enable/repositories/costs"
)

// ModelUsage aggregates the ledger for one model.
type ModelUsage struct {
	Model        string
	InputTokens  int64
	OutputTokens int64
	Cost         float64
	Requests     int
}

// DailyCost is the ledger total for one UTC day.
type DailyCost struct {
	// Date is the day in "2006-01-02" form, UTC.
	Date string
	Cost float64
}

// Summary is an overview of the whole ledger.
type Summary struct {
	TotalCost      float64
	TotalRequests  int
	InputTokens    int64
	OutputTokens   int64
	AverageCost    float64
	SessionCost    float64
	ModelBreakdown []ModelUsage
}

// Ledger records per-message costs and computes aggregates by rescanning the
// append-only record set. It never mutates existing records.
type Ledger struct {
	costs costs.Repository
	table *pricing.Table
	log   logging.Logger

	// sessionStart is fixed at construction; SessionCost covers everything
	// recorded since.
	sessionStart int64
	now          func() time.Time
}

// NewLedger wires a Ledger. A nil table falls back to the built-in rates and
// a nil logger to a no-op.
func NewLedger(cs costs.Repository, table *pricing.Table, log logging.Logger) *Ledger {
	if table == nil {
		table = pricing.Default()
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Ledger{
		costs:        cs,
		table:        table,
		log:          log,
		sessionStart: time.Now().UnixMilli(),
		now:          time.Now,
	}
}

// SaveCost prices the token counts for the model and appends a record. An
// unknown model is recorded at zero cost with a warning so usage is never
// lost. The saved record is returned.
func (l *Ledger) SaveCost(ctx context.Context, chatID, messageID, model string, inputTokens, outputTokens int64) (*models.CostRecord, error) {
	breakdown, known := l.table.Cost(model, inputTokens, outputTokens)
	if !known {
		l.log.Warn(ctx, "no pricing for model, recording zero cost", "model", model)
	}

	record := &models.CostRecord{
		ID:           uuid.NewString(),
		ChatID:       chatID,
		MessageID:    messageID,
		Model:        model,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		Cost:         breakdown.TotalCost,
		Timestamp:    l.now().UnixMilli(),
	}
	if err := l.costs.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record cost for message %s: %w", messageID, err)
	}
	return record, nil
}

// CostByMessageID returns the message's cost record, or (nil, nil) when none
// was recorded.
func (l *Ledger) CostByMessageID(ctx context.Context, messageID string) (*models.CostRecord, error) {
	return l.costs.GetByMessageID(ctx, messageID)
}

// ChatCosts returns the chat's cost records in insertion order. Read
// failures degrade to an empty list.
func (l *Ledger) ChatCosts(ctx context.Context, chatID string) []models.CostRecord {
	records, err := l.costs.GetByChatID(ctx, chatID)
	if err != nil {
		l.log.Error(ctx, "failed to load chat costs", "chat_id", chatID, "error", err)
		return nil
	}
	return records
}

// ChatCost sums the chat's ledger records.
func (l *Ledger) ChatCost(ctx context.Context, chatID string) float64 {
	var total float64
	for _, r := range l.ChatCosts(ctx, chatID) {
		total += r.Cost
	}
	return total
}

// SessionCost sums records since this Ledger was constructed.
func (l *Ledger) SessionCost(ctx context.Context) float64 {
	var total float64
	for _, r := range l.allRecords(ctx) {
		if r.Timestamp >= l.sessionStart {
			total += r.Cost
		}
	}
	return total
}

// TotalCost sums the whole ledger.
func (l *Ledger) TotalCost(ctx context.Context) float64 {
	var total float64
	for _, r := range l.allRecords(ctx) {
		total += r.Cost
	}
	return total
}

// ModelBreakdown aggregates the ledger per model, ordered by descending cost
// with model id as tiebreak.
func (l *Ledger) ModelBreakdown(ctx context.Context) []ModelUsage {
	byModel := map[string]*ModelUsage{}
	for _, r := range l.allRecords(ctx) {
		u := byModel[r.Model]
		if u == nil {
			u = &ModelUsage{Model: r.Model}
			byModel[r.Model] = u
		}
		u.InputTokens += r.InputTokens
		u.OutputTokens += r.OutputTokens
		u.Cost += r.Cost
		u.Requests++
	}

	result := make([]ModelUsage, 0, len(byModel))
	for _, u := range byModel {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Cost != result[j].Cost {
			return result[i].Cost > result[j].Cost
		}
		return result[i].Model < result[j].Model
	})
	return result
}

// DailyHistory returns per-day totals for the last days days, oldest first.
// Days are UTC calendar days; days without any records are omitted.
func (l *Ledger) DailyHistory(ctx context.Context, days int) []DailyCost {
	if days <= 0 {
		return nil
	}

	cutoff := l.now().UTC().AddDate(0, 0, -days).UnixMilli()
	byDay := map[string]float64{}
	for _, r := range l.allRecords(ctx) {
		if r.Timestamp < cutoff {
			continue
		}
		day := time.UnixMilli(r.Timestamp).UTC().Format("2006-01-02")
		byDay[day] += r.Cost
	}

	result := make([]DailyCost, 0, len(byDay))
	for day, cost := range byDay {
		result = append(result, DailyCost{Date: day, Cost: cost})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}

// Summarize computes the overview of the whole ledger. An empty ledger gives
// a zeroed summary.
func (l *Ledger) Summarize(ctx context.Context) Summary {
	var s Summary
	for _, r := range l.allRecords(ctx) {
		s.TotalCost += r.Cost
		s.TotalRequests++
		s.InputTokens += r.InputTokens
		s.OutputTokens += r.OutputTokens
		if r.Timestamp >= l.sessionStart {
			s.SessionCost += r.Cost
		}
	}
	if s.TotalRequests > 0 {
		s.AverageCost = s.TotalCost / float64(s.TotalRequests)
	}
	s.ModelBreakdown = l.ModelBreakdown(ctx)
	return s
}

// ExportCSV renders the whole ledger as CSV, one row per record in
// insertion order.
func (l *Ledger) ExportCSV(ctx context.Context) ([]byte, error) {
	records, err := l.costs.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export cost records: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "chatId", "messageId", "model", "inputTokens", "outputTokens", "cost", "timestamp"}); err != nil {
		return nil, fmt.Errorf("failed to export cost records: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.ID, r.ChatID, r.MessageID, r.Model,
			strconv.FormatInt(r.InputTokens, 10),
			strconv.FormatInt(r.OutputTokens, 10),
			strconv.FormatFloat(r.Cost, 'f', -1, 64),
			strconv.FormatInt(r.Timestamp, 10),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to export cost records: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to export cost records: %w", err)
	}
	return buf.Bytes(), nil
}

func (l *Ledger) allRecords(ctx context.Context) []models.CostRecord {
	records, err := l.costs.GetAll(ctx)
	if err != nil {
		l.log.Error(ctx, "failed to load cost records", "error", err)
		return nil
	}
	return records
}
