package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/JustJay7/precedent/internal/database"
	"github.com/JustJay7/precedent/internal/legal"
)

// PersistOutcome is the result of a best-effort analysis write.
type PersistOutcome string

const (
	PersistSucceeded PersistOutcome = "persisted"
	PersistSkipped   PersistOutcome = "skipped"
	PersistFailed    PersistOutcome = "failed"
)

// record appends the analysis to the store. Failures are logged once and
// never reach the caller; the write is not retried.
func (s *Service) record(ctx context.Context, username string, q legal.Query, result *legal.AnalysisResult) PersistOutcome {
	if s.store == nil {
		return PersistSkipped
	}

	rec, err := database.NewAnalysisRecord(username, q, result, s.now().UTC())
	if err != nil {
		s.logger.Warn("Failed to save analysis to database", "error", err)
		return PersistFailed
	}

	// The write outlives a cancelled request but not the store timeout.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
	defer cancel()

	if err := s.store.SaveAnalysis(writeCtx, rec); err != nil {
		s.logger.Warn("Failed to save analysis to database",
			"record_id", rec.RecordID,
			"username", username,
			"error", err,
		)
		return PersistFailed
	}

	return PersistSucceeded
}

type HistoryEntry struct {
	RecordID       string          `json:"record_id"`
	CrimeCode      string          `json:"crime_code"`
	Jurisdiction   string          `json:"jurisdiction"`
	AdditionalInfo string          `json:"additional_info"`
	Category       string          `json:"category"`
	Failed         bool            `json:"failed"`
	CreatedAt      time.Time       `json:"created_at"`
	Result         json.RawMessage `json:"result"`
}

type HistoryResponse struct {
	Success  bool           `json:"success"`
	Count    int            `json:"count"`
	Analyses []HistoryEntry `json:"analyses"`
}

// History lists the caller's most recent analyses, newest first. Without a
// store the list is empty.
func (s *Service) History(ctx context.Context, username string, limit int) (*HistoryResponse, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	resp := &HistoryResponse{Success: true, Analyses: []HistoryEntry{}}
	if s.store == nil {
		return resp, nil
	}

	readCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	records, err := s.store.RecentAnalyses(readCtx, username, limit)
	if err != nil {
		s.logger.Error("Failed to load analysis history", "username", username, "error", err)
		return nil, &Error{
			Kind:    KindInternal,
			Message: "Failed to load analysis history",
			Err:     err,
		}
	}

	for _, rec := range records {
		entry := HistoryEntry{
			RecordID:       rec.RecordID,
			CrimeCode:      rec.CrimeCode,
			Jurisdiction:   rec.Jurisdiction,
			AdditionalInfo: rec.AdditionalInfo,
			Category:       rec.Category,
			Failed:         rec.Failed,
			CreatedAt:      rec.CreatedAt,
		}
		if json.Valid([]byte(rec.Result)) {
			entry.Result = json.RawMessage(rec.Result)
		}
		resp.Analyses = append(resp.Analyses, entry)
	}
	resp.Count = len(resp.Analyses)

	return resp, nil
}
