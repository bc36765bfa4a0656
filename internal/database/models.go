package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JustJay7/precedent/internal/legal"
)

// AnalysisRecord is the append-only log entry written after each analysis.
type AnalysisRecord struct {
	ID             uint           `json:"id" gorm:"primarykey"`
	CreatedAt      time.Time      `json:"created_at" gorm:"index:idx_analysis_records_user_time,priority:2"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
	RecordID       string         `json:"record_id" gorm:"size:36;uniqueIndex"`
	Username       string         `json:"username" gorm:"size:255;not null;index:idx_analysis_records_user_time,priority:1"`
	CrimeCode      string         `json:"crime_code" gorm:"size:255;not null;index:idx_analysis_records_code"`
	Jurisdiction   string         `json:"jurisdiction" gorm:"size:255;not null"`
	AdditionalInfo string         `json:"additional_info" gorm:"type:text"`
	Category       string         `json:"category" gorm:"size:32"`
	Result         string         `json:"result" gorm:"type:text"`
	Failed         bool           `json:"failed"`
}

func (AnalysisRecord) TableName() string {
	return "analysis_records"
}

// NewAnalysisRecord snapshots a finished analysis for persistence.
func NewAnalysisRecord(username string, q legal.Query, result *legal.AnalysisResult, at time.Time) (*AnalysisRecord, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis result: %w", err)
	}

	rec := &AnalysisRecord{
		RecordID:       uuid.NewString(),
		Username:       username,
		CrimeCode:      q.CrimeCode,
		Jurisdiction:   q.Jurisdiction,
		AdditionalInfo: q.AdditionalInfo,
		Category:       string(legal.Classify(q.CrimeCode)),
		Result:         string(payload),
		Failed:         result.Failed(),
	}
	rec.CreatedAt = at
	rec.UpdatedAt = at
	return rec, nil
}

// DecodeResult parses the stored result payload.
func (r *AnalysisRecord) DecodeResult() (*legal.AnalysisResult, error) {
	var result legal.AnalysisResult
	if err := json.Unmarshal([]byte(r.Result), &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis result %s: %w", r.RecordID, err)
	}
	return &result, nil
}
