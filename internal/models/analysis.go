package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	StatusQueued     AnalysisStatus = "queued"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

type Analysis struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeDocumentID uuid.UUID      `gorm:"type:uuid;not null" json:"resume_document_id"`
	JobDescription   string         `gorm:"type:text;not null" json:"job_description"`
	Status           AnalysisStatus `gorm:"not null;default:'queued'" json:"status"`
	MatchPercentage  *int           `gorm:"type:smallint" json:"match_percentage,omitempty"`
	ATSFeedback      *string        `gorm:"type:text" json:"ats_feedback,omitempty"`
	Suggestions      *string        `gorm:"type:text" json:"suggestions,omitempty"`
	CoverLetter      *string        `gorm:"type:text" json:"cover_letter,omitempty"`
	SkillScores      *string        `gorm:"type:text" json:"skill_scores,omitempty"`
	ErrorMessage     *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	ResumeDocument Document `gorm:"foreignKey:ResumeDocumentID" json:"-"`
}

func (Analysis) TableName() string {
	return "analyses"
}

// Result reassembles the parsed analysis fields from their stored columns.
// Returns nil unless the analysis completed.
func (a *Analysis) Result() *AnalysisResult {
	if a.Status != StatusCompleted {
		return nil
	}

	result := &AnalysisResult{
		MatchPercentage: a.MatchPercentage,
	}
	if a.ATSFeedback != nil {
		result.ATSFeedback = *a.ATSFeedback
	}
	if a.CoverLetter != nil {
		result.CoverLetter = *a.CoverLetter
	}
	if a.Suggestions != nil && *a.Suggestions != "" {
		// Stored as a JSON array; a decode failure just leaves the field empty.
		_ = json.Unmarshal([]byte(*a.Suggestions), &result.Suggestions)
	}
	if a.SkillScores != nil && *a.SkillScores != "" {
		_ = json.Unmarshal([]byte(*a.SkillScores), &result.SkillScores)
	}

	return result
}
