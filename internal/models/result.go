package models

// AnalysisResult holds the fields recovered from the model's reply. The reply
// format is not contractually fixed, so every field is optional: a nil
// MatchPercentage means no percentage was found, an empty map means no skill
// breakdown was returned, and empty strings mean the section was absent.
type AnalysisResult struct {
	MatchPercentage *int               `json:"match_percentage,omitempty"`
	ATSFeedback     string             `json:"ats_feedback,omitempty"`
	Suggestions     []string           `json:"suggestions,omitempty"`
	CoverLetter     string             `json:"cover_letter,omitempty"`
	SkillScores     map[string]float64 `json:"skill_scores,omitempty"`
}

type AnalyzeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Result       *AnalysisResult `json:"result,omitempty"`
	Report       *ReportView     `json:"report,omitempty"`
	ErrorMessage *string         `json:"error_message,omitempty"`
}
