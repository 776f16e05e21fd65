package services

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"resumefit/resume-analyzer/internal/models"
)

// ResponseParser recovers AnalysisResult fields from the model's reply with
// best-effort string matching. The reply layout is only requested, never
// enforced, so every extraction tolerates absence: a missing section maps to
// the field's zero value and Parse never returns an error.
type ResponseParser struct{}

func NewResponseParser() *ResponseParser {
	return &ResponseParser{}
}

var (
	labeledMatchRe = regexp.MustCompile(`(?i)Match Percentage:\s*(\d{1,3})\s*%`)
	anyPercentRe   = regexp.MustCompile(`(\d{1,3})%`)
	skillsRe       = regexp.MustCompile(`(?s)Skills Match:\s*(\{.*?\})`)
	skillPairRe    = regexp.MustCompile(`"?([^"{}:,]+?)"?\s*:\s*(\d+(?:\.\d+)?)`)
	coverRe        = regexp.MustCompile(`(?s)Cover Letter:\s*(.*?)\s*(?:ATS Formatting Check:|Interview Questions:|Suggestions:|Skills Match:|$)`)
	atsRe          = regexp.MustCompile(`(?s)ATS Formatting Check:\s*(.*?)\s*(?:Cover Letter:|Suggestions:|Skills Match:|Match Percentage:|$)`)
	suggestionsRe  = regexp.MustCompile(`(?s)Suggestions:\s*(.*?)\s*(?:ATS Formatting Check:|Cover Letter:|Skills Match:|Match Percentage:|$)`)
	bulletRe       = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*(.+)$`)
)

func (p *ResponseParser) Parse(reply string) *models.AnalysisResult {
	result := &models.AnalysisResult{
		MatchPercentage: p.parseMatchPercentage(reply),
		ATSFeedback:     firstGroup(atsRe, reply),
		Suggestions:     p.parseSuggestions(reply),
		CoverLetter:     firstGroup(coverRe, reply),
		SkillScores:     p.parseSkillScores(reply),
	}

	return result
}

// parseMatchPercentage prefers the labeled form the prompt asks for and falls
// back to the first bare percentage anywhere in the reply, capped at 100.
func (p *ResponseParser) parseMatchPercentage(reply string) *int {
	m := labeledMatchRe.FindStringSubmatch(reply)
	if m == nil {
		m = anyPercentRe.FindStringSubmatch(reply)
	}
	if m == nil {
		return nil
	}

	value, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	if value > 100 {
		value = 100
	}

	return &value
}

func (p *ResponseParser) parseSuggestions(reply string) []string {
	section := firstGroup(suggestionsRe, reply)
	if section == "" {
		return nil
	}

	var suggestions []string
	for _, line := range strings.Split(section, "\n") {
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			suggestions = append(suggestions, strings.TrimSpace(m[1]))
		}
	}

	return suggestions
}

// parseSkillScores decodes the requested {"skill": score} object. The model
// sometimes emits single quotes or unquoted keys, so a strict JSON decode is
// tried first and a pair-by-pair scan second. Scores are clamped to 0-100.
func (p *ResponseParser) parseSkillScores(reply string) map[string]float64 {
	m := skillsRe.FindStringSubmatch(reply)
	if m == nil {
		return nil
	}

	raw := strings.ReplaceAll(m[1], "'", `"`)

	scores := map[string]float64{}
	if err := json.Unmarshal([]byte(raw), &scores); err != nil {
		scores = map[string]float64{}
		for _, pair := range skillPairRe.FindAllStringSubmatch(raw, -1) {
			key := strings.TrimSpace(strings.Trim(pair[1], `"{} `))
			value, err := strconv.ParseFloat(pair[2], 64)
			if err != nil || key == "" {
				continue
			}
			scores[key] = value
		}
	}

	if len(scores) == 0 {
		return nil
	}

	for key, value := range scores {
		if value < 0 {
			scores[key] = 0
		}
		if value > 100 {
			scores[key] = 100
		}
	}

	return scores
}

func firstGroup(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
