package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseParser_MatchPercentage(t *testing.T) {
	parser := NewResponseParser()

	tests := []struct {
		name  string
		reply string
		want  *int
	}{
		{
			name:  "labeled percentage",
			reply: "Match Percentage: 73%\n\nATS Formatting Check:\nLooks fine.",
			want:  intPtr(73),
		},
		{
			name:  "bare percentage fallback",
			reply: "Match: 82%",
			want:  intPtr(82),
		},
		{
			name:  "capped at 100",
			reply: "Match Percentage: 250%",
			want:  intPtr(100),
		},
		{
			name:  "no percentage",
			reply: "The resume aligns well with the role.",
			want:  nil,
		},
		{
			name:  "empty reply",
			reply: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parser.Parse(tt.reply)
			require.NotNil(t, result)
			if tt.want == nil {
				assert.Nil(t, result.MatchPercentage)
			} else {
				require.NotNil(t, result.MatchPercentage)
				assert.Equal(t, *tt.want, *result.MatchPercentage)
			}
		})
	}
}

func TestResponseParser_SkillScores(t *testing.T) {
	parser := NewResponseParser()

	tests := []struct {
		name  string
		reply string
		want  map[string]float64
	}{
		{
			name:  "strict json object",
			reply: `Skills Match: {"Go": 90, "SQL": 70}`,
			want:  map[string]float64{"Go": 90, "SQL": 70},
		},
		{
			name:  "single quoted keys",
			reply: `Skills Match: {'Go': 85, 'PostgreSQL': 60}`,
			want:  map[string]float64{"Go": 85, "PostgreSQL": 60},
		},
		{
			name:  "unquoted keys fall back to pair scan",
			reply: `Skills Match: {Go: 80, Kubernetes: 40}`,
			want:  map[string]float64{"Go": 80, "Kubernetes": 40},
		},
		{
			name:  "scores clamped to 100",
			reply: `Skills Match: {"Go": 150}`,
			want:  map[string]float64{"Go": 100},
		},
		{
			name:  "section absent",
			reply: "Match Percentage: 50%",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parser.Parse(tt.reply)
			require.NotNil(t, result)
			assert.Equal(t, tt.want, result.SkillScores)
		})
	}
}

func TestResponseParser_Sections(t *testing.T) {
	parser := NewResponseParser()

	reply := `Match Percentage: 82%

ATS Formatting Check:
The resume uses standard headings and should parse cleanly.

Suggestions:
- Add PostgreSQL tuning experience to the skills section.
- Quantify the throughput improvements on the billing service.

Skills Match: {"Go": 90, "SQL": 75}

Cover Letter:
Dear Hiring Manager,

I am excited to apply for the backend engineer position.

Sincerely,
The Candidate`

	result := parser.Parse(reply)
	require.NotNil(t, result)

	require.NotNil(t, result.MatchPercentage)
	assert.Equal(t, 82, *result.MatchPercentage)

	assert.Equal(t, "The resume uses standard headings and should parse cleanly.", result.ATSFeedback)

	require.Len(t, result.Suggestions, 2)
	assert.Equal(t, "Add PostgreSQL tuning experience to the skills section.", result.Suggestions[0])
	assert.Equal(t, "Quantify the throughput improvements on the billing service.", result.Suggestions[1])

	assert.Contains(t, result.CoverLetter, "Dear Hiring Manager,")
	assert.Contains(t, result.CoverLetter, "Sincerely,")
	assert.NotContains(t, result.CoverLetter, "ATS Formatting Check")

	assert.Equal(t, map[string]float64{"Go": 90, "SQL": 75}, result.SkillScores)
}

func TestResponseParser_NeverFails(t *testing.T) {
	parser := NewResponseParser()

	replies := []string{
		"",
		"   \n\n\t  ",
		"complete nonsense with no structure at all",
		"Skills Match: {broken",
		"Cover Letter:",
		"Suggestions:\nno bullets here",
		"%%%%%",
	}

	for _, reply := range replies {
		result := parser.Parse(reply)
		require.NotNil(t, result, "reply %q", reply)
	}
}

func intPtr(v int) *int {
	return &v
}
