package services

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"resumefit/resume-analyzer/internal/models"
)

// ReportGenerator serializes an AnalysisResult into downloadable PDFs.
// Output is deterministic: the same result always produces identical bytes,
// which requires pinning the document dates fpdf would otherwise stamp with
// the render time.
type ReportGenerator struct{}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

var reportDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// FullReport renders the complete analysis: title, match percentage, ATS
// feedback, suggestions, and the cover letter.
func (g *ReportGenerator) FullReport(result *models.AnalysisResult) ([]byte, error) {
	doc, tr := newDocument("Resume Analysis Report")

	if result.MatchPercentage != nil {
		g.heading(doc, "Match Score")
		doc.SetFont("Arial", "B", 14)
		doc.CellFormat(0, 10, fmt.Sprintf("%d%%", *result.MatchPercentage), "", 1, "L", false, 0, "")
	}

	if result.ATSFeedback != "" {
		g.heading(doc, "ATS Formatting Check")
		g.body(doc, tr, result.ATSFeedback)
	}

	if len(result.Suggestions) > 0 {
		g.heading(doc, "Suggestions")
		for _, suggestion := range result.Suggestions {
			g.body(doc, tr, "- "+suggestion)
		}
	}

	if len(result.SkillScores) > 0 {
		g.heading(doc, "Skill Scores")
		names := make([]string, 0, len(result.SkillScores))
		for name := range result.SkillScores {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			g.body(doc, tr, fmt.Sprintf("%s: %.0f / 100", name, result.SkillScores[name]))
		}
	}

	if result.CoverLetter != "" {
		g.heading(doc, "Cover Letter")
		g.body(doc, tr, result.CoverLetter)
	}

	return output(doc)
}

// CoverLetter renders the cover letter alone, matching the original
// separate download.
func (g *ReportGenerator) CoverLetter(result *models.AnalysisResult) ([]byte, error) {
	if strings.TrimSpace(result.CoverLetter) == "" {
		return nil, fmt.Errorf("analysis has no cover letter")
	}

	doc, tr := newDocument("Cover Letter")
	g.body(doc, tr, result.CoverLetter)

	return output(doc)
}

func newDocument(title string) (*fpdf.Fpdf, func(string) string) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(reportDate)
	doc.SetModificationDate(reportDate)
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 12, tr(title), "", 1, "C", false, 0, "")
	doc.Ln(4)

	return doc, tr
}

func (g *ReportGenerator) heading(doc *fpdf.Fpdf, text string) {
	doc.Ln(4)
	doc.SetFont("Arial", "B", 13)
	doc.CellFormat(0, 9, text, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) body(doc *fpdf.Fpdf, tr func(string) string, text string) {
	doc.SetFont("Arial", "", 12)
	for _, line := range strings.Split(text, "\n") {
		doc.MultiCell(0, 7, tr(line), "", "L", false)
	}
}

func output(doc *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
