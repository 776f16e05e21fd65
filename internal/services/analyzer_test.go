package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumefit/resume-analyzer/internal/models"
)

type fakeGemini struct {
	reply string
	err   error
	calls int
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return f.GenerateText(ctx, prompt, temperature)
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(filePath string) (string, error) {
	return f.text, f.err
}

type memDocRepo struct {
	docs map[uuid.UUID]*models.Document
}

func newMemDocRepo() *memDocRepo {
	return &memDocRepo{docs: map[uuid.UUID]*models.Document{}}
}

func (r *memDocRepo) Create(doc *models.Document) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *memDocRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("document not found")
	}
	return doc, nil
}

func (r *memDocRepo) Delete(id uuid.UUID) error {
	delete(r.docs, id)
	return nil
}

type memAnalysisRepo struct {
	analyses map[uuid.UUID]*models.Analysis
}

func newMemAnalysisRepo() *memAnalysisRepo {
	return &memAnalysisRepo{analyses: map[uuid.UUID]*models.Analysis{}}
}

func (r *memAnalysisRepo) Create(analysis *models.Analysis) error {
	r.analyses[analysis.ID] = analysis
	return nil
}

func (r *memAnalysisRepo) FindByID(id uuid.UUID) (*models.Analysis, error) {
	analysis, ok := r.analyses[id]
	if !ok {
		return nil, fmt.Errorf("analysis not found")
	}
	return analysis, nil
}

func (r *memAnalysisRepo) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	analysis, ok := r.analyses[id]
	if !ok {
		return fmt.Errorf("analysis not found")
	}
	analysis.Status = status
	return nil
}

func (r *memAnalysisRepo) UpdateResult(id uuid.UUID, result *models.AnalysisResult) error {
	analysis, ok := r.analyses[id]
	if !ok {
		return fmt.Errorf("analysis not found")
	}
	analysis.Status = models.StatusCompleted
	analysis.MatchPercentage = result.MatchPercentage
	if result.ATSFeedback != "" {
		analysis.ATSFeedback = &result.ATSFeedback
	}
	if result.CoverLetter != "" {
		analysis.CoverLetter = &result.CoverLetter
	}
	if len(result.Suggestions) > 0 {
		encoded, _ := json.Marshal(result.Suggestions)
		s := string(encoded)
		analysis.Suggestions = &s
	}
	if len(result.SkillScores) > 0 {
		encoded, _ := json.Marshal(result.SkillScores)
		s := string(encoded)
		analysis.SkillScores = &s
	}
	return nil
}

func (r *memAnalysisRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	analysis, ok := r.analyses[id]
	if !ok {
		return fmt.Errorf("analysis not found")
	}
	analysis.Status = models.StatusFailed
	analysis.ErrorMessage = &errorMsg
	return nil
}

func (r *memAnalysisRepo) FindPendingJobs(limit int) ([]models.Analysis, error) {
	var pending []models.Analysis
	for _, analysis := range r.analyses {
		if analysis.Status == models.StatusQueued && len(pending) < limit {
			pending = append(pending, *analysis)
		}
	}
	return pending, nil
}

func seedAnalysis(t *testing.T, docRepo *memDocRepo, analysisRepo *memAnalysisRepo) uuid.UUID {
	t.Helper()

	doc := &models.Document{ID: uuid.New(), FilePath: "/tmp/resume.pdf"}
	require.NoError(t, docRepo.Create(doc))

	analysis := &models.Analysis{
		ID:               uuid.New(),
		ResumeDocumentID: doc.ID,
		JobDescription:   "Seeking a backend engineer with Go and SQL experience",
		Status:           models.StatusQueued,
	}
	require.NoError(t, analysisRepo.Create(analysis))

	return analysis.ID
}

func TestAnalyzer_CompletesWithMatchPercentage(t *testing.T) {
	docRepo := newMemDocRepo()
	analysisRepo := newMemAnalysisRepo()
	analysisID := seedAnalysis(t, docRepo, analysisRepo)

	gemini := &fakeGemini{reply: "Match: 82%"}
	extractor := &fakeExtractor{text: "Experienced backend engineer skilled in Go and PostgreSQL"}

	analyzer := NewAnalyzerService(analysisRepo, docRepo, gemini, extractor, NewPromptBuilder(""), 2)

	err := analyzer.AnalyzeResume(context.Background(), analysisID)
	require.NoError(t, err)

	analysis, err := analysisRepo.FindByID(analysisID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, analysis.Status)

	result := analysis.Result()
	require.NotNil(t, result)
	require.NotNil(t, result.MatchPercentage)
	assert.Equal(t, 82, *result.MatchPercentage)
	assert.Equal(t, 1, gemini.calls)
}

func TestAnalyzer_NetworkFailureIsTerminal(t *testing.T) {
	docRepo := newMemDocRepo()
	analysisRepo := newMemAnalysisRepo()
	analysisID := seedAnalysis(t, docRepo, analysisRepo)

	gemini := &fakeGemini{err: classifyGenerationError(context.DeadlineExceeded)}
	extractor := &fakeExtractor{text: "some resume text"}

	analyzer := NewAnalyzerService(analysisRepo, docRepo, gemini, extractor, NewPromptBuilder(""), 2)

	err := analyzer.AnalyzeResume(context.Background(), analysisID)
	assert.Error(t, err)

	analysis, findErr := analysisRepo.FindByID(analysisID)
	require.NoError(t, findErr)
	assert.Equal(t, models.StatusFailed, analysis.Status)
	require.NotNil(t, analysis.ErrorMessage)
	assert.Contains(t, *analysis.ErrorMessage, "could not be reached")
	assert.Nil(t, analysis.Result())
}

func TestAnalyzer_ExtractionFailureIsTerminal(t *testing.T) {
	docRepo := newMemDocRepo()
	analysisRepo := newMemAnalysisRepo()
	analysisID := seedAnalysis(t, docRepo, analysisRepo)

	gemini := &fakeGemini{reply: "Match: 50%"}
	extractor := &fakeExtractor{err: fmt.Errorf("%w: no text content found in PDF", ErrExtraction)}

	analyzer := NewAnalyzerService(analysisRepo, docRepo, gemini, extractor, NewPromptBuilder(""), 2)

	err := analyzer.AnalyzeResume(context.Background(), analysisID)
	assert.Error(t, err)

	analysis, findErr := analysisRepo.FindByID(analysisID)
	require.NoError(t, findErr)
	assert.Equal(t, models.StatusFailed, analysis.Status)
	require.NotNil(t, analysis.ErrorMessage)
	assert.Contains(t, *analysis.ErrorMessage, "could not be read")
	// The AI call never happens when extraction fails
	assert.Equal(t, 0, gemini.calls)
}

// failingUpdateErrorRepo simulates a repository whose failure write itself
// fails, which would otherwise strand the analysis in processing silently.
type failingUpdateErrorRepo struct {
	*memAnalysisRepo
}

func (r *failingUpdateErrorRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	return fmt.Errorf("database connection lost")
}

func TestAnalyzer_FailedStatusWriteIsLogged(t *testing.T) {
	docRepo := newMemDocRepo()
	analysisRepo := newMemAnalysisRepo()
	analysisID := seedAnalysis(t, docRepo, analysisRepo)

	gemini := &fakeGemini{reply: "Match: 50%"}
	extractor := &fakeExtractor{err: fmt.Errorf("%w: no text content found in PDF", ErrExtraction)}

	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	analyzer := NewAnalyzerService(&failingUpdateErrorRepo{analysisRepo}, docRepo, gemini, extractor, NewPromptBuilder(""), 2)

	err := analyzer.AnalyzeResume(context.Background(), analysisID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtraction)
	assert.Contains(t, logs.String(), "Failed to record failure")
}

func TestAnalyzer_ParseGapsAreNotFailures(t *testing.T) {
	docRepo := newMemDocRepo()
	analysisRepo := newMemAnalysisRepo()
	analysisID := seedAnalysis(t, docRepo, analysisRepo)

	// A reply with no recognizable section still completes the analysis
	gemini := &fakeGemini{reply: "The resume is broadly relevant to the role."}
	extractor := &fakeExtractor{text: "resume text"}

	analyzer := NewAnalyzerService(analysisRepo, docRepo, gemini, extractor, NewPromptBuilder(""), 2)

	require.NoError(t, analyzer.AnalyzeResume(context.Background(), analysisID))

	analysis, err := analysisRepo.FindByID(analysisID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, analysis.Status)

	result := analysis.Result()
	require.NotNil(t, result)
	assert.Nil(t, result.MatchPercentage)
	assert.Empty(t, result.SkillScores)
}
