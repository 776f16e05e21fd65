package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"resumefit/resume-analyzer/internal/models"
	"resumefit/resume-analyzer/internal/repositories"
)

type AnalyzerService interface {
	AnalyzeResume(ctx context.Context, analysisID uuid.UUID) error
}

type analyzerService struct {
	analysisRepo  repositories.AnalysisRepository
	docRepo       repositories.DocumentRepository
	geminiService GeminiService
	extractor     TextExtractor
	promptBuilder *PromptBuilder
	parser        *ResponseParser
	maxRetries    int
}

func NewAnalyzerService(
	analysisRepo repositories.AnalysisRepository,
	docRepo repositories.DocumentRepository,
	geminiService GeminiService,
	extractor TextExtractor,
	promptBuilder *PromptBuilder,
	maxRetries int,
) AnalyzerService {
	return &analyzerService{
		analysisRepo:  analysisRepo,
		docRepo:       docRepo,
		geminiService: geminiService,
		extractor:     extractor,
		promptBuilder: promptBuilder,
		parser:        NewResponseParser(),
		maxRetries:    maxRetries,
	}
}

// AnalyzeResume runs the pipeline for one queued analysis: extract the resume
// text, build the prompt, call the model, parse the reply, persist the result.
// Extraction and AI-call failures are terminal for the analysis and stored as
// a user-facing message; parse gaps are not failures.
func (a *analyzerService) AnalyzeResume(ctx context.Context, analysisID uuid.UUID) error {
	if err := a.analysisRepo.UpdateStatus(analysisID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting analysis %s\n", analysisID)

	analysis, err := a.analysisRepo.FindByID(analysisID)
	if err != nil {
		a.recordFailure(analysisID, "The analysis request could not be found.")
		return fmt.Errorf("failed to get analysis: %w", err)
	}

	doc, err := a.docRepo.FindByID(analysis.ResumeDocumentID)
	if err != nil {
		a.recordFailure(analysisID, "The uploaded resume could not be found.")
		return fmt.Errorf("failed to get resume document: %w", err)
	}

	log.Println("📄 Extracting resume text...")
	resumeText, err := a.extractor.ExtractText(doc.FilePath)
	if err != nil {
		a.recordFailure(analysisID, UserMessage(err))
		return fmt.Errorf("failed to extract resume text: %w", err)
	}

	prompt := a.promptBuilder.BuildAnalysisPrompt(resumeText, analysis.JobDescription)
	log.Printf("📝 Analysis prompt length: %d characters", len(prompt))

	log.Println("🤖 Analyzing resume with LLM...")
	reply, err := a.geminiService.GenerateTextWithRetry(ctx, prompt, 0.4, a.maxRetries)
	if err != nil {
		a.recordFailure(analysisID, UserMessage(err))
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	result := a.parser.Parse(reply)

	log.Println("💾 Saving analysis result...")
	if err := a.analysisRepo.UpdateResult(analysisID, result); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	log.Printf("✅ Analysis %s completed\n", analysisID)
	return nil
}

// recordFailure marks the analysis failed with a user-facing message. The
// status write itself can fail; that leaves the row in processing, so the
// failure is logged rather than swallowed.
func (a *analyzerService) recordFailure(analysisID uuid.UUID, message string) {
	if err := a.analysisRepo.UpdateError(analysisID, message); err != nil {
		log.Printf("⚠️  Failed to record failure for analysis %s: %v\n", analysisID, err)
	}
}
