package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumefit/resume-analyzer/internal/models"
	"resumefit/resume-analyzer/internal/repositories"
	"resumefit/resume-analyzer/internal/services"
)

type AnalyzeHandler struct {
	docRepo        repositories.DocumentRepository
	analysisRepo   repositories.AnalysisRepository
	storageService services.StorageService
	worker         services.Worker
	validate       *validator.Validate
	maxFileSize    int64
}

type analyzeForm struct {
	JobDescription string `validate:"required,min=10"`
}

func NewAnalyzeHandler(
	docRepo repositories.DocumentRepository,
	analysisRepo repositories.AnalysisRepository,
	storageService services.StorageService,
	worker services.Worker,
	maxFileSize int64,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		docRepo:        docRepo,
		analysisRepo:   analysisRepo,
		storageService: storageService,
		worker:         worker,
		validate:       validator.New(),
		maxFileSize:    maxFileSize,
	}
}

// HandleAnalyze handles POST /analyze: one resume PDF plus a pasted job
// description, queued as a single analysis.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume PDF file is required",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	form := analyzeForm{
		JobDescription: strings.TrimSpace(c.FormValue("job_description")),
	}
	if err := h.validate.Struct(form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required (at least 10 characters)",
		})
	}

	// Save file
	filename, filePath, err := h.storageService.SaveFile(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FilePath:         filePath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save resume document record",
		})
	}

	analysis := &models.Analysis{
		ID:               uuid.New(),
		ResumeDocumentID: doc.ID,
		JobDescription:   form.JobDescription,
		Status:           models.StatusQueued,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.analysisRepo.Create(analysis); err != nil {
		// Cleanup uploaded file and document record if the job insert fails
		h.storageService.DeleteFile(filename)
		h.docRepo.Delete(doc.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create analysis job",
		})
	}

	h.worker.EnqueueJob(analysis.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.AnalyzeResponse{
		ID:     analysis.ID.String(),
		Status: string(models.StatusQueued),
	})
}
