package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumefit/resume-analyzer/internal/models"
	"resumefit/resume-analyzer/internal/repositories"
	"resumefit/resume-analyzer/internal/services"
)

type ResultHandler struct {
	analysisRepo repositories.AnalysisRepository
	presenter    *services.Presenter
}

func NewResultHandler(analysisRepo repositories.AnalysisRepository, presenter *services.Presenter) *ResultHandler {
	return &ResultHandler{
		analysisRepo: analysisRepo,
		presenter:    presenter,
	}
}

func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	idParam := c.Params("id")
	analysisID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	analysis, err := h.analysisRepo.FindByID(analysisID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}

	response := models.ResultResponse{
		ID:     analysis.ID.String(),
		Status: string(analysis.Status),
	}

	// If completed, include the parsed result and its widget layout
	if result := analysis.Result(); result != nil {
		response.Result = result
		response.Report = h.presenter.BuildReportView(result)
	}

	if analysis.Status == models.StatusFailed && analysis.ErrorMessage != nil {
		response.ErrorMessage = analysis.ErrorMessage
	}

	return c.JSON(response)
}
