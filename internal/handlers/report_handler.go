package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumefit/resume-analyzer/internal/models"
	"resumefit/resume-analyzer/internal/repositories"
	"resumefit/resume-analyzer/internal/services"
)

// ReportHandler serves the downloadable artifacts of a completed analysis:
// the full report PDF, the cover letter PDF, and the chart SVGs. Nothing is
// served before the analysis completes, so a failed AI call can never leak a
// partial report.
type ReportHandler struct {
	analysisRepo repositories.AnalysisRepository
	presenter    *services.Presenter
	generator    *services.ReportGenerator
	charts       *services.ChartRenderer
}

func NewReportHandler(
	analysisRepo repositories.AnalysisRepository,
	presenter *services.Presenter,
	generator *services.ReportGenerator,
	charts *services.ChartRenderer,
) *ReportHandler {
	return &ReportHandler{
		analysisRepo: analysisRepo,
		presenter:    presenter,
		generator:    generator,
		charts:       charts,
	}
}

func (h *ReportHandler) HandleDownloadReport(c *fiber.Ctx) error {
	result, errResp := h.completedResult(c)
	if result == nil {
		return errResp
	}

	pdfBytes, err := h.generator.FullReport(result)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to generate report PDF",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resume_analysis_report.pdf"`)
	return c.Send(pdfBytes)
}

func (h *ReportHandler) HandleDownloadCoverLetter(c *fiber.Ctx) error {
	result, errResp := h.completedResult(c)
	if result == nil {
		return errResp
	}

	if result.CoverLetter == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "This analysis has no cover letter",
		})
	}

	pdfBytes, err := h.generator.CoverLetter(result)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to generate cover letter PDF",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cover_letter.pdf"`)
	return c.Send(pdfBytes)
}

func (h *ReportHandler) HandleMatchChart(c *fiber.Ctx) error {
	result, errResp := h.completedResult(c)
	if result == nil {
		return errResp
	}

	view := h.presenter.BuildReportView(result)
	if view.MatchBar == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No match percentage was found for this analysis",
		})
	}

	var buf bytes.Buffer
	if err := h.charts.RenderMatchBarSVG(&buf, view.MatchBar); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to render match chart",
		})
	}

	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(buf.Bytes())
}

func (h *ReportHandler) HandleSkillChart(c *fiber.Ctx) error {
	result, errResp := h.completedResult(c)
	if result == nil {
		return errResp
	}

	view := h.presenter.BuildReportView(result)
	if view.SkillRadar == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No skill scores were found for this analysis",
		})
	}

	var buf bytes.Buffer
	if err := h.charts.RenderSkillRadarSVG(&buf, view.SkillRadar); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to render skill chart",
		})
	}

	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(buf.Bytes())
}

// completedResult loads the analysis and returns its parsed result, or nil
// with the error response already written.
func (h *ReportHandler) completedResult(c *fiber.Ctx) (*models.AnalysisResult, error) {
	analysisID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	analysis, err := h.analysisRepo.FindByID(analysisID)
	if err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}

	if analysis.Status == models.StatusFailed {
		message := "The analysis failed"
		if analysis.ErrorMessage != nil {
			message = *analysis.ErrorMessage
		}
		return nil, c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": message,
		})
	}

	result := analysis.Result()
	if result == nil {
		return nil, c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "The analysis is not completed yet",
		})
	}

	return result, nil
}
