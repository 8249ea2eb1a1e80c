package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"careercrafter/career-crafter-api/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AnalysisHandler struct {
	analyses services.ResumeAnalysisService
	reports  services.ReportService
	log      logrus.FieldLogger
}

func NewAnalysisHandler(analyses services.ResumeAnalysisService, reports services.ReportService, log logrus.FieldLogger) *AnalysisHandler {
	return &AnalysisHandler{
		analyses: analyses,
		reports:  reports,
		log:      log,
	}
}

// HandleGetAnalysis handles GET /api/analyses/:id
func (h *AnalysisHandler) HandleGetAnalysis(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidAnalysisID(c)
	}

	analysis, err := h.analyses.GetAnalysis(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toAnalysisResponse(analysis))
}

// HandleGetReport handles GET /api/analyses/:id/report.xlsx
func (h *AnalysisHandler) HandleGetReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidAnalysisID(c)
	}

	analysis, err := h.analyses.GetAnalysis(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}

	buf, err := h.reports.BuildAnalysisReport(analysis)
	if err != nil {
		return respondError(c, h.log, err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="analysis-%s.xlsx"`, analysis.ID))
	return c.Send(buf.Bytes())
}

func invalidAnalysisID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid analysis ID format",
	})
}
