package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"careercrafter/career-crafter-api/internal/models"
	"careercrafter/career-crafter-api/internal/services"
)

type RecommendationHandler struct {
	recommendations services.RecommendationService
	log             logrus.FieldLogger
}

func NewRecommendationHandler(recommendations services.RecommendationService, log logrus.FieldLogger) *RecommendationHandler {
	return &RecommendationHandler{
		recommendations: recommendations,
		log:             log,
	}
}

// HandleRecommend handles POST /api/career-recommendations
func (h *RecommendationHandler) HandleRecommend(c *fiber.Ctx) error {
	var req models.RecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	results, err := h.recommendations.Recommend(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	response := models.RecommendationResponse{
		Recommendations: make([]models.RecommendationData, 0, len(results)),
	}
	for _, r := range results {
		response.Recommendations = append(response.Recommendations, models.RecommendationData{
			Career:         r.Career.Title,
			MatchScore:     r.Score,
			Description:    r.Career.Description,
			RequiredSkills: r.Career.RequiredSkills,
			MatchedSkills:  r.MatchedSkills,
			MissingSkills:  r.MissingSkills,
			SalaryRange:    r.Career.SalaryRange,
		})
	}
	return c.JSON(response)
}

// HandleAssessment handles POST /api/career-assessment
func (h *RecommendationHandler) HandleAssessment(c *fiber.Ctx) error {
	var req models.AssessmentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			h.log.WithError(err).Debug("unreadable assessment body, answering with defaults")
			req = models.AssessmentRequest{}
		}
	}
	return c.JSON(h.recommendations.Assess(c.UserContext(), req))
}
