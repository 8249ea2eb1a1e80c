package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"careercrafter/career-crafter-api/internal/services"
)

// Form fields accepted for the resume upload, in order of preference.
var resumeFields = []string{"file", "resume"}

type ResumeHandler struct {
	analyses    services.ResumeAnalysisService
	maxFileSize int64
	log         logrus.FieldLogger
}

func NewResumeHandler(analyses services.ResumeAnalysisService, maxFileSize int64, log logrus.FieldLogger) *ResumeHandler {
	return &ResumeHandler{
		analyses:    analyses,
		maxFileSize: maxFileSize,
		log:         log,
	}
}

// HandleAnalyze handles POST /api/analyze-resume
func (h *ResumeHandler) HandleAnalyze(c *fiber.Ctx) error {
	header := h.resumeFile(c)
	if header == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file provided",
		})
	}

	if header.Size > h.maxFileSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	data, err := readUpload(header)
	if err != nil {
		return respondError(c, h.log, err)
	}

	analysis, err := h.analyses.AnalyzeUpload(c.UserContext(), services.UploadedFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, c.FormValue("job_description"))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(toAnalysisResponse(analysis))
}

func (h *ResumeHandler) resumeFile(c *fiber.Ctx) *multipart.FileHeader {
	for _, field := range resumeFields {
		if header, err := c.FormFile(field); err == nil {
			return header
		}
	}
	return nil
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}
