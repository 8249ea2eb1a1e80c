package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"careercrafter/career-crafter-api/internal/services"
)

const msgUnsupportedUpload = "Please upload a PDF or DOCX file"

// respondError writes {"error": message} with the status matching err.
func respondError(c *fiber.Ctx, log logrus.FieldLogger, err error) error {
	code, message := errorStatus(c, log, err)
	return c.Status(code).JSON(fiber.Map{"error": message})
}

// respondMessage is respondError for routes whose clients read {"message"}.
func respondMessage(c *fiber.Ctx, log logrus.FieldLogger, err error) error {
	code, message := errorStatus(c, log, err)
	return c.Status(code).JSON(fiber.Map{"message": message})
}

func errorStatus(c *fiber.Ctx, log logrus.FieldLogger, err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrUserAlreadyExists):
		return fiber.StatusConflict, "User already exists"
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound, "Not found"
	}

	switch services.KindOf(err) {
	case services.KindValidation:
		return fiber.StatusBadRequest, err.Error()
	case services.KindUnsupportedFormat:
		return fiber.StatusUnsupportedMediaType, msgUnsupportedUpload
	case services.KindExtraction:
		return fiber.StatusUnprocessableEntity, err.Error()
	case services.KindNoMatch:
		return fiber.StatusNotFound, err.Error()
	}

	log.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error("request failed")
	return fiber.StatusInternalServerError, "Internal server error"
}

// ErrorHandler renders errors that escape handlers, including fiber's own.
func ErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		} else {
			log.WithError(err).WithField("path", c.Path()).Error("unhandled error")
		}

		return c.Status(code).JSON(fiber.Map{
			"error": message,
			"code":  code,
		})
	}
}
