package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"careercrafter/career-crafter-api/internal/models"
	"careercrafter/career-crafter-api/internal/services"
)

type RegisterHandler struct {
	users services.UserService
	log   logrus.FieldLogger
}

func NewRegisterHandler(users services.UserService, log logrus.FieldLogger) *RegisterHandler {
	return &RegisterHandler{
		users: users,
		log:   log,
	}
}

// HandleRegister handles POST /api/register. Failures use {"message"}.
func (h *RegisterHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
		})
	}

	user, err := h.users.Register(c.UserContext(), req)
	if err != nil {
		return respondMessage(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.RegisterResponse{
		Message: "User registered successfully",
		ID:      user.ID.String(),
	})
}
