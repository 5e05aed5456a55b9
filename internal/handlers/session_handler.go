package handlers

import (
	"log"

	"bookclub/internal/models"
	"bookclub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles voting sessions, their constraints and book validation.
type SessionHandler struct {
	service  *services.SessionService
	validate *validator.Validate
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(service *services.SessionService) *SessionHandler {
	return &SessionHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the session and validation routes with the Fiber app.
func (h *SessionHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/validate-book", h.HandleValidateBook)

	sessionRoutes := router.Group("/sessions")
	sessionRoutes.Get("/", h.HandleGetSessions)
	sessionRoutes.Post("/", h.HandleCreateSession)
	sessionRoutes.Get("/:id/constraints", h.HandleGetConstraints)
	sessionRoutes.Post("/:id/constraints", h.HandleAddConstraint)
}

// HandleValidateBook checks book attributes against the club rules. Nothing is stored.
func (h *SessionHandler) HandleValidateBook(c *fiber.Ctx) error {
	var attrs services.BookAttributes
	if err := c.BodyParser(&attrs); err != nil {
		log.Printf("Error parsing validate book request body: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	result, err := h.service.ValidateBook(attrs)
	if err != nil {
		log.Printf("Error validating book: %v", err)
		return errorResponse(c, statusFor(err), err.Error())
	}
	return c.JSON(result)
}

func (h *SessionHandler) HandleCreateSession(c *fiber.Ctx) error {
	var session models.VotingSession
	if err := c.BodyParser(&session); err != nil {
		log.Printf("Error parsing create session request body: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if err := h.validate.Struct(session); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, validationMessage(err))
	}

	session.ID = 0
	if err := h.service.CreateSession(&session); err != nil {
		log.Printf("Error creating session: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

func (h *SessionHandler) HandleGetSessions(c *fiber.Ctx) error {
	sessions, err := h.service.GetAllSessions()
	if err != nil {
		log.Printf("Error getting sessions: %v", err)
		return errorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(sessions)
}

func (h *SessionHandler) HandleAddConstraint(c *fiber.Ctx) error {
	sessionID, err := paramID(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	var constraint models.BookConstraint
	if err := c.BodyParser(&constraint); err != nil {
		log.Printf("Error parsing constraint request body: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	if err := h.service.AddConstraint(sessionID, &constraint); err != nil {
		log.Printf("Error adding constraint to session %d: %v", sessionID, err)
		return errorResponse(c, statusFor(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(constraint)
}

func (h *SessionHandler) HandleGetConstraints(c *fiber.Ctx) error {
	sessionID, err := paramID(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	constraints, err := h.service.GetConstraints(sessionID)
	if err != nil {
		log.Printf("Error getting constraints of session %d: %v", sessionID, err)
		return errorResponse(c, statusFor(err), err.Error())
	}
	return c.JSON(constraints)
}
