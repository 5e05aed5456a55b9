package handlers

import (
	"errors"
	"log"

	"bookclub/internal/models"
	"bookclub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for club members.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// HandleCreateUser creates a new member. Role defaults to "member".
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		log.Printf("Error parsing create user request body: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if err := h.validate.Struct(user); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, validationMessage(err))
	}

	user.ID = 0
	if err := h.service.CreateUser(&user); err != nil {
		log.Printf("Error creating user: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleGetUsers lists all members ordered by name.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers()
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return errorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(users)
}

// HandleDeleteUser deletes a member. Only admins may call it, and the body must say
// whether the member's books are deleted or transferred.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	var req services.DeleteUserRequest
	if err := parseOptionalBody(c, &req); err != nil {
		log.Printf("Error parsing delete user request body: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	if err := h.service.DeleteUser(id, req); err != nil {
		log.Printf("Error deleting user %d: %v", id, err)
		switch {
		case errors.Is(err, services.ErrForbidden):
			return errorResponse(c, fiber.StatusForbidden, "Only admin can delete users")
		case errors.Is(err, services.ErrMissingParameter):
			return errorResponse(c, fiber.StatusBadRequest, "Specify transfer_books_to or delete_books")
		case errors.Is(err, services.ErrNotFound):
			return errorResponse(c, fiber.StatusNotFound, "User not found")
		}
		return errorResponse(c, statusFor(err), err.Error())
	}

	resp := fiber.Map{
		"success": true,
		"id":      id,
	}
	if !req.DeleteBooks && req.TransferBooksTo != nil {
		resp["books_transferred"] = *req.TransferBooksTo
	}
	return c.JSON(resp)
}
