package handlers

import (
	"log"

	"bookclub/internal/models"
	"bookclub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// VoteHandler handles HTTP requests for votes.
type VoteHandler struct {
	service  *services.VoteService
	validate *validator.Validate
}

// NewVoteHandler creates a new VoteHandler.
func NewVoteHandler(service *services.VoteService) *VoteHandler {
	return &VoteHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the vote routes with the Fiber app.
func (h *VoteHandler) RegisterRoutes(router fiber.Router) {
	voteRoutes := router.Group("/votes")
	voteRoutes.Post("/", h.HandleCastVote)
	voteRoutes.Get("/:book_id/:user_id", h.HandleGetVote)
}

type castVoteRequest struct {
	BookID    *uint `json:"book_id" validate:"required"`
	UserID    *uint `json:"user_id" validate:"required"`
	VoteValue *int  `json:"vote_value"`
}

// HandleCastVote stores a vote, replacing the member's previous vote on the book.
func (h *VoteHandler) HandleCastVote(c *fiber.Ctx) error {
	var req castVoteRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing vote request body: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if err := h.validate.Struct(req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, validationMessage(err))
	}

	vote := models.Vote{
		BookID:    *req.BookID,
		UserID:    *req.UserID,
		VoteValue: req.VoteValue,
	}
	if err := h.service.CastVote(&vote); err != nil {
		log.Printf("Error casting vote: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(vote)
}

// HandleGetVote returns the member's vote on the book, or null if there is none.
func (h *VoteHandler) HandleGetVote(c *fiber.Ctx) error {
	bookID, err := paramID(c, "book_id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	userID, err := paramID(c, "user_id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	vote, err := h.service.GetVote(bookID, userID)
	if err != nil {
		log.Printf("Error getting vote for book %d by user %d: %v", bookID, userID, err)
		return errorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	if vote == nil {
		return c.JSON(nil)
	}
	return c.JSON(vote)
}
