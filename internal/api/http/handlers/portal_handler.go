package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/easyclick/support-desk/internal/api/dto"
	"github.com/easyclick/support-desk/internal/domain"
	"github.com/easyclick/support-desk/internal/service"
	apperrors "github.com/easyclick/support-desk/pkg/util"
)

// PortalHandler serves the public customer endpoints: ticket submission and
// status lookup by public code plus requester email.
type PortalHandler struct {
	service *service.TicketService
}

// NewPortalHandler constructs handler.
func NewPortalHandler(ticketService *service.TicketService) *PortalHandler {
	return &PortalHandler{service: ticketService}
}

// Submit POST /portal/tickets.
func (h *PortalHandler) Submit(c *fiber.Ctx) error {
	var req dto.PortalSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	ticket, err := h.service.PortalSubmit(c.Context(), service.CreateTicketInput{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		RequesterName:  req.Name,
		RequesterEmail: req.Email,
		Tags:           req.Tags,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": portalStatus(ticket, nil)})
}

// Status GET /portal/tickets/:publicId?email=.
func (h *PortalHandler) Status(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	ticket, comments, err := h.service.PortalStatus(c.Params("publicId"), email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": portalStatus(ticket, comments)})
}

// AddComment POST /portal/tickets/:publicId/comments.
func (h *PortalHandler) AddComment(c *fiber.Ctx) error {
	var req dto.PortalCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	comment, err := h.service.PortalAddComment(c.Context(), c.Params("publicId"), req.Email, req.Message)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

func portalStatus(ticket domain.Ticket, comments []domain.Comment) dto.PortalStatusResponse {
	items := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		items = append(items, commentResponse(comment))
	}
	return dto.PortalStatusResponse{
		PublicID:  ticket.PublicID,
		Title:     ticket.Title,
		Status:    ticket.Status,
		Priority:  ticket.Priority,
		CreatedAt: ticket.CreatedAt,
		UpdatedAt: ticket.UpdatedAt,
		Comments:  items,
	}
}
