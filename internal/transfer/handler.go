package transfer

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/identity"
	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/ledger"
)

// Handler exposes transfer HTTP endpoints. The sender is always the local
// account identity; only the recipient comes from the request.
type Handler struct {
	service  *Service
	identity *identity.Service
}

// NewHandler builds a transfer HTTP handler.
func NewHandler(service *Service, identitySvc *identity.Service) *Handler {
	return &Handler{service: service, identity: identitySvc}
}

type createRequest struct {
	TokenID string `json:"token_id"`
	To      string `json:"to"`
}

type intentResponse struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	TokenID   string `json:"token_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	State     string `json:"state"`
	CreatedAt string `json:"created_at"`
}

// Create initiates a transfer of an issued token to a recipient account.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	account, err := h.identity.GetOrCreate(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	intent, err := h.service.Create(req.TokenID, account.ID, req.To)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(toResponse(intent))
}

// Confirm executes the remote ownership change for an Initiated intent.
func (h *Handler) Confirm(c *fiber.Ctx) error {
	intent, err := h.service.Confirm(c.UserContext(), c.Params("intentId"))
	if err != nil {
		return fiber.NewError(confirmStatus(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponse(intent))
}

// Abandon terminates an Initiated intent without a remote call.
func (h *Handler) Abandon(c *fiber.Ctx) error {
	intent, err := h.service.Abandon(c.Params("intentId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusConflict, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponse(intent))
}

// Get returns one intent.
func (h *Handler) Get(c *fiber.Ctx) error {
	intent, err := h.service.Get(c.Params("intentId"))
	if err != nil {
		return fiber.NewError(http.StatusNotFound, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponse(intent))
}

func confirmStatus(err error) int {
	var rejection *ledger.RejectionError
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrUnavailable):
		return http.StatusBadGateway
	case errors.As(err, &rejection):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func toResponse(intent Intent) intentResponse {
	return intentResponse{
		ID:        intent.ID,
		Reference: intent.Reference,
		TokenID:   intent.TokenID,
		From:      intent.From,
		To:        intent.To,
		State:     string(intent.State),
		CreatedAt: intent.CreatedAt.Format(time.RFC3339),
	}
}
