package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/transfer"
)

// RegisterTransferRoutes wires transfer endpoints. Creation and
// confirmation go through the mutating group for idempotency.
func RegisterTransferRoutes(r, mutating fiber.Router, h *transfer.Handler) {
	mutating.Post("/transfers", h.Create)
	mutating.Post("/transfers/:intentId/confirm", h.Confirm)
	mutating.Post("/transfers/:intentId/abandon", h.Abandon)
	r.Get("/transfers/:intentId", h.Get)
}
