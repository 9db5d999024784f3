package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/document"
)

// RegisterDocumentRoutes wires document endpoints. Issuance goes through
// the mutating group so it picks up the idempotency middleware.
func RegisterDocumentRoutes(r, mutating fiber.Router, h *document.Handler) {
	mutating.Post("/documents", h.Create)
	r.Get("/documents", h.List)
	r.Get("/documents/:documentId", h.Get)
	r.Get("/documents/:documentId/qr", h.QR)
}
