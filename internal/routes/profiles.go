package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/profile"
)

// RegisterProfileRoutes wires the profile endpoints for both variants.
func RegisterProfileRoutes(r fiber.Router, h *profile.Handler) {
	r.Get("/profiles/:variant", h.Get)
	r.Put("/profiles/:variant", h.Update)
	r.Put("/profiles/:variant/avatar", h.SetAvatar)
	r.Delete("/profiles/:variant/avatar", h.DeleteAvatar)
}
