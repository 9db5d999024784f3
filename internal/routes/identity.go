package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/identity"
)

// RegisterIdentityRoutes wires identity endpoints. The service is small
// enough to use directly, no dedicated handler needed.
func RegisterIdentityRoutes(r fiber.Router, svc *identity.Service) {
	r.Get("/identity", func(c *fiber.Ctx) error {
		account, err := svc.GetOrCreate(c.UserContext())
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"account_id": account.ID,
			"registered": account.Registered,
		})
	})

	// Explicit operator retry of the one-time remote registration.
	r.Post("/identity/register", func(c *fiber.Ctx) error {
		account, err := svc.RetryRegistration(c.UserContext())
		if err != nil {
			return fiber.NewError(http.StatusBadGateway, err.Error())
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"account_id": account.ID,
			"registered": account.Registered,
		})
	})
}
