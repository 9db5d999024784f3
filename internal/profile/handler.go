package profile

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes profile HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a profile HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type individualPayload struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DateOfBirth string `json:"date_of_birth"`
	Bio         string `json:"bio"`
	Avatar      string `json:"avatar,omitempty"`
}

type organizationPayload struct {
	Name               string `json:"name"`
	BusinessEmail      string `json:"business_email"`
	Phone              string `json:"phone"`
	Address            string `json:"address"`
	RegistrationNumber string `json:"registration_number"`
	Industry           string `json:"industry"`
	FoundingDate       string `json:"founding_date"`
	Description        string `json:"description"`
	Logo               string `json:"logo,omitempty"`
}

type avatarRequest struct {
	Image string `json:"image"`
}

// Get returns the profile record for the requested variant.
func (h *Handler) Get(c *fiber.Ctx) error {
	v, err := ParseVariant(c.Params("variant"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	switch v {
	case VariantIndividual:
		p, err := h.service.GetIndividual(c.UserContext())
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.Status(http.StatusOK).JSON(toIndividualPayload(p))
	default:
		p, err := h.service.GetOrganization(c.UserContext())
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.Status(http.StatusOK).JSON(toOrganizationPayload(p))
	}
}

// Update replaces the profile fields for the requested variant.
func (h *Handler) Update(c *fiber.Ctx) error {
	v, err := ParseVariant(c.Params("variant"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	switch v {
	case VariantIndividual:
		var req individualPayload
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		p, err := h.service.UpdateIndividual(c.UserContext(), Individual{
			FullName:    req.FullName,
			Email:       req.Email,
			Phone:       req.Phone,
			Address:     req.Address,
			DateOfBirth: req.DateOfBirth,
			Bio:         req.Bio,
		})
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return c.Status(http.StatusOK).JSON(toIndividualPayload(p))
	default:
		var req organizationPayload
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		p, err := h.service.UpdateOrganization(c.UserContext(), Organization{
			Name:               req.Name,
			BusinessEmail:      req.BusinessEmail,
			Phone:              req.Phone,
			Address:            req.Address,
			RegistrationNumber: req.RegistrationNumber,
			Industry:           req.Industry,
			FoundingDate:       req.FoundingDate,
			Description:        req.Description,
		})
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return c.Status(http.StatusOK).JSON(toOrganizationPayload(p))
	}
}

// SetAvatar stores the avatar or logo image supplied as base64.
func (h *Handler) SetAvatar(c *fiber.Ctx) error {
	v, err := ParseVariant(c.Params("variant"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	var req avatarRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "image must be base64")
	}
	if err := h.service.SetAvatar(c.UserContext(), v, image); err != nil {
		if errors.Is(err, ErrUnknownVariant) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(http.StatusNoContent)
}

// DeleteAvatar removes the stored avatar or logo.
func (h *Handler) DeleteAvatar(c *fiber.Ctx) error {
	v, err := ParseVariant(c.Params("variant"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.DeleteAvatar(c.UserContext(), v); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(http.StatusNoContent)
}

func toIndividualPayload(p Individual) individualPayload {
	return individualPayload{
		FullName:    p.FullName,
		Email:       p.Email,
		Phone:       p.Phone,
		Address:     p.Address,
		DateOfBirth: p.DateOfBirth,
		Bio:         p.Bio,
		Avatar:      base64.StdEncoding.EncodeToString(p.Avatar),
	}
}

func toOrganizationPayload(p Organization) organizationPayload {
	return organizationPayload{
		Name:               p.Name,
		BusinessEmail:      p.BusinessEmail,
		Phone:              p.Phone,
		Address:            p.Address,
		RegistrationNumber: p.RegistrationNumber,
		Industry:           p.Industry,
		FoundingDate:       p.FoundingDate,
		Description:        p.Description,
		Logo:               base64.StdEncoding.EncodeToString(p.Logo),
	}
}
