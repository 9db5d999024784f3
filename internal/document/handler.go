package document

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/identity"
	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/ledger"
	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/profile"
)

// Handler exposes document HTTP endpoints.
type Handler struct {
	issuer   *Issuer
	cache    *Cache
	identity *identity.Service
}

// NewHandler builds a document HTTP handler.
func NewHandler(issuer *Issuer, cache *Cache, identitySvc *identity.Service) *Handler {
	return &Handler{issuer: issuer, cache: cache, identity: identitySvc}
}

type createRequest struct {
	Type        string `json:"type"`
	Image       string `json:"image"`
	ProfileType string `json:"profile_type"`
}

type documentResponse struct {
	ID          string `json:"id"`
	TokenID     string `json:"token_id,omitempty"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Image       string `json:"image"`
	DateAdded   string `json:"date_added"`
	ProfileType string `json:"profile_type"`
}

type listResponse struct {
	Documents []documentResponse `json:"documents"`
	Count     int                `json:"count"`
	Warning   string             `json:"warning,omitempty"`
}

// Create captures a document and issues it as a token in one step. A failed
// issuance returns an error and caches nothing; the client may submit a new
// capture explicitly.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "image must be base64")
	}

	account, err := h.identity.GetOrCreate(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	rec, err := h.issuer.Capture(req.Type, image, profile.Variant(req.ProfileType))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	issued, err := h.issuer.Issue(c.UserContext(), rec, account.ID)
	if err != nil {
		return fiber.NewError(issueStatus(err), err.Error())
	}
	return c.Status(http.StatusCreated).JSON(toDocumentResponse(issued))
}

// List reloads the cache from the ledger and returns the requested
// profile's documents, newest first unless sort=asc. A listing failure
// degrades to an empty view with a warning instead of an error status.
func (h *Handler) List(c *fiber.Ctx) error {
	v, err := profile.ParseVariant(c.Query("profile", string(profile.VariantIndividual)))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	descending := c.Query("sort", "desc") != "asc"

	account, err := h.identity.GetOrCreate(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	var warning string
	if err := h.cache.Load(c.UserContext(), account.ID); err != nil {
		warning = "document listing unavailable, showing empty view"
	}

	records := h.cache.SortedByDate(v, descending)
	docs := make([]documentResponse, 0, len(records))
	for _, rec := range records {
		docs = append(docs, toDocumentResponse(rec))
	}
	return c.Status(http.StatusOK).JSON(listResponse{Documents: docs, Count: len(docs), Warning: warning})
}

// Get returns one cached document.
func (h *Handler) Get(c *fiber.Ctx) error {
	rec, ok := h.cache.Get(c.Params("documentId"))
	if !ok {
		return fiber.NewError(http.StatusNotFound, "document not found")
	}
	return c.Status(http.StatusOK).JSON(toDocumentResponse(rec))
}

// QR returns the verification payload the external renderer turns into a
// scannable image.
func (h *Handler) QR(c *fiber.Ctx) error {
	rec, ok := h.cache.Get(c.Params("documentId"))
	if !ok {
		return fiber.NewError(http.StatusNotFound, "document not found")
	}
	payload, err := QRPayload(rec)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(http.StatusOK).Send(payload)
}

func issueStatus(err error) int {
	var rejection *ledger.RejectionError
	switch {
	case errors.Is(err, ErrUnknownType):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrUnavailable):
		return http.StatusBadGateway
	case errors.As(err, &rejection):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func toDocumentResponse(rec Record) documentResponse {
	return documentResponse{
		ID:          rec.ID,
		TokenID:     rec.TokenID,
		Type:        rec.Type.String(),
		Title:       rec.Type.Title(),
		Image:       base64.StdEncoding.EncodeToString(rec.Image),
		DateAdded:   rec.DateAdded(),
		ProfileType: string(rec.OwnerVariant),
	}
}
