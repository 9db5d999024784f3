// Command devledger runs a local stand-in for the remote token ledger so
// the client can be exercised end to end without the real service. State is
// held in memory; every accepted operation is also recorded on a
// hash-linked block log inspectable at GET /chain.
package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/chain"
	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/ledger"
	"github.com/raduu-m/Blockchain-Based-Airline-Ticketing/internal/logging"
)

type createAccountRequest struct {
	ID string `json:"id"`
}

type transferRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	TokenID string `json:"nft_id"`
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8090"
	}
	logger := logging.New(os.Getenv("LOG_LEVEL"))

	backend := ledger.NewInMemory()
	log := chain.NewLog()

	app := fiber.New(fiber.Config{AppName: "devledger"})
	app.Use(recover.New())

	app.Post("/accounts", func(c *fiber.Ctx) error {
		var req createAccountRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).SendString(err.Error())
		}
		if req.ID == "" {
			return c.Status(http.StatusBadRequest).SendString("account id is required")
		}
		if err := backend.CreateAccount(c.UserContext(), req.ID); err != nil {
			return rejectionResponse(c, err)
		}
		log.Append(chain.Transaction{Kind: chain.KindCreateAccount, AccountID: req.ID})
		logger.Info("account created", "account", req.ID)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"id":         req.ID,
			"created_at": time.Now().Unix(),
		})
	})

	app.Post("/tokens", func(c *fiber.Ctx) error {
		var req ledger.IssuanceRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).SendString(err.Error())
		}
		token, err := backend.MintToken(c.UserContext(), req)
		if err != nil {
			return rejectionResponse(c, err)
		}
		log.Append(chain.Transaction{Kind: chain.KindMint, AccountID: token.Owner, Token: &token})
		logger.Info("token minted", "token", token.ID, "owner", token.Owner)
		return c.Status(http.StatusOK).JSON(token)
	})

	app.Get("/accounts/:accountId/tokens", func(c *fiber.Ctx) error {
		tokens, err := backend.ListTokens(c.UserContext(), c.Params("accountId"))
		if err != nil {
			return rejectionResponse(c, err)
		}
		return c.Status(http.StatusOK).JSON(tokens)
	})

	app.Post("/tokens/transfer", func(c *fiber.Ctx) error {
		var req transferRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).SendString(err.Error())
		}
		if err := backend.TransferToken(c.UserContext(), req.From, req.To, req.TokenID); err != nil {
			return rejectionResponse(c, err)
		}
		log.Append(chain.Transaction{Kind: chain.KindTransfer, From: req.From, To: req.To, TokenID: req.TokenID})
		logger.Info("token transferred", "token", req.TokenID, "from", req.From, "to", req.To)
		return c.SendStatus(http.StatusOK)
	})

	app.Get("/chain", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"blocks": log.Blocks(),
			"valid":  log.Verify(),
		})
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(fmt.Sprintf(":%s", port))
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
		if err := app.Shutdown(); err != nil {
			logger.Error("shutdown error", "error", err)
			os.Exit(1)
		}
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}

// rejectionResponse renders in-memory ledger rejections the way the real
// service does: the bare reason as a plain text body.
func rejectionResponse(c *fiber.Ctx, err error) error {
	var rejection *ledger.RejectionError
	if errors.As(err, &rejection) {
		return c.Status(rejection.Status).SendString(rejection.Reason)
	}
	return c.Status(http.StatusInternalServerError).SendString(err.Error())
}
