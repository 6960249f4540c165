package inventory

import (
	"ledger-backend/internal/httpx"
	"ledger-backend/internal/ledger"
	"ledger-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CurrencyResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

func toCurrencyResponse(cur models.Currency) CurrencyResponse {
	return CurrencyResponse{
		ID:        cur.ID,
		Name:      cur.Name,
		IsActive:  cur.IsActive,
		CreatedAt: cur.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/currencies?active=true
func ListCurrenciesHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		currencies, err := svc.ListCurrencies(c.UserContext(), c.QueryBool("active"))
		if err != nil {
			return err
		}

		res := make([]CurrencyResponse, 0, len(currencies))
		for _, cur := range currencies {
			res = append(res, toCurrencyResponse(cur))
		}
		return c.JSON(res)
	}
}

// GET /api/currencies/:id
func GetCurrencyHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		cur, err := svc.GetCurrency(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(toCurrencyResponse(*cur))
	}
}

// POST /api/currencies (admin)
func CreateCurrencyHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ledger.CurrencyInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		cur, err := svc.CreateCurrency(c.UserContext(), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toCurrencyResponse(*cur))
	}
}

// PUT /api/currencies/:id (admin)
func UpdateCurrencyHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}

		var body ledger.CurrencyInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		cur, err := svc.UpdateCurrency(c.UserContext(), id, body)
		if err != nil {
			return err
		}
		return c.JSON(toCurrencyResponse(*cur))
	}
}

// DELETE /api/currencies/:id (admin). 409 while anything uses the currency.
func DeleteCurrencyHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.DeleteCurrency(c.UserContext(), id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
