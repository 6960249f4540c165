package party

import (
	"strings"

	"ledger-backend/internal/httpx"
	"ledger-backend/internal/ledger"
	"ledger-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response Types
// -------------------------

type PartyResponse struct {
	ID        uint             `json:"id"`
	Kind      models.PartyKind `json:"kind"`
	Name      string           `json:"name"`
	Phone     string           `json:"phone"`
	Email     string           `json:"email"`
	Address   string           `json:"address"`
	Notes     string           `json:"notes"`
	IsActive  bool             `json:"is_active"`
	CreatedAt string           `json:"created_at"`
	UpdatedAt string           `json:"updated_at"`
}

type DebtResponse struct {
	PartyID  uint              `json:"party_id"`
	Name     string            `json:"name"`
	Balances ledger.Debt       `json:"balances"`
	Due      ledger.DueSummary `json:"due"`
	HasDebt  bool              `json:"has_debt"`
}

func toPartyResponse(p models.Party) PartyResponse {
	return PartyResponse{
		ID:        p.ID,
		Kind:      p.Kind,
		Name:      p.Name,
		Phone:     p.Phone,
		Email:     p.Email,
		Address:   p.Address,
		Notes:     p.Notes,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// -------------------------
// Supplier / Customer CRUD
// -------------------------

// GET /api/suppliers, /api/customers
func ListHandler(svc *ledger.Service, kind models.PartyKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		parties, err := svc.ListParties(c.UserContext(), kind, strings.TrimSpace(c.Query("search")))
		if err != nil {
			return err
		}

		res := make([]PartyResponse, 0, len(parties))
		for _, p := range parties {
			res = append(res, toPartyResponse(p))
		}
		return c.JSON(res)
	}
}

// GET /api/suppliers/:id, /api/customers/:id
func GetHandler(svc *ledger.Service, kind models.PartyKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		p, err := svc.GetParty(c.UserContext(), kind, id)
		if err != nil {
			return err
		}
		return c.JSON(toPartyResponse(*p))
	}
}

// POST /api/suppliers, /api/customers
func CreateHandler(svc *ledger.Service, kind models.PartyKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ledger.PartyInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		p, err := svc.CreateParty(c.UserContext(), kind, body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toPartyResponse(*p))
	}
}

// PUT /api/suppliers/:id, /api/customers/:id
func UpdateHandler(svc *ledger.Service, kind models.PartyKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}

		var body ledger.PartyInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		p, err := svc.UpdateParty(c.UserContext(), kind, id, body)
		if err != nil {
			return err
		}
		return c.JSON(toPartyResponse(*p))
	}
}

// DELETE /api/suppliers/:id, /api/customers/:id (admin)
func DeleteHandler(svc *ledger.Service, kind models.PartyKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.DeleteParty(c.UserContext(), kind, id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/suppliers/:id/debt, /api/customers/:id/debt
func DebtHandler(svc *ledger.Service, kind models.PartyKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}

		p, err := svc.GetParty(c.UserContext(), kind, id)
		if err != nil {
			return err
		}
		debt, err := svc.TotalDebt(c.UserContext(), id)
		if err != nil {
			return err
		}

		return c.JSON(DebtResponse{
			PartyID:  p.ID,
			Name:     p.Name,
			Balances: debt,
			Due:      debt.Due(),
			HasDebt:  debt.HasDebt(),
		})
	}
}
