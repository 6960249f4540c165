package payments

import (
	"strings"

	"ledger-backend/internal/auth"
	"ledger-backend/internal/httpx"
	"ledger-backend/internal/ledger"
	"ledger-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	PartyID     uint            `json:"party_id"`
	OrderID     *uint           `json:"order_id"`
	Amount      decimal.Decimal `json:"amount"`
	CurrencyID  uint            `json:"currency_id"`
	PaymentDate string          `json:"payment_date"` // YYYY-MM-DD, empty means today
	Notes       string          `json:"notes"`
}

type PaymentResponse struct {
	ID          uint             `json:"id"`
	Kind        models.PartyKind `json:"kind"`
	PartyID     *uint            `json:"party_id"`
	PartyName   string           `json:"party_name"`
	OrderID     *uint            `json:"order_id"`
	Amount      decimal.Decimal  `json:"amount"`
	CurrencyID  uint             `json:"currency_id"`
	Currency    string           `json:"currency"`
	PaymentDate string           `json:"payment_date"`
	Notes       string           `json:"notes"`
	CreatedAt   string           `json:"created_at"`
}

func toPaymentResponse(p models.Payment) PaymentResponse {
	res := PaymentResponse{
		ID:          p.ID,
		Kind:        p.Kind,
		PartyID:     p.PartyID,
		OrderID:     p.OrderID,
		Amount:      p.Amount,
		CurrencyID:  p.CurrencyID,
		Currency:    p.Currency.Name,
		PaymentDate: p.PaymentDate.Format(httpx.DateLayout),
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if p.Party != nil {
		res.PartyName = p.Party.Name
	}
	return res
}

func parseInput(c *fiber.Ctx) (ledger.PaymentInput, error) {
	var body PaymentRequest
	if err := c.BodyParser(&body); err != nil {
		return ledger.PaymentInput{}, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	date, err := httpx.ParseDate("payment_date", body.PaymentDate)
	if err != nil {
		return ledger.PaymentInput{}, err
	}
	return ledger.PaymentInput{
		PartyID:     body.PartyID,
		OrderID:     body.OrderID,
		Amount:      body.Amount,
		CurrencyID:  body.CurrencyID,
		PaymentDate: date,
		Notes:       strings.TrimSpace(body.Notes),
		CreatedByID: auth.UserID(c),
	}, nil
}

// loadOwn fetches a payment and hides payments of the other kind behind a 404.
func loadOwn(c *fiber.Ctx, svc *ledger.Service, kind models.PartyKind) (*models.Payment, error) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return nil, err
	}
	p, err := svc.GetPayment(c.UserContext(), id)
	if err != nil {
		return nil, err
	}
	if p.Kind != kind {
		return nil, fiber.NewError(fiber.StatusNotFound, "payment not found")
	}
	return p, nil
}

// POST /api/supplier-payments, /api/customer-payments
func CreateHandler(svc *ledger.Service, kind models.PartyKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := parseInput(c)
		if err != nil {
			return err
		}
		p, err := svc.RecordPayment(c.UserContext(), kind, in)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toPaymentResponse(*p))
	}
}

// GET /api/supplier-payments?party_id=&order_id=&from=&to=
func ListHandler(svc *ledger.Service, kind models.PartyKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		partyID, err := httpx.QueryID(c, "party_id")
		if err != nil {
			return err
		}
		orderID, err := httpx.QueryID(c, "order_id")
		if err != nil {
			return err
		}
		from, err := httpx.QueryDate(c, "from")
		if err != nil {
			return err
		}
		to, err := httpx.QueryDate(c, "to")
		if err != nil {
			return err
		}

		list, err := svc.ListPayments(c.UserContext(), ledger.PaymentFilter{
			Kind:    kind,
			PartyID: partyID,
			OrderID: orderID,
			From:    from,
			To:      to,
		})
		if err != nil {
			return err
		}

		res := make([]PaymentResponse, 0, len(list))
		for _, p := range list {
			res = append(res, toPaymentResponse(p))
		}
		return c.JSON(res)
	}
}

// PUT /api/supplier-payments/:id, /api/customer-payments/:id
func UpdateHandler(svc *ledger.Service, kind models.PartyKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		existing, err := loadOwn(c, svc, kind)
		if err != nil {
			return err
		}
		in, err := parseInput(c)
		if err != nil {
			return err
		}
		p, err := svc.UpdatePayment(c.UserContext(), existing.ID, in)
		if err != nil {
			return err
		}
		return c.JSON(toPaymentResponse(*p))
	}
}

// DELETE /api/supplier-payments/:id, /api/customer-payments/:id
func DeleteHandler(svc *ledger.Service, kind models.PartyKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		existing, err := loadOwn(c, svc, kind)
		if err != nil {
			return err
		}
		if err := svc.DeletePayment(c.UserContext(), existing.ID); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
