package orders

import (
	"strings"

	"ledger-backend/internal/auth"
	"ledger-backend/internal/httpx"
	"ledger-backend/internal/ledger"
	"ledger-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// -------------------------
// Request/Response Types
// -------------------------

type OrderRequest struct {
	PartyID   *uint                   `json:"party_id"`
	OrderDate string                  `json:"order_date"` // YYYY-MM-DD, empty means today
	Notes     string                  `json:"notes"`
	Items     []ledger.ItemInput      `json:"items"`
	Payments  []ledger.InitialPayment `json:"payments"` // only read on create
}

type ReplaceItemsRequest struct {
	Items []ledger.ItemInput `json:"items"`
}

type ItemResponse struct {
	ID         uint            `json:"id"`
	ProductID  uint            `json:"product_id"`
	Product    string          `json:"product"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	CurrencyID uint            `json:"currency_id"`
	Currency   string          `json:"currency"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type PaymentResponse struct {
	ID          uint            `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	CurrencyID  uint            `json:"currency_id"`
	Currency    string          `json:"currency"`
	PaymentDate string          `json:"payment_date"`
	Notes       string          `json:"notes"`
}

type OrderResponse struct {
	ID            uint                 `json:"id"`
	Kind          models.OrderKind     `json:"kind"`
	Number        string               `json:"number"`
	PartyID       *uint                `json:"party_id"`
	PartyName     string               `json:"party_name"`
	OrderDate     string               `json:"order_date"`
	Notes         string               `json:"notes"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	CreatedBy     string               `json:"created_by,omitempty"`
	Items         []ItemResponse       `json:"items"`
	Payments      []PaymentResponse    `json:"payments,omitempty"`
	Debt          ledger.Debt          `json:"debt"`
	CreatedAt     string               `json:"created_at"`
}

func toOrderResponse(o models.Order) OrderResponse {
	res := OrderResponse{
		ID:            o.ID,
		Kind:          o.Kind,
		Number:        o.Number,
		PartyID:       o.PartyID,
		OrderDate:     o.OrderDate.Format(httpx.DateLayout),
		Notes:         o.Notes,
		PaymentStatus: o.PaymentStatus,
		CreatedBy:     o.CreatedBy.Name,
		Items:         make([]ItemResponse, 0, len(o.Items)),
		Debt:          ledger.RemainingDebt(o.Items, o.Payments),
		CreatedAt:     o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if o.Party != nil {
		res.PartyName = o.Party.Name
	}
	for _, it := range o.Items {
		res.Items = append(res.Items, ItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Product:    it.Product.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			CurrencyID: it.CurrencyID,
			Currency:   it.Currency.Name,
			TotalPrice: it.TotalPrice,
		})
	}
	for _, p := range o.Payments {
		res.Payments = append(res.Payments, PaymentResponse{
			ID:          p.ID,
			Amount:      p.Amount,
			CurrencyID:  p.CurrencyID,
			Currency:    p.Currency.Name,
			PaymentDate: p.PaymentDate.Format(httpx.DateLayout),
			Notes:       p.Notes,
		})
	}
	return res
}

// -------------------------
// Purchases / Sales
// -------------------------

// POST /api/purchases, /api/sales
func CreateHandler(svc *ledger.Service, kind models.OrderKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		date, err := httpx.ParseDate("order_date", body.OrderDate)
		if err != nil {
			return err
		}

		order, err := svc.CreateOrder(c.UserContext(), kind, ledger.CreateOrderInput{
			PartyID:     body.PartyID,
			OrderDate:   date,
			Notes:       strings.TrimSpace(body.Notes),
			Items:       body.Items,
			Payments:    body.Payments,
			CreatedByID: auth.UserID(c),
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toOrderResponse(*order))
	}
}

// GET /api/purchases, /api/sales?status=&party_id=&from=&to=&search=&limit=&offset=
func ListHandler(svc *ledger.Service, kind models.OrderKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		partyID, err := httpx.QueryID(c, "party_id")
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

		status := models.PaymentStatus(c.Query("status"))
		switch status {
		case "", models.PaymentStatusPaid, models.PaymentStatusPartial, models.PaymentStatusUnpaid:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "status must be paid, partial or unpaid")
		}

		list, err := svc.ListOrders(c.UserContext(), ledger.OrderFilter{
			Kind:    kind,
			Status:  status,
			PartyID: partyID,
			From:    from,
			To:      to,
			Search:  strings.TrimSpace(c.Query("search")),
			Limit:   c.QueryInt("limit", 100),
			Offset:  c.QueryInt("offset", 0),
		})
		if err != nil {
			return err
		}

		res := make([]OrderResponse, 0, len(list))
		for _, o := range list {
			res = append(res, toOrderResponse(o))
		}
		return c.JSON(res)
	}
}

// loadOwn fetches an order and hides orders of the other kind behind a 404.
func loadOwn(c *fiber.Ctx, svc *ledger.Service, kind models.OrderKind) (*models.Order, error) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return nil, err
	}
	order, err := svc.GetOrder(c.UserContext(), id)
	if err != nil {
		return nil, err
	}
	if order.Kind != kind {
		return nil, fiber.NewError(fiber.StatusNotFound, string(kind)+" not found")
	}
	return order, nil
}

// GET /api/purchases/:id, /api/sales/:id
func GetHandler(svc *ledger.Service, kind models.OrderKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		order, err := loadOwn(c, svc, kind)
		if err != nil {
			return err
		}
		return c.JSON(toOrderResponse(*order))
	}
}

// PUT /api/purchases/:id, /api/sales/:id
func UpdateHandler(svc *ledger.Service, kind models.OrderKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		existing, err := loadOwn(c, svc, kind)
		if err != nil {
			return err
		}

		var body OrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		date, err := httpx.ParseDate("order_date", body.OrderDate)
		if err != nil {
			return err
		}

		order, err := svc.UpdateOrder(c.UserContext(), existing.ID, ledger.UpdateOrderInput{
			PartyID:   body.PartyID,
			OrderDate: date,
			Notes:     strings.TrimSpace(body.Notes),
			Items:     body.Items,
		})
		if err != nil {
			return err
		}
		return c.JSON(toOrderResponse(*order))
	}
}

// PUT /api/purchases/:id/items, /api/sales/:id/items
func ReplaceItemsHandler(svc *ledger.Service, kind models.OrderKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		existing, err := loadOwn(c, svc, kind)
		if err != nil {
			return err
		}

		var body ReplaceItemsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		order, err := svc.ReplaceOrderItems(c.UserContext(), existing.ID, body.Items)
		if err != nil {
			return err
		}
		return c.JSON(toOrderResponse(*order))
	}
}

// DELETE /api/purchases/:id, /api/sales/:id
func DeleteHandler(svc *ledger.Service, kind models.OrderKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		existing, err := loadOwn(c, svc, kind)
		if err != nil {
			return err
		}
		if err := svc.DeleteOrder(c.UserContext(), existing.ID); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/purchases/:id/debt, /api/sales/:id/debt
func DebtHandler(svc *ledger.Service, kind models.OrderKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		order, err := loadOwn(c, svc, kind)
		if err != nil {
			return err
		}

		debt := ledger.RemainingDebt(order.Items, order.Payments)
		return c.JSON(fiber.Map{
			"order_id":       order.ID,
			"number":         order.Number,
			"payment_status": order.PaymentStatus,
			"balances":       debt,
			"due":            debt.Due(),
		})
	}
}
