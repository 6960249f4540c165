package dashboard

import (
	"ledger-backend/internal/inventory"
	"ledger-backend/internal/ledger"
	"ledger-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type OrderStats struct {
	Paid    int64 `json:"paid"`
	Partial int64 `json:"partial"`
	Unpaid  int64 `json:"unpaid"`
}

type DashboardResponse struct {
	SupplierDebts      []ledger.CurrencyBalance    `json:"supplier_debts"`
	CustomerDebts      []ledger.CurrencyBalance    `json:"customer_debts"`
	Purchases          OrderStats                  `json:"purchases"`
	Sales              OrderStats                  `json:"sales"`
	LowStockProducts   []inventory.ProductResponse `json:"low_stock_products"`
	OutOfStockProducts []inventory.ProductResponse `json:"out_of_stock_products"`
}

func orderStats(counts map[models.PaymentStatus]int64) OrderStats {
	return OrderStats{
		Paid:    counts[models.PaymentStatusPaid],
		Partial: counts[models.PaymentStatusPartial],
		Unpaid:  counts[models.PaymentStatusUnpaid],
	}
}

func productList(svc *ledger.Service, c *fiber.Ctx, f ledger.ProductFilter) ([]inventory.ProductResponse, error) {
	products, err := svc.ListProducts(c.UserContext(), f)
	if err != nil {
		return nil, err
	}
	res := make([]inventory.ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, inventory.ToProductResponse(p))
	}
	return res, nil
}

// GET /api/dashboard
func Handler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		var res DashboardResponse
		var err error

		if res.SupplierDebts, err = svc.OutstandingByCurrency(ctx, models.PartySupplier); err != nil {
			return err
		}
		if res.CustomerDebts, err = svc.OutstandingByCurrency(ctx, models.PartyCustomer); err != nil {
			return err
		}

		purchases, err := svc.StatusCounts(ctx, models.OrderPurchase)
		if err != nil {
			return err
		}
		sales, err := svc.StatusCounts(ctx, models.OrderSale)
		if err != nil {
			return err
		}
		res.Purchases = orderStats(purchases)
		res.Sales = orderStats(sales)

		if res.LowStockProducts, err = productList(svc, c, ledger.ProductFilter{LowStock: true, ActiveOnly: true}); err != nil {
			return err
		}
		if res.OutOfStockProducts, err = productList(svc, c, ledger.ProductFilter{OutOfStock: true, ActiveOnly: true}); err != nil {
			return err
		}

		return c.JSON(res)
	}
}
