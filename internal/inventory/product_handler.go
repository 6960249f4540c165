package inventory

import (
	"strings"

	"ledger-backend/internal/httpx"
	"ledger-backend/internal/ledger"
	"ledger-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Barcode       *string         `json:"barcode"`
	Description   string          `json:"description"`
	BuyPrice      decimal.Decimal `json:"buy_price"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	CurrencyID    uint            `json:"currency_id"`
	Currency      string          `json:"currency"`
	OpeningStock  int64           `json:"opening_stock"`
	StockQuantity int64           `json:"stock_quantity"`
	MinStockAlert int64           `json:"min_stock_alert"`
	IsLowStock    bool            `json:"is_low_stock"`
	IsOutOfStock  bool            `json:"is_out_of_stock"`
	IsActive      bool            `json:"is_active"`
}

func ToProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Barcode:       p.Barcode,
		Description:   p.Description,
		BuyPrice:      p.BuyPrice,
		SellPrice:     p.SellPrice,
		CurrencyID:    p.CurrencyID,
		Currency:      p.Currency.Name,
		OpeningStock:  p.OpeningStock,
		StockQuantity: p.StockQuantity,
		MinStockAlert: p.MinStockAlert,
		IsLowStock:    p.IsLowStock(),
		IsOutOfStock:  p.IsOutOfStock(),
		IsActive:      p.IsActive,
	}
}

// GET /api/products?search=&low_stock=true&out_of_stock=true&active=true
func ListProductsHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		products, err := svc.ListProducts(c.UserContext(), ledger.ProductFilter{
			Search:     strings.TrimSpace(c.Query("search")),
			LowStock:   c.QueryBool("low_stock"),
			OutOfStock: c.QueryBool("out_of_stock"),
			ActiveOnly: c.QueryBool("active"),
		})
		if err != nil {
			return err
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, ToProductResponse(p))
		}
		return c.JSON(res)
	}
}

// GET /api/products/:id
func GetProductHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		p, err := svc.GetProduct(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(ToProductResponse(*p))
	}
}

// POST /api/products (admin)
func CreateProductHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ledger.ProductInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		p, err := svc.CreateProduct(c.UserContext(), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(ToProductResponse(*p))
	}
}

// PUT /api/products/:id (admin). opening_stock and stock_quantity are ignored.
func UpdateProductHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}

		var body ledger.ProductInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		p, err := svc.UpdateProduct(c.UserContext(), id, body)
		if err != nil {
			return err
		}
		return c.JSON(ToProductResponse(*p))
	}
}

// DELETE /api/products/:id (admin)
func DeleteProductHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.DeleteProduct(c.UserContext(), id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
