package ledger

import (
	"context"

	"ledger-backend/internal/models"

	"gorm.io/gorm"
)

// AdjustStock moves a product's on-hand quantity by delta. It must run inside
// the transaction that writes the line item causing the movement.
func AdjustStock(tx *gorm.DB, productID uint, delta int64) error {
	res := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("product", productID)
	}
	return nil
}

// StockMismatch is a product whose stored stock differs from the one implied
// by its opening stock and live line items.
type StockMismatch struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Stored    int64  `json:"stored"`
	Expected  int64  `json:"expected"`
}

// expectedStock computes opening + purchased - sold for every product, counting
// only live items of live orders.
func expectedStock(tx *gorm.DB) ([]models.Product, map[uint]int64, error) {
	var products []models.Product
	if err := tx.Order("id asc").Find(&products).Error; err != nil {
		return nil, nil, err
	}

	type row struct {
		ProductID uint             `gorm:"column:product_id"`
		Kind      models.OrderKind `gorm:"column:kind"`
		Qty       int64            `gorm:"column:qty"`
	}
	var rows []row
	if err := tx.Model(&models.OrderItem{}).
		Select("order_items.product_id, orders.kind, SUM(order_items.quantity) as qty").
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.deleted_at IS NULL").
		Group("order_items.product_id, orders.kind").
		Scan(&rows).Error; err != nil {
		return nil, nil, err
	}

	expected := make(map[uint]int64, len(products))
	for _, p := range products {
		expected[p.ID] = p.OpeningStock
	}
	for _, r := range rows {
		expected[r.ProductID] += r.Kind.StockSign() * r.Qty
	}
	return products, expected, nil
}

// VerifyStock reports every product whose stored stock quantity disagrees with
// its line items.
func (s *Service) VerifyStock(ctx context.Context) ([]StockMismatch, error) {
	products, expected, err := expectedStock(s.query(ctx))
	if err != nil {
		return nil, classify("verify stock", err)
	}

	var out []StockMismatch
	for _, p := range products {
		if p.StockQuantity != expected[p.ID] {
			out = append(out, StockMismatch{ProductID: p.ID, Name: p.Name, Stored: p.StockQuantity, Expected: expected[p.ID]})
		}
	}
	return out, nil
}

// RebuildStock overwrites every mismatched stock quantity with the expected
// value and returns what it changed.
func (s *Service) RebuildStock(ctx context.Context) ([]StockMismatch, error) {
	var out []StockMismatch
	err := s.transaction(ctx, "rebuild stock", func(tx *gorm.DB) error {
		products, expected, err := expectedStock(tx)
		if err != nil {
			return err
		}
		for _, p := range products {
			want := expected[p.ID]
			if p.StockQuantity == want {
				continue
			}
			if err := tx.Model(&models.Product{}).
				Where("id = ?", p.ID).
				UpdateColumn("stock_quantity", want).Error; err != nil {
				return err
			}
			out = append(out, StockMismatch{ProductID: p.ID, Name: p.Name, Stored: p.StockQuantity, Expected: want})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("products", len(out)).Msg("stock rebuilt")
	return out, nil
}
