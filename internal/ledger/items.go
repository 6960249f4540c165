package ledger

import (
	"ledger-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemInput describes one line item. ID is set only when replacing the items of
// an existing order and names the item to update.
type ItemInput struct {
	ID         *uint           `json:"id"`
	ProductID  uint            `json:"product_id" validate:"required"`
	Quantity   int64           `json:"quantity" validate:"gt=0"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	CurrencyID uint            `json:"currency_id" validate:"required"`
}

// moneyScale is the number of decimal places money columns keep.
const moneyScale = 4

// checkMoney rejects amounts the money columns would round.
func checkMoney(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(moneyScale)) {
		return invalid(field, "must have at most %d decimal places", moneyScale)
	}
	return nil
}

// checkItems verifies prices and that every product and currency exists.
func checkItems(tx *gorm.DB, items []ItemInput) error {
	productIDs := make(map[uint]struct{})
	currencyIDs := make(map[uint]struct{})
	for i, it := range items {
		if it.UnitPrice.IsNegative() {
			return invalid(itemField(i, "unit_price"), "must not be negative")
		}
		if err := checkMoney(itemField(i, "unit_price"), it.UnitPrice); err != nil {
			return err
		}
		productIDs[it.ProductID] = struct{}{}
		currencyIDs[it.CurrencyID] = struct{}{}
	}

	if err := checkExists(tx, &models.Product{}, "product", productIDs); err != nil {
		return err
	}
	return checkExists(tx, &models.Currency{}, "currency", currencyIDs)
}

func checkExists(tx *gorm.DB, model any, entity string, ids map[uint]struct{}) error {
	for id := range ids {
		var count int64
		if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return invalid(entity+"_id", "%s %d does not exist", entity, id)
		}
	}
	return nil
}

func itemField(i int, name string) string {
	return fmtField("items", i, name)
}

// createItem persists a new line item and moves stock by its signed quantity.
func createItem(tx *gorm.DB, order *models.Order, in ItemInput) (*models.OrderItem, error) {
	item := models.OrderItem{
		OrderID:    order.ID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		UnitPrice:  in.UnitPrice,
		CurrencyID: in.CurrencyID,
	}
	item.ComputeTotal()

	if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
		return nil, err
	}
	if err := AdjustStock(tx, item.ProductID, order.Kind.StockSign()*item.Quantity); err != nil {
		return nil, err
	}
	return &item, nil
}

// updateItem rewrites item from in. Stock moves by the signed quantity
// difference; when the product changes, the old product gets its full quantity
// back and the new product takes the new quantity.
func updateItem(tx *gorm.DB, order *models.Order, item *models.OrderItem, in ItemInput) error {
	oldProductID, oldQty := item.ProductID, item.Quantity

	item.ProductID = in.ProductID
	item.Quantity = in.Quantity
	item.UnitPrice = in.UnitPrice
	item.CurrencyID = in.CurrencyID
	item.ComputeTotal()

	if err := tx.Omit(clause.Associations).Save(item).Error; err != nil {
		return err
	}

	sign := order.Kind.StockSign()
	if oldProductID != item.ProductID {
		if err := AdjustStock(tx, oldProductID, -sign*oldQty); err != nil {
			return err
		}
		return AdjustStock(tx, item.ProductID, sign*item.Quantity)
	}
	if oldQty != item.Quantity {
		return AdjustStock(tx, item.ProductID, sign*(item.Quantity-oldQty))
	}
	return nil
}

// deleteItem tombstones item and reverses its stock effect. An item that is
// already tombstoned is left alone, so the reversal happens once.
func deleteItem(tx *gorm.DB, order *models.Order, item *models.OrderItem) error {
	res := tx.Delete(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}
	return AdjustStock(tx, item.ProductID, -order.Kind.StockSign()*item.Quantity)
}

// replaceItems applies in to order.Items: listed ids are updated, items without
// an id are created and items that are not listed are deleted.
func replaceItems(tx *gorm.DB, order *models.Order, in []ItemInput) error {
	existing := make(map[uint]*models.OrderItem, len(order.Items))
	for i := range order.Items {
		existing[order.Items[i].ID] = &order.Items[i]
	}

	keep := make(map[uint]bool, len(in))
	for i, it := range in {
		if it.ID == nil {
			continue
		}
		if _, ok := existing[*it.ID]; !ok {
			return invalid(itemField(i, "id"), "item %d does not belong to order %d", *it.ID, order.ID)
		}
		if keep[*it.ID] {
			return invalid(itemField(i, "id"), "item %d is listed twice", *it.ID)
		}
		keep[*it.ID] = true
	}

	for i := range order.Items {
		if keep[order.Items[i].ID] {
			continue
		}
		if err := deleteItem(tx, order, &order.Items[i]); err != nil {
			return err
		}
	}

	for _, it := range in {
		if it.ID != nil {
			if err := updateItem(tx, order, existing[*it.ID], it); err != nil {
				return err
			}
			continue
		}
		if _, err := createItem(tx, order, it); err != nil {
			return err
		}
	}
	return nil
}
