package ledger

import (
	"context"
	"errors"
	"time"

	"ledger-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InitialPayment is a payment taken at the moment an order is created.
type InitialPayment struct {
	Amount     decimal.Decimal `json:"amount"`
	CurrencyID uint            `json:"currency_id" validate:"required"`
	Notes      string          `json:"notes"`
}

type CreateOrderInput struct {
	PartyID     *uint            `json:"party_id"`
	OrderDate   time.Time        `json:"order_date" validate:"required"`
	Notes       string           `json:"notes"`
	Items       []ItemInput      `json:"items" validate:"required,min=1,dive"`
	Payments    []InitialPayment `json:"payments" validate:"dive"`
	CreatedByID uint             `json:"-" validate:"required"`
}

type UpdateOrderInput struct {
	PartyID   *uint       `json:"party_id"`
	OrderDate time.Time   `json:"order_date" validate:"required"`
	Notes     string      `json:"notes"`
	Items     []ItemInput `json:"items" validate:"required,min=1,dive"`
}

type OrderFilter struct {
	Kind    models.OrderKind
	Status  models.PaymentStatus
	PartyID *uint
	From    *time.Time
	To      *time.Time
	Search  string
	Limit   int
	Offset  int
}

// checkParty loads a live party and makes sure it is of the wanted kind.
func checkParty(tx *gorm.DB, partyID uint, kind models.PartyKind) (*models.Party, error) {
	var party models.Party
	if err := tx.First(&party, "id = ?", partyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid("party_id", "%s %d does not exist", kind, partyID)
		}
		return nil, err
	}
	if party.Kind != kind {
		return nil, invalid("party_id", "party %d is a %s, not a %s", partyID, party.Kind, kind)
	}
	return &party, nil
}

func checkPartyRequirement(kind models.OrderKind, partyID *uint) error {
	if kind == models.OrderSale && partyID == nil {
		return invalid("party_id", "a sale needs a customer")
	}
	return nil
}

func checkKind(kind models.OrderKind) error {
	if kind != models.OrderPurchase && kind != models.OrderSale {
		return invalid("kind", "unknown order kind %q", kind)
	}
	return nil
}

func loadOrder(tx *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := tx.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("order", orderID)
		}
		return nil, err
	}
	return &order, nil
}

// CreateOrder writes the order header, its items (moving stock for each) and
// any initial payments, then derives the payment status.
func (s *Service) CreateOrder(ctx context.Context, kind models.OrderKind, in CreateOrderInput) (*models.Order, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if err := s.check(in); err != nil {
		return nil, err
	}
	if err := checkPartyRequirement(kind, in.PartyID); err != nil {
		return nil, err
	}
	for i, p := range in.Payments {
		if p.Amount.IsNegative() {
			return nil, invalid(fmtField("payments", i, "amount"), "must not be negative")
		}
		if err := checkMoney(fmtField("payments", i, "amount"), p.Amount); err != nil {
			return nil, err
		}
	}

	var order models.Order
	err := s.transaction(ctx, "create order", func(tx *gorm.DB) error {
		if in.PartyID != nil {
			if _, err := checkParty(tx, *in.PartyID, kind.PartyKind()); err != nil {
				return err
			}
		}
		if err := checkItems(tx, in.Items); err != nil {
			return err
		}

		number, err := nextOrderNumber(tx, kind, s.now())
		if err != nil {
			return err
		}

		order = models.Order{
			Kind:          kind,
			Number:        number,
			PartyID:       in.PartyID,
			OrderDate:     in.OrderDate,
			Notes:         in.Notes,
			PaymentStatus: models.PaymentStatusUnpaid,
			CreatedByID:   in.CreatedByID,
		}
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return err
		}

		for _, it := range in.Items {
			if _, err := createItem(tx, &order, it); err != nil {
				return err
			}
		}

		currencyIDs := make(map[uint]struct{})
		for _, p := range in.Payments {
			currencyIDs[p.CurrencyID] = struct{}{}
		}
		if err := checkExists(tx, &models.Currency{}, "currency", currencyIDs); err != nil {
			return err
		}
		for _, p := range in.Payments {
			if p.Amount.IsZero() {
				continue
			}
			payment := models.Payment{
				Kind:        kind.PartyKind(),
				PartyID:     order.PartyID,
				OrderID:     &order.ID,
				Amount:      p.Amount,
				CurrencyID:  p.CurrencyID,
				PaymentDate: in.OrderDate,
				Notes:       p.Notes,
				CreatedByID: in.CreatedByID,
			}
			if err := tx.Omit(clause.Associations).Create(&payment).Error; err != nil {
				return err
			}
		}

		return updatePaymentStatus(tx, &order)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Uint("order_id", order.ID).Str("number", order.Number).
		Str("status", string(order.PaymentStatus)).Msg("order created")
	return s.GetOrder(ctx, order.ID)
}

// UpdateOrder rewrites the header and replaces the items. Payments linked to
// the order follow it to a new party.
func (s *Service) UpdateOrder(ctx context.Context, orderID uint, in UpdateOrderInput) (*models.Order, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	err := s.transaction(ctx, "update order", func(tx *gorm.DB) error {
		order, err := loadOrder(tx, orderID)
		if err != nil {
			return err
		}
		if err := checkPartyRequirement(order.Kind, in.PartyID); err != nil {
			return err
		}
		if in.PartyID != nil {
			if _, err := checkParty(tx, *in.PartyID, order.Kind.PartyKind()); err != nil {
				return err
			}
		}
		if err := checkItems(tx, in.Items); err != nil {
			return err
		}

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]any{
			"party_id":   in.PartyID,
			"order_date": in.OrderDate,
			"notes":      in.Notes,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Payment{}).
			Where("order_id = ?", order.ID).
			Update("party_id", in.PartyID).Error; err != nil {
			return err
		}

		if err := replaceItems(tx, order, in.Items); err != nil {
			return err
		}
		return updatePaymentStatus(tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Uint("order_id", orderID).Msg("order updated")
	return s.GetOrder(ctx, orderID)
}

// ReplaceOrderItems diffs items against the order's current items and applies
// the result through the line-item lifecycle.
func (s *Service) ReplaceOrderItems(ctx context.Context, orderID uint, items []ItemInput) (*models.Order, error) {
	if len(items) == 0 {
		return nil, invalid("items", "at least one item is required")
	}
	for i := range items {
		if err := s.check(items[i]); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				ve.Field = fmtField("items", i, ve.Field)
			}
			return nil, err
		}
	}

	err := s.transaction(ctx, "replace order items", func(tx *gorm.DB) error {
		order, err := loadOrder(tx, orderID)
		if err != nil {
			return err
		}
		if err := checkItems(tx, items); err != nil {
			return err
		}
		if err := replaceItems(tx, order, items); err != nil {
			return err
		}
		return updatePaymentStatus(tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Uint("order_id", orderID).Int("items", len(items)).Msg("order items replaced")
	return s.GetOrder(ctx, orderID)
}

// DeleteOrder tombstones the order's payments, deletes its items (reversing
// their stock) and finally tombstones the order itself.
func (s *Service) DeleteOrder(ctx context.Context, orderID uint) error {
	err := s.transaction(ctx, "delete order", func(tx *gorm.DB) error {
		order, err := loadOrder(tx, orderID)
		if err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		for i := range order.Items {
			if err := deleteItem(tx, order, &order.Items[i]); err != nil {
				return err
			}
		}
		return tx.Delete(order).Error
	})
	if err != nil {
		return err
	}

	s.log.Debug().Uint("order_id", orderID).Msg("order deleted")
	return nil
}

// GetOrder loads an order with its party, items and payments.
func (s *Service) GetOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.query(ctx).
		Preload("Party").
		Preload("CreatedBy").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Items.Product").
		Preload("Items.Currency").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payment_date desc, id desc") }).
		Preload("Payments.Currency").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("order", orderID)
		}
		return nil, classify("get order", err)
	}
	return &order, nil
}

func (s *Service) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	dbq := s.query(ctx).Model(&models.Order{}).
		Preload("Party").
		Preload("Items.Currency").
		Preload("Payments.Currency")

	if f.Kind != "" {
		dbq = dbq.Where("orders.kind = ?", f.Kind)
	}
	if f.Status != "" {
		dbq = dbq.Where("orders.payment_status = ?", f.Status)
	}
	if f.PartyID != nil {
		dbq = dbq.Where("orders.party_id = ?", *f.PartyID)
	}
	if f.From != nil {
		dbq = dbq.Where("orders.order_date >= ?", *f.From)
	}
	if f.To != nil {
		dbq = dbq.Where("orders.order_date <= ?", *f.To)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		dbq = dbq.Select("orders.*").
			Joins("LEFT JOIN parties ON parties.id = orders.party_id").
			Where("orders.number LIKE ? OR parties.name LIKE ?", like, like)
	}
	if f.Limit > 0 {
		dbq = dbq.Limit(f.Limit)
	}
	if f.Offset > 0 {
		dbq = dbq.Offset(f.Offset)
	}

	var orders []models.Order
	if err := dbq.Order("orders.order_date desc, orders.id desc").Find(&orders).Error; err != nil {
		return nil, classify("list orders", err)
	}
	return orders, nil
}

// RemainingDebt is the per-currency position of one order.
func (s *Service) RemainingDebt(ctx context.Context, orderID uint) (Debt, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return RemainingDebt(order.Items, order.Payments), nil
}
