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

type PaymentInput struct {
	PartyID     uint            `json:"party_id" validate:"required"`
	OrderID     *uint           `json:"order_id"`
	Amount      decimal.Decimal `json:"amount"`
	CurrencyID  uint            `json:"currency_id" validate:"required"`
	PaymentDate time.Time       `json:"payment_date" validate:"required"`
	Notes       string          `json:"notes"`
	CreatedByID uint            `json:"-" validate:"required"`
}

type PaymentFilter struct {
	Kind    models.PartyKind
	PartyID *uint
	OrderID *uint
	From    *time.Time
	To      *time.Time
}

func (s *Service) checkPayment(in PaymentInput) error {
	if err := s.check(in); err != nil {
		return err
	}
	if !in.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	return checkMoney("amount", in.Amount)
}

// checkPaymentTarget verifies the party, the currency and, when the payment is
// linked, that the order belongs to that same party.
func checkPaymentTarget(tx *gorm.DB, kind models.PartyKind, in PaymentInput) error {
	if _, err := checkParty(tx, in.PartyID, kind); err != nil {
		return err
	}
	if err := checkExists(tx, &models.Currency{}, "currency", map[uint]struct{}{in.CurrencyID: {}}); err != nil {
		return err
	}
	if in.OrderID == nil {
		return nil
	}

	var order models.Order
	if err := tx.First(&order, "id = ?", *in.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid("order_id", "order %d does not exist", *in.OrderID)
		}
		return err
	}
	if order.Kind.PartyKind() != kind {
		return conflict("order %s is a %s and cannot take a %s payment", order.Number, order.Kind, kind)
	}
	if order.PartyID == nil || *order.PartyID != in.PartyID {
		return conflict("order %s does not belong to party %d", order.Number, in.PartyID)
	}
	return nil
}

// recomputeLinked refreshes the status of the order behind orderID, if any.
func recomputeLinked(tx *gorm.DB, orderID *uint) error {
	if orderID == nil {
		return nil
	}
	var order models.Order
	if err := tx.First(&order, "id = ?", *orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return updatePaymentStatus(tx, &order)
}

// RecordPayment stores a payment from (customer) or to (supplier) a party and
// refreshes the status of the linked order.
func (s *Service) RecordPayment(ctx context.Context, kind models.PartyKind, in PaymentInput) (*models.Payment, error) {
	if err := s.checkPayment(in); err != nil {
		return nil, err
	}

	payment := models.Payment{
		Kind:        kind,
		PartyID:     &in.PartyID,
		OrderID:     in.OrderID,
		Amount:      in.Amount,
		CurrencyID:  in.CurrencyID,
		PaymentDate: in.PaymentDate,
		Notes:       in.Notes,
		CreatedByID: in.CreatedByID,
	}
	err := s.transaction(ctx, "record payment", func(tx *gorm.DB) error {
		if err := checkPaymentTarget(tx, kind, in); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&payment).Error; err != nil {
			return err
		}
		return recomputeLinked(tx, payment.OrderID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Uint("payment_id", payment.ID).Str("amount", payment.Amount.String()).Msg("payment recorded")
	return s.GetPayment(ctx, payment.ID)
}

// UpdatePayment rewrites a payment. Both the previously linked order and the
// newly linked order get their status recomputed.
func (s *Service) UpdatePayment(ctx context.Context, paymentID uint, in PaymentInput) (*models.Payment, error) {
	if err := s.checkPayment(in); err != nil {
		return nil, err
	}

	err := s.transaction(ctx, "update payment", func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, "id = ?", paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("payment", paymentID)
			}
			return err
		}
		if err := checkPaymentTarget(tx, payment.Kind, in); err != nil {
			return err
		}

		oldOrderID := payment.OrderID
		payment.PartyID = &in.PartyID
		payment.OrderID = in.OrderID
		payment.Amount = in.Amount
		payment.CurrencyID = in.CurrencyID
		payment.PaymentDate = in.PaymentDate
		payment.Notes = in.Notes
		if err := tx.Omit(clause.Associations).Save(&payment).Error; err != nil {
			return err
		}

		if oldOrderID != nil && (payment.OrderID == nil || *oldOrderID != *payment.OrderID) {
			if err := recomputeLinked(tx, oldOrderID); err != nil {
				return err
			}
		}
		return recomputeLinked(tx, payment.OrderID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Uint("payment_id", paymentID).Msg("payment updated")
	return s.GetPayment(ctx, paymentID)
}

// DeletePayment tombstones a payment and refreshes its order's status.
func (s *Service) DeletePayment(ctx context.Context, paymentID uint) error {
	err := s.transaction(ctx, "delete payment", func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, "id = ?", paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("payment", paymentID)
			}
			return err
		}
		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}
		return recomputeLinked(tx, payment.OrderID)
	})
	if err != nil {
		return err
	}

	s.log.Debug().Uint("payment_id", paymentID).Msg("payment deleted")
	return nil
}

func (s *Service) GetPayment(ctx context.Context, paymentID uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.query(ctx).
		Preload("Party").
		Preload("Currency").
		First(&payment, "id = ?", paymentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("payment", paymentID)
		}
		return nil, classify("get payment", err)
	}
	return &payment, nil
}

func (s *Service) ListPayments(ctx context.Context, f PaymentFilter) ([]models.Payment, error) {
	dbq := s.query(ctx).Model(&models.Payment{}).
		Preload("Party").
		Preload("Currency")

	if f.Kind != "" {
		dbq = dbq.Where("kind = ?", f.Kind)
	}
	if f.PartyID != nil {
		dbq = dbq.Where("party_id = ?", *f.PartyID)
	}
	if f.OrderID != nil {
		dbq = dbq.Where("order_id = ?", *f.OrderID)
	}
	if f.From != nil {
		dbq = dbq.Where("payment_date >= ?", *f.From)
	}
	if f.To != nil {
		dbq = dbq.Where("payment_date <= ?", *f.To)
	}

	var payments []models.Payment
	if err := dbq.Order("payment_date desc, id desc").Find(&payments).Error; err != nil {
		return nil, classify("list payments", err)
	}
	return payments, nil
}
