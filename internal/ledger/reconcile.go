package ledger

import (
	"context"
	"sort"

	"ledger-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CurrencyBalance is the debt position in one currency.
type CurrencyBalance struct {
	CurrencyID uint            `json:"currency_id"`
	Currency   string          `json:"currency"`
	Total      decimal.Decimal `json:"total"`
	Paid       decimal.Decimal `json:"paid"`
	Remaining  decimal.Decimal `json:"remaining"`
}

// Debt holds one balance per currency that has a total, ordered by currency id.
type Debt []CurrencyBalance

// For returns the balance in currencyID, if that currency has a total.
func (d Debt) For(currencyID uint) (CurrencyBalance, bool) {
	for _, b := range d {
		if b.CurrencyID == currencyID {
			return b, true
		}
	}
	return CurrencyBalance{}, false
}

// HasDebt reports whether any currency still has something remaining.
func (d Debt) HasDebt() bool {
	for _, b := range d {
		if b.Remaining.IsPositive() {
			return true
		}
	}
	return false
}

// DueSummary is the single-number view of a Debt. It is only meaningful when
// one currency is involved; with several, Mixed is set and Amount stays zero.
type DueSummary struct {
	Amount     decimal.Decimal `json:"amount"`
	CurrencyID *uint           `json:"currency_id"`
	Currency   string          `json:"currency"`
	Mixed      bool            `json:"mixed"`
}

func (d Debt) Due() DueSummary {
	switch len(d) {
	case 0:
		return DueSummary{Amount: decimal.Zero}
	case 1:
		id := d[0].CurrencyID
		return DueSummary{Amount: d[0].Remaining, CurrencyID: &id, Currency: d[0].Currency}
	default:
		return DueSummary{Amount: decimal.Zero, Mixed: true}
	}
}

// Totals sums line-item totals per currency.
func Totals(items []models.OrderItem) map[uint]decimal.Decimal {
	totals := make(map[uint]decimal.Decimal)
	for _, it := range items {
		totals[it.CurrencyID] = totals[it.CurrencyID].Add(it.TotalPrice)
	}
	return totals
}

// PaidAmounts sums payment amounts per currency.
func PaidAmounts(payments []models.Payment) map[uint]decimal.Decimal {
	paid := make(map[uint]decimal.Decimal)
	for _, p := range payments {
		paid[p.CurrencyID] = paid[p.CurrencyID].Add(p.Amount)
	}
	return paid
}

// RemainingDebt matches payments against item totals currency by currency.
// Payments in a currency without any item total are ignored.
func RemainingDebt(items []models.OrderItem, payments []models.Payment) Debt {
	totals := Totals(items)
	paid := PaidAmounts(payments)

	names := make(map[uint]string)
	for _, it := range items {
		if it.Currency.Name != "" {
			names[it.CurrencyID] = it.Currency.Name
		}
	}

	debt := make(Debt, 0, len(totals))
	for currencyID, total := range totals {
		p := paid[currencyID]
		debt = append(debt, CurrencyBalance{
			CurrencyID: currencyID,
			Currency:   names[currencyID],
			Total:      total,
			Paid:       p,
			Remaining:  total.Sub(p),
		})
	}
	sort.Slice(debt, func(i, j int) bool { return debt[i].CurrencyID < debt[j].CurrencyID })
	return debt
}

// DeriveStatus maps a debt to a payment status:
//
//	something remaining, something paid  -> partial
//	something remaining, nothing paid    -> unpaid
//	nothing remaining                    -> paid
func DeriveStatus(d Debt) models.PaymentStatus {
	if !d.HasDebt() {
		return models.PaymentStatusPaid
	}
	for _, b := range d {
		if b.Paid.IsPositive() {
			return models.PaymentStatusPartial
		}
	}
	return models.PaymentStatusUnpaid
}

// updatePaymentStatus recomputes and stores the status of order. The write
// touches only the payment_status column.
func updatePaymentStatus(tx *gorm.DB, order *models.Order) error {
	var items []models.OrderItem
	if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return err
	}
	var payments []models.Payment
	if err := tx.Where("order_id = ?", order.ID).Find(&payments).Error; err != nil {
		return err
	}

	status := DeriveStatus(RemainingDebt(items, payments))
	if err := tx.Model(&models.Order{}).
		Where("id = ?", order.ID).
		UpdateColumn("payment_status", status).Error; err != nil {
		return err
	}
	order.PaymentStatus = status
	return nil
}

// RecomputeStatuses re-derives the payment status of every live order and
// returns how many changed.
func (s *Service) RecomputeStatuses(ctx context.Context) (int, error) {
	changed := 0
	err := s.transaction(ctx, "recompute statuses", func(tx *gorm.DB) error {
		var orders []models.Order
		if err := tx.Order("id asc").Find(&orders).Error; err != nil {
			return err
		}
		for i := range orders {
			before := orders[i].PaymentStatus
			if err := updatePaymentStatus(tx, &orders[i]); err != nil {
				return err
			}
			if orders[i].PaymentStatus != before {
				changed++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info().Int("changed", changed).Msg("payment statuses recomputed")
	return changed, nil
}
