package ledger

import (
	"context"
	"errors"
	"sort"

	"ledger-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TotalDebt is the account-level position of a party: every live order's items
// against every live payment of the party, linked to an order or not.
func (s *Service) TotalDebt(ctx context.Context, partyID uint) (Debt, error) {
	db := s.query(ctx)

	var party models.Party
	if err := db.First(&party, "id = ?", partyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("party", partyID)
		}
		return nil, classify("total debt", err)
	}

	items, payments, err := partyRows(db, []uint{partyID})
	if err != nil {
		return nil, classify("total debt", err)
	}
	return RemainingDebt(items, payments), nil
}

// partyRows loads the live items and payments of the given parties.
func partyRows(db *gorm.DB, partyIDs []uint) ([]models.OrderItem, []models.Payment, error) {
	var items []models.OrderItem
	if err := db.
		Select("order_items.*").
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.deleted_at IS NULL").
		Where("orders.party_id IN ?", partyIDs).
		Preload("Currency").
		Find(&items).Error; err != nil {
		return nil, nil, err
	}

	var payments []models.Payment
	if err := db.Where("party_id IN ?", partyIDs).Find(&payments).Error; err != nil {
		return nil, nil, err
	}
	return items, payments, nil
}

// PartyDebt pairs a party with its account-level debt.
type PartyDebt struct {
	Party models.Party
	Debt  Debt
}

// PartyDebts computes TotalDebt for every party of kind in a single pass.
func (s *Service) PartyDebts(ctx context.Context, kind models.PartyKind) ([]PartyDebt, error) {
	db := s.query(ctx)

	var parties []models.Party
	if err := db.Where("kind = ?", kind).Order("name asc").Find(&parties).Error; err != nil {
		return nil, classify("party debts", err)
	}
	if len(parties) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(parties))
	for _, p := range parties {
		ids = append(ids, p.ID)
	}

	var orders []models.Order
	if err := db.Select("id", "party_id").Where("party_id IN ?", ids).Find(&orders).Error; err != nil {
		return nil, classify("party debts", err)
	}
	owner := make(map[uint]uint, len(orders))
	for _, o := range orders {
		owner[o.ID] = *o.PartyID
	}

	items, payments, err := partyRows(db, ids)
	if err != nil {
		return nil, classify("party debts", err)
	}

	itemsByParty := make(map[uint][]models.OrderItem)
	for _, it := range items {
		partyID := owner[it.OrderID]
		itemsByParty[partyID] = append(itemsByParty[partyID], it)
	}
	paymentsByParty := make(map[uint][]models.Payment)
	for _, p := range payments {
		paymentsByParty[*p.PartyID] = append(paymentsByParty[*p.PartyID], p)
	}

	out := make([]PartyDebt, 0, len(parties))
	for _, p := range parties {
		out = append(out, PartyDebt{Party: p, Debt: RemainingDebt(itemsByParty[p.ID], paymentsByParty[p.ID])})
	}
	return out, nil
}

// OutstandingByCurrency sums the positive remaining debt of all parties of kind,
// per currency. Parties that overpaid in a currency do not offset the others.
func (s *Service) OutstandingByCurrency(ctx context.Context, kind models.PartyKind) ([]CurrencyBalance, error) {
	debts, err := s.PartyDebts(ctx, kind)
	if err != nil {
		return nil, err
	}

	sums := make(map[uint]*CurrencyBalance)
	for _, pd := range debts {
		for _, b := range pd.Debt {
			if !b.Remaining.IsPositive() {
				continue
			}
			acc, ok := sums[b.CurrencyID]
			if !ok {
				acc = &CurrencyBalance{CurrencyID: b.CurrencyID, Currency: b.Currency, Total: decimal.Zero, Paid: decimal.Zero, Remaining: decimal.Zero}
				sums[b.CurrencyID] = acc
			}
			acc.Total = acc.Total.Add(b.Total)
			acc.Paid = acc.Paid.Add(b.Paid)
			acc.Remaining = acc.Remaining.Add(b.Remaining)
		}
	}

	out := make([]CurrencyBalance, 0, len(sums))
	for _, b := range sums {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrencyID < out[j].CurrencyID })
	return out, nil
}

// StatusCounts counts live orders of kind per payment status. Every status is
// present in the result, zero or not.
func (s *Service) StatusCounts(ctx context.Context, kind models.OrderKind) (map[models.PaymentStatus]int64, error) {
	var rows []struct {
		PaymentStatus models.PaymentStatus
		N             int64
	}
	if err := s.query(ctx).Model(&models.Order{}).
		Select("payment_status, COUNT(*) AS n").
		Where("kind = ?", kind).
		Group("payment_status").
		Scan(&rows).Error; err != nil {
		return nil, classify("status counts", err)
	}

	out := map[models.PaymentStatus]int64{
		models.PaymentStatusPaid:    0,
		models.PaymentStatusPartial: 0,
		models.PaymentStatusUnpaid:  0,
	}
	for _, r := range rows {
		out[r.PaymentStatus] = r.N
	}
	return out, nil
}
