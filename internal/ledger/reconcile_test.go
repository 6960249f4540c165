package ledger

import (
	"testing"

	"ledger-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineItem(currencyID uint, name string, qty int64, price string) models.OrderItem {
	it := models.OrderItem{
		Quantity:   qty,
		UnitPrice:  dec(price),
		CurrencyID: currencyID,
		Currency:   models.Currency{ID: currencyID, Name: name},
	}
	it.ComputeTotal()
	return it
}

func payment(currencyID uint, amount string) models.Payment {
	return models.Payment{CurrencyID: currencyID, Amount: dec(amount)}
}

func TestRemainingDebtGroupsByCurrency(t *testing.T) {
	items := []models.OrderItem{
		lineItem(2, "EUR", 3, "2.50"),
		lineItem(1, "USD", 10, "5"),
		lineItem(1, "USD", 1, "0.25"),
	}
	payments := []models.Payment{
		payment(1, "20"),
		payment(2, "7.5"),
		payment(1, "5"),
	}

	debt := RemainingDebt(items, payments)
	require.Len(t, debt, 2)

	assert.Equal(t, uint(1), debt[0].CurrencyID)
	assert.Equal(t, "USD", debt[0].Currency)
	assert.True(t, debt[0].Total.Equal(dec("50.25")))
	assert.True(t, debt[0].Paid.Equal(dec("25")))
	assert.True(t, debt[0].Remaining.Equal(dec("25.25")))

	assert.Equal(t, uint(2), debt[1].CurrencyID)
	assert.True(t, debt[1].Total.Equal(dec("7.5")))
	assert.True(t, debt[1].Remaining.IsZero())
}

func TestRemainingDebtIgnoresPhantomCurrency(t *testing.T) {
	debt := RemainingDebt(
		[]models.OrderItem{lineItem(1, "USD", 10, "5")},
		[]models.Payment{payment(2, "30")},
	)

	require.Len(t, debt, 1)
	_, ok := debt.For(2)
	assert.False(t, ok)
	assert.True(t, debt[0].Paid.IsZero())
	assert.Equal(t, models.PaymentStatusUnpaid, DeriveStatus(debt))
}

func TestTotalsMatchRecomputedSums(t *testing.T) {
	items := []models.OrderItem{
		lineItem(1, "USD", 3, "1.10"),
		lineItem(1, "USD", 7, "2.05"),
		lineItem(3, "TRY", 2, "100"),
	}
	totals := Totals(items)
	assert.True(t, totals[1].Equal(dec("17.65")))
	assert.True(t, totals[3].Equal(dec("200")))

	debt := RemainingDebt(items, nil)
	for _, b := range debt {
		assert.True(t, b.Total.Equal(totals[b.CurrencyID]), "currency %d", b.CurrencyID)
	}
}

func TestDeriveStatus(t *testing.T) {
	usd := lineItem(1, "USD", 10, "5")
	eur := lineItem(2, "EUR", 1, "10")

	tests := []struct {
		name     string
		items    []models.OrderItem
		payments []models.Payment
		want     models.PaymentStatus
	}{
		{"nothing paid", []models.OrderItem{usd}, nil, models.PaymentStatusUnpaid},
		{"fully paid", []models.OrderItem{usd}, []models.Payment{payment(1, "50")}, models.PaymentStatusPaid},
		{"overpaid", []models.OrderItem{usd}, []models.Payment{payment(1, "60")}, models.PaymentStatusPaid},
		{"partly paid", []models.OrderItem{usd}, []models.Payment{payment(1, "20")}, models.PaymentStatusPartial},
		{"one currency settled, other open", []models.OrderItem{usd, eur}, []models.Payment{payment(2, "10")}, models.PaymentStatusPartial},
		{"both currencies settled", []models.OrderItem{usd, eur}, []models.Payment{payment(1, "50"), payment(2, "10")}, models.PaymentStatusPaid},
		{"only phantom payment", []models.OrderItem{usd}, []models.Payment{payment(2, "30")}, models.PaymentStatusUnpaid},
		{"zero total", []models.OrderItem{lineItem(1, "USD", 1, "0")}, nil, models.PaymentStatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(RemainingDebt(tt.items, tt.payments)))
		})
	}
}

func TestDue(t *testing.T) {
	single := RemainingDebt([]models.OrderItem{lineItem(1, "USD", 10, "5")}, []models.Payment{payment(1, "20")})
	due := single.Due()
	require.NotNil(t, due.CurrencyID)
	assert.Equal(t, uint(1), *due.CurrencyID)
	assert.Equal(t, "USD", due.Currency)
	assert.True(t, due.Amount.Equal(dec("30")))
	assert.False(t, due.Mixed)

	mixed := RemainingDebt([]models.OrderItem{lineItem(1, "USD", 1, "5"), lineItem(2, "EUR", 1, "5")}, nil)
	due = mixed.Due()
	assert.True(t, due.Mixed)
	assert.Nil(t, due.CurrencyID)
	assert.True(t, due.Amount.IsZero())

	empty := Debt{}.Due()
	assert.False(t, empty.Mixed)
	assert.True(t, empty.Amount.IsZero())
}
