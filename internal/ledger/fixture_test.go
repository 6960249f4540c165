package ledger

import (
	"context"
	"testing"
	"time"

	"ledger-backend/internal/models"
	"ledger-backend/internal/testdb"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	t        *testing.T
	ctx      context.Context
	db       *gorm.DB
	svc      *Service
	user     models.User
	usd      models.Currency
	eur      models.Currency
	supplier models.Party
	customer models.Party
	widget   models.Product
	gadget   models.Product
}

var day = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testdb.New(t)
	svc := NewService(db)
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC) }

	f := &fixture{t: t, ctx: context.Background(), db: db, svc: svc}

	f.user = models.User{Name: "Test", Email: "test@example.com", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&f.user).Error)

	usd, err := svc.CreateCurrency(f.ctx, CurrencyInput{Name: "USD"})
	require.NoError(t, err)
	eur, err := svc.CreateCurrency(f.ctx, CurrencyInput{Name: "EUR"})
	require.NoError(t, err)
	f.usd, f.eur = *usd, *eur

	sup, err := svc.CreateParty(f.ctx, models.PartySupplier, PartyInput{Name: "Acme Supplies"})
	require.NoError(t, err)
	cus, err := svc.CreateParty(f.ctx, models.PartyCustomer, PartyInput{Name: "Jane Doe"})
	require.NoError(t, err)
	f.supplier, f.customer = *sup, *cus

	f.widget = f.product("Widget", 0)
	f.gadget = f.product("Gadget", 100)
	return f
}

func (f *fixture) product(name string, opening int64) models.Product {
	f.t.Helper()
	p, err := f.svc.CreateProduct(f.ctx, ProductInput{
		Name:         name,
		BuyPrice:     dec("4"),
		SellPrice:    dec("6"),
		CurrencyID:   f.usd.ID,
		OpeningStock: opening,
	})
	require.NoError(f.t, err)
	return *p
}

func (f *fixture) stock(productID uint) int64 {
	f.t.Helper()
	var p models.Product
	require.NoError(f.t, f.db.First(&p, productID).Error)
	return p.StockQuantity
}

func (f *fixture) item(productID uint, qty int64, price string, currencyID uint) ItemInput {
	return ItemInput{ProductID: productID, Quantity: qty, UnitPrice: dec(price), CurrencyID: currencyID}
}

// purchase creates a supplier purchase of 10 widgets at 5 USD with no payment.
func (f *fixture) purchase() *models.Order {
	f.t.Helper()
	order, err := f.svc.CreateOrder(f.ctx, models.OrderPurchase, CreateOrderInput{
		PartyID:     &f.supplier.ID,
		OrderDate:   day,
		Items:       []ItemInput{f.item(f.widget.ID, 10, "5", f.usd.ID)},
		CreatedByID: f.user.ID,
	})
	require.NoError(f.t, err)
	return order
}

func (f *fixture) pay(kind models.PartyKind, partyID uint, orderID *uint, amount string, currencyID uint) *models.Payment {
	f.t.Helper()
	p, err := f.svc.RecordPayment(f.ctx, kind, PaymentInput{
		PartyID:     partyID,
		OrderID:     orderID,
		Amount:      dec(amount),
		CurrencyID:  currencyID,
		PaymentDate: day,
		CreatedByID: f.user.ID,
	})
	require.NoError(f.t, err)
	return p
}

func (f *fixture) status(orderID uint) models.PaymentStatus {
	f.t.Helper()
	var o models.Order
	require.NoError(f.t, f.db.Unscoped().First(&o, orderID).Error)
	return o.PaymentStatus
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
