package ledger

import (
	"testing"
	"time"

	"ledger-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseScenarios(t *testing.T) {
	t.Run("unpaid purchase adds stock", func(t *testing.T) {
		f := newFixture(t)
		order := f.purchase()

		assert.Equal(t, "PUR-20240315-00001", order.Number)
		assert.Equal(t, int64(10), f.stock(f.widget.ID))
		assert.Equal(t, models.PaymentStatusUnpaid, order.PaymentStatus)

		debt, err := f.svc.RemainingDebt(f.ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, debt, 1)
		assert.Equal(t, f.usd.ID, debt[0].CurrencyID)
		assert.Equal(t, "USD", debt[0].Currency)
		assert.True(t, debt[0].Total.Equal(dec("50")))
		assert.True(t, debt[0].Paid.IsZero())
		assert.True(t, debt[0].Remaining.Equal(dec("50")))
	})

	t.Run("full payment settles", func(t *testing.T) {
		f := newFixture(t)
		order := f.purchase()
		f.pay(models.PartySupplier, f.supplier.ID, &order.ID, "50", f.usd.ID)

		debt, err := f.svc.RemainingDebt(f.ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, debt, 1)
		assert.True(t, debt[0].Paid.Equal(dec("50")))
		assert.True(t, debt[0].Remaining.IsZero())
		assert.Equal(t, models.PaymentStatusPaid, f.status(order.ID))
	})

	t.Run("partial payment", func(t *testing.T) {
		f := newFixture(t)
		order := f.purchase()
		f.pay(models.PartySupplier, f.supplier.ID, &order.ID, "20", f.usd.ID)

		debt, err := f.svc.RemainingDebt(f.ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, debt, 1)
		assert.True(t, debt[0].Paid.Equal(dec("20")))
		assert.True(t, debt[0].Remaining.Equal(dec("30")))
		assert.Equal(t, models.PaymentStatusPartial, f.status(order.ID))
	})

	t.Run("payment in a currency the order does not use has no effect", func(t *testing.T) {
		f := newFixture(t)
		order := f.purchase()
		f.pay(models.PartySupplier, f.supplier.ID, &order.ID, "30", f.eur.ID)

		debt, err := f.svc.RemainingDebt(f.ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, debt, 1)
		_, hasEUR := debt.For(f.eur.ID)
		assert.False(t, hasEUR)
		assert.True(t, debt[0].Paid.IsZero())
		assert.True(t, debt[0].Remaining.Equal(dec("50")))
		assert.Equal(t, models.PaymentStatusUnpaid, f.status(order.ID))
	})
}

func TestCreateOrderWithInitialPayments(t *testing.T) {
	f := newFixture(t)

	order, err := f.svc.CreateOrder(f.ctx, models.OrderSale, CreateOrderInput{
		PartyID:   &f.customer.ID,
		OrderDate: day,
		Items: []ItemInput{
			f.item(f.gadget.ID, 2, "6", f.usd.ID),
			f.item(f.gadget.ID, 1, "10", f.eur.ID),
		},
		Payments: []InitialPayment{
			{Amount: dec("12"), CurrencyID: f.usd.ID},
			{Amount: dec("0"), CurrencyID: f.eur.ID},
		},
		CreatedByID: f.user.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "SAL-20240315-00001", order.Number)
	assert.Equal(t, int64(97), f.stock(f.gadget.ID))
	require.Len(t, order.Payments, 1, "zero amount payments are skipped")
	assert.Equal(t, &f.customer.ID, order.Payments[0].PartyID)
	assert.Equal(t, models.PaymentStatusPartial, order.PaymentStatus)

	_, err = f.svc.CreateOrder(f.ctx, models.OrderSale, CreateOrderInput{
		PartyID:     &f.customer.ID,
		OrderDate:   day,
		Items:       []ItemInput{f.item(f.gadget.ID, 1, "6", f.usd.ID)},
		Payments:    []InitialPayment{{Amount: dec("-1"), CurrencyID: f.usd.ID}},
		CreatedByID: f.user.ID,
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "payments[0].amount", ve.Field)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		kind  models.OrderKind
		in    CreateOrderInput
		field string
	}{
		{
			name:  "no items",
			kind:  models.OrderPurchase,
			in:    CreateOrderInput{PartyID: &f.supplier.ID, OrderDate: day, CreatedByID: f.user.ID},
			field: "items",
		},
		{
			name: "zero quantity",
			kind: models.OrderPurchase,
			in: CreateOrderInput{PartyID: &f.supplier.ID, OrderDate: day, CreatedByID: f.user.ID,
				Items: []ItemInput{f.item(f.widget.ID, 0, "5", f.usd.ID)}},
			field: "items[0].quantity",
		},
		{
			name: "negative price",
			kind: models.OrderPurchase,
			in: CreateOrderInput{PartyID: &f.supplier.ID, OrderDate: day, CreatedByID: f.user.ID,
				Items: []ItemInput{f.item(f.widget.ID, 1, "-5", f.usd.ID)}},
			field: "items[0].unit_price",
		},
		{
			name: "unknown product",
			kind: models.OrderPurchase,
			in: CreateOrderInput{PartyID: &f.supplier.ID, OrderDate: day, CreatedByID: f.user.ID,
				Items: []ItemInput{f.item(999, 1, "5", f.usd.ID)}},
			field: "product_id",
		},
		{
			name: "sale without customer",
			kind: models.OrderSale,
			in: CreateOrderInput{OrderDate: day, CreatedByID: f.user.ID,
				Items: []ItemInput{f.item(f.widget.ID, 1, "5", f.usd.ID)}},
			field: "party_id",
		},
		{
			name: "purchase from a customer",
			kind: models.OrderPurchase,
			in: CreateOrderInput{PartyID: &f.customer.ID, OrderDate: day, CreatedByID: f.user.ID,
				Items: []ItemInput{f.item(f.widget.ID, 1, "5", f.usd.ID)}},
			field: "party_id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateOrder(f.ctx, tt.kind, tt.in)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	// nothing was written
	assert.Equal(t, int64(0), f.stock(f.widget.ID))
	var n int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestPurchaseWithoutSupplierIsAllowed(t *testing.T) {
	f := newFixture(t)
	order, err := f.svc.CreateOrder(f.ctx, models.OrderPurchase, CreateOrderInput{
		OrderDate:   day,
		Items:       []ItemInput{f.item(f.widget.ID, 3, "5", f.usd.ID)},
		CreatedByID: f.user.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, order.PartyID)
	assert.Equal(t, int64(3), f.stock(f.widget.ID))
}

func TestOrderNumbersAreSequentialPerKind(t *testing.T) {
	f := newFixture(t)

	first := f.purchase()
	second := f.purchase()
	sale, err := f.svc.CreateOrder(f.ctx, models.OrderSale, CreateOrderInput{
		PartyID:     &f.customer.ID,
		OrderDate:   day,
		Items:       []ItemInput{f.item(f.gadget.ID, 1, "6", f.usd.ID)},
		CreatedByID: f.user.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "PUR-20240315-00001", first.Number)
	assert.Equal(t, "PUR-20240315-00002", second.Number)
	assert.Equal(t, "SAL-20240315-00001", sale.Number)

	// deleted orders keep their number
	require.NoError(t, f.svc.DeleteOrder(f.ctx, second.ID))
	third := f.purchase()
	assert.Equal(t, "PUR-20240315-00003", third.Number)
}

func TestLineItemStockLaws(t *testing.T) {
	for _, kind := range []models.OrderKind{models.OrderPurchase, models.OrderSale} {
		t.Run(string(kind), func(t *testing.T) {
			f := newFixture(t)
			party := f.supplier.ID
			if kind == models.OrderSale {
				party = f.customer.ID
			}
			sign := kind.StockSign()

			order, err := f.svc.CreateOrder(f.ctx, kind, CreateOrderInput{
				PartyID:     &party,
				OrderDate:   day,
				Items:       []ItemInput{f.item(f.gadget.ID, 4, "6", f.usd.ID)},
				CreatedByID: f.user.ID,
			})
			require.NoError(t, err)
			require.Len(t, order.Items, 1)
			assert.Equal(t, 100+sign*4, f.stock(f.gadget.ID))
			kept := order.Items[0].ID

			// add an item and remove it again
			before := f.stock(f.widget.ID)
			order, err = f.svc.ReplaceOrderItems(f.ctx, order.ID, []ItemInput{
				{ID: &kept, ProductID: f.gadget.ID, Quantity: 4, UnitPrice: dec("6"), CurrencyID: f.usd.ID},
				f.item(f.widget.ID, 7, "5", f.usd.ID),
			})
			require.NoError(t, err)
			require.Len(t, order.Items, 2)
			assert.Equal(t, before+sign*7, f.stock(f.widget.ID))

			order, err = f.svc.ReplaceOrderItems(f.ctx, order.ID, []ItemInput{
				{ID: &kept, ProductID: f.gadget.ID, Quantity: 4, UnitPrice: dec("6"), CurrencyID: f.usd.ID},
			})
			require.NoError(t, err)
			require.Len(t, order.Items, 1)
			assert.Equal(t, before, f.stock(f.widget.ID))

			// Q1 -> Q2
			q1, q2 := int64(4), int64(9)
			stockBefore := f.stock(f.gadget.ID)
			order, err = f.svc.ReplaceOrderItems(f.ctx, order.ID, []ItemInput{
				{ID: &kept, ProductID: f.gadget.ID, Quantity: q2, UnitPrice: dec("6"), CurrencyID: f.usd.ID},
			})
			require.NoError(t, err)
			assert.Equal(t, stockBefore+sign*(q2-q1), f.stock(f.gadget.ID))
			assert.True(t, order.Items[0].TotalPrice.Equal(dec("54")))

			mismatches, err := f.svc.VerifyStock(f.ctx)
			require.NoError(t, err)
			assert.Empty(t, mismatches)
		})
	}
}

func TestReplaceItemsSwapsProduct(t *testing.T) {
	f := newFixture(t)
	order := f.purchase()
	id := order.Items[0].ID

	_, err := f.svc.ReplaceOrderItems(f.ctx, order.ID, []ItemInput{
		{ID: &id, ProductID: f.gadget.ID, Quantity: 3, UnitPrice: dec("5"), CurrencyID: f.usd.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), f.stock(f.widget.ID))
	assert.Equal(t, int64(103), f.stock(f.gadget.ID))
}

func TestReplaceItemsRejectsForeignItem(t *testing.T) {
	f := newFixture(t)
	a := f.purchase()
	b := f.purchase()
	foreign := b.Items[0].ID

	_, err := f.svc.ReplaceOrderItems(f.ctx, a.ID, []ItemInput{
		{ID: &foreign, ProductID: f.widget.ID, Quantity: 1, UnitPrice: dec("5"), CurrencyID: f.usd.ID},
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "items[0].id", ve.Field)
	assert.Equal(t, int64(20), f.stock(f.widget.ID))
}

func TestReplaceItemsRecomputesStatus(t *testing.T) {
	f := newFixture(t)
	order := f.purchase()
	f.pay(models.PartySupplier, f.supplier.ID, &order.ID, "30", f.usd.ID)
	require.Equal(t, models.PaymentStatusPartial, f.status(order.ID))

	id := order.Items[0].ID
	_, err := f.svc.ReplaceOrderItems(f.ctx, order.ID, []ItemInput{
		{ID: &id, ProductID: f.widget.ID, Quantity: 6, UnitPrice: dec("5"), CurrencyID: f.usd.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, f.status(order.ID))
}

func TestDeleteOrderCascades(t *testing.T) {
	f := newFixture(t)
	order, err := f.svc.CreateOrder(f.ctx, models.OrderSale, CreateOrderInput{
		PartyID:   &f.customer.ID,
		OrderDate: day,
		Items: []ItemInput{
			f.item(f.gadget.ID, 5, "6", f.usd.ID),
			f.item(f.gadget.ID, 2, "4", f.eur.ID),
		},
		CreatedByID: f.user.ID,
	})
	require.NoError(t, err)
	f.pay(models.PartyCustomer, f.customer.ID, &order.ID, "10", f.usd.ID)
	require.Equal(t, int64(93), f.stock(f.gadget.ID))

	require.NoError(t, f.svc.DeleteOrder(f.ctx, order.ID))
	assert.Equal(t, int64(100), f.stock(f.gadget.ID))

	_, err = f.svc.GetOrder(f.ctx, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	payments, err := f.svc.ListPayments(f.ctx, PaymentFilter{OrderID: &order.ID})
	require.NoError(t, err)
	assert.Empty(t, payments)

	var tombstoned int64
	require.NoError(t, f.db.Unscoped().Model(&models.OrderItem{}).
		Where("order_id = ? AND deleted_at IS NOT NULL", order.ID).Count(&tombstoned).Error)
	assert.Equal(t, int64(2), tombstoned)

	// a second delete finds nothing and moves no stock
	assert.ErrorIs(t, f.svc.DeleteOrder(f.ctx, order.ID), ErrNotFound)
	assert.Equal(t, int64(100), f.stock(f.gadget.ID))

	debt, err := f.svc.TotalDebt(f.ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Empty(t, debt)
}

func TestUpdateOrderMovesPaymentsToNewParty(t *testing.T) {
	f := newFixture(t)
	other, err := f.svc.CreateParty(f.ctx, models.PartySupplier, PartyInput{Name: "Other Supplies"})
	require.NoError(t, err)

	order := f.purchase()
	f.pay(models.PartySupplier, f.supplier.ID, &order.ID, "20", f.usd.ID)

	id := order.Items[0].ID
	updated, err := f.svc.UpdateOrder(f.ctx, order.ID, UpdateOrderInput{
		PartyID:   &other.ID,
		OrderDate: day,
		Notes:     "moved",
		Items:     []ItemInput{{ID: &id, ProductID: f.widget.ID, Quantity: 10, UnitPrice: dec("5"), CurrencyID: f.usd.ID}},
	})
	require.NoError(t, err)
	assert.Equal(t, other.ID, *updated.PartyID)
	assert.Equal(t, "moved", updated.Notes)
	require.Len(t, updated.Payments, 1)
	assert.Equal(t, other.ID, *updated.Payments[0].PartyID)

	oldDebt, err := f.svc.TotalDebt(f.ctx, f.supplier.ID)
	require.NoError(t, err)
	assert.Empty(t, oldDebt)

	newDebt, err := f.svc.TotalDebt(f.ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, newDebt, 1)
	assert.True(t, newDebt[0].Remaining.Equal(dec("30")))
}

func TestPaymentLinkChecks(t *testing.T) {
	f := newFixture(t)
	order := f.purchase()
	other, err := f.svc.CreateParty(f.ctx, models.PartySupplier, PartyInput{Name: "Other Supplies"})
	require.NoError(t, err)

	base := PaymentInput{
		PartyID:     f.supplier.ID,
		OrderID:     &order.ID,
		Amount:      dec("10"),
		CurrencyID:  f.usd.ID,
		PaymentDate: day,
		CreatedByID: f.user.ID,
	}

	t.Run("order of another party", func(t *testing.T) {
		in := base
		in.PartyID = other.ID
		_, err := f.svc.RecordPayment(f.ctx, models.PartySupplier, in)
		assert.ErrorIs(t, err, ErrIntegrityConflict)
	})

	t.Run("customer payment against a purchase", func(t *testing.T) {
		in := base
		in.PartyID = f.customer.ID
		_, err := f.svc.RecordPayment(f.ctx, models.PartyCustomer, in)
		assert.ErrorIs(t, err, ErrIntegrityConflict)
	})

	t.Run("supplier payment to a customer", func(t *testing.T) {
		in := base
		in.PartyID = f.customer.ID
		in.OrderID = nil
		_, err := f.svc.RecordPayment(f.ctx, models.PartySupplier, in)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "party_id", ve.Field)
	})

	t.Run("zero amount", func(t *testing.T) {
		in := base
		in.Amount = dec("0")
		_, err := f.svc.RecordPayment(f.ctx, models.PartySupplier, in)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "amount", ve.Field)
	})

	t.Run("missing date", func(t *testing.T) {
		in := base
		in.PaymentDate = time.Time{}
		_, err := f.svc.RecordPayment(f.ctx, models.PartySupplier, in)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "payment_date", ve.Field)
	})

	assert.Equal(t, models.PaymentStatusUnpaid, f.status(order.ID))
}

func TestUpdatePaymentRecomputesBothOrders(t *testing.T) {
	f := newFixture(t)
	a := f.purchase()
	b := f.purchase()
	p := f.pay(models.PartySupplier, f.supplier.ID, &a.ID, "50", f.usd.ID)
	require.Equal(t, models.PaymentStatusPaid, f.status(a.ID))

	updated, err := f.svc.UpdatePayment(f.ctx, p.ID, PaymentInput{
		PartyID:     f.supplier.ID,
		OrderID:     &b.ID,
		Amount:      dec("25"),
		CurrencyID:  f.usd.ID,
		PaymentDate: day,
		CreatedByID: f.user.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, b.ID, *updated.OrderID)
	assert.Equal(t, models.PaymentStatusUnpaid, f.status(a.ID))
	assert.Equal(t, models.PaymentStatusPartial, f.status(b.ID))

	require.NoError(t, f.svc.DeletePayment(f.ctx, p.ID))
	assert.Equal(t, models.PaymentStatusUnpaid, f.status(b.ID))
	assert.ErrorIs(t, f.svc.DeletePayment(f.ctx, p.ID), ErrNotFound)
}

func TestTotalDebtCountsUnlinkedPayments(t *testing.T) {
	f := newFixture(t)
	f.purchase()
	f.purchase()
	_, err := f.svc.CreateOrder(f.ctx, models.OrderPurchase, CreateOrderInput{
		PartyID:     &f.supplier.ID,
		OrderDate:   day,
		Items:       []ItemInput{f.item(f.gadget.ID, 2, "15", f.eur.ID)},
		CreatedByID: f.user.ID,
	})
	require.NoError(t, err)
	f.pay(models.PartySupplier, f.supplier.ID, nil, "35", f.usd.ID)

	debt, err := f.svc.TotalDebt(f.ctx, f.supplier.ID)
	require.NoError(t, err)
	require.Len(t, debt, 2)

	usd, ok := debt.For(f.usd.ID)
	require.True(t, ok)
	assert.True(t, usd.Total.Equal(dec("100")))
	assert.True(t, usd.Paid.Equal(dec("35")))
	assert.True(t, usd.Remaining.Equal(dec("65")))

	eur, ok := debt.For(f.eur.ID)
	require.True(t, ok)
	assert.True(t, eur.Remaining.Equal(dec("30")))
	assert.True(t, debt.Due().Mixed)

	_, err = f.svc.TotalDebt(f.ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOutstandingByCurrency(t *testing.T) {
	f := newFixture(t)
	other, err := f.svc.CreateParty(f.ctx, models.PartySupplier, PartyInput{Name: "Other Supplies"})
	require.NoError(t, err)

	f.purchase() // 50 USD owed to supplier
	o, err := f.svc.CreateOrder(f.ctx, models.OrderPurchase, CreateOrderInput{
		PartyID:     &other.ID,
		OrderDate:   day,
		Items:       []ItemInput{f.item(f.widget.ID, 2, "5", f.usd.ID)},
		CreatedByID: f.user.ID,
	})
	require.NoError(t, err)
	f.pay(models.PartySupplier, other.ID, &o.ID, "25", f.usd.ID) // overpaid by 15

	out, err := f.svc.OutstandingByCurrency(f.ctx, models.PartySupplier)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "USD", out[0].Currency)
	assert.True(t, out[0].Remaining.Equal(dec("50")), "overpayment does not offset other parties")

	customers, err := f.svc.OutstandingByCurrency(f.ctx, models.PartyCustomer)
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestStockRebuildAndStatusRecompute(t *testing.T) {
	f := newFixture(t)
	order := f.purchase()
	f.pay(models.PartySupplier, f.supplier.ID, &order.ID, "50", f.usd.ID)

	require.NoError(t, f.db.Model(&models.Product{}).Where("id = ?", f.widget.ID).
		UpdateColumn("stock_quantity", 3).Error)
	require.NoError(t, f.db.Model(&models.Order{}).Where("id = ?", order.ID).
		UpdateColumn("payment_status", models.PaymentStatusUnpaid).Error)

	mismatches, err := f.svc.VerifyStock(f.ctx)
	require.NoError(t, err)
	require.Len(t, mismatches, 1)
	assert.Equal(t, StockMismatch{ProductID: f.widget.ID, Name: "Widget", Stored: 3, Expected: 10}, mismatches[0])

	fixed, err := f.svc.RebuildStock(f.ctx)
	require.NoError(t, err)
	assert.Len(t, fixed, 1)
	assert.Equal(t, int64(10), f.stock(f.widget.ID))

	again, err := f.svc.RebuildStock(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, again)

	changed, err := f.svc.RecomputeStatuses(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Equal(t, models.PaymentStatusPaid, f.status(order.ID))
}

func TestListOrdersFilters(t *testing.T) {
	f := newFixture(t)
	paid := f.purchase()
	f.pay(models.PartySupplier, f.supplier.ID, &paid.ID, "50", f.usd.ID)
	f.purchase()

	list, err := f.svc.ListOrders(f.ctx, OrderFilter{Kind: models.OrderPurchase, Status: models.PaymentStatusPaid})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, paid.ID, list[0].ID)

	list, err = f.svc.ListOrders(f.ctx, OrderFilter{Kind: models.OrderPurchase, Search: "Acme"})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = f.svc.ListOrders(f.ctx, OrderFilter{Search: "00002"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "PUR-20240315-00002", list[0].Number)

	list, err = f.svc.ListOrders(f.ctx, OrderFilter{Kind: models.OrderSale})
	require.NoError(t, err)
	assert.Empty(t, list)

	later := day.AddDate(0, 0, 10)
	late, err := f.svc.CreateOrder(f.ctx, models.OrderPurchase, CreateOrderInput{
		PartyID:     &f.supplier.ID,
		OrderDate:   later,
		Items:       []ItemInput{f.item(f.gadget.ID, 1, "2", f.usd.ID)},
		CreatedByID: f.user.ID,
	})
	require.NoError(t, err)

	from := day.AddDate(0, 0, 1)
	list, err = f.svc.ListOrders(f.ctx, OrderFilter{Kind: models.OrderPurchase, From: &from})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, late.ID, list[0].ID)

	list, err = f.svc.ListOrders(f.ctx, OrderFilter{Kind: models.OrderPurchase, From: &day, To: &day})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = f.svc.ListOrders(f.ctx, OrderFilter{Kind: models.OrderPurchase, To: &from, Search: "Acme"})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
