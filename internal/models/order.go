package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderKind string

const (
	OrderPurchase OrderKind = "purchase"
	OrderSale     OrderKind = "sale"
)

// StockSign is the direction a line item of this kind moves stock.
func (k OrderKind) StockSign() int64 {
	if k == OrderSale {
		return -1
	}
	return 1
}

// PartyKind is the counterparty kind that orders of this kind reference.
func (k OrderKind) PartyKind() PartyKind {
	if k == OrderSale {
		return PartyCustomer
	}
	return PartySupplier
}

// NumberPrefix is the leading segment of a generated order number.
func (k OrderKind) NumberPrefix() string {
	if k == OrderSale {
		return "SAL"
	}
	return "PUR"
}

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
)

// Order is a purchase from a supplier or a sale to a customer.
// PaymentStatus is derived; nothing outside the ledger sets it.
type Order struct {
	ID            uint          `gorm:"primaryKey"`
	Kind          OrderKind     `gorm:"type:varchar(20);not null;index"`
	Number        string        `gorm:"size:32;not null;uniqueIndex"`
	PartyID       *uint         `gorm:"index"`
	Party         *Party        `gorm:"foreignKey:PartyID;constraint:OnDelete:RESTRICT"`
	OrderDate     time.Time     `gorm:"type:date;index;not null"`
	Notes         string        `gorm:"type:text"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(10);not null;default:unpaid;index"`
	CreatedByID   uint          `gorm:"index;not null"`
	CreatedBy     User          `gorm:"foreignKey:CreatedByID;constraint:OnDelete:RESTRICT"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID"`
	Payments      []Payment     `gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// OrderItem: quantity × unit price in one currency.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey"`
	OrderID    uint            `gorm:"index;not null"`
	ProductID  uint            `gorm:"index;not null"`
	Product    Product         `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Quantity   int64           `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	CurrencyID uint            `gorm:"index;not null"`
	Currency   Currency        `gorm:"foreignKey:CurrencyID;constraint:OnDelete:RESTRICT"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// ComputeTotal sets TotalPrice from Quantity and UnitPrice. Called before every persist.
func (i *OrderItem) ComputeTotal() {
	i.TotalPrice = decimal.NewFromInt(i.Quantity).Mul(i.UnitPrice)
}

// OrderSequence backs order numbering with one counter row per order kind.
type OrderSequence struct {
	Kind  OrderKind `gorm:"type:varchar(20);primaryKey"`
	Value int64     `gorm:"not null;default:0"`
}
