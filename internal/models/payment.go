package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is a supplier payment (Kind=supplier) or a customer payment (Kind=customer).
// OrderID is nil for a general account payment that is not tied to one order.
type Payment struct {
	ID          uint            `gorm:"primaryKey"`
	Kind        PartyKind       `gorm:"type:varchar(20);not null;index"`
	PartyID     *uint           `gorm:"index"`
	Party       *Party          `gorm:"foreignKey:PartyID;constraint:OnDelete:RESTRICT"`
	OrderID     *uint           `gorm:"index"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	CurrencyID  uint            `gorm:"index;not null"`
	Currency    Currency        `gorm:"foreignKey:CurrencyID;constraint:OnDelete:RESTRICT"`
	PaymentDate time.Time       `gorm:"type:date;index;not null"`
	Notes       string          `gorm:"type:text"`
	CreatedByID uint            `gorm:"index;not null"`
	CreatedBy   User            `gorm:"foreignKey:CreatedByID;constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
