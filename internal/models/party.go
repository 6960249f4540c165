package models

import "time"

type PartyKind string

const (
	PartySupplier PartyKind = "supplier"
	PartyCustomer PartyKind = "customer"
)

// Party is the counterparty of an order: a supplier for purchases, a customer for sales.
type Party struct {
	ID        uint      `gorm:"primaryKey"`
	Kind      PartyKind `gorm:"type:varchar(20);not null;index"`
	Name      string    `gorm:"size:200;not null"`
	Phone     string    `gorm:"size:50"`
	Email     string    `gorm:"size:100"`
	Address   string    `gorm:"size:255"`
	Notes     string    `gorm:"type:text"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
