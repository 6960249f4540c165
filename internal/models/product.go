package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            uint            `gorm:"primaryKey"`
	Name          string          `gorm:"size:255;not null"`
	Barcode       *string         `gorm:"size:255;uniqueIndex"`
	Description   string          `gorm:"type:text"`
	BuyPrice      decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	SellPrice     decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	CurrencyID    uint            `gorm:"index;not null"`
	Currency      Currency        `gorm:"foreignKey:CurrencyID;constraint:OnDelete:RESTRICT"`
	OpeningStock  int64           `gorm:"not null;default:0"` // stock on hand when the product was registered
	StockQuantity int64           `gorm:"not null;default:0"` // only the stock ledger writes this
	MinStockAlert int64           `gorm:"not null;default:5"`
	IsActive      bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinStockAlert
}

func (p Product) IsOutOfStock() bool {
	return p.StockQuantity <= 0
}
