package models

import "time"

// Currency is reference data. It cannot be deleted while any product, item or
// payment still refers to it.
type Currency struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:50;not null;unique"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
