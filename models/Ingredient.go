package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ingredient is a priced pantry item. PricePerUnit is the cost of one
// UnitSize worth of it; UnitSize is a free-text label such as "1 kg" or
// "500 g", and recipe quantities are expressed in that same implicit unit.
type Ingredient struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string          `gorm:"not null" json:"name"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"pricePerUnit"`
	UnitSize     string          `gorm:"not null" json:"unitSize"`
}

func (i *Ingredient) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
