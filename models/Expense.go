package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a single spend entry. Category is free text at this layer; the
// UI offers a small fixed set (Raw Material, Packaging, Gas, Other) but the
// store does not enforce it. Date is an ISO yyyy-mm-dd string.
type Expense struct {
	ID       string          `gorm:"type:uuid;primaryKey" json:"id"`
	Date     string          `gorm:"not null" json:"date"`
	ItemName string          `gorm:"not null" json:"itemName"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category string          `gorm:"not null" json:"category"`
}

func (e *Expense) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
