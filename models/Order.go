package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses the rest of the system cares about. The column is an open
// string set: the operator may type anything, but only the exact literal
// StatusDelivered counts toward revenue.
const (
	StatusPending   = "Pending"
	StatusDelivered = "Delivered"
)

// Order is a customer order. EstimatedCost is a snapshot taken when the
// order is saved: later changes to the recipe or ingredient prices do not
// propagate into it. RecipeID is nil for custom (off-recipe) orders.
type Order struct {
	ID            string          `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerName  string          `gorm:"not null" json:"customerName"`
	Description   string          `gorm:"not null" json:"description"`
	DueDate       string          `gorm:"not null" json:"dueDate"`
	Status        string          `gorm:"not null;default:Pending" json:"status"`
	IsPaid        bool            `gorm:"not null;default:false" json:"isPaid"`
	QuotedPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"quotedPrice"`
	EstimatedCost decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"estimatedCost"`
	RecipeID      *string         `gorm:"type:uuid" json:"recipeId"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
