package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Recipe is a batch that can be costed. BaseOverhead covers the fixed costs
// of producing one batch (gas, electricity, packaging wear) on top of the
// linked ingredient costs.
type Recipe struct {
	ID           string             `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string             `gorm:"not null" json:"name"`
	BaseOverhead decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"baseOverhead"`
	Ingredients  []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
}

func (r *Recipe) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
