package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecipeIngredient links one Ingredient into one Recipe with the quantity
// used per batch. QuantityUsed is in the ingredient's own unit; no unit
// conversion happens anywhere.
type RecipeIngredient struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     string          `gorm:"type:uuid;not null;index" json:"recipeId"`
	IngredientID string          `gorm:"type:uuid;not null;index" json:"ingredientId"`
	QuantityUsed decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantityUsed"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

func (ri *RecipeIngredient) BeforeCreate(*gorm.DB) error {
	if ri.ID == "" {
		ri.ID = uuid.NewString()
	}
	return nil
}
