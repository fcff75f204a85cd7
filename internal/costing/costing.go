// Package costing computes recipe batch costs and the dashboard financial
// metrics. Everything here is a plain reduction over current store state:
// costs are recomputed on every call and never cached.
package costing

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/harshbaid-13/Cake-Manager/models"
)

// ErrRecipeNotFound is returned when a cost is requested for a recipe id
// that does not exist.
var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeCost returns the cost of one batch of the recipe: the sum of
// pricePerUnit times quantityUsed over its ingredient links, plus the
// recipe's base overhead. A link whose ingredient has since been deleted
// contributes nothing.
func RecipeCost(ctx context.Context, db *gorm.DB, recipeID string) (decimal.Decimal, error) {
	var recipe models.Recipe
	if err := db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrRecipeNotFound
		}
		return decimal.Zero, fmt.Errorf("load recipe: %w", err)
	}

	var links []models.RecipeIngredient
	if err := db.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id = ?", recipeID).
		Find(&links).Error; err != nil {
		return decimal.Zero, fmt.Errorf("load recipe ingredients: %w", err)
	}

	cost := recipe.BaseOverhead
	for _, link := range links {
		if link.Ingredient == nil {
			continue
		}
		cost = cost.Add(link.Ingredient.PricePerUnit.Mul(link.QuantityUsed))
	}

	return cost, nil
}

// DashboardMetrics is the aggregate financial picture shown on the
// dashboard. Values are rounded to two decimals.
type DashboardMetrics struct {
	Revenue             float64 `json:"revenue"`
	Expenses            float64 `json:"expenses"`
	NetProfit           float64 `json:"netProfit"`
	HoursWorked         float64 `json:"hoursWorked"`
	EffectiveHourlyRate float64 `json:"effectiveHourlyRate"`
}

// Metrics aggregates orders, expenses, and work sessions into the dashboard
// numbers. Revenue counts only orders whose status is exactly "Delivered";
// sessions still running contribute no hours until they are stopped.
func Metrics(ctx context.Context, db *gorm.DB) (DashboardMetrics, error) {
	var orders []models.Order
	if err := db.WithContext(ctx).Find(&orders).Error; err != nil {
		return DashboardMetrics{}, fmt.Errorf("load orders: %w", err)
	}

	var expenses []models.Expense
	if err := db.WithContext(ctx).Find(&expenses).Error; err != nil {
		return DashboardMetrics{}, fmt.Errorf("load expenses: %w", err)
	}

	var sessions []models.WorkSession
	if err := db.WithContext(ctx).Find(&sessions).Error; err != nil {
		return DashboardMetrics{}, fmt.Errorf("load work sessions: %w", err)
	}

	revenue := decimal.Zero
	for _, order := range orders {
		if order.Status == models.StatusDelivered {
			revenue = revenue.Add(order.QuotedPrice)
		}
	}

	totalExpenses := decimal.Zero
	for _, expense := range expenses {
		totalExpenses = totalExpenses.Add(expense.Amount)
	}

	hoursWorked := 0.0
	for _, session := range sessions {
		hoursWorked += session.Hours()
	}

	netProfit := revenue.Sub(totalExpenses)

	effectiveRate := decimal.Zero
	if hoursWorked > 0 {
		effectiveRate = netProfit.Div(decimal.NewFromFloat(hoursWorked))
	}

	return DashboardMetrics{
		Revenue:             round2(revenue),
		Expenses:            round2(totalExpenses),
		NetProfit:           round2(netProfit),
		HoursWorked:         round2(decimal.NewFromFloat(hoursWorked)),
		EffectiveHourlyRate: round2(effectiveRate),
	}, nil
}

func round2(value decimal.Decimal) float64 {
	rounded, _ := value.Round(2).Float64()
	return rounded
}
