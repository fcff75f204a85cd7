package mock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "github.com/harshbaid-13/Cake-Manager/internal/log"
	"github.com/harshbaid-13/Cake-Manager/models"
)

// New returns an in-memory sqlite database seeded with representative bakery
// data. Used when the server is started without a DATABASE_URL so the app
// can be explored without any setup.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:bakery-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Order{},
		&models.Expense{},
		&models.WorkSession{},
	); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	flour := models.Ingredient{
		Name:         "All-Purpose Flour",
		PricePerUnit: decimal.RequireFromString("55.00"),
		UnitSize:     "1 kg",
	}
	butter := models.Ingredient{
		Name:         "Unsalted Butter",
		PricePerUnit: decimal.RequireFromString("540.00"),
		UnitSize:     "1 kg",
	}
	cocoa := models.Ingredient{
		Name:         "Cocoa Powder",
		PricePerUnit: decimal.RequireFromString("320.00"),
		UnitSize:     "500 g",
	}

	for _, ingredient := range []*models.Ingredient{&flour, &butter, &cocoa} {
		if err := db.WithContext(ctx).Create(ingredient).Error; err != nil {
			return err
		}
	}

	chocolateCake := models.Recipe{
		Name:         "Chocolate Fudge Cake",
		BaseOverhead: decimal.RequireFromString("80.00"),
	}
	vanillaCupcakes := models.Recipe{
		Name:         "Vanilla Cupcakes (12)",
		BaseOverhead: decimal.RequireFromString("50.00"),
	}

	if err := db.WithContext(ctx).Create(&chocolateCake).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&vanillaCupcakes).Error; err != nil {
		return err
	}

	links := []models.RecipeIngredient{
		{RecipeID: chocolateCake.ID, IngredientID: flour.ID, QuantityUsed: decimal.RequireFromString("0.4")},
		{RecipeID: chocolateCake.ID, IngredientID: butter.ID, QuantityUsed: decimal.RequireFromString("0.25")},
		{RecipeID: chocolateCake.ID, IngredientID: cocoa.ID, QuantityUsed: decimal.RequireFromString("0.5")},
		{RecipeID: vanillaCupcakes.ID, IngredientID: flour.ID, QuantityUsed: decimal.RequireFromString("0.3")},
		{RecipeID: vanillaCupcakes.ID, IngredientID: butter.ID, QuantityUsed: decimal.RequireFromString("0.15")},
	}

	for _, link := range links {
		linkCopy := link
		if err := db.WithContext(ctx).Create(&linkCopy).Error; err != nil {
			return err
		}
	}

	delivered := models.Order{
		CustomerName:  "Meera Sharma",
		Description:   "1 kg chocolate fudge cake, birthday message",
		DueDate:       "2025-08-20T17:00",
		Status:        models.StatusDelivered,
		IsPaid:        true,
		QuotedPrice:   decimal.RequireFromString("1500.00"),
		EstimatedCost: decimal.RequireFromString("477.00"),
		RecipeID:      &chocolateCake.ID,
	}
	pending := models.Order{
		CustomerName:  "Rohan Gupta",
		Description:   "Custom anniversary cake, two tier",
		DueDate:       "2025-09-05T12:00",
		Status:        models.StatusPending,
		QuotedPrice:   decimal.RequireFromString("2800.00"),
		EstimatedCost: decimal.RequireFromString("900.00"),
	}

	for _, order := range []*models.Order{&delivered, &pending} {
		if err := db.WithContext(ctx).Create(order).Error; err != nil {
			return err
		}
	}

	expenses := []models.Expense{
		{Date: "2025-08-18", ItemName: "Cake boxes", Amount: decimal.RequireFromString("250.00"), Category: "Packaging"},
		{Date: "2025-08-19", ItemName: "LPG cylinder refill", Amount: decimal.RequireFromString("905.00"), Category: "Gas"},
		{Date: "2025-08-20", ItemName: "Butter restock", Amount: decimal.RequireFromString("1080.00"), Category: "Raw Material"},
	}

	for _, expense := range expenses {
		expenseCopy := expense
		if err := db.WithContext(ctx).Create(&expenseCopy).Error; err != nil {
			return err
		}
	}

	start := time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC)
	end := start.Add(3*time.Hour + 30*time.Minute)
	session := models.WorkSession{
		StartTime: start,
		EndTime:   &end,
		Date:      "2025-08-20",
	}
	if err := db.WithContext(ctx).Create(&session).Error; err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
