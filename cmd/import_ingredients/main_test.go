package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/harshbaid-13/Cake-Manager/models"
)

func openImportTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:import-"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&models.Ingredient{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ingredients.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestReadRowsSkipsHeaderAndBlankNames(t *testing.T) {
	path := writeCSV(t, "name,pricePerUnit,unitSize\nFlour,60,1 kg\n,10,1 kg\nButter,550.50,1 kg\n")

	rows, err := readRows(path)
	if err != nil {
		t.Fatalf("readRows returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Name != "Flour" || !rows[0].PricePerUnit.Equal(decimal.RequireFromString("60")) {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Name != "Butter" || rows[1].UnitSize != "1 kg" {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

func TestReadRowsRejectsBadPrice(t *testing.T) {
	path := writeCSV(t, "Flour,not-a-number,1 kg\n")

	if _, err := readRows(path); err == nil {
		t.Fatal("expected error for unparseable price")
	}
}

func TestUpsertIngredientCreatesThenUpdates(t *testing.T) {
	db := openImportTestDatabase(t)
	ctx := context.Background()

	row := priceRow{Name: "Flour", PricePerUnit: decimal.RequireFromString("60"), UnitSize: "1 kg"}
	created, err := upsertIngredient(ctx, db, row)
	if err != nil {
		t.Fatalf("upsert returned error: %v", err)
	}
	if !created {
		t.Fatal("expected first upsert to create")
	}

	row.PricePerUnit = decimal.RequireFromString("72")
	created, err = upsertIngredient(ctx, db, row)
	if err != nil {
		t.Fatalf("second upsert returned error: %v", err)
	}
	if created {
		t.Fatal("expected second upsert to update, not create")
	}

	var count int64
	if err := db.Model(&models.Ingredient{}).Count(&count).Error; err != nil {
		t.Fatalf("count ingredients: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single ingredient row, got %d", count)
	}

	var ingredient models.Ingredient
	if err := db.First(&ingredient, "name = ?", "Flour").Error; err != nil {
		t.Fatalf("reload ingredient: %v", err)
	}
	if !ingredient.PricePerUnit.Equal(decimal.RequireFromString("72")) {
		t.Fatalf("pricePerUnit = %s, want 72", ingredient.PricePerUnit)
	}
}
