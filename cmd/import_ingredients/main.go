package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/harshbaid-13/Cake-Manager/internal/config"
	"github.com/harshbaid-13/Cake-Manager/internal/db"
	applog "github.com/harshbaid-13/Cake-Manager/internal/log"
	"github.com/harshbaid-13/Cake-Manager/models"
)

// Imports an ingredient price list exported as CSV. Expected columns:
// name, pricePerUnit, unitSize. Rows are upserted by ingredient name so the
// importer can be re-run whenever supplier prices change.
func main() {
	csvPath := "ingredients.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	if err := run(csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(csvPath string) error {
	if strings.TrimSpace(csvPath) == "" {
		return fmt.Errorf("csv path must not be empty")
	}

	if _, err := os.Stat(csvPath); err != nil {
		return fmt.Errorf("locate csv: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close(database)

	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	rows, err := readRows(csvPath)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	ctx := context.Background()
	created, updated := 0, 0
	for _, row := range rows {
		wasCreated, err := upsertIngredient(ctx, database, row)
		if err != nil {
			return err
		}
		if wasCreated {
			created++
		} else {
			updated++
		}
	}

	applog.Info(ctx, "ingredient import finished", "file", csvPath, "created", created, "updated", updated)
	return nil
}

type priceRow struct {
	Name         string
	PricePerUnit decimal.Decimal
	UnitSize     string
}

func readRows(csvPath string) ([]priceRow, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([]priceRow, 0, len(records))
	for idx, record := range records {
		if len(record) < 3 {
			continue
		}
		name := strings.TrimSpace(record[0])
		price := strings.TrimSpace(record[1])
		unit := strings.TrimSpace(record[2])

		// Skip a header row if present.
		if idx == 0 && strings.EqualFold(name, "name") {
			continue
		}
		if name == "" {
			continue
		}

		parsed, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad price %q: %w", idx+1, price, err)
		}

		rows = append(rows, priceRow{Name: name, PricePerUnit: parsed, UnitSize: unit})
	}

	return rows, nil
}

func upsertIngredient(ctx context.Context, database *gorm.DB, row priceRow) (bool, error) {
	var existing models.Ingredient
	err := database.WithContext(ctx).Where("name = ?", row.Name).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ingredient := models.Ingredient{
			Name:         row.Name,
			PricePerUnit: row.PricePerUnit,
			UnitSize:     row.UnitSize,
		}
		if err := database.WithContext(ctx).Create(&ingredient).Error; err != nil {
			return false, fmt.Errorf("create ingredient %q: %w", row.Name, err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("find ingredient %q: %w", row.Name, err)
	}

	updates := map[string]any{
		"price_per_unit": row.PricePerUnit,
		"unit_size":      row.UnitSize,
	}
	if err := database.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
		return false, fmt.Errorf("update ingredient %q: %w", row.Name, err)
	}
	return false, nil
}
