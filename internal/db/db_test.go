package db

import (
	"testing"

	"github.com/harshbaid-13/Cake-Manager/internal/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestInitializeRequiresURL(t *testing.T) {
	t.Parallel()

	db, err := Initialize(config.DatabaseConfig{URL: ""})
	if err == nil {
		t.Fatal("expected error when database URL is empty")
	}
	if db != nil {
		t.Fatal("expected returned db handle to be nil on error")
	}
}

func TestAutoMigrateRejectsNilDatabase(t *testing.T) {
	t.Parallel()

	if err := AutoMigrate(nil); err == nil {
		t.Fatal("expected error when database handle is nil")
	}
}

func TestAutoMigrateWithSQLite(t *testing.T) {
	t.Parallel()

	sqliteDB, err := gorm.Open(sqlite.Open("file:bakerymigrate?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}

	if err := AutoMigrate(sqliteDB); err != nil {
		t.Fatalf("automigrate sqlite database: %v", err)
	}
}

func TestInitializeTreatsPlainPathAsSQLite(t *testing.T) {
	t.Parallel()

	db, err := Initialize(config.DatabaseConfig{URL: "file:bakeryplain?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("Initialize sqlite path: %v", err)
	}
	if db == nil {
		t.Fatal("expected a database handle")
	}
	if err := Close(db); err != nil {
		t.Fatalf("close database: %v", err)
	}
}

func TestCloseToleratesNilHandle(t *testing.T) {
	t.Parallel()

	if err := Close(nil); err != nil {
		t.Fatalf("Close(nil) error = %v", err)
	}
}

func TestCloseToleratesUninitializedHandle(t *testing.T) {
	t.Parallel()

	if err := Close(&gorm.DB{}); err != nil {
		t.Fatalf("Close of zero-value handle error = %v", err)
	}
}
