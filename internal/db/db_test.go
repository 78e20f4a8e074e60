package db

import (
	"path/filepath"
	"testing"

	"github.com/ecagle/herald/internal/config"
)

func TestInitCreatesDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	if _, err := database.Exec("SELECT 1 FROM editions LIMIT 1"); err != nil {
		t.Errorf("editions table missing: %v", err)
	}
	for _, table := range []string{"events", "articles", "resources", "intelligence"} {
		if _, err := database.Exec("SELECT 1 FROM " + table + " LIMIT 1"); err != nil {
			t.Errorf("%s table missing: %v", table, err)
		}
	}
}

func TestInitSetsSchemaVersion(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	version, err := GetUserVersion(database)
	if err != nil {
		t.Fatalf("GetUserVersion failed: %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, CurrentSchemaVersion)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	database.Close()

	// Re-opening the same directory must not re-run migration 1.
	database, err = Init(tmpDir)
	if err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	defer database.Close()
}

func TestInitNestedBaseDir(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "a", "b")
	database, err := Init(nested)
	if err != nil {
		t.Fatalf("Init with nested dir failed: %v", err)
	}
	database.Close()
}

func TestConfigurePool(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	// Just exercises the nil-safe paths.
	ConfigurePool(database, nil)
	ConfigurePool(database, &config.Config{DBMaxOpenConns: 1, DBMaxIdleConns: 1})

	if _, err := database.Exec("SELECT 1"); err != nil {
		t.Errorf("query after pool config failed: %v", err)
	}
}
