package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Sreenuraj/postqode-nexus/pkg/migrate"
)

func TestInventoryMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_user_inventory_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no inventory migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS user_inventory",
		"REFERENCES products (id) ON DELETE SET NULL",
		"CHECK (quantity >= 0)",
		"idx_user_inventory_user_product",
		"DROP TABLE IF EXISTS user_inventory",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) < 5 {
		t.Fatalf("expected at least 5 migration files, found %d", len(matches))
	}
}
