package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucifer43562/wastelink-backend/pkg/migrate"
)

func TestCompaniesMigrationsSeedCatalog(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_seed_companies.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no companies seed migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	names := []string{
		"EcoClean Solutions",
		"GreenWaste Recyclers",
		"WasteCare Pro",
		"RecycleMaster Inc",
		"Local Waste Solutions",
	}
	for _, name := range names {
		if !strings.Contains(content, name) {
			t.Errorf("seed missing company %q", name)
		}
	}
}

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}
