package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPartnersMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_partners_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no partners migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS partners",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_partners_application_id",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_partners_ein",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_partners_email",
		"monthly_fee NUMERIC(10,2) NOT NULL",
		"cancelled_at TIMESTAMPTZ",
		"CHECK (tier IN ('dfw', 'statewide', 'nationwide'))",
		"CHECK (status IN ('active', 'suspended', 'cancelled'))",
		"DROP TABLE IF EXISTS partners",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
