package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAdsMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_ads_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no ads migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS ads",
		"title VARCHAR(50) NOT NULL",
		"catchphrase VARCHAR(75) NOT NULL",
		"FOREIGN KEY (partner_id) REFERENCES partners(id) ON DELETE CASCADE",
		"CHECK (status IN ('draft', 'pending_review', 'approved', 'active', 'paused', 'rejected'))",
		"rotations_per_day INTEGER NOT NULL DEFAULT 24",
		"total_impressions BIGINT NOT NULL DEFAULT 0",
		"start_date TIMESTAMPTZ",
		"end_date TIMESTAMPTZ",
		"rejected_at TIMESTAMPTZ",
		"DROP TABLE IF EXISTS ads",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
