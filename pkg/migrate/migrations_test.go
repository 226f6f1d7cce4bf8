package migrate_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flockfilms/flockfilms-backend/pkg/config"
	"github.com/flockfilms/flockfilms-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestUsersMigrationEnforcesLowercaseEmailUniqueness(t *testing.T) {
	content := readMigration(t, "*_create_users.sql")

	checks := []string{
		"CREATE TABLE users",
		"CREATE UNIQUE INDEX users_email_lower_uidx ON users (LOWER(email))",
		"DROP TABLE users",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestFlockFilmsMigrationHasCompositeKeyAndNoFilmFK(t *testing.T) {
	content := readMigration(t, "*_create_flock_films.sql")

	checks := []string{
		"PRIMARY KEY (flock_id, film_id)",
		"REFERENCES flocks (id) ON DELETE CASCADE",
		"position INT NOT NULL",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}

	if strings.Contains(content, "REFERENCES films") {
		t.Error("flock_films must not carry a foreign key to films")
	}
}

func TestMaybeRunDevSkipsNonPostgresDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Env = config.AppEnvDev
	cfg.FeatureFlags.AutoMigrate = true
	cfg.DB.Driver = "sqlite"

	// Migration SQL is postgres-only; with the sqlite driver the auto-run must
	// bail out before touching the database (a nil client would panic otherwise).
	if err := migrate.MaybeRunDev(context.Background(), cfg, nil, nil); err != nil {
		t.Fatalf("expected sqlite auto-migrate to be skipped, got %v", err)
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
