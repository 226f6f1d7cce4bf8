package migrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/flockfilms/flockfilms-backend/pkg/config"
	"github.com/flockfilms/flockfilms-backend/pkg/db"
	"github.com/flockfilms/flockfilms-backend/pkg/logger"
)

// MaybeRunDev executes migrations automatically when the app is running in dev mode and
// the feature flag is enabled. The migration SQL targets Postgres (TIMESTAMPTZ,
// gen_random_uuid), so the auto-run is limited to the postgres driver; sqlite
// setups seed their schema another way.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	if driver := strings.ToLower(strings.TrimSpace(cfg.DB.Driver)); driver != "" && driver != "postgres" {
		if logg != nil {
			ctx = logg.WithField(ctx, "driver", cfg.DB.Driver)
			logg.Warn(ctx, "dev auto-migrate supports only the postgres driver, skipping")
		}
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	meta := map[string]any{"env": cfg.App.Env, "dir": DefaultDir}
	ctx = logg.WithFields(ctx, meta)
	logg.Info(ctx, "running Goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, cfg.DB.Driver, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}
