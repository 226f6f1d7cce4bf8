package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/flockfilms/flockfilms-backend/pkg/config"
	"github.com/flockfilms/flockfilms-backend/pkg/db"
	"github.com/flockfilms/flockfilms-backend/pkg/db/models"
	"github.com/flockfilms/flockfilms-backend/pkg/logger"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

type seedFilm struct {
	Title     string   `json:"title"`
	Year      *int     `json:"year"`
	Director  *string  `json:"director"`
	Synopsis  *string  `json:"synopsis"`
	PosterURL *string  `json:"poster_url"`
	Genres    []string `json:"genres"`
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	file := flag.String("file", "", "path to the films JSON file (defaults to FLOCKFILMS_CATALOG_SEED_FILE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	path := *file
	if path == "" {
		path = cfg.Catalog.SeedFile
	}

	films, err := loadSeedFile(path)
	if err != nil {
		logg.Error(ctx, "failed to load seed file", err)
		os.Exit(1)
	}
	if len(films) == 0 {
		logg.Warn(logg.WithField(ctx, "file", path), "seed file contains no films")
		return
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	inserted, err := seedCatalog(ctx, dbClient.DB(), films)
	if err != nil {
		logg.Error(ctx, "failed to seed catalog", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"file":     path,
		"loaded":   len(films),
		"inserted": inserted,
	})
	logg.Info(ctx, "catalog seeded")
}

func loadSeedFile(path string) ([]seedFilm, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var films []seedFilm
	if err := json.Unmarshal(raw, &films); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for i, f := range films {
		if strings.TrimSpace(f.Title) == "" {
			return nil, fmt.Errorf("film at index %d has no title", i)
		}
	}
	return films, nil
}

// seedCatalog inserts films by title, skipping ones that already exist so the
// seeder can run repeatedly against the same database.
func seedCatalog(ctx context.Context, gdb *gorm.DB, films []seedFilm) (int, error) {
	var existing []string
	if err := gdb.WithContext(ctx).
		Model(&models.Film{}).
		Pluck("title", &existing).Error; err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, title := range existing {
		seen[strings.ToLower(title)] = struct{}{}
	}

	rows := make([]models.Film, 0, len(films))
	for _, f := range films {
		if _, ok := seen[strings.ToLower(strings.TrimSpace(f.Title))]; ok {
			continue
		}
		row := models.Film{
			Title:     strings.TrimSpace(f.Title),
			Year:      f.Year,
			Director:  f.Director,
			Synopsis:  f.Synopsis,
			PosterURL: f.PosterURL,
		}
		if len(f.Genres) > 0 {
			joined := strings.Join(f.Genres, ",")
			row.Genres = &joined
		}
		rows = append(rows, row)
		seen[strings.ToLower(row.Title)] = struct{}{}
	}
	if len(rows) == 0 {
		return 0, nil
	}

	res := gdb.WithContext(ctx).CreateInBatches(rows, 100)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}
