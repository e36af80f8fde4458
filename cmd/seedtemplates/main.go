package main

// Insert the built-in template catalogue:
//   go run ./cmd/seedtemplates [--list]

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/templates"
)

func main() {
	list := pflag.Bool("list", false, "print the catalogue without touching the database")
	pflag.Parse()

	if *list {
		catalogue, err := templates.Catalogue()
		if err != nil {
			fmt.Fprintf(os.Stderr, "catalogue: %v\n", err)
			os.Exit(1)
		}
		for _, t := range catalogue {
			fmt.Printf("%-12s %-10s ats=%d premium=%t\n", t.Name, t.TemplateType, t.ATSScore, t.IsPremium)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		telemetry.Error("config.load_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	telemetry.Init(telemetry.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	ctx := context.Background()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		telemetry.Error("seed.connect_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer sqlDB.Close()

	res, err := templates.Seed(ctx, &templates.PGRepo{DB: sqlDB})
	if err != nil {
		telemetry.Error("seed.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	for _, name := range res.Created {
		fmt.Printf("created  %s\n", name)
	}
	for _, name := range res.Existing {
		fmt.Printf("exists   %s\n", name)
	}
}
