package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	dbfs "github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/db"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/config"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/db"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	envFile := flag.String("env-file", ".env", "Optional .env file loaded before the config")
	flag.Parse()

	ctx := context.Background()
	if err := config.LoadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Env file error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.Database.Driver, cfg.Database.DSN, nil, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database initialized successfully (%s).\n", cfg.Database.Driver)
}
