package main

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/docrouter/server/internal/config"
	"codeberg.org/docrouter/server/internal/logger"
	"codeberg.org/docrouter/server/internal/vectorstore"
)

func usage() {
	fmt.Println("Usage: ingester <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  ingest    - load, split and embed every source into pgvector")
	fmt.Println("  count     - print the number of stored segments per source")
	fmt.Println("  token     - print an admin JWT for the admin routes")
	fmt.Println("\nOptions:")
	fmt.Println("  --sources <file>  - JSON file listing the sources")
	fmt.Println("  --clear           - clear existing segments before ingesting")
	fmt.Println("  --subject <name>  - token subject (token only)")
	fmt.Println("  --ttl <duration>  - token lifetime (token only)")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	config.LoadDotEnv()

	// token does not touch the database
	if command == "token" {
		if err := PrintToken(config.ParseTokenFlags(args)); err != nil {
			logger.FatalErr(err, "failed to generate token")
		}
		return
	}

	cfg, err := config.IngesterFromEnv()
	if err != nil {
		logger.FatalErr(err, "failed to load configuration")
	}

	// connect to database
	ctx := context.Background()
	db, err := vectorstore.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.FatalErr(err, "failed to connect to database")
	}

	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		logger.FatalErr(err, "failed to prepare schema")
	}

	logger.Info("connected to database")

	// route to appropriate command
	switch command {
	case "ingest":
		if err := IngestSources(ctx, cfg, db, config.ParseIngestFlags(args)); err != nil {
			logger.FatalErr(err, "failed to ingest sources")
		}

	case "count":
		if err := CountSegments(ctx, cfg, db, config.ParseCountFlags(args)); err != nil {
			logger.FatalErr(err, "failed to count segments")
		}

	default:
		fmt.Printf("Unknown command: %s\n", command)
		usage()
		os.Exit(1)
	}
}
