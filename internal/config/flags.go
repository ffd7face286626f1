package config

import (
	"flag"
	"time"
)

// parses CLI flags for the ingest subcommand
func ParseIngestFlags(args []string) Flags {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	sources := fs.String("sources", "", "path to the sources JSON file (defaults to SOURCES_FILE or the built-in sources)")
	clearFlag := fs.Bool("clear", false, "clear existing segments of each source before ingesting")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{SourcesFile: *sources, Clear: *clearFlag}
}

// parses CLI flags for the count subcommand
func ParseCountFlags(args []string) Flags {
	fs := flag.NewFlagSet("count", flag.ExitOnError)
	sources := fs.String("sources", "", "path to the sources JSON file")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{SourcesFile: *sources}
}

// parses CLI flags for the token subcommand
func ParseTokenFlags(args []string) Flags {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	subject := fs.String("subject", "admin", "name recorded in the token")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{Subject: *subject, TTL: *ttl}
}
