package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/anascb/storefront/internal/infrastructure/config"
	"github.com/anascb/storefront/internal/infrastructure/logger"
	"github.com/anascb/storefront/internal/infrastructure/migration"
)

func main() {
	var (
		path     = flag.String("path", "migrations", "directory holding the SQL migration files")
		logLevel = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() == 0 {
		printUsage()
		os.Exit(1)
	}
	command := flag.Arg(0)

	log := logger.New(config.LogConfig{Level: *logLevel, Format: "console", Output: "stdout"})
	defer func() { _ = log.Sync() }()

	// create and list work on files alone, no database needed.
	switch command {
	case "create":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "usage: migrate create <name>")
			os.Exit(1)
		}
		pair, err := migration.Create(*path, flag.Arg(1))
		if err != nil {
			log.Fatal("create migration failed", zap.Error(err))
		}
		fmt.Printf("created %s\n", pair.UpPath)
		fmt.Printf("created %s\n", pair.DownPath)
		return
	case "list":
		names, err := migration.List(*path)
		if err != nil {
			log.Fatal("list migrations failed", zap.Error(err))
		}
		if len(names) == 0 {
			fmt.Println("no migrations found")
			return
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load configuration failed", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("open database failed", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("database unreachable", zap.Error(err))
	}

	mg, err := migration.New(db, *path, log)
	if err != nil {
		log.Fatal("init migrator failed", zap.Error(err))
	}
	defer func() { _ = mg.Close() }()

	if err := run(mg, command, flag.Args()[1:]); err != nil {
		log.Fatal("migration failed", zap.String("command", command), zap.Error(err))
	}
}

func run(mg *migration.Migrator, command string, args []string) error {
	switch command {
	case "up":
		return mg.Up()
	case "down":
		return mg.Down()
	case "steps":
		if len(args) < 1 {
			return fmt.Errorf("usage: migrate steps <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return mg.Steps(n)
	case "version":
		version, dirty, err := mg.Version()
		if err != nil {
			return err
		}
		fmt.Printf("version: %d dirty: %v\n", version, dirty)
		return nil
	case "force":
		if len(args) < 1 {
			return fmt.Errorf("usage: migrate force <version>")
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return mg.Force(v)
	case "drop":
		if len(args) < 1 || args[0] != "-confirm" {
			return fmt.Errorf("drop destroys all data, re-run with: migrate drop -confirm")
		}
		return mg.Drop()
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Storefront schema migration tool.

Usage:
  migrate [flags] <command> [args]

Commands:
  up               apply all pending migrations
  down             roll back all migrations
  steps <n>        apply n migrations (negative rolls back)
  version          print the current schema version
  force <version>  set the version without migrating (dirty-state recovery)
  drop -confirm    drop the whole schema
  create <name>    create an empty up/down migration pair
  list             list migration files

Flags:
`)
	flag.PrintDefaults()
}
