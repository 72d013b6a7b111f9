package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/term"

	"tally/internal/domain/monthref"
	"tally/internal/infrastructure/postgres"
	"tally/internal/shared/auth"
	"tally/internal/shared/config"
)

const usage = `Tally Admin CLI - Management commands for the Tally API

Usage:
  admin <command> [options]

Commands:
  migrate         Run pending database migrations
  hash-password   Generate a bcrypt hash for AUTH_PASSWORD_HASH
  open-month      Create (or reactivate) the month reference for a period
  close-month     Deactivate the month reference for a period

Examples:
  # Apply all pending migrations
  admin migrate

  # Hash a password for the operator account (prompts on stdin)
  admin hash-password

  # Open the accounting period for March 2026
  admin open-month --month=3 --year=2026

  # Close the accounting period for February 2026
  admin close-month --month=2 --year=2026`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		runMigrate()
	case "hash-password":
		runHashPassword()
	case "open-month":
		runOpenMonth(os.Args[2:])
	case "close-month":
		runCloseMonth(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Println(usage)
		os.Exit(1)
	}
}

func runMigrate() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := postgres.RunMigrations(cfg.Database.ConnectionString()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied")
}

func runHashPassword() {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	if len(password) == 0 {
		log.Fatal("Password must not be empty")
	}

	hash, err := auth.HashPassword(string(password))
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Println(hash)
}

func runOpenMonth(args []string) {
	month, year := parsePeriodFlags("open-month", args)

	service, cleanup := newMonthRefService()
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ref, err := service.FindOrCreate(ctx, month, year)
	if err != nil {
		log.Fatalf("Failed to open month: %v", err)
	}

	if !ref.Active {
		ref, err = service.ToggleActive(ctx, ref.ID)
		if err != nil {
			log.Fatalf("Failed to reactivate month: %v", err)
		}
	}

	log.Printf("Month reference %s is open (%02d/%d)", ref.ID, ref.Month, ref.Year)
}

func runCloseMonth(args []string) {
	month, year := parsePeriodFlags("close-month", args)

	service, cleanup := newMonthRefService()
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ref, err := service.FindByPeriod(ctx, month, year)
	if err != nil {
		log.Fatalf("Failed to find month reference: %v", err)
	}

	if !ref.Active {
		log.Printf("Month reference %s is already closed (%02d/%d)", ref.ID, ref.Month, ref.Year)
		return
	}

	ref, err = service.ToggleActive(ctx, ref.ID)
	if err != nil {
		log.Fatalf("Failed to close month: %v", err)
	}

	log.Printf("Month reference %s is closed (%02d/%d)", ref.ID, ref.Month, ref.Year)
}

func parsePeriodFlags(name string, args []string) (month, year int) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)

	monthFlag := fs.Int("month", 0, "Month of the period (1-12)")
	yearFlag := fs.Int("year", 0, "Year of the period")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *monthFlag == 0 || *yearFlag == 0 {
		fmt.Println("Error: must specify --month and --year")
		fs.Usage()
		os.Exit(1)
	}

	return *monthFlag, *yearFlag
}

func newMonthRefService() (*monthref.Service, func()) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	repo := postgres.NewMonthReferenceRepository(db)
	return monthref.NewService(repo), func() { db.Close() }
}
