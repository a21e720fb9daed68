package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"fintrack/internal/domain/account"
	"fintrack/internal/domain/movement"
	"fintrack/internal/infrastructure/postgres"
	"fintrack/internal/shared/config"
)

const usage = `Fintrack Admin CLI - Management commands for the Fintrack API

Usage:
  admin <command> [options]

Commands:
  migrate          Apply pending database migrations
  migrate-status   Show applied/pending migration state
  reconcile        Verify stored account balances against movement sums

Examples:
  # Apply migrations
  admin migrate

  # Audit every account
  admin reconcile --all

  # Audit specific accounts
  admin reconcile --account-id=<uuid>,<uuid>

  # Audit with a custom timeout
  admin reconcile --all --timeout=5m
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		runMigrate()
	case "migrate-status":
		runMigrateStatus()
	case "reconcile":
		runReconcile(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func connect() *postgres.DB {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	return db
}

func runMigrate() {
	db := connect()
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied")
}

func runMigrateStatus() {
	db := connect()
	defer db.Close()

	if err := db.MigrationStatus(); err != nil {
		log.Fatalf("Failed to get migration status: %v", err)
	}
}

func runReconcile(args []string) {
	fs := flag.NewFlagSet("reconcile", flag.ExitOnError)

	accountIDStr := fs.String("account-id", "", "Account ID(s) to audit (comma-separated for multiple)")
	allAccounts := fs.Bool("all", false, "Audit all accounts")
	timeoutStr := fs.String("timeout", "10m", "Timeout for the operation (e.g., 5m, 1h)")

	fs.Usage = func() {
		fmt.Println("Usage: admin reconcile [options]")
		fmt.Println("\nOptions:")
		fs.PrintDefaults()
		fmt.Println("\nExamples:")
		fmt.Println("  admin reconcile --all")
		fmt.Println("  admin reconcile --account-id=<uuid>")
		fmt.Println("  admin reconcile --all --timeout=1h")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *accountIDStr == "" && !*allAccounts {
		fmt.Println("Error: must specify --account-id or --all")
		fs.Usage()
		os.Exit(1)
	}

	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	db := connect()
	defer db.Close()

	accountService := account.NewService(postgres.NewAccountRepository(db))
	movementService := movement.NewService(postgres.NewMovementRepository(db))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var accountIDs []string
	if *allAccounts {
		accounts, err := accountService.ListAccounts(ctx)
		if err != nil {
			log.Fatalf("Failed to list accounts: %v", err)
		}
		for _, acc := range accounts {
			accountIDs = append(accountIDs, acc.ID)
		}
		log.Printf("Found %d accounts", len(accountIDs))
	} else {
		for _, p := range strings.Split(*accountIDStr, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				accountIDs = append(accountIDs, p)
			}
		}
	}

	if len(accountIDs) == 0 {
		log.Println("No accounts to audit")
		return
	}

	startTime := time.Now()
	outOfSync := 0

	for _, id := range accountIDs {
		rec, err := movementService.ReconcileAccount(ctx, id)
		if err != nil {
			log.Printf("Failed to reconcile account %s: %v", id, err)
			outOfSync++
			continue
		}
		printReconciliation(rec)
		if !rec.InSync() {
			outOfSync++
		}
	}

	log.Printf("Reconciliation completed in %v", time.Since(startTime))
	if outOfSync > 0 {
		log.Fatalf("%d of %d accounts out of sync", outOfSync, len(accountIDs))
	}
	log.Printf("All %d accounts in sync", len(accountIDs))
}

func printReconciliation(rec *movement.Reconciliation) {
	status := "OK"
	if !rec.InSync() {
		status = "DRIFT"
	}

	fmt.Printf("\n=== Account %s [%s] ===\n", rec.AccountID, status)
	fmt.Printf("  Stored balance:   %12.2f\n", rec.StoredBalance)
	fmt.Printf("  Initial balance:  %12.2f\n", rec.InitialBalance)
	fmt.Printf("  Movement sum:     %12.2f\n", rec.MovementSum)
	fmt.Printf("  Drift:            %12.2f\n", rec.Drift)
}
