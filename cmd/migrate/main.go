// migrate runs DB migrations from embedded SQL; use with ./scripts/migrate.sh or go run ./cmd/migrate.
// -direction status prints the applied and latest embedded versions.
package main

import (
	"flag"
	"fmt"
	"os"

	"account-console/backend/internal/config"
	"account-console/backend/internal/db/migrate"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up, down or status")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
		os.Exit(1)
	}

	if *direction == "status" {
		if err := status(cfg.DatabaseURL); err != nil {
			fmt.Fprintln(os.Stderr, "migrate:", err)
			os.Exit(1)
		}
		return
	}
	if err := migrate.Run(cfg.DatabaseURL, *direction); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func status(dsn string) error {
	applied, dirty, err := migrate.Version(dsn)
	if err != nil {
		return err
	}
	latest, err := migrate.Latest()
	if err != nil {
		return err
	}
	fmt.Printf("applied: %d\nlatest:  %d\n", applied, latest)
	if dirty {
		fmt.Println("state:   dirty (a migration failed; fix and force the version)")
	}
	return nil
}
