package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"route-optimizer-service/internal/adapters/registry"
	"route-optimizer-service/internal/platform/db"
)

// dbtool initializes the locations schema and seeds the default city table.
// Point it at Postgres with DATABASE_URL or at a file with SQLITE_PATH.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	sqlitePath := os.Getenv("SQLITE_PATH")

	switch {
	case strings.TrimSpace(databaseURL) != "":
		conn, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		ctx := context.Background()
		log.Println("Initializing locations schema...")
		if err := registry.InitSchema(ctx, conn); err != nil {
			log.Fatalf("schema initialization failed: %v", err)
		}
		log.Println("Seeding default cities...")
		if err := registry.Seed(ctx, conn, registry.DefaultCities); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}

	case strings.TrimSpace(sqlitePath) != "":
		conn, err := db.OpenSqlite(sqlitePath)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		log.Println("Initializing locations schema...")
		if err := registry.InitSqliteSchema(conn); err != nil {
			log.Fatalf("schema initialization failed: %v", err)
		}
		log.Println("Seeding default cities...")
		if err := registry.SeedSqlite(conn, registry.DefaultCities); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}

	default:
		log.Fatal("DATABASE_URL or SQLITE_PATH is required")
	}

	log.Println("Done.")
}
