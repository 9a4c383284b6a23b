// Command seed-db applies migrations and loads the item catalog from a JSON
// file. It can also create a demo user for manual testing.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/averku/storefront/internal/auth"
	"github.com/averku/storefront/internal/repository"
)

type itemJSON struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

func main() {
	var (
		databaseURL  string
		itemsFile    string
		demoUser     string
		demoPassword string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&itemsFile, "items-file", "db/seed/items.json", "path to items JSON file")
	flag.StringVar(&demoUser, "demo-user", "", "optional demo username to create")
	flag.StringVar(&demoPassword, "demo-password", "", "password for the demo user (min 8 chars)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, itemsFile, demoUser, demoPassword); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, itemsFile, demoUser, demoPassword string) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedItems(ctx, pool, itemsFile); err != nil {
		return errors.Wrap(err, "seed items")
	}

	if demoUser != "" {
		if err := seedDemoUser(ctx, pool, demoUser, demoPassword); err != nil {
			return errors.Wrap(err, "seed demo user")
		}
	}

	return nil
}

func seedItems(ctx context.Context, pool *pgxpool.Pool, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read items file")
	}

	var items []itemJSON
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.Wrap(err, "parse items file")
	}

	const insertSQL = `INSERT INTO items (name, description, price)
		SELECT $1, $2, $3 WHERE NOT EXISTS (SELECT 1 FROM items WHERE name = $1)`

	for _, it := range items {
		if _, err := pool.Exec(ctx, insertSQL, it.Name, it.Description, it.Price); err != nil {
			return errors.Wrapf(err, "insert item %q", it.Name)
		}
	}

	slog.Info("seeded items", slog.Int("count", len(items)))
	return nil
}

func seedDemoUser(ctx context.Context, pool *pgxpool.Pool, username, password string) error {
	if len(password) < 8 {
		return errors.New("demo password must be at least 8 characters")
	}

	hash, err := auth.NewBcryptHasher(0).Hash(password)
	if err != nil {
		return errors.Wrap(err, "hash demo password")
	}

	var userID int64
	err = pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2)
			ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
			RETURNING id`,
		username, hash,
	).Scan(&userID)
	if err != nil {
		return errors.Wrap(err, "insert demo user")
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO carts (user_id, items, total) VALUES ($1, '[]', 0)
			ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return errors.Wrap(err, "insert demo cart")
	}

	slog.Info("seeded demo user", slog.String("username", username))
	return nil
}
