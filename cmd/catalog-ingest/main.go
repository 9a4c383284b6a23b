// Command catalog-ingest bulk-loads the item catalog from gzipped supplier
// feed files. Feeds are semicolon-separated lines of name;description;price
// and routinely repeat items, both within one feed and across feeds, so a
// bloom filter screens out already-seen names before the database is touched.
package main

import (
	"bufio"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/averku/storefront/internal/repository"
)

const (
	bloomCapacity = 10_000_000
	bloomFPR      = 0.001
	progressEvery = 100_000
)

// feedItem is one parsed line from a supplier feed.
type feedItem struct {
	name        string
	description string
	price       decimal.Decimal
}

func main() {
	var (
		dataDir     string
		databaseURL string
	)

	flag.StringVar(&dataDir, "data-dir", "data", "directory containing *.gz feed files")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
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

	if err := run(ctx, dataDir, databaseURL); err != nil {
		slog.Error("catalog ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("catalog ingest completed successfully")
}

func run(ctx context.Context, dataDir, databaseURL string) error {
	files, err := filepath.Glob(filepath.Join(dataDir, "*.gz"))
	if err != nil {
		return errors.Wrap(err, "list feed files")
	}
	if len(files) == 0 {
		return errors.Errorf("no *.gz feed files in %s", dataDir)
	}

	slog.Info("parsing feeds", slog.Int("files", len(files)))

	// Parse every feed concurrently, one goroutine per file.
	parsed := make([][]feedItem, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(parseFeedFile(gctx, i, f, parsed))
	}
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "parse feeds")
	}

	// Dedupe across feeds: first occurrence of a name wins. The filter can
	// rarely report a false positive, dropping a genuinely new item; the
	// WHERE NOT EXISTS guard on insert makes the opposite mistake harmless.
	filter := bloom.NewWithEstimates(bloomCapacity, bloomFPR)
	var unique []feedItem
	for _, items := range parsed {
		for _, it := range items {
			if filter.TestString(it.name) {
				continue
			}
			filter.AddString(it.name)
			unique = append(unique, it)
		}
	}

	slog.Info("feeds deduplicated", slog.Int("unique_items", len(unique)))

	if len(unique) == 0 {
		slog.Info("nothing to insert")
		return nil
	}

	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	return writeItems(ctx, pool, unique)
}

// parseFeedFile returns an errgroup task that parses one gzipped feed into
// the shared results slice.
func parseFeedFile(ctx context.Context, idx int, path string, results [][]feedItem) func() error {
	return func() error {
		var (
			items []feedItem
			bad   int
			count int
		)

		err := streamGzFile(ctx, path, func(line string) {
			count++
			if count%progressEvery == 0 {
				slog.Info("parse progress",
					slog.Int("file", idx+1),
					slog.Int("lines", count),
				)
			}

			it, err := parseLine(line)
			if err != nil {
				bad++
				return
			}
			items = append(items, it)
		})
		if err != nil {
			return errors.Wrapf(err, "parse feed %s", path)
		}

		slog.Info("feed parsed",
			slog.String("file", filepath.Base(path)),
			slog.Int("items", len(items)),
			slog.Int("rejected", bad),
		)

		results[idx] = items
		return nil
	}
}

// parseLine splits a name;description;price feed line. Lines with a missing
// name, an unparseable price, or a negative price are rejected.
func parseLine(line string) (feedItem, error) {
	parts := strings.SplitN(line, ";", 3)
	if len(parts) != 3 {
		return feedItem{}, errors.New("want 3 fields")
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return feedItem{}, errors.New("empty name")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(parts[2]))
	if err != nil || price.IsNegative() {
		return feedItem{}, errors.New("bad price")
	}

	return feedItem{
		name:        name,
		description: strings.TrimSpace(parts[1]),
		price:       price,
	}, nil
}

// streamGzFile opens a gzip-compressed file and calls fn for each line.
func streamGzFile(ctx context.Context, path string, fn func(line string)) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "create gzip reader for %s", path)
	}
	defer func() { _ = gz.Close() }()

	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scan %s", path)
	}

	return nil
}

// writeItems inserts deduplicated items, skipping names already in the catalog.
func writeItems(ctx context.Context, pool *pgxpool.Pool, items []feedItem) error {
	slog.Info("writing items to database", slog.Int("count", len(items)))

	const insertSQL = `INSERT INTO items (name, description, price)
		SELECT $1, $2, $3 WHERE NOT EXISTS (SELECT 1 FROM items WHERE name = $1)`

	for i, it := range items {
		if _, err := pool.Exec(ctx, insertSQL, it.name, it.description, it.price); err != nil {
			return errors.Wrapf(err, "insert item %q", it.name)
		}
		if (i+1)%1000 == 0 || i+1 == len(items) {
			slog.Info("write progress", slog.Int("written", i+1), slog.Int("total", len(items)))
		}
	}

	return nil
}
