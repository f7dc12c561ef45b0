// Command importer loads a mobile post office dataset into MongoDB from a
// local JSON/XLSX file or an HTTP feed. With -dry-run the batch is validated
// against an in-memory store and nothing is persisted.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hkopendata/mobile-post-services/api/internal/feed"
	"github.com/hkopendata/mobile-post-services/api/internal/infrastructure/memory"
	mongodoc "github.com/hkopendata/mobile-post-services/api/internal/infrastructure/mongo"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/application"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"
)

type importerOptions struct {
	filePath string
	feedURL  string
	dryRun   bool
	timeout  time.Duration
}

func main() {
	opts := parseFlags()
	logger := log.New(os.Stdout, "[mobile-post-importer] ", log.LstdFlags)

	source, err := buildSource(opts)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	repo, cleanup, err := buildRepository(ctx, logger, opts.dryRun)
	if err != nil {
		logger.Fatalf("connect storage: %v", err)
	}
	defer cleanup()

	report, err := application.NewImportService(repo, logger).Run(ctx, source)
	if err != nil {
		logger.Fatalf("import failed: %v", err)
	}

	printReport(logger, report, opts.dryRun)
}

func parseFlags() importerOptions {
	var opts importerOptions
	flag.StringVar(&opts.filePath, "file", "", "path to a JSON or XLSX dataset")
	flag.StringVar(&opts.feedURL, "url", "", "HTTP endpoint serving the JSON dataset")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "validate the batch without writing to MongoDB")
	flag.DurationVar(&opts.timeout, "timeout", 60*time.Second, "overall run timeout")
	flag.Parse()

	if (opts.filePath == "") == (opts.feedURL == "") {
		log.Fatal("specify exactly one of -file or -url")
	}
	return opts
}

func buildSource(opts importerOptions) (application.Source, error) {
	if opts.feedURL != "" {
		return feed.NewHTTPSource(&http.Client{Timeout: opts.timeout}, opts.feedURL), nil
	}
	if strings.EqualFold(filepath.Ext(opts.filePath), ".xlsx") {
		return feed.NewXLSXSource(opts.filePath), nil
	}
	return feed.NewFileSource(opts.filePath), nil
}

// buildRepository returns the in-memory store for dry runs, otherwise a
// MongoDB-backed repository with the query indexes in place.
func buildRepository(ctx context.Context, logger *log.Logger, dryRun bool) (application.PostRepository, func(), error) {
	if dryRun {
		return memory.NewPostRepository(), func() {}, nil
	}

	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "mobile-post")
	collectionName := envOrDefault("POST_COLLECTION", "posts")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Disconnect(context.Background())
	}

	db := client.Database(dbName)
	if err := ensureIndexes(ctx, db.Collection(collectionName)); err != nil {
		logger.Printf("WARN: create indexes: %v", err)
	}

	return mongodoc.NewPostRepository(db, collectionName), cleanup, nil
}

func ensureIndexes(ctx context.Context, col *mongo.Collection) error {
	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "mobileCode", Value: 1}, {Key: "seq", Value: 1}},
			Options: options.Index().SetName("idx_post_code_seq"),
		},
		{
			Keys:    bson.D{{Key: "dayOfWeekCode", Value: 1}},
			Options: options.Index().SetName("idx_post_day"),
		},
		{
			Keys:    bson.D{{Key: "openHour", Value: 1}, {Key: "closeHour", Value: 1}},
			Options: options.Index().SetName("idx_post_hours"),
		},
	})
	return err
}

func printReport(logger *log.Logger, report *domain.ImportReport, dryRun bool) {
	mode := "import"
	if dryRun {
		mode = "dry-run"
	}
	logger.Printf("%s finished: total=%d imported=%d skipped=%d duplicates=%d",
		mode, report.Total, report.Imported, report.Skipped, report.Duplicates)
	for _, irr := range report.Irregularities {
		logger.Printf("row %d: field=%q reason=%s code=%s %s", irr.Row, irr.Field, irr.Reason, irr.Code, irr.Message)
	}
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
