// Command fetcher retrieves one day's publication document, normalizes it
// and exports the result as CSV plus, for price documents, an Excel
// workbook. One date per invocation; looping over ranges is the caller's
// business.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"entsocli/internal/cache"
	"entsocli/internal/config"
	"entsocli/internal/dataprocessing"
	"entsocli/internal/exporter"
	"entsocli/internal/infrastructure"
	"entsocli/internal/store"
	"entsocli/internal/transport/entsoe"
	"entsocli/pkg/contracts/domain"
)

// documentTypeCodes maps the user-facing document names to the platform's
// document type codes.
var documentTypeCodes = map[string]string{
	"price":          "A44",
	"load":           "A65",
	"unavailability": "A77",
	"balancing":      "A86",
}

func main() {
	date := flag.String("date", "", "day to fetch, YYYY-MM-DD (required)")
	docName := flag.String("type", "price", "document type: price, load, unavailability or balancing")
	area := flag.String("domain", "", "bidding zone EIC code, e.g. 10YFI-1--------U (required)")
	process := flag.String("process", "", "optional process type code, e.g. A16")
	saveRows := flag.Bool("save", false, "also store the price projection in DynamoDB")
	flag.Parse()

	if err := run(*date, *docName, *area, *process, *saveRows); err != nil {
		slog.Error("fetch failed", "error", err)
		os.Exit(1)
	}
}

func run(date, docName, area, process string, saveRows bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogger()

	docType, ok := documentTypeCodes[docName]
	if !ok {
		return fmt.Errorf("unknown document type %q", docName)
	}
	if area == "" {
		return fmt.Errorf("missing required -domain flag")
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid -date value %q: %w", date, err)
	}

	paths, err := config.NewPaths(cfg.Paths, cfg.Cache.Dir)
	if err != nil {
		return fmt.Errorf("failed to prepare directories: %w", err)
	}

	var clientOpts []entsoe.Option
	if cfg.Cache.Enabled {
		documentCache, err := cache.Open(paths.CacheDir, cfg.Cache.TTL)
		if err != nil {
			return fmt.Errorf("failed to open document cache: %w", err)
		}
		defer documentCache.Close()
		clientOpts = append(clientOpts, entsoe.WithCache(documentCache))
	}

	client := entsoe.NewClient(cfg.Client, logger, clientOpts...)
	processor := dataprocessing.NewProcessor(cfg.Location(), cfg.Pipeline.DefaultResolutionMinutes, logger)

	ctx := infrastructure.EnsureTraceID(context.Background())

	raw, err := client.FetchDocument(ctx, entsoe.FetchRequest{
		DocumentType: docType,
		ProcessType:  process,
		InDomain:     area,
		OutDomain:    area,
		PeriodStart:  day,
		PeriodEnd:    day.AddDate(0, 0, 1),
	})
	if err != nil {
		return fmt.Errorf("failed to fetch document: %w", err)
	}

	result, err := processor.Process(ctx, raw)
	if err != nil {
		return fmt.Errorf("failed to process document: %w", err)
	}

	domain.SortRows(result.Rows)
	printPreview(result.Rows)

	baseName := fmt.Sprintf("%s_%s_%s", docName, area, day.Format("2006-01-02"))

	// Keep the raw document next to the reports; the cache expires, the
	// download dir is the durable copy.
	if err := os.WriteFile(paths.GetDownloadPath(baseName+".xml"), raw, 0644); err != nil {
		return fmt.Errorf("failed to save raw document: %w", err)
	}

	var g errgroup.Group
	g.Go(func() error {
		rowExporter := exporter.NewRowExporter(paths)
		return rowExporter.ExportRows(result.Rows, baseName+".csv")
	})
	if result.Publication.DocumentType == domain.DocumentTypePrice {
		g.Go(func() error {
			workbook := exporter.NewPriceWorkbookExporter(cfg.Location(), logger)
			return workbook.Export(domain.PriceProjection(result.Rows), paths.GetReportPath(baseName+".xlsx"))
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if saveRows && cfg.Store.Enabled {
		priceStore, err := store.New(cfg.Store, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize store: %w", err)
		}
		projection := domain.PriceProjection(result.Rows)
		if err := priceStore.SavePriceRows(ctx, day.Format("2006-01-02"), area, projection); err != nil {
			return fmt.Errorf("failed to store price rows: %w", err)
		}
	}

	logger.InfoContext(ctx, "fetch complete",
		slog.String("document_type", docName),
		slog.String("domain", area),
		slog.String("date", day.Format("2006-01-02")),
		slog.Int("rows", len(result.Rows)))
	return nil
}

// printPreview writes the first few rows to stdout so interactive runs
// show what was fetched without opening the report files.
func printPreview(rows []domain.Row) {
	const previewLimit = 5

	fmt.Printf("%-12s %-7s %-10s %12s %14s\n", "date", "time", "position", "price", "quantity")
	for i, row := range rows {
		if i == previewLimit {
			fmt.Printf("... %d more rows\n", len(rows)-previewLimit)
			break
		}
		price := domain.DisplaySentinel
		if row.Price != nil {
			price = exporter.FormatGroupedNumber(*row.Price)
		}
		fmt.Printf("%-12s %-7s %-10d %12s %14s\n",
			row.Date, row.Time, row.Position, price,
			exporter.FormatGroupedNumber(row.Quantity))
	}
}
