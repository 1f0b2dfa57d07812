package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"speccheck/scraper"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configPath := flag.String("config", getEnv("PDPSCRAPE_CONFIG", ""), "YAML config file with the URL batch")
	out := flag.String("out", "", "Output CSV file (default: from config)")
	db := flag.String("db", "", "Scrape history database (default: from config)")
	headless := flag.Bool("headless", true, "Run the browser without a visible window")
	flag.Parse()

	cfg, err := scraper.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.Headless = *headless
	if *out != "" {
		cfg.OutputCSV = *out
	}
	if *db != "" {
		cfg.HistoryDB = *db
	}

	urls := cfg.URLs
	if args := flag.Args(); len(args) > 0 {
		urls = args
	}
	if len(urls) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no URLs given (pass them as arguments or list them in the config)\n")
		flag.Usage()
		os.Exit(1)
	}

	session, err := scraper.NewSession(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	store, err := scraper.NewRunStore(cfg.HistoryDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	run, err := store.BeginRun(len(urls))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to record run: %v\n", err)
		os.Exit(1)
	}

	results := session.Run(context.Background(), urls)

	for _, r := range results {
		if err := store.RecordResult(run.RunID, r); err != nil {
			log.Printf("WARN: failed to record result for %s: %v", r.URL, err)
		}
	}
	if err := store.FinishRun(run.RunID); err != nil {
		log.Printf("WARN: failed to finish run: %v", err)
	}

	if err := scraper.WriteCSV(cfg.OutputCSV, results); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Saved %d rows\n", len(results))
	fmt.Printf("  Run: %s\n", run.RunID.String())
	fmt.Printf("  Output: %s\n", cfg.OutputCSV)
}
