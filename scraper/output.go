package scraper

import (
	"encoding/csv"
	"fmt"
	"os"
)

// WriteCSV writes one row per result to the given path, overwriting any
// existing file.
func WriteCSV(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	writer := csv.NewWriter(f)
	header := []string{"url", "domain", "price", "sku", "specs_html", "error"}
	if err := writer.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range results {
		record := []string{r.URL, r.Domain, r.Price, r.SKU, r.SpecsHTML, r.Err}
		if err := writer.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("failed to write row for %s: %w", r.URL, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return f.Close()
}
