// Package scraper visits retailer product-detail pages in one headless
// browser session, expands hidden specification sections, and extracts
// price, SKU, and the specification HTML block from each page.
package scraper

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config drives one scrape batch, loadable from a YAML file. Selector and
// pattern lists are intentionally generic so one configuration covers many
// retailers; per-domain SKU patterns handle the exceptions.
type Config struct {
	URLs      []string `yaml:"urls"`
	OutputCSV string   `yaml:"output_csv"`
	HistoryDB string   `yaml:"history_db"`
	UserAgent string   `yaml:"user_agent"`

	// Go duration strings, e.g. "60s". MinDelay/MaxDelay bound the random
	// pause between pages.
	NavTimeout string `yaml:"nav_timeout"`
	MinDelay   string `yaml:"min_delay"`
	MaxDelay   string `yaml:"max_delay"`

	PriceSelectors    []string            `yaml:"price_selectors"`
	ExpandLabels      []string            `yaml:"expand_labels"`
	SKUPatterns       []string            `yaml:"sku_patterns"`
	DomainSKUPatterns map[string][]string `yaml:"domain_sku_patterns"`

	// Headless is controlled by the CLI, not the config file.
	Headless bool `yaml:"-"`
}

// DefaultConfig returns the generic multi-retailer configuration.
func DefaultConfig() Config {
	return Config{
		OutputCSV:  "pdp_scrape_output.csv",
		HistoryDB:  "scrape_history.db",
		UserAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		NavTimeout: "60s",
		MinDelay:   "1s",
		MaxDelay:   "2500ms",
		PriceSelectors: []string{
			"[itemprop='price']",
			"[data-product-price]",
			"[data-test='product-price']",
			"[data-testid='product-price']",
			".product-price",
			".productPrice",
			".product-price__price",
			".price__value",
			".price",
			".b-product_price",
			".c-product-price",
			".product-main-price",
			".js-product-price",
			".prd-price",
			".product-details__price",
			".t-product-price__amount",
		},
		ExpandLabels: []string{
			"Specification",
			"Specifications",
			"Technical Details",
			"Technical Specification",
			"Product details",
			"Product information",
			"More information",
			"Full details",
			"Show more",
			"Show all",
			"More details",
			"View more",
		},
		SKUPatterns: []string{
			`Product code[:\s]*([A-Za-z0-9\-]+)`,
			`Product ID[:\s]*([A-Za-z0-9\-]+)`,
			`SKU[:\s]*([A-Za-z0-9\-]+)`,
			`Model number[:\s]*([A-Za-z0-9\-\/]+)`,
			`Item code[:\s]*([A-Za-z0-9\-]+)`,
		},
		DomainSKUPatterns: map[string][]string{
			"www.argos.co.uk":  {`Catalogue number[:\s]*([0-9\-]+)`},
			"www.screwfix.com": {`Product code\s*([A-Za-z0-9\-]+)`},
		},
		Headless: true,
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults; a named file must exist and parse.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// durations parses the configured timeout and delay bounds.
func (c Config) durations() (nav, minDelay, maxDelay time.Duration, err error) {
	if nav, err = time.ParseDuration(c.NavTimeout); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid nav_timeout: %w", err)
	}
	if minDelay, err = time.ParseDuration(c.MinDelay); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid min_delay: %w", err)
	}
	if maxDelay, err = time.ParseDuration(c.MaxDelay); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid max_delay: %w", err)
	}
	if maxDelay < minDelay {
		return 0, 0, 0, fmt.Errorf("max_delay %s is shorter than min_delay %s", c.MaxDelay, c.MinDelay)
	}
	return nav, minDelay, maxDelay, nil
}
