// Package speccheck runs the specification comparison pass over CSV
// exports: each row's scraped workflow payload is verified against its
// free-text manual specification and the grouped result is written back
// into a comparison column.
package speccheck

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"speccheck/compare"
)

// Columns names the CSV fields the pipeline reads and writes. The names are
// configuration, not protocol; different exports use different headers.
type Columns struct {
	Payload    string `yaml:"payload"`
	Manual     string `yaml:"manual"`
	Status     string `yaml:"status"`
	Comparison string `yaml:"comparison"`
}

// PatternConfig is one labeled regular expression for the named-attribute
// scanner, supplied as data.
type PatternConfig struct {
	Label   string `yaml:"label"`
	Pattern string `yaml:"pattern"`
}

// Config is the comparison run configuration, loadable from a YAML file.
type Config struct {
	Columns          Columns         `yaml:"columns"`
	IgnoreAttributes []string        `yaml:"ignore_attributes"`
	FuzzyThreshold   int             `yaml:"fuzzy_threshold"`
	ScanVariant      string          `yaml:"scan_variant"` // "named" or "values"
	NamedPatterns    []PatternConfig `yaml:"named_patterns"`
	ValuePatterns    []string        `yaml:"value_patterns"`
}

// DefaultConfig returns the configuration matching the original export
// format: Payload / Manual Spec / Scrape Status columns and the value-set
// scanner.
func DefaultConfig() Config {
	return Config{
		Columns: Columns{
			Payload:    "Payload",
			Manual:     "Manual Spec",
			Status:     "Scrape Status",
			Comparison: "Comparison Confirmation",
		},
		IgnoreAttributes: []string{"category", "image 1", "image 2", "image 3", "image 4"},
		FuzzyThreshold:   compare.DefaultFuzzyThreshold,
		ScanVariant:      string(compare.ScanValueSet),
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

// ComparerOptions compiles the configuration into compare.Options. Pattern
// tables left empty fall back to the built-in defaults.
func (c Config) ComparerOptions() (compare.Options, error) {
	opts := compare.Options{
		IgnoreAttributes: c.IgnoreAttributes,
		FuzzyThreshold:   c.FuzzyThreshold,
		Variant:          compare.ScanVariant(c.ScanVariant),
	}

	for _, p := range c.NamedPatterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return opts, fmt.Errorf("invalid pattern for %q: %w", p.Label, err)
		}
		opts.NamedPatterns = append(opts.NamedPatterns, compare.AttributePattern{
			Label:   p.Label,
			Pattern: re,
		})
	}
	for _, raw := range c.ValuePatterns {
		re, err := regexp.Compile(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid value pattern %q: %w", raw, err)
		}
		opts.ValuePatterns = append(opts.ValuePatterns, re)
	}

	return opts, nil
}
