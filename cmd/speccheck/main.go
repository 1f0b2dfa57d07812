package main

import (
	"flag"
	"fmt"
	"os"

	"speccheck"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	input := flag.String("input", getEnv("SPECCHECK_INPUT", ""), "Input CSV file (required)")
	output := flag.String("output", "", "Output CSV file (default: input with _with_comparison suffix)")
	configPath := flag.String("config", getEnv("SPECCHECK_CONFIG", ""), "Optional YAML config file")
	flag.Parse()

	if *input == "" {
		fmt.Fprintf(os.Stderr, "Error: --input is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := speccheck.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	processor, err := speccheck.NewProcessor(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	outPath := *output
	if outPath == "" {
		outPath = speccheck.OutputPath(*input)
	}

	rows, err := processor.ProcessFile(*input, outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Processed %d rows\n", rows)
	fmt.Printf("  Output: %s\n", outPath)
}
