package speccheck

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"speccheck/compare"
)

// NotApplicable marks rows the comparer cannot score: a non-success scrape
// status or an unparseable payload.
const NotApplicable = "Not Applicable"

// statusSuccess is the only status value (case-folded, trimmed) that admits
// a row to comparison.
const statusSuccess = "success"

// Processor runs the comparison pass over one CSV table.
type Processor struct {
	cfg      Config
	comparer *compare.Comparer
}

// NewProcessor builds a Processor from the given configuration. It fails
// only on invalid pattern configuration.
func NewProcessor(cfg Config) (*Processor, error) {
	opts, err := cfg.ComparerOptions()
	if err != nil {
		return nil, err
	}
	return &Processor{cfg: cfg, comparer: compare.NewComparer(opts)}, nil
}

// OutputPath derives the default output filename from the input path:
// data.csv becomes data_with_comparison.csv.
func OutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + "_with_comparison" + ext
}

// ProcessFile reads the input CSV, annotates every row, and writes the
// result to outputPath (derived from the input path when empty). Returns
// the number of data rows written.
func (p *Processor) ProcessFile(inputPath, outputPath string) (int, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	if outputPath == "" {
		outputPath = OutputPath(inputPath)
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output: %w", err)
	}

	count, err := p.Process(in, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close output: %w", cerr)
	}
	return count, err
}

// Process runs the comparison pass from r to w. The header row must carry
// the payload, manual, and status columns; a missing column is a structural
// error that aborts before any row is processed. The comparison column is
// reused when present and appended otherwise.
func (p *Processor) Process(r io.Reader, w io.Writer) (int, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, required := range []string{p.cfg.Columns.Payload, p.cfg.Columns.Manual, p.cfg.Columns.Status} {
		if _, ok := index[required]; !ok {
			return 0, fmt.Errorf("required column %q not found in input", required)
		}
	}

	comparisonIdx, hasComparison := index[p.cfg.Columns.Comparison]
	outHeader := header
	if !hasComparison {
		outHeader = append(append([]string(nil), header...), p.cfg.Columns.Comparison)
		comparisonIdx = len(outHeader) - 1
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(outHeader); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	count := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read row %d: %w", count+1, err)
		}

		if !hasComparison {
			record = append(record, "")
		}
		record[comparisonIdx] = p.compareRecord(record, index)

		if err := writer.Write(record); err != nil {
			return count, fmt.Errorf("failed to write row %d: %w", count+1, err)
		}
		count++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return count, fmt.Errorf("failed to flush output: %w", err)
	}
	return count, nil
}

// compareRecord produces the comparison cell for one row. Row-level
// problems degrade to the NotApplicable marker; they never abort the pass.
func (p *Processor) compareRecord(record []string, index map[string]int) string {
	status := strings.ToLower(strings.TrimSpace(record[index[p.cfg.Columns.Status]]))
	if status != statusSuccess {
		return NotApplicable
	}

	var payload any
	if err := json.Unmarshal([]byte(record[index[p.cfg.Columns.Payload]]), &payload); err != nil {
		return NotApplicable
	}

	return p.comparer.Compare(record[index[p.cfg.Columns.Manual]], payload)
}
