package speccheck

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper: build a processor with default configuration
func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	processor, err := NewProcessor(DefaultConfig())
	require.NoError(t, err)
	return processor
}

// Test helper: run the pass over an in-memory CSV and parse the result
func runPass(t *testing.T, input string) [][]string {
	t.Helper()
	var out bytes.Buffer
	_, err := newTestProcessor(t).Process(strings.NewReader(input), &out)
	require.NoError(t, err, "pass should succeed")

	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err, "output should be valid CSV")
	return rows
}

func comparisonCell(t *testing.T, rows [][]string, rowIdx int) string {
	t.Helper()
	header := rows[0]
	for i, name := range header {
		if name == "Comparison Confirmation" {
			return rows[rowIdx][i]
		}
	}
	t.Fatal("comparison column not found in output header")
	return ""
}

// TestProcess_MissingRequiredColumn verifies the structural error aborts
// before any row is processed
func TestProcess_MissingRequiredColumn(t *testing.T) {
	input := "Payload,Scrape Status\n{},Success\n"

	var out bytes.Buffer
	_, err := newTestProcessor(t).Process(strings.NewReader(input), &out)

	require.Error(t, err, "a missing required column should be fatal")
	assert.Contains(t, err.Error(), "Manual Spec")
	assert.Zero(t, out.Len(), "nothing should be written on a structural error")
}

// TestProcess_NonSuccessStatus verifies rows with a failed scrape get the
// marker regardless of payload content
func TestProcess_NonSuccessStatus(t *testing.T) {
	input := `Payload,Manual Spec,Scrape Status
"{""verified"":{""specification"":{""Wattage"":""10W""}}}",A bright 10w bulb,Failed
`
	rows := runPass(t, input)
	assert.Equal(t, NotApplicable, comparisonCell(t, rows, 1))
}

// TestProcess_StatusCaseFolding verifies "Success" passes the status gate
// after trimming and case folding
func TestProcess_StatusCaseFolding(t *testing.T) {
	input := `Payload,Manual Spec,Scrape Status
"{""verified"":{""specification"":{""Wattage"":""10W""}}}",A bright 10w bulb,  SUCCESS
`
	rows := runPass(t, input)
	assert.Contains(t, comparisonCell(t, rows, 1), "Wattage: 10W")
}

// TestProcess_UnparseablePayload verifies a non-JSON payload gets the
// marker and processing continues
func TestProcess_UnparseablePayload(t *testing.T) {
	input := `Payload,Manual Spec,Scrape Status
not json,A bright 10w bulb,Success
"{""verified"":{""specification"":{""Wattage"":""10W""}}}",A bright 10w bulb,Success
`
	rows := runPass(t, input)
	assert.Equal(t, NotApplicable, comparisonCell(t, rows, 1))
	assert.Contains(t, comparisonCell(t, rows, 2), "Wattage: 10W", "later rows should still be compared")
}

// TestProcess_MatchedRow verifies the end-to-end matched scenario
func TestProcess_MatchedRow(t *testing.T) {
	input := `Payload,Manual Spec,Scrape Status
"{""verified"":{""specification"":{""Wattage"":""10W""}}}",A bright 10w bulb,Success
`
	rows := runPass(t, input)
	cell := comparisonCell(t, rows, 1)
	assert.Contains(t, cell, "✅ Matched:")
	assert.Contains(t, cell, "Wattage: 10W")
}

// TestProcess_MismatchedRow verifies the end-to-end mismatched scenario
func TestProcess_MismatchedRow(t *testing.T) {
	input := `Payload,Manual Spec,Scrape Status
"{""verified"":{""specification"":{""Wattage"":""10W""}}}",A bright 9w bulb,Success
`
	rows := runPass(t, input)
	cell := comparisonCell(t, rows, 1)
	assert.Contains(t, cell, "⚠️ Mismatched:")
	assert.Contains(t, cell, "Wattage\n  Manual: 9w\n  Workflow: 10w")
}

// TestProcess_AppendsComparisonColumn verifies the column is added when the
// input lacks it
func TestProcess_AppendsComparisonColumn(t *testing.T) {
	input := "Payload,Manual Spec,Scrape Status\n{},text,Failed\n"

	rows := runPass(t, input)
	assert.Equal(t, []string{"Payload", "Manual Spec", "Scrape Status", "Comparison Confirmation"}, rows[0])
	assert.Len(t, rows[1], 4)
}

// TestProcess_ReusesComparisonColumn verifies an existing column is
// overwritten in place, not duplicated
func TestProcess_ReusesComparisonColumn(t *testing.T) {
	input := "Payload,Manual Spec,Scrape Status,Comparison Confirmation\n{},text,Failed,stale value\n"

	rows := runPass(t, input)
	assert.Len(t, rows[0], 4, "header should not grow")
	assert.Equal(t, NotApplicable, comparisonCell(t, rows, 1), "stale value should be replaced")
}

// TestProcess_PreservesOtherColumns verifies untouched fields survive the
// pass unchanged
func TestProcess_PreservesOtherColumns(t *testing.T) {
	input := "URL,Payload,Manual Spec,Scrape Status\nhttps://example.com/p/1,{},text,Failed\n"

	rows := runPass(t, input)
	assert.Equal(t, "https://example.com/p/1", rows[1][0])
}

// TestProcessFile_WritesOutput verifies the file-level entry point
func TestProcessFile_WritesOutput(t *testing.T) {
	tempDir := t.TempDir()
	inputPath := filepath.Join(tempDir, "products.csv")
	input := `Payload,Manual Spec,Scrape Status
"{""verified"":{""specification"":{""Wattage"":""10W""}}}",A bright 10w bulb,Success
`
	require.NoError(t, os.WriteFile(inputPath, []byte(input), 0o644))

	count, err := newTestProcessor(t).ProcessFile(inputPath, "")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	outputPath := filepath.Join(tempDir, "products_with_comparison.csv")
	data, err := os.ReadFile(outputPath)
	require.NoError(t, err, "default output file should exist")
	assert.Contains(t, string(data), "Wattage: 10W")
}

// TestOutputPath verifies the derived output filename
func TestOutputPath(t *testing.T) {
	assert.Equal(t, "data_with_comparison.csv", OutputPath("data.csv"))
	assert.Equal(t, filepath.Join("dir", "x_with_comparison.csv"), OutputPath(filepath.Join("dir", "x.csv")))
}
