package compare

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBuildReport_AllSectionsInOrder verifies matched, mismatched, missing
// sections always appear in that order
func TestBuildReport_AllSectionsInOrder(t *testing.T) {
	report := BuildReport(
		[]MatchedEntry{{Name: "Wattage", Value: "10W"}},
		[]DiscrepancyEntry{{Name: "Lumens", Manual: "750lm", Workflow: "800lm"}},
		[]DiscrepancyEntry{{Name: "Cap Fitting", Manual: NotDetected, Workflow: "b22"}},
	)

	matchedIdx := strings.Index(report, "✅ Matched:")
	mismatchedIdx := strings.Index(report, "⚠️ Mismatched:")
	missingIdx := strings.Index(report, "❌ Missing:")

	assert.GreaterOrEqual(t, matchedIdx, 0, "matched section should be present")
	assert.Greater(t, mismatchedIdx, matchedIdx, "mismatched section should follow matched")
	assert.Greater(t, missingIdx, mismatchedIdx, "missing section should follow mismatched")
}

// TestBuildReport_MatchedEntryFormat verifies the matched line format
func TestBuildReport_MatchedEntryFormat(t *testing.T) {
	report := BuildReport([]MatchedEntry{{Name: "Wattage", Value: "10W"}}, nil, nil)
	assert.Equal(t, "✅ Matched:\n- Wattage: 10W", report)
}

// TestBuildReport_DiscrepancyEntryFormat verifies the indented value pair
// format used by mismatched and missing entries
func TestBuildReport_DiscrepancyEntryFormat(t *testing.T) {
	report := BuildReport(nil, []DiscrepancyEntry{{Name: "Wattage", Manual: "9w", Workflow: "10w"}}, nil)
	assert.Equal(t, "⚠️ Mismatched:\n- Wattage\n  Manual: 9w\n  Workflow: 10w", report)
}

// TestBuildReport_OmitsEmptySections verifies empty groups leave no trace
func TestBuildReport_OmitsEmptySections(t *testing.T) {
	report := BuildReport(nil, nil, []DiscrepancyEntry{{Name: "Brand", Manual: "luxbright", Workflow: NotFound}})

	assert.NotContains(t, report, "Matched")
	assert.NotContains(t, report, "Mismatched")
	assert.Contains(t, report, "❌ Missing:")
}

// TestBuildReport_Sentinel verifies the empty-input sentinel
func TestBuildReport_Sentinel(t *testing.T) {
	assert.Equal(t, NoSpecifications, BuildReport(nil, nil, nil))
}

// TestBuildReport_MultipleEntries verifies list joining within a section
func TestBuildReport_MultipleEntries(t *testing.T) {
	report := BuildReport(
		[]MatchedEntry{{Name: "Wattage", Value: "10W"}, {Name: "Lumens", Value: "800lm"}},
		nil, nil,
	)
	assert.Equal(t, "✅ Matched:\n- Wattage: 10W\n- Lumens: 800lm", report)
}
