package compare

import "strings"

// NoSpecifications is the sentinel report for rows where neither side
// produced anything comparable.
const NoSpecifications = "✅ No specifications detected"

// NotDetected and NotFound are the placeholder values used in report
// entries when one side has nothing to show.
const (
	NotDetected = "Not detected"
	NotFound    = "Not found"
)

// MatchedEntry records a workflow attribute confirmed by the manual text.
// Name and Value keep their original spelling for the report.
type MatchedEntry struct {
	Name  string
	Value string
}

// DiscrepancyEntry records a workflow attribute the manual text contradicts
// or omits, or a manual value the workflow never produced.
type DiscrepancyEntry struct {
	Name     string
	Manual   string
	Workflow string
}

// BuildReport formats the three outcome groups into one report string.
// Section order is fixed -- matched, then mismatched, then missing -- and
// empty groups are omitted entirely. When all three are empty the sentinel
// is returned instead.
func BuildReport(matched []MatchedEntry, mismatched, missing []DiscrepancyEntry) string {
	var parts []string

	if len(matched) > 0 {
		lines := make([]string, len(matched))
		for i, e := range matched {
			lines[i] = e.Name + ": " + e.Value
		}
		parts = append(parts, "✅ Matched:\n- "+strings.Join(lines, "\n- "))
	}
	if len(mismatched) > 0 {
		parts = append(parts, "⚠️ Mismatched:\n- "+joinDiscrepancies(mismatched))
	}
	if len(missing) > 0 {
		parts = append(parts, "❌ Missing:\n- "+joinDiscrepancies(missing))
	}

	if len(parts) == 0 {
		return NoSpecifications
	}
	return strings.Join(parts, "\n\n")
}

func joinDiscrepancies(entries []DiscrepancyEntry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Name + "\n  Manual: " + e.Manual + "\n  Workflow: " + e.Workflow
	}
	return strings.Join(lines, "\n- ")
}
