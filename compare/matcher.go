package compare

import (
	"regexp"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// numericUnitRe matches a number with an optional decimal part followed by
// one of the unit suffixes the normalizer produces (watts, kelvin, lumens).
var numericUnitRe = regexp.MustCompile(`\d+(\.\d+)?\s*(w|k|lm)`)

// MatchResult is the matcher's verdict for one workflow value. Conflict is
// only set when Matched is false, and holds the numeric-unit token from the
// manual text that contradicts the workflow value; it distinguishes a
// mismatched attribute from one that is simply absent.
type MatchResult struct {
	Matched  bool
	Conflict string
}

// MatchStrategy inspects a normalized workflow value against normalized
// manual text. The second return value reports whether the strategy has an
// opinion at all; strategies without one defer to the next in the cascade.
type MatchStrategy func(workflow, manual string) (MatchResult, bool)

// DefaultStrategies returns the matching cascade in evaluation order:
// literal containment, numeric-unit conflict, then fuzzy similarity at the
// given threshold. Containment is cheapest and most reliable; the numeric
// check runs before the fuzzy one because similarity scores cannot tell
// "10w" from "9w".
func DefaultStrategies(threshold int) []MatchStrategy {
	return []MatchStrategy{
		substringStrategy,
		numericConflictStrategy,
		fuzzyStrategy(threshold),
	}
}

// MatchAttribute runs a workflow value through the strategy cascade. The
// first definitive opinion wins. Both inputs are expected to be normalized
// already. With no opinion from any strategy the value counts as missing.
func MatchAttribute(workflow, manual string, strategies []MatchStrategy) MatchResult {
	for _, strategy := range strategies {
		if result, ok := strategy(workflow, manual); ok {
			return result
		}
	}
	return MatchResult{}
}

func substringStrategy(workflow, manual string) (MatchResult, bool) {
	if workflow != "" && strings.Contains(manual, workflow) {
		return MatchResult{Matched: true}, true
	}
	return MatchResult{}, false
}

// numericConflictStrategy flags values like "10w" against manual text that
// carries "9w". Every workflow token is compared against every manual token
// after stripping internal spaces; the first differing pair in extraction
// order is reported, with no attempt to find a best pair. When both sides
// have tokens but no pair differs, the strategy stays silent so the fuzzy
// fallback can run.
func numericConflictStrategy(workflow, manual string) (MatchResult, bool) {
	workflowTokens := numericUnitRe.FindAllString(workflow, -1)
	manualTokens := numericUnitRe.FindAllString(manual, -1)
	if len(workflowTokens) == 0 || len(manualTokens) == 0 {
		return MatchResult{}, false
	}

	for _, w := range workflowTokens {
		w = strings.ReplaceAll(w, " ", "")
		for _, m := range manualTokens {
			m = strings.ReplaceAll(m, " ", "")
			if w != m {
				return MatchResult{Conflict: m}, true
			}
		}
	}
	return MatchResult{}, false
}

func fuzzyStrategy(threshold int) MatchStrategy {
	return func(workflow, manual string) (MatchResult, bool) {
		if fuzzy.PartialRatio(workflow, manual) >= threshold {
			return MatchResult{Matched: true}, true
		}
		return MatchResult{}, false
	}
}
