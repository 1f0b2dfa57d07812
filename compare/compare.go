// Package compare verifies scraped product specifications against
// human-authored manual descriptions. A Comparer classifies every workflow
// attribute as matched, mismatched, or missing relative to the manual text,
// then scans the manual text independently for values the workflow never
// produced, and renders the outcome as a grouped report string.
package compare

import (
	"regexp"
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ScanVariant selects how manual text is mined for workflow gaps.
type ScanVariant string

const (
	// ScanNamed applies the named-attribute table and reports labels
	// absent from the workflow key set.
	ScanNamed ScanVariant = "named"
	// ScanValueSet applies the value table and reports values the
	// workflow side never matched.
	ScanValueSet ScanVariant = "values"
)

// DefaultFuzzyThreshold is the partial-ratio score at or above which two
// strings are considered the same attribute phrased differently.
const DefaultFuzzyThreshold = 85

// Options configures a Comparer.
type Options struct {
	// IgnoreAttributes lists workflow attribute names excluded from
	// comparison (case-folded, trimmed), e.g. image columns.
	IgnoreAttributes []string
	FuzzyThreshold   int
	Variant          ScanVariant
	NamedPatterns    []AttributePattern
	ValuePatterns    []*regexp.Regexp
}

// DefaultOptions returns the configuration the original comparison run
// used: value-set scanning at the default threshold, with category and
// image attributes ignored.
func DefaultOptions() Options {
	return Options{
		IgnoreAttributes: []string{"category", "image 1", "image 2", "image 3", "image 4"},
		FuzzyThreshold:   DefaultFuzzyThreshold,
		Variant:          ScanValueSet,
		NamedPatterns:    DefaultNamedPatterns(),
		ValuePatterns:    DefaultValuePatterns(),
	}
}

// Comparer classifies workflow attributes against manual specification
// text. It holds no per-row state; one Comparer serves an entire CSV pass.
type Comparer struct {
	opts       Options
	ignore     map[string]struct{}
	strategies []MatchStrategy
}

// NewComparer creates a Comparer from the given options. Zero-value fields
// fall back to defaults so partial configuration is safe.
func NewComparer(opts Options) *Comparer {
	if opts.FuzzyThreshold == 0 {
		opts.FuzzyThreshold = DefaultFuzzyThreshold
	}
	if opts.Variant == "" {
		opts.Variant = ScanValueSet
	}
	if opts.NamedPatterns == nil {
		opts.NamedPatterns = DefaultNamedPatterns()
	}
	if opts.ValuePatterns == nil {
		opts.ValuePatterns = DefaultValuePatterns()
	}

	ignore := make(map[string]struct{}, len(opts.IgnoreAttributes))
	for _, name := range opts.IgnoreAttributes {
		ignore[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}

	return &Comparer{
		opts:       opts,
		ignore:     ignore,
		strategies: DefaultStrategies(opts.FuzzyThreshold),
	}
}

// Compare builds the comparison report for one row. Every workflow
// attribute with a non-empty normalized value lands in exactly one of the
// matched, mismatched, or missing groups; the configured scanner then
// appends manual-side values the workflow never covered.
func (c *Comparer) Compare(manualText string, payload any) string {
	manual := Normalize(manualText)
	spec := ExtractSpecification(payload)

	var matched []MatchedEntry
	var mismatched, missing []DiscrepancyEntry
	matchedValues := make(map[string]struct{})

	for _, name := range sortedKeys(spec) {
		value := spec[name]
		nameNorm := strings.ToLower(strings.TrimSpace(name))
		valueNorm := Normalize(value)

		if _, skip := c.ignore[nameNorm]; skip {
			continue
		}
		if valueNorm == "" {
			continue
		}

		result := MatchAttribute(valueNorm, manual, c.strategies)
		switch {
		case result.Matched:
			matched = append(matched, MatchedEntry{Name: name, Value: value})
			matchedValues[valueNorm] = struct{}{}
		case result.Conflict != "":
			mismatched = append(mismatched, DiscrepancyEntry{
				Name:     name,
				Manual:   result.Conflict,
				Workflow: valueNorm,
			})
		default:
			missing = append(missing, DiscrepancyEntry{
				Name:     name,
				Manual:   NotDetected,
				Workflow: valueNorm,
			})
		}
	}

	switch c.opts.Variant {
	case ScanNamed:
		missing = append(missing, c.scanNamed(manualText, spec)...)
	default:
		missing = append(missing, c.scanValues(manualText, matchedValues)...)
	}

	return BuildReport(matched, mismatched, missing)
}

// scanNamed reports attribute families present in the manual text whose
// label appears in no workflow key. One hit per label, first occurrence
// only.
func (c *Comparer) scanNamed(manualText string, spec map[string]string) []DiscrepancyEntry {
	title := cases.Title(language.English)

	var entries []DiscrepancyEntry
	for _, attr := range ScanNamedAttributes(manualText, c.opts.NamedPatterns) {
		if specMentions(spec, attr.Label) {
			continue
		}
		entries = append(entries, DiscrepancyEntry{
			Name:     title.String(attr.Label),
			Manual:   attr.Value,
			Workflow: NotFound,
		})
	}
	return entries
}

// scanValues reports manual-side values the workflow never matched. A final
// fuzzy pass against the matched workflow values suppresses values that are
// really the same attribute phrased differently.
func (c *Comparer) scanValues(manualText string, matchedValues map[string]struct{}) []DiscrepancyEntry {
	var entries []DiscrepancyEntry
	for _, value := range ScanValues(manualText, c.opts.ValuePatterns) {
		if _, ok := matchedValues[value]; ok {
			continue
		}
		if similarToAny(value, matchedValues, c.opts.FuzzyThreshold) {
			continue
		}
		entries = append(entries, DiscrepancyEntry{
			Name:     "Unmatched Manual Value",
			Manual:   value,
			Workflow: NotFound,
		})
	}
	return entries
}

func specMentions(spec map[string]string, label string) bool {
	for name := range spec {
		if strings.Contains(strings.ToLower(name), label) {
			return true
		}
	}
	return false
}

func similarToAny(value string, candidates map[string]struct{}, threshold int) bool {
	for candidate := range candidates {
		if fuzzy.PartialRatio(value, candidate) >= threshold {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
