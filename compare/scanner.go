package compare

import (
	"regexp"
	"sort"
)

// AttributePattern pairs a human-readable attribute label with the regular
// expression that detects it in manual text. Tables of these are data, not
// code: new attribute families can be added through configuration without
// touching the scanners.
type AttributePattern struct {
	Label   string
	Pattern *regexp.Regexp
}

// DetectedAttribute is one named-attribute hit in manual text.
type DetectedAttribute struct {
	Label string
	Value string
}

// DefaultNamedPatterns returns the named-attribute table: one labeled
// pattern per attribute family known to appear in lighting product copy.
func DefaultNamedPatterns() []AttributePattern {
	return []AttributePattern{
		{Label: "brand", Pattern: regexp.MustCompile(`\bbrand[: ]+([a-z0-9\s]+)`)},
		{Label: "wattage", Pattern: regexp.MustCompile(`\d+(\.\d+)?w`)},
		{Label: "lumens", Pattern: regexp.MustCompile(`\d+lm`)},
		{Label: "colour temperature", Pattern: regexp.MustCompile(`\d{3,4}k|warm white|cool white|daylight`)},
		{Label: "cap fitting", Pattern: regexp.MustCompile(`\b(b22|e27|e14)\b`)},
		{Label: "dimmable", Pattern: regexp.MustCompile(`\bdimmable\b`)},
		{Label: "guarantee", Pattern: regexp.MustCompile(`\d+\s*year`)},
	}
}

// DefaultValuePatterns returns the broader unnamed value table used by the
// value-set scanner. Patterns overlap on purpose; de-duplication happens
// only on the exact matched string.
func DefaultValuePatterns() []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(`\d+(?:\.\d+)?w\b`),
		regexp.MustCompile(`\d+lm\b`),
		regexp.MustCompile(`\d{3,4}k\b`),
		regexp.MustCompile(`\d+(?:,\d{3})*\s*hours?\b`),
		regexp.MustCompile(`\d+\s*years?\b`),
		regexp.MustCompile(`\d+(?:\.\d+)?\s*v\b`),
		regexp.MustCompile(`\d+(?:\.\d+)?\s*mm\b`),
		regexp.MustCompile(`\d+(?:\.\d+)?\s*g\b`),
		regexp.MustCompile(`\d+(?:\.\d+)?\s*mhz\b`),
		regexp.MustCompile(`\b(?:b22|e27|e14|gu10|g9|integrated)\b`),
		regexp.MustCompile(`\b(?:warm white|cool white|daylight|rgb|blue|red|green)\b`),
		regexp.MustCompile(`\bdimmable\b`),
	}
}

// ScanNamedAttributes mines manual text for the attribute families in the
// table, in table order. Only the first occurrence per label is recorded.
func ScanNamedAttributes(manualText string, patterns []AttributePattern) []DetectedAttribute {
	manual := Normalize(manualText)

	var detected []DetectedAttribute
	for _, p := range patterns {
		if value := p.Pattern.FindString(manual); value != "" {
			detected = append(detected, DetectedAttribute{Label: p.Label, Value: value})
		}
	}
	return detected
}

// ScanValues mines manual text for every recognizable attribute value and
// returns the distinct matches, sorted. Duplicates are collapsed by exact
// string identity only; overlapping pattern families may still surface the
// same underlying attribute under different spellings.
func ScanValues(manualText string, patterns []*regexp.Regexp) []string {
	manual := Normalize(manualText)

	seen := make(map[string]struct{})
	var values []string
	for _, p := range patterns {
		for _, value := range p.FindAllString(manual, -1) {
			if _, ok := seen[value]; ok {
				continue
			}
			seen[value] = struct{}{}
			values = append(values, value)
		}
	}

	sort.Strings(values)
	return values
}
