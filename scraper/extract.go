package scraper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// minSpecsBlockLen guards against capturing tiny snippets (icons, empty
// wrappers) that happen to carry "spec" in their class name.
const minSpecsBlockLen = 100

// Extractor pulls price, SKU, and the specification block out of a rendered
// page snapshot. It operates on parsed HTML only, so it can be exercised
// without a browser.
type Extractor struct {
	priceSelectors []string
	skuPatterns    []*regexp.Regexp
	domainPatterns map[string][]*regexp.Regexp
}

// NewExtractor compiles the configured pattern lists. SKU patterns are
// matched case-insensitively against the page's visible text.
func NewExtractor(cfg Config) (*Extractor, error) {
	e := &Extractor{
		priceSelectors: cfg.PriceSelectors,
		domainPatterns: make(map[string][]*regexp.Regexp, len(cfg.DomainSKUPatterns)),
	}

	for _, raw := range cfg.SKUPatterns {
		re, err := regexp.Compile("(?i)" + raw)
		if err != nil {
			return nil, fmt.Errorf("invalid sku pattern %q: %w", raw, err)
		}
		e.skuPatterns = append(e.skuPatterns, re)
	}
	for domain, raws := range cfg.DomainSKUPatterns {
		for _, raw := range raws {
			re, err := regexp.Compile("(?i)" + raw)
			if err != nil {
				return nil, fmt.Errorf("invalid sku pattern %q for %s: %w", raw, domain, err)
			}
			e.domainPatterns[domain] = append(e.domainPatterns[domain], re)
		}
	}

	return e, nil
}

// Price tries each configured selector in order, then falls back to the
// first body text line that starts with a currency symbol and contains a
// digit. Returns "" when nothing plausible is found.
func (e *Extractor) Price(doc *goquery.Document) string {
	for _, sel := range e.priceSelectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text != "" {
			return strings.Join(strings.Fields(text), " ")
		}
	}

	for _, line := range strings.Split(doc.Find("body").Text(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "£") || strings.HasPrefix(line, "€") || strings.HasPrefix(line, "$") {
			if strings.ContainsAny(line, "0123456789") {
				return strings.Join(strings.Fields(line), " ")
			}
		}
	}

	return ""
}

// SKU mines the page's visible text for a product code. Domain-specific
// patterns take precedence over the generic list.
func (e *Extractor) SKU(doc *goquery.Document, domain string) string {
	body := doc.Find("body").Text()

	patterns := make([]*regexp.Regexp, 0, len(e.domainPatterns[domain])+len(e.skuPatterns))
	patterns = append(patterns, e.domainPatterns[domain]...)
	patterns = append(patterns, e.skuPatterns...)

	for _, p := range patterns {
		if m := p.FindStringSubmatch(body); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// SpecsHTML captures the main specification block. Strategy: an element
// whose id or class mentions "spec", then a spec-titled heading's adjacent
// table or block, then the first table on the page.
func (e *Extractor) SpecsHTML(doc *goquery.Document) string {
	if sel := doc.Find("[id*='spec'], [class*='spec']").First(); sel.Length() > 0 {
		if html, err := sel.Html(); err == nil && len(html) > minSpecsBlockLen {
			return html
		}
	}

	var found string
	doc.Find("h1, h2, h3, h4").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(heading.Text()), "spec") {
			return true
		}
		if table := heading.NextAllFiltered("table").First(); table.Length() > 0 {
			if html, err := table.Html(); err == nil {
				found = html
				return false
			}
		}
		if next := heading.Next(); next.Length() > 0 {
			if html, err := next.Html(); err == nil && len(html) > minSpecsBlockLen {
				found = html
				return false
			}
		}
		return true
	})
	if found != "" {
		return found
	}

	if table := doc.Find("table").First(); table.Length() > 0 {
		if html, err := table.Html(); err == nil {
			return html
		}
	}
	return ""
}
