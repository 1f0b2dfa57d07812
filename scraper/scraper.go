package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// Result holds everything extracted from one product detail page. Err is a
// description rather than an error value because results are persisted and
// written to CSV as-is.
type Result struct {
	URL       string
	Domain    string
	Price     string
	SKU       string
	SpecsHTML string
	Err       string
}

// Session drives one headless browser across a whole URL batch. Pages are
// visited strictly one after another in a single browser context.
type Session struct {
	cfg       Config
	extractor *Extractor

	navTimeout time.Duration
	minDelay   time.Duration
	maxDelay   time.Duration
}

// NewSession validates the configuration and prepares the extractor.
func NewSession(cfg Config) (*Session, error) {
	extractor, err := NewExtractor(cfg)
	if err != nil {
		return nil, err
	}
	nav, minDelay, maxDelay, err := cfg.durations()
	if err != nil {
		return nil, err
	}

	return &Session{
		cfg:        cfg,
		extractor:  extractor,
		navTimeout: nav,
		minDelay:   minDelay,
		maxDelay:   maxDelay,
	}, nil
}

// Run visits every URL sequentially in one browser context and returns one
// result per URL. Per-page failures are recorded in the result and never
// abort the batch.
func (s *Session) Run(ctx context.Context, urls []string) []Result {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(s.cfg.UserAgent),
		chromedp.Flag("headless", s.cfg.Headless),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var results []Result
	for i, pageURL := range urls {
		pageURL = strings.TrimSpace(pageURL)
		if pageURL == "" {
			continue
		}

		log.Printf("INFO: Scraping %s (%d/%d)", pageURL, i+1, len(urls))
		result := s.scrapePage(browserCtx, pageURL)
		if result.Err != "" {
			log.Printf("WARN: %s: %s", pageURL, result.Err)
		} else {
			log.Printf("INFO: %s: price=%q sku=%q", pageURL, result.Price, result.SKU)
		}
		results = append(results, result)

		if i < len(urls)-1 {
			s.humanDelay()
		}
	}
	return results
}

// scrapePage loads one URL, reveals hidden specification content, and runs
// the extractors over the rendered HTML.
func (s *Session) scrapePage(ctx context.Context, pageURL string) Result {
	result := Result{URL: pageURL, Domain: domainOf(pageURL)}

	html, err := s.fetchHTML(ctx, pageURL)
	if err != nil {
		result.Err = fmt.Sprintf("navigation failed: %v", err)
		return result
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		result.Err = fmt.Sprintf("failed to parse HTML: %v", err)
		return result
	}

	result.Price = s.extractor.Price(doc)
	result.SKU = s.extractor.SKU(doc, result.Domain)
	result.SpecsHTML = s.extractor.SpecsHTML(doc)
	return result
}

// fetchHTML loads the page and snapshots its rendered HTML. If the full
// load (navigation plus section expansion) times out, it falls back to
// grabbing whatever has rendered so far without the expansion pass.
func (s *Session) fetchHTML(ctx context.Context, pageURL string) (string, error) {
	navCtx, cancel := context.WithTimeout(ctx, s.navTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(navCtx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(1*time.Second),
		s.expandSections(),
		chromedp.OuterHTML("html", &html),
	)
	if err == nil {
		return html, nil
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		return "", err
	}

	log.Printf("WARN: %s: full load timed out, capturing partial page", pageURL)
	retryCtx, cancelRetry := context.WithTimeout(ctx, s.navTimeout/2)
	defer cancelRetry()

	if err := chromedp.Run(retryCtx, chromedp.OuterHTML("html", &html)); err != nil {
		return "", fmt.Errorf("navigation timed out and partial capture failed: %w", err)
	}
	return html, nil
}

// expandSections reveals hidden specification content: activates tab
// controls, clicks headings and show-more buttons by visible text, then
// scrolls to the bottom and back to trigger lazy loading.
func (s *Session) expandSections() chromedp.Action {
	labels, _ := json.Marshal(s.cfg.ExpandLabels)
	script := fmt.Sprintf(expandScript, labels)

	return chromedp.Tasks{
		chromedp.Evaluate(script, nil),
		chromedp.Sleep(500 * time.Millisecond),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(1200 * time.Millisecond),
		chromedp.Evaluate(`window.scrollTo(0, 0)`, nil),
		chromedp.Sleep(600 * time.Millisecond),
	}
}

const expandScript = `(() => {
	document.querySelectorAll("[role='tab']").forEach((tab) => {
		try { tab.click(); } catch (e) {}
	});
	const labels = %s;
	const candidates = Array.from(
		document.querySelectorAll("button, a, summary, h2, h3, h4, [role='button']"));
	for (const label of labels) {
		const needle = label.toLowerCase();
		const el = candidates.find(
			(n) => n.textContent && n.textContent.trim().toLowerCase().includes(needle));
		if (el) {
			try { el.click(); } catch (e) {}
		}
	}
	return true;
})()`

// humanDelay sleeps for a random duration within the configured bounds to
// reduce bot-likeness between page loads.
func (s *Session) humanDelay() {
	d := s.minDelay
	if span := s.maxDelay - s.minDelay; span > 0 {
		d += time.Duration(rand.Int63n(int64(span)))
	}
	time.Sleep(d)
}

func domainOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
