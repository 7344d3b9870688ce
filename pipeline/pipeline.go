// Package pipeline drives the full classification run: one URL at a time
// through scrape, classify, persist, with a fixed pause between URLs.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/use-agent/qualify/models"
	"github.com/use-agent/qualify/store"
)

// Scraper renders one URL into a ScrapeResult. Implemented by
// scraper.Session; faked in tests.
type Scraper interface {
	Scrape(ctx context.Context, rawURL string) models.ScrapeResult
	Close()
}

// Classifier produces the verdict record for one URL's content.
type Classifier interface {
	Classify(ctx context.Context, url, content string) models.ClassificationResult
}

// Pipeline orchestrates a sequential run over the input URL list.
type Pipeline struct {
	scraper    Scraper
	classifier Classifier
	sink       store.Sink
	delay      time.Duration
}

// New assembles a Pipeline. delay is the fixed pause between consecutive
// URLs; zero disables pacing.
func New(sc Scraper, cl Classifier, sink store.Sink, delay time.Duration) *Pipeline {
	return &Pipeline{scraper: sc, classifier: cl, sink: sink, delay: delay}
}

// Run processes every URL in input order and returns the aggregate summary.
//
// Guarantees: exactly one record is persisted per input URL, in input
// order, and a failure in one URL's pipeline never aborts the run. A
// scrape failure synthesizes a DISQUALIFY record without calling the
// classifier. The shared browser is released before Run returns.
//
// The only early exit is context cancellation, which callers opt into by
// passing a cancellable context.
func (p *Pipeline) Run(ctx context.Context, urls []string) (models.RunSummary, error) {
	defer p.scraper.Close()

	results := make([]models.ClassificationResult, 0, len(urls))

	for i, raw := range urls {
		slog.Info("processing URL", "position", i+1, "total", len(urls), "url", raw)

		scraped := p.scraper.Scrape(ctx, raw)

		var record models.ClassificationResult
		if !scraped.Success {
			record = models.ClassificationResult{
				URL:     scraped.URL,
				Verdict: models.VerdictDisqualify,
				Score:   0,
				Reason:  "Website scraping failed: " + scraped.Error,
			}
		} else {
			record = p.classifier.Classify(ctx, scraped.URL, scraped.Content)
		}

		// Persist immediately so earlier results survive later failures.
		// A sink error is logged but does not drop the remaining URLs.
		if err := p.sink.Append(ctx, record); err != nil {
			slog.Error("failed to persist record", "url", record.URL, "error", err)
		}
		results = append(results, record)

		if i < len(urls)-1 && p.delay > 0 {
			if err := p.pause(ctx); err != nil {
				return p.summarize(ctx, results), err
			}
		}
	}

	return p.summarize(ctx, results), nil
}

// pause waits the inter-request delay, honoring cancellation.
func (p *Pipeline) pause(ctx context.Context) error {
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// summarize computes the aggregate counts, persists the summary record and
// logs the final tallies.
func (p *Pipeline) summarize(ctx context.Context, results []models.ClassificationResult) models.RunSummary {
	qualified := 0
	for _, r := range results {
		if r.Verdict == models.VerdictQualify {
			qualified++
		}
	}

	summary := models.RunSummary{
		Total:        len(results),
		Qualified:    qualified,
		Disqualified: len(results) - qualified,
		Results:      results,
	}

	slog.Info("run complete",
		"total", summary.Total,
		"qualified", summary.Qualified,
		"disqualified", summary.Disqualified,
	)

	if err := p.sink.Append(ctx, summary); err != nil {
		slog.Error("failed to persist run summary", "error", err)
	}
	return summary
}
