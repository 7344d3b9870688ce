package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/qualify/cleaner"
	"github.com/use-agent/qualify/models"
	"github.com/ysmood/gson"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Scrape renders one URL in a fresh isolated page and extracts the
// classification content. The input is normalized first, so callers may
// pass raw strings straight from the input list.
//
// Scrape never returns an error: every failure — browser launch, navigation,
// timeout, thin content — is folded into a ScrapeResult with Success=false,
// because the orchestrator processes URLs independently.
//
// Lifecycle per URL:
//
//  1. Acquire the shared browser (lazy launch / relaunch if disconnected)
//  2. Open a fresh tab; DEFER close — the tab never outlives the URL
//  3. Stealth injection + user-agent and Referer headers (before navigation)
//  4. Navigate with the page timeout bound to the whole operation
//  5. Wait for network idle
//  6. Snapshot the rendered HTML and hand it to the pure extractor
func (s *Session) Scrape(ctx context.Context, rawURL string) models.ScrapeResult {
	target := NormalizeURL(rawURL)
	result := models.ScrapeResult{URL: target}

	fail := func(err error) models.ScrapeResult {
		result.Success = false
		result.Content = ""
		result.Error = err.Error()
		slog.Error("scrape failed", "url", target, "error", err)
		return result
	}

	browser, err := s.acquire()
	if err != nil {
		return fail(err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fail(models.NewPipelineError(models.ErrCodeBrowser, "failed to open page", err))
	}
	defer func() {
		// Close on the original page reference so teardown succeeds even
		// after the request context has expired.
		if closeErr := page.Close(); closeErr != nil {
			slog.Warn("page close failed", "url", target, "error", closeErr)
		}
	}()

	if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
		slog.Warn("stealth injection failed, proceeding without stealth", "error", evalErr)
	}

	if uaErr := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: chromeUA}); uaErr != nil {
		slog.Warn("user-agent override failed", "error", uaErr)
	}

	// A plausible Referer helps with sites that gate on direct hits.
	if u, parseErr := url.Parse(target); parseErr == nil && u.Hostname() != "" {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(map[string]string{
				"Referer": "https://www.google.com/search?q=" + url.QueryEscape(u.Hostname()),
			}),
		}.Call(page)
	}

	ctx, cancel := context.WithTimeout(ctx, s.scraperCfg.PageTimeout)
	defer cancel()
	p := page.Context(ctx)

	if navErr := p.Navigate(target); navErr != nil {
		return fail(categorizeError(navErr, "navigation to target URL failed"))
	}

	waitIdle := p.WaitRequestIdle(500*time.Millisecond, nil, nil, nil)
	waitIdle()

	rawHTML, htmlErr := p.HTML()
	if htmlErr != nil {
		return fail(categorizeError(htmlErr, "failed to extract page HTML"))
	}

	content, title := cleaner.BuildContent(rawHTML, target)
	if len(content) < cleaner.MinContentLength {
		result.Error = cleaner.ErrInsufficientContent
		slog.Error("scrape failed", "url", target, "error", result.Error)
		return result
	}

	result.Content = content
	result.Title = title
	result.Success = true
	slog.Info("scraped", "url", target, "title", title, "contentLength", len(content))
	return result
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

// categorizeError wraps raw errors into typed PipelineErrors so failure
// records carry a stable code alongside the underlying message.
func categorizeError(err error, msg string) *models.PipelineError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewPipelineError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewPipelineError(models.ErrCodeTimeout, "request canceled", err)
	default:
		return models.NewPipelineError(models.ErrCodeNavigation, msg, err)
	}
}
