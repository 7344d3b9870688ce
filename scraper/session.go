package scraper

import (
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/use-agent/qualify/config"
	"github.com/use-agent/qualify/models"
)

// Session owns the shared browser used for the whole run. The browser is
// launched lazily on first use and reused across URLs; if it is found
// disconnected it is relaunched. The pipeline is sequential, so Session is
// not guarded for concurrent use.
type Session struct {
	browserCfg config.BrowserConfig
	scraperCfg config.ScraperConfig
	launcher   *launcher.Launcher
	browser    *rod.Browser
}

// NewSession prepares a session without launching the browser. The first
// Scrape call launches it; a launch failure there is an environment failure
// and surfaces as a failed ScrapeResult for that URL.
func NewSession(browserCfg config.BrowserConfig, scraperCfg config.ScraperConfig) *Session {
	return &Session{browserCfg: browserCfg, scraperCfg: scraperCfg}
}

// acquire returns a live browser, launching or relaunching as needed.
func (s *Session) acquire() (*rod.Browser, error) {
	if s.browser != nil {
		// Liveness probe: a trivial CDP call fails fast when the websocket
		// is gone.
		if _, err := (proto.BrowserGetVersion{}).Call(s.browser); err == nil {
			return s.browser, nil
		}
		slog.Warn("browser session disconnected, relaunching")
		s.teardown()
	}
	return s.launch()
}

func (s *Session) launch() (*rod.Browser, error) {
	l := launcher.New().
		Headless(s.browserCfg.Headless).
		NoSandbox(s.browserCfg.NoSandbox)

	if s.browserCfg.BrowserBin != "" {
		l = l.Bin(s.browserCfg.BrowserBin)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewPipelineError(models.ErrCodeBrowser, "failed to launch browser", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, models.NewPipelineError(models.ErrCodeBrowser, "failed to connect to browser", err)
	}

	slog.Info("browser launched", "controlURL", controlURL)
	s.launcher = l
	s.browser = browser
	return browser, nil
}

// teardown discards the current browser handle without touching config.
func (s *Session) teardown() {
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			slog.Warn("browser close failed", "error", err)
		}
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher = nil
	}
}

// Close kills the browser process. Call this at run end to prevent zombie
// Chrome processes. Safe to call when the browser was never launched.
func (s *Session) Close() {
	if s.browser == nil {
		return
	}
	slog.Info("closing browser session")
	s.teardown()
}
