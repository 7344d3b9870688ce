package scraper

import "testing"

func TestNormalizeURL_BareDomain(t *testing.T) {
	got := NormalizeURL("example.com")
	if got != "https://example.com" {
		t.Errorf("expected https://example.com, got %q", got)
	}
}

func TestNormalizeURL_TrailingSlash(t *testing.T) {
	got := NormalizeURL("example.com/")
	if got != "https://example.com" {
		t.Errorf("expected https://example.com, got %q", got)
	}
}

func TestNormalizeURL_StripsOnlyOneTrailingSlash(t *testing.T) {
	got := NormalizeURL("example.com//")
	if got != "https://example.com/" {
		t.Errorf("expected https://example.com/, got %q", got)
	}
}

func TestNormalizeURL_Idempotent(t *testing.T) {
	once := NormalizeURL("example.com")
	twice := NormalizeURL(once)
	if once != twice {
		t.Errorf("normalization not idempotent: %q vs %q", once, twice)
	}
}

func TestNormalizeURL_ExistingScheme(t *testing.T) {
	for _, u := range []string{"http://example.com", "https://example.com"} {
		if got := NormalizeURL(u); got != u {
			t.Errorf("scheme-prefixed URL changed: %q -> %q", u, got)
		}
	}
}

// The scheme check is a literal prefix match, so an upper-case scheme is
// not recognized and gets the https prefix prepended.
func TestNormalizeURL_SchemeCheckIsCaseSensitive(t *testing.T) {
	got := NormalizeURL("HTTP://x.com")
	if got != "https://HTTP://x.com" {
		t.Errorf("expected https://HTTP://x.com, got %q", got)
	}
}

func TestNormalizeURL_TrimsWhitespace(t *testing.T) {
	got := NormalizeURL("  example.com \n")
	if got != "https://example.com" {
		t.Errorf("expected https://example.com, got %q", got)
	}
}
