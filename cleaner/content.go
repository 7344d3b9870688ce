package cleaner

import (
	"log/slog"
	nurl "net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// MinContentLength is the minimum assembled content length (in characters)
// for a scrape to count as successful. Below this the page is treated as
// empty or blocked.
const MinContentLength = 50

// ErrInsufficientContent is the error message recorded for pages whose
// assembled content falls under MinContentLength.
const ErrInsufficientContent = "Insufficient content scraped - page may be empty or blocked"

// bodyFallbackThreshold is the paragraph-text length under which the
// readability fallback is attempted. Marketing sites with non-semantic
// markup (text in divs, no <p> tags) land here.
const bodyFallbackThreshold = 200

// BuildContent turns a rendered-HTML snapshot into the classification
// payload: the extracted fields assembled in a fixed order, plus the
// document title. Pure except for fallback logging.
//
// When paragraph extraction yields little, the Mozilla Readability
// algorithm is tried as a second body-text source before giving up:
// the snapshot may simply not use <p> for its copy.
func BuildContent(rawHTML, sourceURL string) (content, title string) {
	fields := ExtractFields(rawHTML)

	if len(fields.BodyText) < bodyFallbackThreshold {
		if alt := readabilityText(rawHTML, sourceURL); len(alt) > len(fields.BodyText) {
			fields.BodyText = truncate(alt, maxBodyChars)
		}
	}

	return Assemble(fields), fields.Title
}

// Assemble joins the non-empty fields, in the order
// [title, metaDescription, h1, headings, heroText, bodyText], each
// separated by a blank line.
func Assemble(f PageFields) string {
	parts := make([]string, 0, 6)
	for _, field := range []string{
		f.Title, f.MetaDescription, f.H1, f.Headings, f.HeroText, f.BodyText,
	} {
		if field != "" {
			parts = append(parts, field)
		}
	}
	return strings.Join(parts, "\n\n")
}

// readabilityText runs go-readability over the snapshot and returns the
// plain text content, or "" when extraction fails.
func readabilityText(rawHTML, sourceURL string) string {
	parsedURL, err := nurl.Parse(sourceURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		slog.Warn("readability fallback failed", "url", sourceURL, "error", err)
		return ""
	}
	return collapseLines(article.TextContent)
}

// collapseLines trims each line and drops empty ones, normalizing
// readability's whitespace-heavy output.
func collapseLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if t := strings.TrimSpace(line); t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, "\n")
}
