package cleaner

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Caps on the assembled fields, in characters. Body text dominates the
// payload; hero text is a smaller, higher-signal slice.
const (
	maxBodyChars = 15000
	maxHeroChars = 5000

	// minParagraphChars filters out stray labels and button text.
	minParagraphChars = 20

	// minHeroChars keeps only sentence-sized prominent blocks.
	minHeroChars = 50
)

// stripSelector matches the non-content elements removed before field
// extraction: scripts, styles, chrome (nav/header/footer), forms, asides
// and sidebar/menu-class containers.
var stripSelector = cascadia.MustCompile(
	`script, style, noscript, template, iframe, svg, nav, header, footer, form, aside,` +
		` [class*="sidebar"], [class*="menu"], [id*="sidebar"], [id*="menu"]`,
)

// heroClassPatterns are class/id substrings that mark visually prominent
// marketing blocks. Complements the inline font-size signal, since a static
// snapshot carries no computed styles.
var heroClassPatterns = []string{
	"hero", "banner", "jumbotron", "tagline", "headline", "lead", "intro", "subtitle",
}

var fontSizeRe = regexp.MustCompile(`font-size:\s*([0-9]+(?:\.[0-9]+)?)px`)

// PageFields holds the independently extracted text fields of a rendered
// page, with the hero and body caps already applied.
type PageFields struct {
	Title           string
	MetaDescription string
	H1              string
	Headings        string
	HeroText        string
	BodyText        string
}

// ExtractFields parses a rendered-HTML snapshot and extracts the fields
// used to judge product category. It is a pure function of the snapshot:
// no browser, no network, so it can run against fixture HTML.
func ExtractFields(rawHTML string) PageFields {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return PageFields{}
	}

	fields := PageFields{
		Title:           strings.TrimSpace(doc.Find("title").First().Text()),
		MetaDescription: metaDescription(doc),
	}

	// Noise removal happens after title/meta: both live in <head> but the
	// strip selector also hits header-like containers that can hold an h1.
	doc.FindMatcher(stripSelector).Remove()

	fields.H1 = strings.TrimSpace(doc.Find("h1").First().Text())
	fields.Headings = collectHeadings(doc)
	fields.HeroText = collectHeroText(doc)
	fields.BodyText = collectBodyText(doc)
	return fields
}

// metaDescription returns the standard meta description, falling back to
// the Open Graph description.
func metaDescription(doc *goquery.Document) string {
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok && desc != "" {
		return strings.TrimSpace(desc)
	}
	if desc, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
		return strings.TrimSpace(desc)
	}
	return ""
}

// collectHeadings concatenates all h1-h6 text in document order.
func collectHeadings(doc *goquery.Document) string {
	var parts []string
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		if t := collapseSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " | ")
}

// collectBodyText concatenates paragraph text longer than minParagraphChars,
// capped at maxBodyChars.
func collectBodyText(doc *goquery.Document) string {
	var b strings.Builder
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t := collapseSpace(s.Text())
		if len(t) <= minParagraphChars {
			return true
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(t)
		return b.Len() < maxBodyChars
	})
	return truncate(b.String(), maxBodyChars)
}

// collectHeroText gathers visually prominent short blocks: any p/span/div
// with an inline font-size of at least 16px or a hero-flavored class/id,
// with text longer than minHeroChars, capped at maxHeroChars.
func collectHeroText(doc *goquery.Document) string {
	var b strings.Builder
	seen := make(map[string]struct{})
	doc.Find("p, span, div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !isHeroLike(s) {
			return true
		}
		t := collapseSpace(ownText(s))
		if len(t) <= minHeroChars {
			return true
		}
		if _, dup := seen[t]; dup {
			return true
		}
		seen[t] = struct{}{}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(t)
		return b.Len() < maxHeroChars
	})
	return truncate(b.String(), maxHeroChars)
}

// isHeroLike reports whether the element carries a prominence signal.
func isHeroLike(s *goquery.Selection) bool {
	if style, ok := s.Attr("style"); ok {
		if m := fontSizeRe.FindStringSubmatch(style); m != nil {
			if size, err := strconv.ParseFloat(m[1], 64); err == nil && size >= 16 {
				return true
			}
		}
	}
	class, _ := s.Attr("class")
	id, _ := s.Attr("id")
	combined := strings.ToLower(class + " " + id)
	for _, pat := range heroClassPatterns {
		if strings.Contains(combined, pat) {
			return true
		}
	}
	return false
}

// ownText returns the element's text excluding nested hero-sized children,
// so a hero <div> wrapping a hero <p> does not duplicate the paragraph.
// Direct text plus text of non-container children is enough in practice.
func ownText(s *goquery.Selection) string {
	clone := s.Clone()
	clone.Find("p, div").Remove()
	t := clone.Text()
	if strings.TrimSpace(t) == "" {
		// Leaf-ish element; use full text.
		return s.Text()
	}
	return t
}

// collapseSpace trims and collapses runs of whitespace to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most n bytes without splitting the final rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := s[:n]
	// Back off any partial UTF-8 sequence at the boundary.
	for len(cut) > 0 && cut[len(cut)-1]&0xC0 == 0x80 {
		cut = cut[:len(cut)-1]
	}
	return cut
}
