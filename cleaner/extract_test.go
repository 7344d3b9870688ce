package cleaner

import (
	"os"
	"strings"
	"testing"
)

func loadFixture(t *testing.T) string {
	t.Helper()
	raw, err := os.ReadFile("testdata/landing.html")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(raw)
}

func TestExtractFields_Title(t *testing.T) {
	fields := ExtractFields(loadFixture(t))
	if fields.Title != "Acme Metrics - Product Analytics for B2B SaaS" {
		t.Errorf("unexpected title: %q", fields.Title)
	}
}

func TestExtractFields_MetaDescriptionPreferredOverOG(t *testing.T) {
	fields := ExtractFields(loadFixture(t))
	want := "Acme Metrics turns raw product events into revenue insight for B2B SaaS teams."
	if fields.MetaDescription != want {
		t.Errorf("unexpected meta description: %q", fields.MetaDescription)
	}
}

func TestExtractFields_OGDescriptionFallback(t *testing.T) {
	html := `<html><head>
		<meta property="og:description" content="Only the OG description exists here.">
	</head><body></body></html>`
	fields := ExtractFields(html)
	if fields.MetaDescription != "Only the OG description exists here." {
		t.Errorf("og fallback not used: %q", fields.MetaDescription)
	}
}

func TestExtractFields_FirstH1(t *testing.T) {
	fields := ExtractFields(loadFixture(t))
	if fields.H1 != "Know exactly why customers convert" {
		t.Errorf("unexpected h1: %q", fields.H1)
	}
}

func TestExtractFields_HeadingsJoined(t *testing.T) {
	fields := ExtractFields(loadFixture(t))
	want := "Know exactly why customers convert | Built for product-led growth | Integrations"
	if fields.Headings != want {
		t.Errorf("unexpected headings: %q", fields.Headings)
	}
}

func TestExtractFields_BodyTextSkipsShortAndStrippedParagraphs(t *testing.T) {
	fields := ExtractFields(loadFixture(t))

	if strings.Contains(fields.BodyText, "Short one.") {
		t.Error("short paragraph should be filtered out")
	}
	for _, stripped := range []string{"Sidebar promotion", "Form helper", "Copyright Acme"} {
		if strings.Contains(fields.BodyText, stripped) {
			t.Errorf("stripped container text leaked into body: %q", stripped)
		}
	}
	if !strings.Contains(fields.BodyText, "Every click, signup, and upgrade") {
		t.Error("main paragraph missing from body text")
	}
	if !strings.Contains(fields.BodyText, "Native connectors for Segment") {
		t.Error("integrations paragraph missing from body text")
	}
}

func TestExtractFields_HeroText(t *testing.T) {
	fields := ExtractFields(loadFixture(t))

	if !strings.Contains(fields.HeroText, "revenue teams stop guessing") {
		t.Error("hero-class paragraph missing from hero text")
	}
	if !strings.Contains(fields.HeroText, "Trusted by more than four hundred") {
		t.Error("large-font span missing from hero text")
	}
	if strings.Contains(fields.HeroText, "small-print line") {
		t.Error("small-font div should not count as hero text")
	}
}

func TestExtractFields_NavigationRemoved(t *testing.T) {
	fields := ExtractFields(loadFixture(t))
	joined := Assemble(fields)
	for _, chrome := range []string{"Pricing", "window.dataLayer", "Products Solutions"} {
		if strings.Contains(joined, chrome) {
			t.Errorf("non-content element leaked into output: %q", chrome)
		}
	}
}

func TestExtractFields_BodyTextCapped(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	para := strings.Repeat("word ", 60) // ~300 chars
	for i := 0; i < 100; i++ {
		b.WriteString("<p>" + para + "</p>")
	}
	b.WriteString("</body></html>")

	fields := ExtractFields(b.String())
	if len(fields.BodyText) > maxBodyChars {
		t.Errorf("body text exceeds cap: %d > %d", len(fields.BodyText), maxBodyChars)
	}
	if len(fields.BodyText) < maxBodyChars/2 {
		t.Errorf("body text suspiciously short: %d", len(fields.BodyText))
	}
}

func TestAssemble_OrderAndSeparators(t *testing.T) {
	f := PageFields{
		Title:           "T",
		MetaDescription: "M",
		H1:              "H",
		Headings:        "HS",
		HeroText:        "HERO",
		BodyText:        "BODY",
	}
	if got := Assemble(f); got != "T\n\nM\n\nH\n\nHS\n\nHERO\n\nBODY" {
		t.Errorf("unexpected assembly: %q", got)
	}
}

func TestAssemble_SkipsEmptyFields(t *testing.T) {
	f := PageFields{Title: "T", BodyText: "BODY"}
	if got := Assemble(f); got != "T\n\nBODY" {
		t.Errorf("unexpected assembly: %q", got)
	}
}

func TestBuildContent_EmptyPageIsInsufficient(t *testing.T) {
	content, _ := BuildContent("<html><body></body></html>", "https://example.com")
	if len(content) >= MinContentLength {
		t.Errorf("empty page produced %d chars of content", len(content))
	}
}

func TestBuildContent_ReturnsTitle(t *testing.T) {
	content, title := BuildContent(loadFixture(t), "https://acme.example")
	if title != "Acme Metrics - Product Analytics for B2B SaaS" {
		t.Errorf("unexpected title: %q", title)
	}
	if !strings.HasPrefix(content, title) {
		t.Error("assembled content should start with the title")
	}
}
