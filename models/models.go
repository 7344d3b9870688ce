package models

// Verdict values produced by the classifier. The model's verdict string is
// passed through as-is when present; these constants cover the values the
// prompt asks for and the ones synthesized on failure.
const (
	VerdictQualify    = "QUALIFY"
	VerdictDisqualify = "DISQUALIFY"
)

// ScrapeResult is the outcome of rendering and extracting one URL.
// Success=false implies Content is empty.
type ScrapeResult struct {
	// URL is the normalized URL that was fetched.
	URL string `json:"url"`

	// Content is the assembled plain-text page content for classification.
	Content string `json:"content"`

	// Title is the document title.
	Title string `json:"title"`

	// Success indicates whether extraction produced usable content.
	Success bool `json:"success"`

	// Error is populated only when Success is false.
	Error string `json:"error,omitempty"`
}

// ClassificationResult is the verdict record for one URL. Exactly one is
// produced per input URL, whether classification succeeded or not.
type ClassificationResult struct {
	URL     string `json:"url"`
	Verdict string `json:"verdict"`

	// Score is an integer in [0,10]; 0 on any failure path.
	Score int `json:"score"`

	Reason string `json:"reason"`
}

// RunSummary aggregates a full run. Qualified + Disqualified == Total.
type RunSummary struct {
	Total        int                    `json:"total"`
	Qualified    int                    `json:"qualified"`
	Disqualified int                    `json:"disqualified"`
	Results      []ClassificationResult `json:"results"`
}
