package classifier

import (
	"testing"

	"github.com/use-agent/qualify/models"
)

func TestParseResponse_CleanJSON(t *testing.T) {
	result, err := parseResponse(`{"verdict":"QUALIFY","score":8,"reason":"fits"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Verdict != "QUALIFY" || result.Score != 8 || result.Reason != "fits" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestParseResponse_BraceExtractionFallback(t *testing.T) {
	raw := `Sure! {"verdict":"QUALIFY","score":8,"reason":"fits"} thanks`
	result, err := parseResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Verdict != "QUALIFY" || result.Score != 8 || result.Reason != "fits" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestParseResponse_MissingVerdictDefaultsToDisqualify(t *testing.T) {
	result, err := parseResponse(`{"score":5,"reason":"unclear"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Verdict != models.VerdictDisqualify {
		t.Errorf("expected DISQUALIFY, got %q", result.Verdict)
	}
}

// A present verdict string passes through uninterpreted, even off-enum.
func TestParseResponse_LenientVerdictPassthrough(t *testing.T) {
	result, err := parseResponse(`{"verdict":"MAYBE","score":5,"reason":"hmm"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Verdict != "MAYBE" {
		t.Errorf("expected MAYBE passthrough, got %q", result.Verdict)
	}
}

func TestParseResponse_ScoreCoercion(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"missing", `{"verdict":"QUALIFY"}`, 0},
		{"float truncated", `{"verdict":"QUALIFY","score":7.9}`, 7},
		{"numeric string", `{"verdict":"QUALIFY","score":"6"}`, 6},
		{"non-numeric", `{"verdict":"QUALIFY","score":"high"}`, 0},
		{"null", `{"verdict":"QUALIFY","score":null}`, 0},
		{"above range clamped", `{"verdict":"QUALIFY","score":15}`, 10},
		{"below range clamped", `{"verdict":"QUALIFY","score":-3}`, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result, err := parseResponse(c.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Score != c.want {
				t.Errorf("score = %d, want %d", result.Score, c.want)
			}
		})
	}
}

func TestParseResponse_MissingReasonGetsDefault(t *testing.T) {
	result, err := parseResponse(`{"verdict":"QUALIFY","score":8}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Reason != defaultReason {
		t.Errorf("expected default reason, got %q", result.Reason)
	}
}

func TestParseResponse_NoJSONAtAll(t *testing.T) {
	if _, err := parseResponse("I cannot classify this website."); err == nil {
		t.Fatal("expected parse error for plain-text response")
	}
}

func TestParseResponse_MalformedBraceSpan(t *testing.T) {
	if _, err := parseResponse(`prefix {not json at all} suffix`); err == nil {
		t.Fatal("expected parse error for malformed brace span")
	}
}
