package classifier

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/use-agent/qualify/models"
)

// defaultReason is used when the model omits the reason field.
const defaultReason = "Unable to determine classification reason."

// braceRe grabs the outermost {...} span from a chatty response so a reply
// like `Sure! {"verdict":...} thanks` still parses.
var braceRe = regexp.MustCompile(`(?s)\{.*\}`)

// rawVerdict is the loosely typed wire shape of the model's reply. Score is
// left raw so numbers, quoted numbers, and garbage can all be coerced.
type rawVerdict struct {
	Verdict string          `json:"verdict"`
	Score   json.RawMessage `json:"score"`
	Reason  string          `json:"reason"`
}

// parseResponse turns the model's textual reply into verdict fields.
//
// Two sequential parse attempts: the raw text as a JSON object, then the
// first brace-delimited substring. Field mapping is defensive: a missing or
// empty verdict collapses to DISQUALIFY, a present one passes through
// uninterpreted; a non-numeric score coerces to 0, a numeric one is
// truncated to an integer and clamped to [0,10]; a missing reason gets a
// generic message. An error is returned only when neither attempt yields a
// JSON object at all.
func parseResponse(raw string) (models.ClassificationResult, error) {
	var rv rawVerdict
	err := json.Unmarshal([]byte(raw), &rv)
	if err != nil {
		candidate := braceRe.FindString(raw)
		if candidate == "" {
			return models.ClassificationResult{},
				models.NewPipelineError(models.ErrCodeLLMBadResponse, "no JSON object in model response", err)
		}
		if err := json.Unmarshal([]byte(candidate), &rv); err != nil {
			return models.ClassificationResult{},
				models.NewPipelineError(models.ErrCodeLLMBadResponse, "model response JSON is malformed", err)
		}
	}

	result := models.ClassificationResult{
		Verdict: strings.TrimSpace(rv.Verdict),
		Score:   coerceScore(rv.Score),
		Reason:  strings.TrimSpace(rv.Reason),
	}
	if result.Verdict == "" {
		result.Verdict = models.VerdictDisqualify
	}
	if result.Reason == "" {
		result.Reason = defaultReason
	}
	return result, nil
}

// coerceScore converts the raw score field to an integer in [0,10].
// Accepts JSON numbers and numeric strings; anything else is 0.
func coerceScore(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		f = parsed
	}

	score := int(f)
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
