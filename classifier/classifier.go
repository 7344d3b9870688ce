// Package classifier decides QUALIFY/DISQUALIFY for one URL's extracted
// content by prompting a language model and defensively parsing the reply.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/use-agent/qualify/models"
	"github.com/use-agent/qualify/retry"
)

// DefaultPrompt is the built-in ICP rubric, used when no custom prompt is
// configured. It is passed through to the model unmodified.
const DefaultPrompt = `You are a lead qualification analyst. Judge whether the company behind the provided website content fits our Ideal Customer Profile: B2B software companies selling a product or platform to other businesses (SaaS, developer tools, data or infrastructure products, API-first services).

Disqualify agencies, consultancies, marketplaces, e-commerce shops, non-profits, and purely consumer-facing products.

Respond with a single JSON object and nothing else:
{"verdict": "QUALIFY" or "DISQUALIFY", "score": <integer 0-10 fit score>, "reason": "<justification, at most 3 sentences>"}`

// reasonInaccessible is recorded when there is no content to classify.
const reasonInaccessible = "Website inaccessible or no product description found."

// minClassifiableContent is the content length under which the model call
// is skipped entirely.
const minClassifiableContent = 20

// ChatClient is the narrow slice of the classification service the
// classifier needs: a system directive plus a user message in, generated
// text out.
type ChatClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Classifier builds prompts, calls the model through the retry executor,
// and parses replies into ClassificationResults.
type Classifier struct {
	client   ChatClient
	prompt   string
	retryCfg retry.Config
}

// New creates a Classifier. An empty prompt selects DefaultPrompt.
func New(client ChatClient, prompt string, retryCfg retry.Config) *Classifier {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return &Classifier{client: client, prompt: prompt, retryCfg: retryCfg}
}

// Classify produces the verdict record for one URL. It never returns an
// error: retry exhaustion, transport failures, and unparseable replies all
// collapse into a DISQUALIFY record carrying the failure message.
func (c *Classifier) Classify(ctx context.Context, url, content string) models.ClassificationResult {
	if len(strings.TrimSpace(content)) < minClassifiableContent {
		return models.ClassificationResult{
			URL:     url,
			Verdict: models.VerdictDisqualify,
			Score:   0,
			Reason:  reasonInaccessible,
		}
	}

	user := fmt.Sprintf("Website URL: %s\n\nWebsite content:\n%s", url, content)

	raw, err := retry.Do(ctx, c.retryCfg, func(ctx context.Context) (string, error) {
		return c.client.Complete(ctx, c.prompt, user)
	})
	if err != nil {
		return c.failure(url, err)
	}

	result, err := parseResponse(raw)
	if err != nil {
		return c.failure(url, err)
	}

	result.URL = url
	slog.Info("classified", "url", url, "verdict", result.Verdict, "score", result.Score)
	return result
}

// failure synthesizes the DISQUALIFY record for an unclassifiable URL.
func (c *Classifier) failure(url string, err error) models.ClassificationResult {
	slog.Error("classification failed", "url", url, "error", err)
	return models.ClassificationResult{
		URL:     url,
		Verdict: models.VerdictDisqualify,
		Score:   0,
		Reason:  "Error: " + err.Error(),
	}
}
