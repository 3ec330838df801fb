package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tickermatch/internal/debug"
	"github.com/tickermatch/internal/matcher"
	"github.com/tickermatch/internal/normalize"
)

// Client is the LLM fallback stage. It makes a single chat completion per
// query and reconciles the answer against the fuzzy candidate pool. A Client
// built without an API key is inert: Available reports false and the
// orchestrator skips the stage.
type Client struct {
	cfg matcher.Config

	// complete performs one completion round-trip. Tests swap this out;
	// production wiring goes through the OpenAI API.
	complete func(ctx context.Context, prompt string) (string, error)
}

// NewClient builds a fallback client. An empty apiKey yields an unavailable
// client rather than an error.
func NewClient(apiKey string, cfg matcher.Config) *Client {
	c := &Client{cfg: cfg}
	if apiKey == "" {
		return c
	}

	api := openai.NewClient(apiKey)
	c.complete = func(ctx context.Context, prompt string) (string, error) {
		resp, err := api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       cfg.OpenAIModel,
			MaxTokens:   cfg.OpenAIMaxTokens,
			Temperature: cfg.OpenAITemperature,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return "", fmt.Errorf("chat completion failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("chat completion returned no choices")
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}
	return c
}

// Available reports whether the fallback stage can run.
func (c *Client) Available() bool {
	return c.complete != nil
}

// TryFallback resolves a company name through the model. The answer is
// reconciled against the candidate pool on normalized names; a reconciled
// candidate keeps its prior fuzzy score, while a fresh brand-name answer gets
// a fixed 95.0. Transport failures and a literal "None" both degrade to a
// not-found Result; this stage never returns an error.
func (c *Client) TryFallback(ctx context.Context, name string, candidates []matcher.FallbackCandidate) matcher.Result {
	if !c.Available() {
		return emptyResult(matcher.MsgNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.OpenAITimeout)
	defer cancel()

	debug.Printf(c.cfg.Debug, "fallback: querying model %s for %q with %d candidates",
		c.cfg.OpenAIModel, name, len(candidates))

	answer, err := c.complete(ctx, buildPrompt(name, candidates))
	if err != nil {
		debug.Printf(c.cfg.Debug, "fallback failed: %v", err)
		return emptyResult(matcher.MsgOpenAIError)
	}
	debug.Printf(c.cfg.Debug, "fallback: model answered %q", answer)

	if strings.EqualFold(answer, "none") {
		return emptyResult(matcher.MsgNotFound)
	}

	companyName, ticker := ExtractCompanyAndTicker(answer)
	if companyName == "" {
		return emptyResult(matcher.MsgNotFound)
	}

	if selected, ok := c.reconcile(companyName, candidates); ok {
		return matchResult(selected.CompanyName, selected.Ticker, selected.Score)
	}

	// Not in the pool: the model recognized a brand name and supplied the
	// legal name itself.
	return matchResult(companyName, ticker, 95.0)
}

// reconcile looks the answered company name up in the candidate pool,
// comparing normalized names so punctuation and suffix differences between
// the model's phrasing and the reference title do not break the match.
func (c *Client) reconcile(companyName string, candidates []matcher.FallbackCandidate) (matcher.FallbackCandidate, bool) {
	target := c.normalizeName(companyName)
	for _, candidate := range candidates {
		if c.normalizeName(candidate.CompanyName) == target {
			return candidate, true
		}
	}
	return matcher.FallbackCandidate{}, false
}

func (c *Client) normalizeName(name string) string {
	extracted, _ := ExtractCompanyAndTicker(name)
	return normalize.CompanyWithSuffixes(extracted, c.cfg.Suffixes)
}

func matchResult(companyName, ticker string, score float64) matcher.Result {
	result := matcher.Result{
		MatchedName:        companyName,
		PredictedTicker:    ticker,
		AllPossibleTickers: []string{},
		Score:              score,
		TopMatches: []matcher.TopMatch{
			{Rank: 1, CompanyName: companyName, Ticker: ticker, Score: score},
		},
	}
	if ticker != "" {
		result.AllPossibleTickers = append(result.AllPossibleTickers, ticker)
	}
	return result
}

func emptyResult(message string) matcher.Result {
	return matcher.Result{
		AllPossibleTickers: []string{},
		Message:            message,
		TopMatches:         []matcher.TopMatch{},
	}
}
