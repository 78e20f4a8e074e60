// Package intro produces the opening paragraph of an edition. When a
// text-generation endpoint is configured it requests a short completion;
// on any failure it degrades to static copy keyed by edition type. The
// pipeline never fails because of this package.
package intro

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ecagle/herald/internal/config"
	"github.com/ecagle/herald/internal/content"
	"github.com/ecagle/herald/internal/intel"
)

const (
	maxTokens      = 200
	defaultTimeout = 15 * time.Second

	systemPrompt = "You write warm, concise opening paragraphs for a community organization's newsletter. Two to three sentences, plain language, no markdown, no emoji."
)

// Fallback intros used whenever generation is unavailable.
const (
	FallbackWeekly  = "Here's what's happening in our community this week!"
	FallbackMonthly = "Here's your monthly roundup of everything happening in our community!"
)

// Generator calls an OpenAI-compatible chat completions endpoint.
type Generator struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

// New builds a generator from configuration. An empty endpoint or API key
// is the expected demo/offline state: the generator immediately falls back.
func New(cfg config.LLMConfig) *Generator {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Generator{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured reports whether an endpoint and key are set.
func (g *Generator) Configured() bool {
	return g != nil && g.endpoint != "" && g.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Intro returns the opening paragraph for an edition and, when the result
// is a fallback, the degradation reason. The returned string is always
// non-empty.
func (g *Generator) Intro(ctx context.Context, editionType content.EditionType, sections []content.Section, ic intel.Context) (string, string) {
	if !g.Configured() {
		return Fallback(editionType), "intro: generation endpoint not configured"
	}

	text, err := g.complete(ctx, buildPrompt(editionType, sections, ic))
	if err != nil {
		return Fallback(editionType), "intro: " + err.Error()
	}
	return text, ""
}

// Fallback returns the static intro for an edition type.
func Fallback(t content.EditionType) string {
	if t == content.EditionMonthly {
		return FallbackMonthly
	}
	return FallbackWeekly
}

// buildPrompt embeds the section item counts and up to five intelligence
// fields into the user message.
func buildPrompt(editionType content.EditionType, sections []content.Section, ic intel.Context) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write the opening paragraph for the %s edition of our community newsletter.\n\nThis edition contains:\n", editionType)
	for _, s := range sections {
		if len(s.Items) > 0 {
			fmt.Fprintf(&b, "- %s: %d items\n", s.Title, len(s.Items))
		}
	}

	facts := make([]string, 0, 5)
	if ic.CommunitySize > 0 {
		facts = append(facts, fmt.Sprintf("The community has %d members.", ic.CommunitySize))
	}
	if ic.VerifiedCreators > 0 {
		facts = append(facts, fmt.Sprintf("%d creators are verified.", ic.VerifiedCreators))
	}
	if ic.TopArticle != "" {
		facts = append(facts, fmt.Sprintf("The most-read article this week is %q.", ic.TopArticle))
	}
	if ic.NextEvent != "" {
		facts = append(facts, fmt.Sprintf("The next event is %q.", ic.NextEvent))
	}
	if len(ic.KeyInsights) > 0 {
		facts = append(facts, ic.KeyInsights[0])
	}
	if len(facts) > 0 {
		b.WriteString("\nCommunity facts you may draw on:\n")
		for _, f := range facts {
			b.WriteString("- " + f + "\n")
		}
	}
	return b.String()
}

// complete performs one chat completions request and extracts the first
// choice's message content.
func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("completion endpoint returned %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("completion response is empty")
	}
	return text, nil
}
