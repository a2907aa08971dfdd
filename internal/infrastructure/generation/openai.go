package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rarerevisit/backend/internal/domain/content"
	"github.com/rarerevisit/backend/internal/domain/shared"
	"github.com/rarerevisit/backend/internal/domain/social"
	"github.com/rarerevisit/backend/internal/infrastructure/config"
)

// OpenAIGenerator produces captions via an OpenAI-compatible
// chat completions endpoint
type OpenAIGenerator struct {
	client *http.Client
	apiKey string
	apiURL string
	model  string
}

// NewOpenAIGenerator creates a generator from the generation config
func NewOpenAIGenerator(cfg config.GenerationConfig) *OpenAIGenerator {
	apiURL := strings.TrimRight(cfg.BaseURL, "/")
	if apiURL == "" {
		apiURL = "https://api.openai.com/v1"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIGenerator{
		client: &http.Client{Timeout: timeout},
		apiKey: cfg.APIKey,
		apiURL: apiURL,
		model:  cfg.Model,
	}
}

// Generate produces a single caption for the request
func (g *OpenAIGenerator) Generate(ctx context.Context, req content.GenerationRequest) (string, error) {
	if g.model == "" {
		return "", shared.NewDomainError("GENERATION_FAILED", "Generation model is not configured")
	}

	body := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(req)},
			{Role: "user", Content: userPrompt(req)},
		},
		MaxTokens:   maxTokensFor(req.Platform),
		Temperature: 0.8,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("generation: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("generation: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("generation: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return "", shared.NewDomainError("GENERATION_FAILED",
			fmt.Sprintf("Generation endpoint returned %s: %s", resp.Status, strings.TrimSpace(string(raw))))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("generation: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", shared.NewDomainError("GENERATION_FAILED", "Generation endpoint returned no choices")
	}

	caption := strings.TrimSpace(parsed.Choices[0].Message.Content)
	caption = trimForPlatform(caption, req.Platform)
	return caption, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// systemPrompt frames the model as the brand's copywriter for the
// requested tone and platform
func systemPrompt(req content.GenerationRequest) string {
	var b strings.Builder
	b.WriteString("You are the social media copywriter for a boutique fragrance brand. ")
	b.WriteString("Write a single caption, no preamble, no quotation marks, no hashtag spam.")

	switch req.Tone {
	case content.TonePlayful:
		b.WriteString(" The voice is playful: light, witty, a little cheeky.")
	case content.ToneProfessional:
		b.WriteString(" The voice is professional: precise, confident, informative.")
	default:
		b.WriteString(" The voice is elegant: evocative, restrained, sensory.")
	}

	if cfg, ok := req.Platform.Config(); ok {
		fmt.Fprintf(&b, " The caption is for %s and must stay under %d characters.",
			cfg.DisplayName, cfg.MaxBodyLength)
	}
	return b.String()
}

// userPrompt carries the operator's brief and optional product context
func userPrompt(req content.GenerationRequest) string {
	if req.ProductName == "" {
		return req.Prompt
	}
	return fmt.Sprintf("Product: %s\nBrief: %s", req.ProductName, req.Prompt)
}

// maxTokensFor bounds the completion roughly to the platform limit.
// A token is about four characters, padded so trimming stays rare.
func maxTokensFor(platform social.Platform) int {
	cfg, ok := platform.Config()
	if !ok {
		return 256
	}
	tokens := cfg.MaxBodyLength / 4
	if tokens > 1024 {
		tokens = 1024
	}
	if tokens < 64 {
		tokens = 64
	}
	return tokens
}

// trimForPlatform hard-caps the caption at the platform body limit,
// cutting back to the last word boundary when possible. Limits are in
// characters, so the cut is made on rune boundaries.
func trimForPlatform(caption string, platform social.Platform) string {
	cfg, ok := platform.Config()
	if !ok || utf8.RuneCountInString(caption) <= cfg.MaxBodyLength {
		return caption
	}

	cut := string([]rune(caption)[:cfg.MaxBodyLength])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}

// Ensure OpenAIGenerator implements Generator
var _ content.Generator = (*OpenAIGenerator)(nil)
