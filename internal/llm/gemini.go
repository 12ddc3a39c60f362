package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/raine/watch-appraiser/internal/analysis"
	"github.com/raine/watch-appraiser/internal/metrics"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// DefaultModel is used when GeminiConfig.Model is empty.
const DefaultModel = "gemini-2.5-flash"

// GeminiConfig holds the credentials and endpoint for the Gemini API.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GeminiAnalyzer performs watch analysis calls against Google's Gemini API.
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

var _ analysis.Service = (*GeminiAnalyzer)(nil)

// NewGeminiAnalyzer creates a new Gemini-based analyzer.
func NewGeminiAnalyzer(ctx context.Context, cfg GeminiConfig) (*GeminiAnalyzer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &GeminiAnalyzer{client: client, model: model}, nil
}

// Model returns the model name used for requests.
func (g *GeminiAnalyzer) Model() string {
	return g.model
}

// Generate sends the image and prompt with the result schema and returns the
// JSON object from the response. Errors are *analysis.Error.
func (g *GeminiAnalyzer) Generate(ctx context.Context, req *analysis.Request) ([]byte, error) {
	imgData, err := base64.StdEncoding.DecodeString(req.EncodedImage)
	if err != nil {
		return nil, analysis.NewError(analysis.KindImageReadFailure, fmt.Errorf("invalid image encoding: %w", err))
	}
	if len(imgData) == 0 {
		return nil, analysis.Errorf(analysis.KindEmptyInput, "image is empty")
	}

	parts := []*genai.Part{
		{InlineData: &genai.Blob{Data: imgData, MIMEType: req.MIMEType}},
		genai.NewPartFromText(req.Prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   resultSchema(),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, classifyError(err)
	}

	g.logUsage(result, len(imgData), req.Language.Code)

	return responseJSON(result)
}

func (g *GeminiAnalyzer) logUsage(result *genai.GenerateContentResponse, imageBytes int, language string) {
	usage := Usage{}
	if result.UsageMetadata != nil {
		usage.InputTokens = int64(result.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int64(result.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int64(result.UsageMetadata.TotalTokenCount)
		usage.CostUSD = calculateGeminiCost(g.model, usage.InputTokens, usage.OutputTokens)
	}

	metrics.TokensTotal.WithLabelValues("input").Add(float64(usage.InputTokens))
	metrics.TokensTotal.WithLabelValues("output").Add(float64(usage.OutputTokens))
	metrics.CostUSDTotal.Add(usage.CostUSD)

	log.Info().
		Str("model", g.model).
		Str("language", language).
		Int("imageBytes", imageBytes).
		Int64("inputTokens", usage.InputTokens).
		Int64("outputTokens", usage.OutputTokens).
		Float64("costUSD", usage.CostUSD).
		Msg("vision llm call")
}

// responseJSON extracts the JSON object from a response, tagging blocked,
// empty and truncated responses.
func responseJSON(result *genai.GenerateContentResponse) ([]byte, error) {
	if len(result.Candidates) == 0 {
		if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
			return nil, analysis.Errorf(analysis.KindEmptyResult, "prompt blocked: %s", result.PromptFeedback.BlockReason)
		}
		return nil, analysis.Errorf(analysis.KindEmptyResult, "no response from Gemini")
	}

	cand := result.Candidates[0]
	switch cand.FinishReason {
	case genai.FinishReasonMaxTokens:
		return nil, analysis.Errorf(analysis.KindResponseParseFailure, "response truncated at token limit")
	case genai.FinishReasonSafety, genai.FinishReason("PROHIBITED_CONTENT"), genai.FinishReason("BLOCKLIST"):
		return nil, analysis.Errorf(analysis.KindEmptyResult, "response blocked: %s", cand.FinishReason)
	}
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return nil, analysis.Errorf(analysis.KindEmptyResult, "no response from Gemini")
	}

	text := strings.TrimSpace(result.Text())
	if text == "" || text == "null" {
		return nil, analysis.Errorf(analysis.KindEmptyResult, "Gemini returned an empty result")
	}

	jsonStr, err := extractJSONObject(text)
	if err != nil {
		return nil, analysis.NewError(analysis.KindResponseParseFailure, err)
	}
	return []byte(jsonStr), nil
}

// extractJSONObject extracts a JSON object from text that may contain markdown
// code blocks or other formatting.
func extractJSONObject(text string) (string, error) {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response: %.200s", text)
	}
	return text[start : end+1], nil
}
