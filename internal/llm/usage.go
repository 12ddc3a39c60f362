package llm

import "strings"

// Usage contains token usage and cost information.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
	CostUSD      float64
}

// Gemini pricing (per million tokens)
type modelPrice struct {
	input  float64
	output float64
}

var geminiPrices = map[string]modelPrice{
	"gemini-2.5-flash":       {input: 0.30, output: 2.50},
	"gemini-2.5-flash-lite":  {input: 0.10, output: 0.40},
	"gemini-2.5-pro":         {input: 1.25, output: 10.00},
	"gemini-3-flash-preview": {input: 0.50, output: 3.00},
}

// calculateGeminiCost estimates the cost of a call. Unknown models fall back
// to the default model's pricing; versioned names match their base model.
func calculateGeminiCost(model string, inputTokens, outputTokens int64) float64 {
	price, ok := geminiPrices[model]
	if !ok {
		price = geminiPrices[DefaultModel]
		longest := 0
		for name, p := range geminiPrices {
			if strings.HasPrefix(model, name+"-") && len(name) > longest {
				price, longest = p, len(name)
			}
		}
	}
	inputCost := float64(inputTokens) / 1_000_000 * price.input
	outputCost := float64(outputTokens) / 1_000_000 * price.output
	return inputCost + outputCost
}
