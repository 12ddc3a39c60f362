package llm

import "google.golang.org/genai"

func ptr[T any](v T) *T {
	return &v
}

func stringArray(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: description,
		Items:       &genai.Schema{Type: genai.TypeString},
	}
}

func percentage(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeNumber,
		Description: description,
		Minimum:     ptr(0.0),
		Maximum:     ptr(100.0),
	}
}

// resultSchema describes analysis.Result for Gemini's structured output.
func resultSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"brand":           {Type: genai.TypeString, Description: "Watch brand name, empty if unidentifiable"},
			"model":           {Type: genai.TypeString, Description: "Watch model name, empty if unidentifiable"},
			"referenceNumber": {Type: genai.TypeString, Description: "Reference number if visible or identifiable"},
			"estimatedValue": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"min":      {Type: genai.TypeNumber, Description: "Minimum estimated value", Minimum: ptr(0.0)},
					"max":      {Type: genai.TypeNumber, Description: "Maximum estimated value", Minimum: ptr(0.0)},
					"currency": {Type: genai.TypeString, Description: "ISO 4217 currency code, USD by default"},
				},
				Required:         []string{"min", "max", "currency"},
				PropertyOrdering: []string{"min", "max", "currency"},
			},
			"authenticity": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"isAuthentic":            {Type: genai.TypeBoolean, Description: "Whether the watch appears authentic"},
					"confidence":             percentage("Confidence in the authenticity assessment (0-100)"),
					"reasoning":              {Type: genai.TypeString, Description: "Detailed reasoning for the assessment"},
					"redFlags":               stringArray("Potential authenticity concerns"),
					"authenticityIndicators": stringArray("Features supporting authenticity"),
				},
				Required:         []string{"isAuthentic", "confidence", "reasoning", "redFlags", "authenticityIndicators"},
				PropertyOrdering: []string{"isAuthentic", "confidence", "reasoning", "redFlags", "authenticityIndicators"},
			},
			"details": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"material":         {Type: genai.TypeString, Description: "Case and bracelet material"},
					"movement":         {Type: genai.TypeString, Description: "Movement type"},
					"yearOfProduction": {Type: genai.TypeString, Description: "Estimated production year or range"},
					"condition":        {Type: genai.TypeString, Description: "Visible condition"},
					"notableFeatures":  stringArray("Notable features or complications"),
				},
				Required:         []string{"notableFeatures"},
				PropertyOrdering: []string{"material", "movement", "yearOfProduction", "condition", "notableFeatures"},
			},
			"confidence": percentage("Overall identification confidence (0-100)"),
			"notes":      {Type: genai.TypeString, Description: "Additional observations or suggested photo angles"},
		},
		Required: []string{"brand", "model", "estimatedValue", "authenticity", "details", "confidence"},
		PropertyOrdering: []string{
			"brand", "model", "referenceNumber", "estimatedValue",
			"authenticity", "details", "confidence", "notes",
		},
	}
}
