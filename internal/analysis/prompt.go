package analysis

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is an output language the analysis can be written in.
type Language struct {
	Code string
	Name string
}

var (
	English = Language{Code: "en", Name: "English"}
	Spanish = Language{Code: "es", Name: "Spanish"}
	French  = Language{Code: "fr", Name: "French"}
	Arabic  = Language{Code: "ar", Name: "Arabic"}
	Chinese = Language{Code: "zh", Name: "Chinese"}
)

// SupportedLanguages lists output languages in matcher preference order.
var SupportedLanguages = []Language{English, Spanish, French, Arabic, Chinese}

var languageMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Spanish,
	language.French,
	language.Arabic,
	language.Chinese,
})

// ResolveLanguage maps a BCP 47 code such as "es-MX" to a supported output
// language. Unknown or malformed codes resolve to English.
func ResolveLanguage(code string) Language {
	code = strings.TrimSpace(code)
	if code == "" {
		return English
	}
	tag, err := language.Parse(code)
	if err != nil {
		return English
	}
	_, idx, conf := languageMatcher.Match(tag)
	if conf == language.No || idx < 0 || idx >= len(SupportedLanguages) {
		return English
	}
	return SupportedLanguages[idx]
}

const analysisInstructions = `You are an expert luxury watch authenticator and appraiser with decades of experience. Analyze this watch image carefully and thoroughly.

%s
IMPORTANT INSTRUCTIONS:
1. Always attempt to identify the watch, even if the image quality is not perfect.
2. Look for any visible features: brand logos, dial design, case shape, crown, hands, markers, bezel.
3. If any part of a watch is visible, provide your best analysis.
4. Only set confidence to 0 if there is no watch visible in the image at all.
5. The Rolex Land-Dweller is a real model released in 2025 (36mm and 40mm, integrated bracelet, 5 Hz Cal. 7135). References include 227950, 227955, 227959, 227951, 227956, 227935, 227936, 127950, 127955, 227940, 227945, 127940, 127945. Do not mark it as fake or non-existent.
6. Check the watch database for new 2024-2025 models before judging authenticity.

Examine:
1. Brand identification from logos on dial, crown, clasp and case back
2. Model identification from dial layout, bezel style, case shape and complications
3. Reference number if any text is visible
4. Materials (steel, gold, ceramic, titanium)
5. Dial color, texture, indices and hand style
6. Case shape, estimated size and lug style
7. Crown design and position
8. Authenticity indicators versus replica warning signs
9. Market value using 2024-2025 pricing
10. Movement type if visible

Authenticity assessment:
- Finishing quality, font consistency and alignment
- Logo positioning and print quality
- Overall build quality from visible details
- Any suspicious elements, listed as red flags

With partial visibility or poor lighting, still give your best identification, use 30-70 confidence for unclear images, list the features you can identify and suggest which additional angles would help in the notes.

Only mark the watch as unidentifiable (confidence 0) if no watch is present, the image is blank or corrupted, or only non-watch objects are visible.

Respond with a single JSON object matching the response schema. Confidence values are percentages from 0 to 100. estimatedValue.min must not exceed estimatedValue.max.

IMPORTANT: Respond in %s language. All analysis, reasoning, descriptions, and notes must be in %s.`

// BuildPrompt returns the instruction text sent alongside the image.
func BuildPrompt(knowledge string, lang Language) string {
	if !strings.HasSuffix(knowledge, "\n") {
		knowledge += "\n"
	}
	return fmt.Sprintf(analysisInstructions, knowledge, lang.Name, lang.Name)
}
