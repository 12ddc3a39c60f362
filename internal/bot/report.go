package bot

import (
	"fmt"
	"strings"

	"github.com/raine/watch-appraiser/internal/analysis"
	"github.com/raine/watch-appraiser/internal/currency"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// formatReport renders result as a Telegram Markdown message in the chat's
// language and currency.
func formatReport(result *analysis.Result, settings Settings) string {
	p := printerFor(settings.Language)
	if result.Confidence == 0 && result.Brand == "" && result.Model == "" {
		return p.Sprintf(LblNoWatch)
	}

	var sb strings.Builder
	line := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		fmt.Fprintf(&sb, "*%s:* %s\n", p.Sprintf(label), escapeMarkdown(value))
	}

	fmt.Fprintf(&sb, "⌚ *%s*\n", escapeMarkdown(watchName(result, p)))
	line(LblReference, result.ReferenceNumber)
	line(LblConfidence, fmt.Sprintf("%.0f%%", result.Confidence))
	line(LblEstimatedValue, valueRange(result.EstimatedValue, settings))

	sb.WriteString("\n")
	verdict := LblNotAuthentic
	if result.Authenticity.IsAuthentic {
		verdict = LblLikelyAuthentic
	}
	line(LblAuthenticity, fmt.Sprintf("%s (%.0f%%)", p.Sprintf(verdict), result.Authenticity.Confidence))
	if r := strings.TrimSpace(result.Authenticity.Reasoning); r != "" {
		sb.WriteString(escapeMarkdown(r) + "\n")
	}
	bullets(&sb, p.Sprintf(LblIndicators), result.Authenticity.AuthenticityIndicators)
	bullets(&sb, p.Sprintf(LblRedFlags), result.Authenticity.RedFlags)

	d := result.Details
	if d.Material != "" || d.Movement != "" || d.YearOfProduction != "" || d.Condition != "" {
		sb.WriteString("\n")
	}
	line(LblMaterial, d.Material)
	line(LblMovement, d.Movement)
	line(LblYear, d.YearOfProduction)
	line(LblCondition, d.Condition)
	bullets(&sb, p.Sprintf(LblFeatures), d.NotableFeatures)

	if notes := strings.TrimSpace(result.Notes); notes != "" {
		fmt.Fprintf(&sb, "\n*%s:* %s\n", p.Sprintf(LblNotes), escapeMarkdown(notes))
	}

	return strings.TrimSpace(sb.String())
}

func watchName(result *analysis.Result, p *message.Printer) string {
	name := strings.TrimSpace(result.Brand + " " + result.Model)
	if name == "" {
		return p.Sprintf(MsgHistoryUnknown)
	}
	return name
}

func bullets(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "*%s:*\n", title)
	for _, item := range items {
		fmt.Fprintf(sb, "• %s\n", escapeMarkdown(item))
	}
}

// valueRange formats the estimate in the chat's currency, keeping the
// original currency when no conversion is possible.
func valueRange(ev analysis.EstimatedValue, settings Settings) string {
	tag := language.Make(analysis.ResolveLanguage(settings.Language).Code)
	code := ev.Currency
	minV, maxV := ev.Min, ev.Max

	if settings.Currency != "" && !strings.EqualFold(settings.Currency, ev.Currency) {
		cmin, errMin := currency.Convert(ev.Min, ev.Currency, settings.Currency)
		cmax, errMax := currency.Convert(ev.Max, ev.Currency, settings.Currency)
		if errMin == nil && errMax == nil {
			code, minV, maxV = strings.ToUpper(settings.Currency), cmin, cmax
		} else {
			log.Warn().Str("from", ev.Currency).Str("to", settings.Currency).Msg("currency conversion unavailable")
		}
	}

	if minV == maxV {
		return currency.FormatIn(tag, minV, code)
	}
	return currency.FormatIn(tag, minV, code) + " - " + currency.FormatIn(tag, maxV, code)
}
