package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/raine/watch-appraiser/config"
	"github.com/raine/watch-appraiser/internal/analysis"
	"github.com/raine/watch-appraiser/internal/currency"
	"github.com/raine/watch-appraiser/internal/imaging"
	"github.com/raine/watch-appraiser/internal/llm"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type outcome struct {
	Path   string           `json:"path"`
	Result *analysis.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
	Kind   string           `json:"kind,omitempty"`
}

func main() {
	lang := flag.String("lang", "en", "output language (en, es, fr, ar, zh)")
	currencyCode := flag.String("currency", "", "convert estimated values to this currency")
	asJSON := flag.Bool("json", false, "print results as JSON")
	concurrency := flag.Int("concurrency", 2, "number of images analyzed at once")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <image-path>...\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment variables:\n")
		fmt.Fprintf(os.Stderr, "  GEMINI_API_KEY - Required\n")
		fmt.Fprintf(os.Stderr, "  GEMINI_MODEL   - Optional model override\n")
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	if *currencyCode != "" {
		code, err := currency.Normalize(*currencyCode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v (supported: %s)\n", err, strings.Join(currency.Codes(), ", "))
			os.Exit(1)
		}
		*currencyCode = code
	}

	config.LoadEnvFile()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gemini, err := llm.NewGeminiAnalyzer(ctx, llm.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating Gemini analyzer: %v\n", err)
		os.Exit(1)
	}

	pipeline := analysis.NewPipeline(
		gemini,
		imaging.NewJPEGNormalizer(""),
		imaging.NewEncoder(),
		analysis.WithAttemptTimeout(cfg.AttemptTimeout),
	)

	paths := flag.Args()
	outcomes := make([]outcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(*concurrency, 1))
	for i, path := range paths {
		g.Go(func() error {
			outcomes[i] = analyzeOne(gctx, pipeline, path, *lang)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.Error != "" {
			failed++
		}
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outcomes); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode results: %v\n", err)
			os.Exit(1)
		}
	} else {
		for i, o := range outcomes {
			if i > 0 {
				fmt.Println("\n" + strings.Repeat("-", 50) + "\n")
			}
			printOutcome(o, *currencyCode)
		}
	}

	if failed > 0 {
		os.Exit(2)
	}
}

func analyzeOne(ctx context.Context, pipeline *analysis.Pipeline, path, lang string) outcome {
	result, err := pipeline.Analyze(ctx, path, lang)
	if err != nil {
		ae := analysis.AsError(err)
		return outcome{Path: path, Error: ae.Message(), Kind: ae.Kind.String()}
	}
	return outcome{Path: path, Result: result}
}

func printOutcome(o outcome, currencyCode string) {
	fmt.Printf("=== %s ===\n", o.Path)
	if o.Error != "" {
		fmt.Printf("Error (%s): %s\n", o.Kind, o.Error)
		return
	}

	r := o.Result
	fmt.Printf("Brand:        %s\n", r.Brand)
	fmt.Printf("Model:        %s\n", r.Model)
	if r.ReferenceNumber != "" {
		fmt.Printf("Reference:    %s\n", r.ReferenceNumber)
	}
	fmt.Printf("Confidence:   %.0f%%\n", r.Confidence)
	fmt.Printf("Value:        %s\n", valueRange(r.EstimatedValue, currencyCode))
	fmt.Printf("Authentic:    %t (%.0f%%)\n", r.Authenticity.IsAuthentic, r.Authenticity.Confidence)
	if r.Authenticity.Reasoning != "" {
		fmt.Printf("Reasoning:    %s\n", r.Authenticity.Reasoning)
	}
	for _, f := range r.Authenticity.RedFlags {
		fmt.Printf("Red flag:     %s\n", f)
	}
	if r.Details.Movement != "" {
		fmt.Printf("Movement:     %s\n", r.Details.Movement)
	}
	if r.Details.YearOfProduction != "" {
		fmt.Printf("Year:         %s\n", r.Details.YearOfProduction)
	}
	if r.Notes != "" {
		fmt.Printf("Notes:        %s\n", r.Notes)
	}
}

func valueRange(ev analysis.EstimatedValue, to string) string {
	code, minV, maxV := ev.Currency, ev.Min, ev.Max
	if to != "" {
		cmin, err1 := currency.Convert(ev.Min, ev.Currency, to)
		cmax, err2 := currency.Convert(ev.Max, ev.Currency, to)
		if err1 == nil && err2 == nil {
			code, minV, maxV = to, cmin, cmax
		}
	}
	return currency.Format(minV, code) + " - " + currency.Format(maxV, code)
}
