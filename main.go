package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/raine/watch-appraiser/config"
	"github.com/raine/watch-appraiser/internal/analysis"
	"github.com/raine/watch-appraiser/internal/api"
	"github.com/raine/watch-appraiser/internal/bot"
	"github.com/raine/watch-appraiser/internal/catalog"
	"github.com/raine/watch-appraiser/internal/imaging"
	"github.com/raine/watch-appraiser/internal/llm"
	"github.com/raine/watch-appraiser/internal/metrics"
	"github.com/raine/watch-appraiser/internal/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.LoadEnvFile()

	if missing := config.MissingRequired(); len(missing) > 0 {
		if isInteractiveTerminal() {
			if !runSetupWizard() {
				waitOnWindows()
				os.Exit(1)
			}
		} else {
			// Non-interactive (systemd, containers) - fail with clear error
			fatalWithWait("missing required config: %s", strings.Join(missing, ", "))
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fatalWithWait("%v", err)
	}

	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fatalWithWait("failed to open log file: %v", err)
		}
		defer logFile.Close()

		consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr}
		fileWriter := zerolog.ConsoleWriter{Out: logFile, NoColor: true}
		log.Logger = log.Output(io.MultiWriter(consoleWriter, fileWriter))
		log.Info().Str("logFile", cfg.LogFile).Msg("logging to file")
	}

	metrics.Register()

	// Create context that cancels on SIGINT or SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gemini, err := llm.NewGeminiAnalyzer(ctx, llm.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	})
	if err != nil {
		fatalWithWait("failed to initialize gemini analyzer: %v", err)
	}
	log.Info().Str("model", gemini.Model()).Msg("gemini analyzer initialized")

	store, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		fatalWithWait("failed to initialize analysis store: %v", err)
	}
	defer store.Close()
	log.Info().Str("dbPath", cfg.DBPath).Msg("analysis store initialized")

	var service analysis.Service = gemini
	if cfg.VisionCache {
		service = llm.NewCachedService(gemini, store, gemini.Model())
	}

	pipeline := analysis.NewPipeline(
		service,
		imaging.NewJPEGNormalizer(""),
		imaging.NewEncoder().WithPublicHostsOnly(),
		analysis.WithAttemptTimeout(cfg.AttemptTimeout),
	)

	g, ctx := errgroup.WithContext(ctx)

	server := api.NewServer(pipeline, store, catalog.Default)
	g.Go(func() error {
		return api.Run(ctx, cfg.HTTPAddr, server.Handler())
	})

	if cfg.BotToken != "" {
		g.Go(func() error {
			return runBot(ctx, cfg.BotToken, pipeline, store)
		})
	} else {
		log.Info().Msg("BOT_TOKEN not set, telegram bot disabled")
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("shutdown with error")
	} else {
		log.Info().Msg("shutdown complete")
	}
}

func runBot(ctx context.Context, token string, analyzer bot.Analyzer, store storage.AnalysisStore) error {
	tg, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return err
	}
	tg.Debug = false
	log.Info().Str("username", tg.Self.UserName).Msg("authorized on account")

	bot.RegisterCommands(tg)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := tg.GetUpdatesChan(updateConfig)

	go func() {
		<-ctx.Done()
		log.Info().Msg("stopping bot update loop")
		tg.StopReceivingUpdates()
	}()

	return bot.NewBot(tg, analyzer, store).Run(ctx, updates)
}
