// Package bot is the Telegram front-end: users send watch photos and get an
// analysis report back in their chosen language and currency.
package bot

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/raine/watch-appraiser/internal/analysis"
	"github.com/raine/watch-appraiser/internal/currency"
	"github.com/raine/watch-appraiser/internal/storage"
	"github.com/rs/zerolog/log"
)

const historyLimit = 5

// BotAPI defines the interface for Telegram bot API operations.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Analyzer runs the analysis pipeline for an image reference.
type Analyzer interface {
	Analyze(ctx context.Context, src, language string) (*analysis.Result, error)
}

// Bot is the main Telegram bot handler.
type Bot struct {
	tg         BotAPI
	state      BotState
	analyzer   Analyzer
	store      storage.AnalysisStore
	downloader *ImageDownloader
	defaults   Settings
}

type Option func(*Bot)

// WithDownloader replaces the photo downloader.
func WithDownloader(d *ImageDownloader) Option {
	return func(b *Bot) { b.downloader = d }
}

// WithDefaults sets the settings new chats start with.
func WithDefaults(s Settings) Option {
	return func(b *Bot) { b.defaults = s }
}

// NewBot creates a new Bot instance.
func NewBot(tg BotAPI, analyzer Analyzer, store storage.AnalysisStore, opts ...Option) *Bot {
	b := &Bot{
		tg:         tg,
		analyzer:   analyzer,
		store:      store,
		downloader: NewImageDownloader(""),
		defaults:   Settings{Language: analysis.English.Code, Currency: analysis.DefaultCurrency},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.state = b.NewBotState()
	return b
}

// HandleUpdate dispatches an update to the chat's worker and returns without
// waiting for it to be processed.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	b.dispatchUpdate(ctx, update, false)
}

// handleUpdateSync is like HandleUpdate but waits for processing to complete.
func (b *Bot) handleUpdateSync(ctx context.Context, update tgbotapi.Update) {
	b.dispatchUpdate(ctx, update, true)
}

func (b *Bot) dispatchUpdate(ctx context.Context, update tgbotapi.Update, wait bool) {
	if update.Message == nil || update.Message.Chat == nil {
		return
	}

	session := b.state.getSession(update.Message.Chat.ID)
	msg := SessionMessage{Ctx: ctx, Message: update.Message}
	if wait {
		session.SendSync(msg)
	} else {
		session.Send(msg)
	}
}

// HandleSessionMessage implements MessageHandler. It runs on the chat's
// worker goroutine.
func (b *Bot) HandleSessionMessage(ctx context.Context, session *ChatSession, msg SessionMessage) {
	message := msg.Message
	if message == nil {
		return
	}
	log.Info().
		Int64("chatId", session.chatID).
		Str("text", message.Text).
		Int("photos", len(message.Photo)).
		Msg("got message")

	switch {
	case len(message.Photo) > 0:
		b.handlePhoto(ctx, session, message, largestPhoto(message.Photo).FileID)
	case message.Document != nil:
		if !strings.HasPrefix(message.Document.MimeType, "image/") {
			session.reply(printerFor(session.settings.Language).Sprintf(MsgUnsupportedFile))
			return
		}
		b.handlePhoto(ctx, session, message, message.Document.FileID)
	case message.IsCommand() || strings.HasPrefix(message.Text, "/"):
		b.handleCommand(session, message.Text)
	default:
		session.reply(printerFor(session.settings.Language).Sprintf(MsgSendPhoto))
	}
}

func largestPhoto(sizes []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := sizes[0]
	for _, s := range sizes[1:] {
		if s.Width*s.Height > best.Width*best.Height {
			best = s
		}
	}
	return best
}

func (b *Bot) handlePhoto(ctx context.Context, session *ChatSession, message *tgbotapi.Message, fileID string) {
	p := printerFor(session.settings.Language)

	typingCtx, stopTyping := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		session.startTypingLoop(typingCtx)
	}()
	defer func() {
		stopTyping()
		wg.Wait()
	}()

	session.reply(p.Sprintf(MsgAnalyzing))

	path, err := b.downloader.DownloadFile(ctx, b.tg.GetFileDirectURL, fileID)
	if err != nil {
		log.Error().Err(err).Int64("chatId", session.chatID).Msg("failed to download photo")
		session.replyTo(message.MessageID, p.Sprintf(MsgDownloadFailed))
		return
	}
	defer os.Remove(path)

	result, err := b.analyzer.Analyze(ctx, path, session.settings.Language)
	if err != nil {
		log.Error().
			Err(err).
			Int64("chatId", session.chatID).
			Stringer("kind", analysis.KindOf(err)).
			Msg("analysis failed")
		session.replyTo(message.MessageID, errorMessage(p, err))
		return
	}

	if _, err := b.store.SaveAnalysis(session.owner(), session.settings.Language, result); err != nil {
		log.Error().Err(err).Int64("chatId", session.chatID).Msg("failed to save analysis")
	}

	session.replyTo(message.MessageID, formatReport(result, session.settings))
}

func (b *Bot) handleCommand(session *ChatSession, text string) {
	p := printerFor(session.settings.Language)
	command, args := parseCommand(text)

	switch command {
	case "/start", "/help":
		session.reply(p.Sprintf(MsgWelcome))
	case "/lang":
		if len(args) == 0 {
			session.reply(p.Sprintf(MsgLanguageUsage, languageCodes()))
			return
		}
		lang := analysis.ResolveLanguage(args[0])
		session.settings.Language = lang.Code
		session.reply(printerFor(lang.Code).Sprintf(MsgLanguageSet, lang.Name))
	case "/currency":
		if len(args) == 0 {
			session.reply(p.Sprintf(MsgCurrencyUsage, strings.Join(currency.Codes(), ", ")))
			return
		}
		code, err := currency.Normalize(args[0])
		if err != nil {
			session.reply(p.Sprintf(MsgCurrencyUsage, strings.Join(currency.Codes(), ", ")))
			return
		}
		session.settings.Currency = code
		session.reply(p.Sprintf(MsgCurrencySet, code))
	case "/history":
		b.handleHistory(session)
	default:
		session.reply(p.Sprintf(MsgUnknownCommand))
	}
}

func (b *Bot) handleHistory(session *ChatSession) {
	p := printerFor(session.settings.Language)
	owner := session.owner()

	records, err := b.store.ListAnalyses(owner, historyLimit)
	if err != nil {
		log.Error().Err(err).Int64("chatId", session.chatID).Msg("failed to list analyses")
		session.reply(p.Sprintf(MsgHistoryFailed))
		return
	}
	if len(records) == 0 {
		session.reply(p.Sprintf(MsgHistoryEmpty))
		return
	}

	total, err := b.store.CountAnalyses(owner)
	if err != nil {
		log.Warn().Err(err).Int64("chatId", session.chatID).Msg("failed to count analyses")
		total = len(records)
	}

	var sb strings.Builder
	sb.WriteString(p.Sprintf(MsgHistoryHeader, total))
	sb.WriteString("\n")
	for i, rec := range records {
		fmt.Fprintf(&sb, "\n%d. *%s* (%.0f%%)\n   %s · %s",
			i+1,
			escapeMarkdown(watchName(rec.Result, p)),
			rec.Result.Confidence,
			valueRange(rec.Result.EstimatedValue, session.settings),
			rec.CreatedAt.Format("2006-01-02"),
		)
	}
	session.reply(sb.String())
}

func languageCodes() string {
	codes := make([]string, len(analysis.SupportedLanguages))
	for i, l := range analysis.SupportedLanguages {
		codes[i] = l.Code
	}
	return strings.Join(codes, ", ")
}

// Run processes updates until ctx is canceled or the channel closes.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	var wg sync.WaitGroup
	defer b.state.Shutdown()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("waiting for active handlers to finish")
			wg.Wait()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				log.Warn().Msg("updates channel closed")
				wg.Wait()
				return nil
			}
			wg.Add(1)
			go func(u tgbotapi.Update) {
				defer wg.Done()
				b.HandleUpdate(ctx, u)
			}(update)
		}
	}
}
