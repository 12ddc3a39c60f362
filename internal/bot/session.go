package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// SessionMessage is a unit of work for a chat's worker.
type SessionMessage struct {
	Ctx     context.Context
	Done    chan struct{} // Closed when processing is complete (for synchronous dispatch)
	Message *tgbotapi.Message
}

// MessageHandler processes messages taken from a chat's inbox.
type MessageHandler interface {
	HandleSessionMessage(ctx context.Context, session *ChatSession, msg SessionMessage)
}

// MessageSender abstracts the ability to send Telegram messages.
type MessageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Settings are the per-chat preferences. They live in memory only.
type Settings struct {
	Language string
	Currency string
}

// ChatSession serializes the work of one chat. Only the worker goroutine
// touches settings, so they need no locking.
type ChatSession struct {
	chatID   int64
	sender   MessageSender
	settings Settings
	handler  MessageHandler

	inbox  chan SessionMessage
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newChatSession(chatID int64, sender MessageSender, settings Settings) *ChatSession {
	ctx, cancel := context.WithCancel(context.Background())
	return &ChatSession{
		chatID:   chatID,
		sender:   sender,
		settings: settings,
		inbox:    make(chan SessionMessage, 10),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// ChatID returns the Telegram chat this session belongs to.
func (s *ChatSession) ChatID() int64 {
	return s.chatID
}

// Settings returns the chat's current preferences.
func (s *ChatSession) Settings() Settings {
	return s.settings
}

func (s *ChatSession) owner() string {
	return fmt.Sprintf("tg:%d", s.chatID)
}

// escapeMarkdown escapes special characters for Telegram Markdown V1
func escapeMarkdown(text string) string {
	text = strings.ReplaceAll(text, "*", "\\*")
	text = strings.ReplaceAll(text, "_", "\\_")
	text = strings.ReplaceAll(text, "`", "\\`")
	text = strings.ReplaceAll(text, "[", "\\[")
	return text
}

// sendTypingAction shows the "typing" indicator. Telegram expires it after
// about five seconds.
func (s *ChatSession) sendTypingAction() {
	action := tgbotapi.NewChatAction(s.chatID, tgbotapi.ChatTyping)
	// sendChatAction returns a boolean, not a Message
	if _, err := s.sender.Request(action); err != nil {
		log.Debug().Err(err).Int64("chatId", s.chatID).Msg("failed to send typing action")
	}
}

// startTypingLoop keeps the typing indicator visible until ctx is done.
func (s *ChatSession) startTypingLoop(ctx context.Context) {
	s.sendTypingAction()

	ticker := time.NewTicker(4 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sendTypingAction()
		}
	}
}

// replyWithMessage sends msg, split into several messages when the text is
// over Telegram's length limit. Only the first part keeps the reply target.
// Returns the first sent message.
func (s *ChatSession) replyWithMessage(msg tgbotapi.MessageConfig) tgbotapi.Message {
	msg.ChatID = s.chatID

	var first tgbotapi.Message
	for i, part := range splitMessage(msg.Text, maxMessageLength) {
		m := msg
		m.Text = part
		if i > 0 {
			m.ReplyToMessageID = 0
		}
		sent, err := s.sender.Send(m)
		if err != nil {
			log.Error().
				Int64("chatId", s.chatID).
				Err(fmt.Errorf("failed to send reply message: %w", err)).Send()
			break
		}
		log.Debug().Int64("chatId", s.chatID).Int("messageId", sent.MessageID).Msg("sent message")
		if i == 0 {
			first = sent
		}
	}
	return first
}

func (s *ChatSession) reply(text string, a ...any) tgbotapi.Message {
	return s.replyWithMessage(tgbotapi.MessageConfig{
		Text:      formatReplyText(text, a...),
		ParseMode: tgbotapi.ModeMarkdown,
	})
}

// replyTo sends text as a reply to the given message.
func (s *ChatSession) replyTo(messageID int, text string) tgbotapi.Message {
	msg := tgbotapi.MessageConfig{
		Text:      text,
		ParseMode: tgbotapi.ModeMarkdown,
	}
	msg.ReplyToMessageID = messageID
	return s.replyWithMessage(msg)
}

// --- Worker methods ---

// StartWorker starts the session's worker goroutine. The handler must be set
// first.
func (s *ChatSession) StartWorker() {
	s.wg.Add(1)
	go s.runWorker()
}

func (s *ChatSession) SetHandler(handler MessageHandler) {
	s.handler = handler
}

func (s *ChatSession) runWorker() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			// Drain any remaining messages and signal completion
			for {
				select {
				case msg := <-s.inbox:
					if msg.Done != nil {
						close(msg.Done)
					}
				default:
					return
				}
			}
		case msg := <-s.inbox:
			s.processMessage(msg)
		}
	}
}

func (s *ChatSession) processMessage(msg SessionMessage) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Int64("chatId", s.chatID).
				Interface("panic", r).
				Msg("recovered from panic in session worker")
		}
		if msg.Done != nil {
			close(msg.Done)
		}
	}()

	if s.handler == nil {
		log.Error().Int64("chatId", s.chatID).Msg("session handler not set")
		return
	}

	ctx := msg.Ctx
	if ctx == nil {
		ctx = s.ctx
	}
	s.handler.HandleSessionMessage(ctx, s, msg)
}

// Send queues a message for the worker without waiting.
func (s *ChatSession) Send(msg SessionMessage) {
	if s.ctx.Err() != nil {
		if msg.Done != nil {
			close(msg.Done)
		}
		return
	}
	select {
	case s.inbox <- msg:
	case <-s.ctx.Done():
		if msg.Done != nil {
			close(msg.Done)
		}
	}
}

// SendSync queues a message and waits until the worker has processed it.
func (s *ChatSession) SendSync(msg SessionMessage) {
	msg.Done = make(chan struct{})
	s.Send(msg)
	<-msg.Done
}

// Stop stops the worker and waits for it to finish.
func (s *ChatSession) Stop() {
	s.cancel()
	s.wg.Wait()
}
