package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/raine/watch-appraiser/internal/analysis"
	"github.com/raine/watch-appraiser/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const chatID = int64(1)

type botApiMock struct {
	mock.Mock
}

func (m *botApiMock) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return args.Get(0).(tgbotapi.Message), args.Error(1)
}

func (m *botApiMock) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	args := m.Called(c)
	return args.Get(0).(*tgbotapi.APIResponse), args.Error(1)
}

func (m *botApiMock) GetFileDirectURL(fileID string) (string, error) {
	args := m.Called(fileID)
	return args.Get(0).(string), args.Error(1)
}

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) Analyze(ctx context.Context, src, language string) (*analysis.Result, error) {
	args := m.Called(ctx, src, language)
	result, _ := args.Get(0).(*analysis.Result)
	return result, args.Error(1)
}

func setup(t *testing.T) (*botApiMock, *mockAnalyzer, *storage.SQLiteStore, *Bot) {
	t.Helper()
	store, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	tg := new(botApiMock)
	tg.On("Request", mock.Anything).Return(&tgbotapi.APIResponse{Ok: true}, nil).Maybe()
	analyzer := new(mockAnalyzer)

	b := NewBot(tg, analyzer, store, WithDownloader(NewImageDownloader(t.TempDir())))
	t.Cleanup(b.state.Shutdown)
	return tg, analyzer, store, b
}

func makeMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	return msg
}

func makeReply(chatID int64, replyTo int, text string) tgbotapi.MessageConfig {
	msg := makeMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	return msg
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 10,
			From:      &tgbotapi.User{ID: chatID},
			Chat:      &tgbotapi.Chat{ID: chatID},
			Text:      text,
		},
	}
}

func photoUpdate(messageID int) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: messageID,
			From:      &tgbotapi.User{ID: chatID},
			Chat:      &tgbotapi.Chat{ID: chatID},
			Photo: []tgbotapi.PhotoSize{
				{FileID: "small", Width: 90, Height: 120},
				{FileID: "big", Width: 960, Height: 1280},
				{FileID: "medium", Width: 320, Height: 426},
			},
		},
	}
}

// sentMessages returns the messages passed to Send, in order.
func sentMessages(tg *botApiMock) []tgbotapi.MessageConfig {
	var out []tgbotapi.MessageConfig
	for _, call := range tg.Calls {
		if call.Method != "Send" {
			continue
		}
		if msg, ok := call.Arguments.Get(0).(tgbotapi.MessageConfig); ok {
			out = append(out, msg)
		}
	}
	return out
}

func submariner() *analysis.Result {
	return &analysis.Result{
		Brand:           "Rolex",
		Model:           "Submariner Date",
		ReferenceNumber: "126610LN",
		EstimatedValue:  analysis.EstimatedValue{Min: 10000, Max: 15000, Currency: "USD"},
		Authenticity: analysis.Authenticity{
			IsAuthentic:            true,
			Confidence:             80,
			Reasoning:              "Cyclops magnification and rehaut engraving look correct",
			RedFlags:               []string{},
			AuthenticityIndicators: []string{"Crisp dial printing"},
		},
		Details: analysis.Details{
			Material:        "Oystersteel",
			Movement:        "Calibre 3235",
			NotableFeatures: []string{"Ceramic bezel"},
		},
		Confidence: 85,
	}
}

func TestHandleUpdate_Start(t *testing.T) {
	tg, _, _, b := setup(t)
	tg.On("Send", makeMessage(chatID, MsgWelcome)).Return(tgbotapi.Message{}, nil).Once()

	b.handleUpdateSync(context.Background(), textUpdate("/start"))
	tg.AssertExpectations(t)
}

func TestHandleUpdate_HelpWithBotMention(t *testing.T) {
	tg, _, _, b := setup(t)
	tg.On("Send", makeMessage(chatID, MsgWelcome)).Return(tgbotapi.Message{}, nil).Once()

	b.handleUpdateSync(context.Background(), textUpdate("/help@watch_appraiser_bot"))
	tg.AssertExpectations(t)
}

func TestHandleUpdate_PlainTextAsksForPhoto(t *testing.T) {
	tg, _, _, b := setup(t)
	tg.On("Send", makeMessage(chatID, MsgSendPhoto)).Return(tgbotapi.Message{}, nil).Once()

	b.handleUpdateSync(context.Background(), textUpdate("hello"))
	tg.AssertExpectations(t)
}

func TestHandleUpdate_UnknownCommand(t *testing.T) {
	tg, _, _, b := setup(t)
	tg.On("Send", makeMessage(chatID, MsgUnknownCommand)).Return(tgbotapi.Message{}, nil).Once()

	b.handleUpdateSync(context.Background(), textUpdate("/sell"))
	tg.AssertExpectations(t)
}

func TestHandleUpdate_IgnoresUpdatesWithoutMessage(t *testing.T) {
	tg, _, _, b := setup(t)

	b.handleUpdateSync(context.Background(), tgbotapi.Update{})
	tg.AssertNotCalled(t, "Send", mock.Anything)
}

func TestLangCommand(t *testing.T) {
	tg, _, _, b := setup(t)
	tg.On("Send", makeMessage(chatID, "Idioma configurado: *Spanish*.")).Return(tgbotapi.Message{}, nil).Once()
	tg.On("Send", makeMessage(chatID, "Envía una foto de un reloj.")).Return(tgbotapi.Message{}, nil).Once()

	b.handleUpdateSync(context.Background(), textUpdate("/lang es-MX"))
	b.handleUpdateSync(context.Background(), textUpdate("hola"))

	tg.AssertExpectations(t)
	assert.Equal(t, "es", b.state.getSession(chatID).Settings().Language)
}

func TestLangCommand_UnknownFallsBackToEnglish(t *testing.T) {
	tg, _, _, b := setup(t)
	tg.On("Send", makeMessage(chatID, "Language set to *English*.")).Return(tgbotapi.Message{}, nil).Once()

	b.handleUpdateSync(context.Background(), textUpdate("/lang xx"))
	tg.AssertExpectations(t)
}

func TestLangCommand_Usage(t *testing.T) {
	tg, _, _, b := setup(t)
	tg.On("Send", makeMessage(chatID, "Usage: `/lang <code>`\nSupported: en, es, fr, ar, zh")).
		Return(tgbotapi.Message{}, nil).Once()

	b.handleUpdateSync(context.Background(), textUpdate("/lang"))
	tg.AssertExpectations(t)
}

func TestCurrencyCommand(t *testing.T) {
	tg, _, _, b := setup(t)
	tg.On("Send", makeMessage(chatID, "Values will be shown in *EUR*.")).Return(tgbotapi.Message{}, nil).Once()

	b.handleUpdateSync(context.Background(), textUpdate("/currency eur"))

	tg.AssertExpectations(t)
	assert.Equal(t, "EUR", b.state.getSession(chatID).Settings().Currency)
}

func TestCurrencyCommand_Unknown(t *testing.T) {
	tg, _, _, b := setup(t)
	tg.On("Send", makeMessage(chatID, "Usage: `/currency <code>`\nSupported: USD, EUR, GBP, JPY, CHF, AUD, CAD, CNY, HKD")).
		Return(tgbotapi.Message{}, nil).Once()

	b.handleUpdateSync(context.Background(), textUpdate("/currency XYZ"))

	tg.AssertExpectations(t)
	assert.Equal(t, "USD", b.state.getSession(chatID).Settings().Currency)
}

func TestPhoto_Success(t *testing.T) {
	tg, analyzer, store, b := setup(t)
	getURL := fileServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/photos/big.jpg", r.URL.Path)
		w.Write([]byte("jpegdata"))
	})
	url, _ := getURL("big")
	tg.On("GetFileDirectURL", "big").Return(url, nil).Once()
	tg.On("Send", mock.Anything).Return(tgbotapi.Message{MessageID: 100}, nil)

	var analyzedPath string
	analyzer.On("Analyze", mock.Anything, mock.MatchedBy(func(src string) bool {
		data, err := os.ReadFile(src)
		return err == nil && string(data) == "jpegdata"
	}), "en").
		Run(func(args mock.Arguments) { analyzedPath = args.String(1) }).
		Return(submariner(), nil).Once()

	b.handleUpdateSync(context.Background(), photoUpdate(42))

	tg.AssertExpectations(t)
	analyzer.AssertExpectations(t)

	sent := sentMessages(tg)
	require.Len(t, sent, 2)
	assert.Equal(t, makeMessage(chatID, MsgAnalyzing), sent[0])
	assert.Equal(t, 42, sent[1].ReplyToMessageID)
	assert.Contains(t, sent[1].Text, "Rolex Submariner Date")
	assert.Contains(t, sent[1].Text, "$10,000 - $15,000")

	_, err := os.Stat(analyzedPath)
	assert.True(t, os.IsNotExist(err), "downloaded photo should be removed")

	records, err := store.ListAnalyses("tg:1", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "en", records[0].Language)
	assert.Equal(t, "Rolex", records[0].Result.Brand)
}

func TestPhoto_LongReportIsSplit(t *testing.T) {
	tg, analyzer, _, b := setup(t)
	getURL := fileServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpegdata"))
	})
	url, _ := getURL("big")
	tg.On("GetFileDirectURL", "big").Return(url, nil)
	tg.On("Send", mock.Anything).Return(tgbotapi.Message{MessageID: 100}, nil)

	result := submariner()
	for i := 0; i < 300; i++ {
		result.Authenticity.RedFlags = append(result.Authenticity.RedFlags,
			fmt.Sprintf("Red flag number %d with a long_description", i))
	}
	analyzer.On("Analyze", mock.Anything, mock.Anything, "en").Return(result, nil).Once()

	b.handleUpdateSync(context.Background(), photoUpdate(9))

	sent := sentMessages(tg)
	require.Greater(t, len(sent), 3)
	report := sent[1:]
	assert.Equal(t, 9, report[0].ReplyToMessageID)
	assert.Contains(t, report[0].Text, "Rolex Submariner Date")
	for _, msg := range report {
		assert.LessOrEqual(t, utf16Len(msg.Text), maxMessageLength)
		assert.NotEmpty(t, msg.Text)
	}
	var all strings.Builder
	for i, msg := range report {
		if i > 0 {
			assert.Zero(t, msg.ReplyToMessageID)
		}
		all.WriteString(msg.Text)
	}
	assert.Contains(t, all.String(), "Red flag number 0 ")
	assert.Contains(t, all.String(), "Red flag number 299 ")
}

func TestPhoto_AnalysisErrorIsLocalized(t *testing.T) {
	tg, analyzer, store, b := setup(t)
	getURL := fileServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpegdata"))
	})
	url, _ := getURL("big")
	tg.On("GetFileDirectURL", "big").Return(url, nil)
	tg.On("Send", mock.Anything).Return(tgbotapi.Message{}, nil)
	analyzer.On("Analyze", mock.Anything, mock.Anything, "es").
		Return(nil, analysis.Errorf(analysis.KindRateLimited, "quota exceeded")).Once()

	b.handleUpdateSync(context.Background(), textUpdate("/lang es"))
	b.handleUpdateSync(context.Background(), photoUpdate(7))

	sent := sentMessages(tg)
	require.NotEmpty(t, sent)
	assert.Equal(t,
		makeReply(chatID, 7, "El servicio está ocupado. Inténtalo de nuevo en unos momentos."),
		sent[len(sent)-1])

	n, err := store.CountAnalyses("tg:1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPhoto_DownloadFailure(t *testing.T) {
	tg, analyzer, _, b := setup(t)
	tg.On("GetFileDirectURL", "big").Return("", errors.New("file is too big")).Once()
	tg.On("Send", makeMessage(chatID, MsgAnalyzing)).Return(tgbotapi.Message{}, nil).Once()
	tg.On("Send", makeReply(chatID, 5, MsgDownloadFailed)).Return(tgbotapi.Message{}, nil).Once()

	b.handleUpdateSync(context.Background(), photoUpdate(5))

	tg.AssertExpectations(t)
	analyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocument_NonImageRejected(t *testing.T) {
	tg, analyzer, _, b := setup(t)
	tg.On("Send", makeMessage(chatID, MsgUnsupportedFile)).Return(tgbotapi.Message{}, nil).Once()

	update := textUpdate("")
	update.Message.Document = &tgbotapi.Document{FileID: "doc", MimeType: "application/pdf"}
	b.handleUpdateSync(context.Background(), update)

	tg.AssertExpectations(t)
	analyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything, mock.Anything)
}

func TestHistory_Empty(t *testing.T) {
	tg, _, _, b := setup(t)
	tg.On("Send", makeMessage(chatID, MsgHistoryEmpty)).Return(tgbotapi.Message{}, nil).Once()

	b.handleUpdateSync(context.Background(), textUpdate("/history"))
	tg.AssertExpectations(t)
}

func TestHistory_ListsOwnAnalyses(t *testing.T) {
	tg, _, store, b := setup(t)
	_, err := store.SaveAnalysis("tg:1", "en", submariner())
	require.NoError(t, err)
	_, err = store.SaveAnalysis("tg:2", "en", submariner())
	require.NoError(t, err)
	tg.On("Send", mock.Anything).Return(tgbotapi.Message{}, nil)

	b.handleUpdateSync(context.Background(), textUpdate("/currency EUR"))
	b.handleUpdateSync(context.Background(), textUpdate("/history"))

	sent := sentMessages(tg)
	require.Len(t, sent, 2)
	text := sent[1].Text
	assert.Contains(t, text, "*Recent analyses* (1 in total)")
	assert.Contains(t, text, "1. *Rolex Submariner Date* (85%)")
	assert.Contains(t, text, "€9,200 - €13,800")
	assert.NotContains(t, text, "2. ")
}

func TestLargestPhoto(t *testing.T) {
	assert.Equal(t, "big", largestPhoto(photoUpdate(1).Message.Photo).FileID)
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		cmd  string
		args []string
	}{
		{"/lang es", "/lang", []string{"es"}},
		{"/LANG@my_bot  fr ", "/lang", []string{"fr"}},
		{"/history", "/history", []string{}},
		{"", "", nil},
	}
	for _, tt := range tests {
		cmd, args := parseCommand(tt.in)
		assert.Equal(t, tt.cmd, cmd, tt.in)
		assert.Equal(t, tt.args, args, tt.in)
	}
}

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"fits", "short", 10, []string{"short"}},
		{"breaks on newline", "aaaa\nbbbb\ncccc", 10, []string{"aaaa\nbbbb", "cccc"}},
		{"long line", strings.Repeat("x", 25), 10, []string{strings.Repeat("x", 10), strings.Repeat("x", 10), strings.Repeat("x", 5)}},
		{"keeps escapes together", "xxxxxxxxx\\_yyy", 10, []string{"xxxxxxxxx", "\\_yyy"}},
		{"counts utf16 units", "😀😀😀", 4, []string{"😀😀", "😀"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitMessage(tt.text, tt.limit))
		})
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	_, _, _, b := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan tgbotapi.Update)

	done := make(chan error, 1)
	go func() { done <- b.Run(ctx, updates) }()
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestRun_ReturnsWhenUpdatesClose(t *testing.T) {
	_, _, _, b := setup(t)
	updates := make(chan tgbotapi.Update)
	close(updates)

	assert.NoError(t, b.Run(context.Background(), updates))
}
