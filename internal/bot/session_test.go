package bot

import (
	"context"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

// recordingHandler logs message texts and can panic or block on demand.
type recordingHandler struct {
	mu      sync.Mutex
	log     []string
	blockCh chan struct{}
	waitCh  chan struct{}
}

func (h *recordingHandler) HandleSessionMessage(ctx context.Context, session *ChatSession, msg SessionMessage) {
	h.mu.Lock()
	h.log = append(h.log, msg.Message.Text)
	h.mu.Unlock()

	switch msg.Message.Text {
	case "PANIC":
		panic("simulated worker panic")
	case "BLOCK":
		close(h.waitCh)
		<-h.blockCh
	}
}

func (h *recordingHandler) getLog() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.log...)
}

func textMsg(text string) SessionMessage {
	return SessionMessage{Message: &tgbotapi.Message{Text: text}}
}

func newTestSession(handler MessageHandler) *ChatSession {
	s := newChatSession(123, new(botApiMock), Settings{Language: "en", Currency: "USD"})
	s.SetHandler(handler)
	s.StartWorker()
	return s
}

func TestWorker_SequentialProcessing(t *testing.T) {
	handler := &recordingHandler{}
	session := newTestSession(handler)
	defer session.Stop()

	for _, txt := range []string{"msg1", "msg2", "msg3"} {
		session.Send(textMsg(txt))
	}
	// barrier for the async messages above
	session.SendSync(textMsg("barrier"))

	assert.Equal(t, []string{"msg1", "msg2", "msg3", "barrier"}, handler.getLog())
}

func TestWorker_PanicRecovery(t *testing.T) {
	handler := &recordingHandler{}
	session := newTestSession(handler)
	defer session.Stop()

	session.SendSync(textMsg("PANIC"))
	session.SendSync(textMsg("recovery"))

	assert.Equal(t, []string{"PANIC", "recovery"}, handler.getLog())
}

func TestWorker_SendSyncWaitsForCompletion(t *testing.T) {
	handler := &recordingHandler{blockCh: make(chan struct{}), waitCh: make(chan struct{})}
	session := newTestSession(handler)
	defer session.Stop()

	sendDone := make(chan struct{})
	go func() {
		session.SendSync(textMsg("BLOCK"))
		close(sendDone)
	}()

	select {
	case <-handler.waitCh:
	case <-time.After(time.Second):
		t.Fatal("handler did not start")
	}

	select {
	case <-sendDone:
		t.Fatal("SendSync returned before handler completed")
	case <-time.After(50 * time.Millisecond):
	}

	close(handler.blockCh)

	select {
	case <-sendDone:
	case <-time.After(time.Second):
		t.Fatal("SendSync did not return after handler completed")
	}
}

func TestWorker_StopDrainsQueue(t *testing.T) {
	session := newChatSession(999, new(botApiMock), Settings{})
	session.SetHandler(&recordingHandler{})

	// queue before the worker runs so Stop has something to drain
	dones := make([]chan struct{}, 5)
	for i := range dones {
		dones[i] = make(chan struct{})
		session.inbox <- SessionMessage{Message: &tgbotapi.Message{Text: "pending"}, Done: dones[i]}
	}
	session.StartWorker()

	stopDone := make(chan struct{})
	go func() {
		session.Stop()
		close(stopDone)
	}()

	select {
	case <-stopDone:
	case <-time.After(time.Second):
		t.Fatal("Stop() timed out")
	}
	for _, done := range dones {
		select {
		case <-done:
		default:
			t.Fatal("queued message was not released")
		}
	}
}

func TestWorker_SendAfterStopReleasesCaller(t *testing.T) {
	session := newTestSession(&recordingHandler{})
	session.Stop()

	done := make(chan struct{})
	go func() {
		session.SendSync(textMsg("late"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SendSync blocked on a stopped session")
	}
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, "Ref \\*116500LN\\_ \\[x\\] \\`a\\`", escapeMarkdown("Ref *116500LN_ [x] `a`"))
}
