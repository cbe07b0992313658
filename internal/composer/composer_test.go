package composer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tripagent/tripagent/internal/ollama"
)

type stubChat struct {
	reply    string
	err      error
	messages []ollama.Message
	stream   bool
}

func (s *stubChat) Chat(ctx context.Context, model string, messages []ollama.Message, stream bool) (string, error) {
	s.messages = messages
	s.stream = stream
	return s.reply, s.err
}

func TestFillTemplate(t *testing.T) {
	out := FillTemplate("results: {content} / asked: {user_query}", "three events", "concerts in Lyon")
	if out != "results: three events / asked: concerts in Lyon" {
		t.Errorf("FillTemplate = %q", out)
	}
}

func TestComposeBuildsPrompt(t *testing.T) {
	chat := &stubChat{reply: "1. Event: Indie Night in Lyon"}
	c := New(chat, "llama3.2-vision:latest")

	got, err := c.Compose(context.Background(), "concerts in Lyon", "Event name: Indie Night\nDate: 2026-03-14")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got == "" || !strings.Contains(got, "Lyon") {
		t.Errorf("Compose = %q, want the model reply", got)
	}

	if len(chat.messages) != 2 {
		t.Fatalf("got %d messages, want system + user", len(chat.messages))
	}
	if chat.messages[0].Role != "system" || !strings.Contains(chat.messages[0].Content, "travel agent") {
		t.Errorf("system message = %+v", chat.messages[0])
	}
	user := chat.messages[1].Content
	if !strings.Contains(user, "Indie Night") || !strings.Contains(user, "concerts in Lyon") {
		t.Errorf("user message is missing results or query: %q", user)
	}
	if strings.Contains(user, "{content}") || strings.Contains(user, "{user_query}") {
		t.Errorf("template slots left unfilled: %q", user)
	}
	if !chat.stream {
		t.Error("composer should request a streamed reply")
	}
}

func TestComposeChatFailure(t *testing.T) {
	chat := &stubChat{err: ollama.ErrCommunication}
	c := New(chat, "llama3.2-vision:latest")

	_, err := c.Compose(context.Background(), "concerts in Lyon", "no events")
	if !errors.Is(err, ollama.ErrCommunication) {
		t.Fatalf("Compose error = %v, want wrapped ErrCommunication", err)
	}
}
