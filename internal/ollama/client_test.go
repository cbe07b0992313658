package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tripagent/tripagent/internal/pkg/config"
)

func testClient(baseURL string, maxRetries int) *Client {
	return NewClient(&config.OllamaConfig{
		BaseURL:        baseURL,
		MaxRetries:     maxRetries,
		RetryBaseDelay: time.Millisecond,
	})
}

func TestChatRetriesThenSucceeds(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"message":{"role":"assistant","content":"hello"},"done":true}`)
	}))
	defer srv.Close()

	got, err := testClient(srv.URL, 3).Chat(context.Background(), "llama3.1:latest", []Message{{Role: "user", Content: "hi"}}, false)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if got != "hello" {
		t.Errorf("Chat = %q, want %q", got, "hello")
	}
	if calls != 3 {
		t.Errorf("server saw %d calls, want 3", calls)
	}
}

func TestChatExhaustedRetries(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 3).Chat(context.Background(), "llama3.1:latest", nil, false)
	if !errors.Is(err, ErrCommunication) {
		t.Fatalf("Chat error = %v, want ErrCommunication", err)
	}
	if calls != 3 {
		t.Errorf("server saw %d calls, want 3", calls)
	}
}

func TestChatStreamAccumulation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chunks := []string{
			`{"message":{"role":"assistant","content":"Top "},"done":false}`,
			`{"message":{"role":"assistant","content":"3 "},"done":false}`,
			`{"message":{"role":"assistant","content":"events"},"done":true}`,
		}
		for _, c := range chunks {
			fmt.Fprintln(w, c)
		}
	}))
	defer srv.Close()

	got, err := testClient(srv.URL, 3).Chat(context.Background(), "llama3.1:latest", nil, true)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if got != "Top 3 events" {
		t.Errorf("Chat = %q, want %q", got, "Top 3 events")
	}
}

func TestChatCancellationDoesNotRetry(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := testClient(srv.URL, 3).Chat(ctx, "llama3.1:latest", nil, false)
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("Chat error = %v, want ErrCanceled", err)
	}
	if calls != 1 {
		t.Errorf("server saw %d calls after cancellation, want 1", calls)
	}
}

func TestAccumulateStreamSkipsBlankLines(t *testing.T) {
	input := "\n" + `{"message":{"content":"a"},"done":false}` + "\n\n" + `{"message":{"content":"b"},"done":true}` + "\n"
	got, err := accumulateStream(strings.NewReader(input))
	if err != nil {
		t.Fatalf("accumulateStream: %v", err)
	}
	if got != "ab" {
		t.Errorf("accumulateStream = %q, want %q", got, "ab")
	}
}
