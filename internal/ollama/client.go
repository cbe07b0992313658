// Package ollama talks to a local or remote Ollama server over its HTTP API.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tripagent/tripagent/internal/pkg/config"
)

var (
	// ErrCommunication is returned once every retry attempt has failed.
	ErrCommunication = errors.New("model communication failed")
	// ErrCanceled is returned when the caller cancels mid-call. Never retried.
	ErrCanceled = errors.New("chat canceled")
)

// Message is one role-tagged turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Message Message `json:"message"`
	Done    bool    `json:"done"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
}

func NewClient(cfg *config.OllamaConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.RetryBaseDelay,
	}
}

// Chat sends the conversation to the given model and returns the full reply
// text. Transient failures are retried with exponential backoff. When stream
// is true the incremental chunks are accumulated into one string before
// returning; partial output is never surfaced. A canceled context aborts
// immediately without retrying.
func (c *Client) Chat(ctx context.Context, model string, messages []Message, stream bool) (string, error) {
	body, err := json.Marshal(chatRequest{Model: model, Messages: messages, Stream: stream})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.baseDelay << (attempt - 1)
			slog.Warn("Chat attempt failed, retrying", "attempt", attempt, "backoff", backoff, "error", lastErr)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrCanceled, ctx.Err())
			}
		}

		content, err := c.doChat(ctx, body, stream)
		if err == nil {
			return content, nil
		}
		if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrCanceled, err)
		}
		lastErr = err
	}

	return "", fmt.Errorf("%w after %d attempts: %v", ErrCommunication, c.maxRetries, lastErr)
}

func (c *Client) doChat(ctx context.Context, body []byte, stream bool) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		preview := string(b)
		if len(preview) > 200 {
			preview = preview[:200]
		}
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, preview)
	}

	if stream {
		return accumulateStream(resp.Body)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return out.Message.Content, nil
}

// accumulateStream joins the NDJSON chunk lines of a streamed reply into the
// complete response text.
func accumulateStream(r io.Reader) (string, error) {
	var b strings.Builder

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var chunk chatResponse
		if err := json.Unmarshal(line, &chunk); err != nil {
			return "", fmt.Errorf("decode stream chunk: %w", err)
		}
		b.WriteString(chunk.Message.Content)
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read stream: %w", err)
	}

	return b.String(), nil
}
