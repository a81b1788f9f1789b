package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shelfscan/internal/config"
	"shelfscan/internal/services"
)

const userAgent = "shelfscan/0.1.0"

// Event names a notifiable milestone.
type Event string

const (
	EventSaveSucceeded Event = "save_succeeded"
	EventSaveFailed    Event = "save_failed"
	EventTest          Event = "test"
)

// Payload carries event fields. Recognized keys are title, barcode, pageURL,
// error and kind.
type Payload map[string]string

// Service publishes events. Implementations must be safe for concurrent use.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds an ntfy-backed service, or a noop when no topic is set.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		enabled: map[Event]bool{
			EventSaveSucceeded: cfg.Notifications.SaveSuccess,
			EventSaveFailed:    cfg.Notifications.SaveFailure,
			EventTest:          true,
		},
	}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	enabled  map[Event]bool
}

func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	if !n.enabled[event] {
		return nil
	}
	msg, ok := render(event, payload)
	if !ok {
		return nil
	}
	return n.send(ctx, msg)
}

func render(event Event, payload Payload) (message, bool) {
	get := func(key string) string { return strings.TrimSpace(payload[key]) }
	switch event {
	case EventSaveSucceeded:
		body := fmt.Sprintf("📚 Saved to Notion: %s", get("title"))
		if url := get("pageURL"); url != "" {
			body += "\n" + url
		}
		return message{
			title: "shelfscan - Saved",
			body:  body,
			tags:  []string{"shelfscan", "save", "completed"},
		}, true
	case EventSaveFailed:
		var b strings.Builder
		b.WriteString("❌ Save failed")
		if title := get("title"); title != "" {
			b.WriteString(" for ")
			b.WriteString(title)
		}
		b.WriteString(": ")
		if errText := get("error"); errText != "" {
			b.WriteString(errText)
		} else {
			b.WriteString("unknown")
		}
		tags := []string{"shelfscan", "error"}
		if kind := get("kind"); kind != "" {
			tags = append(tags, kind)
		}
		return message{
			title:    "shelfscan - Save Failed",
			body:     b.String(),
			tags:     tags,
			priority: "high",
		}, true
	case EventTest:
		return message{
			title:    "shelfscan - Test",
			body:     "🧪 Notification system test",
			tags:     []string{"shelfscan", "test"},
			priority: "low",
		}, true
	}
	return message{}, false
}

func (n *ntfyService) send(ctx context.Context, msg message) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if msg.title != "" {
		req.Header.Set("Title", msg.title)
	}
	if len(msg.tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.tags, ","))
	}
	if msg.priority != "" && msg.priority != "default" {
		req.Header.Set("Priority", msg.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return services.Wrap(services.TransportMarker(err), "notifications", "send", "ntfy request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
