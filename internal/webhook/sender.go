package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"sway-pr/internal/config"
)

// Sender pushes outreach payloads to the configured webhook endpoints.
type Sender struct {
	Config *config.Config
	client *http.Client
}

func NewSender(cfg *config.Config) *Sender {
	return &Sender{
		Config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts the payload to every configured URL and returns how many
// accepted it. A failing endpoint is logged and skipped; one bad consumer
// never blocks the rest.
func (s *Sender) Send(payload interface{}) (int, error) {
	if len(s.Config.WebhookURLs) == 0 {
		return 0, fmt.Errorf("no webhook URLs configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("could not serialize webhook payload: %w", err)
	}

	delivered := 0
	for _, url := range s.Config.WebhookURLs {
		if err := s.post(url, body); err != nil {
			log.Printf("Error sending payload to webhook %s: %v", url, err)
			continue
		}
		delivered++
	}
	return delivered, nil
}

func (s *Sender) post(url string, body []byte) error {
	resp, err := s.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}
