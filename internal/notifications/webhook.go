package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/niveshlabs/nivesh-backend/internal/httputil"
)

// Sender posts operational notices (startup, provider outages) to a
// Discord- or Slack-shaped webhook. A missing URL disables delivery but
// still logs the message locally.
type Sender struct {
	webhookURL string
	botName    string
	httpClient *http.Client
	retry      httputil.RetryConfig
	log        *logrus.Logger

	mu       sync.Mutex
	lastSent map[string]time.Time
}

func NewSender(webhookURL, botName string, log *logrus.Logger) *Sender {
	if botName == "" {
		botName = "NiveshMarkets"
	}
	return &Sender{
		webhookURL: webhookURL,
		botName:    botName,
		lastSent:   make(map[string]time.Time),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retry: httputil.RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   1 * time.Second,
			MaxDelay:    5 * time.Second,
		},
		log: log,
	}
}

func (s *Sender) Send(msg string) {
	formatted := fmt.Sprintf("[%s] %s", s.botName, msg)
	s.log.Info(formatted)

	if s.webhookURL == "" {
		return
	}

	payload := s.formatPayload(formatted)
	body, err := json.Marshal(payload)
	if err != nil {
		s.log.Errorf("webhook marshal: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := httputil.Do(ctx, s.httpClient, s.retry, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		s.log.Errorf("webhook delivery failed after retries: %v", err)
		return
	}
	resp.Body.Close()
}

// SendThrottled delivers msg for a topic at most once per interval. Repeat
// notices inside the window are logged locally but not delivered, so a
// sustained provider outage does not flood the channel.
func (s *Sender) SendThrottled(topic, msg string, interval time.Duration) {
	s.mu.Lock()
	if time.Since(s.lastSent[topic]) < interval {
		s.mu.Unlock()
		s.log.Debugf("webhook notice suppressed (%s): %s", topic, msg)
		return
	}
	s.lastSent[topic] = time.Now()
	s.mu.Unlock()

	s.Send(msg)
}

func (s *Sender) formatPayload(msg string) map[string]string {
	if strings.Contains(s.webhookURL, "discord") {
		return map[string]string{
			"content":  msg,
			"username": s.botName,
		}
	}
	return map[string]string{
		"text":     fmt.Sprintf("`%s`", msg),
		"username": s.botName,
	}
}

func (s *Sender) Enabled() bool {
	return s.webhookURL != ""
}
