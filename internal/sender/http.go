package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/callscope/callscope/internal/model"
)

// DefaultHTTPTimeout bounds one push to the log-relay API.
const DefaultHTTPTimeout = 10 * time.Second

// logPushBody is the wire shape expected by the relay's /log endpoint.
type logPushBody struct {
	Value      string `json:"value"`
	LogTime    string `json:"logtime"`
	ClientID   string `json:"client_id"`
	ZabbixHost string `json:"zabbix_host"`
	ItemKey    string `json:"item_key"`
}

// HTTPSender pushes samples to the log-relay API over HTTP.
type HTTPSender struct {
	baseURL  string
	clientID string
	client   *http.Client
	logger   *zap.Logger
}

// NewHTTPSender creates a sender that POSTs to baseURL + "/log".
func NewHTTPSender(baseURL, clientID string, logger *zap.Logger) *HTTPSender {
	return &HTTPSender{
		baseURL:  baseURL,
		clientID: clientID,
		client:   &http.Client{Timeout: DefaultHTTPTimeout},
		logger:   logger,
	}
}

// Send delivers one sample. Any network-level error or non-2xx status is a
// failure; the sample is not retried here.
func (s *HTTPSender) Send(ctx context.Context, sample model.MetricSample) error {
	ts := sample.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	body := logPushBody{
		Value:      sample.Value,
		LogTime:    ts.Format(time.RFC3339),
		ClientID:   s.clientID,
		ZabbixHost: sample.Host,
		ItemKey:    sample.ItemKey,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("sender: marshal push body: %w", err)
	}

	url := s.baseURL + "/log"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("sender: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("log API push failed",
			zap.String("item_key", sample.ItemKey),
			zap.String("value", sample.Value),
			zap.String("url", url),
			zap.Error(err))
		return fmt.Errorf("sender: post %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Error("log API rejected push",
			zap.String("item_key", sample.ItemKey),
			zap.String("value", sample.Value),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("sender: post %s: unexpected status %d", url, resp.StatusCode)
	}

	s.logger.Info("sent metric to log API",
		zap.String("item_key", sample.ItemKey),
		zap.String("value", sample.Value),
		zap.String("zabbix_host", sample.Host))
	return nil
}
