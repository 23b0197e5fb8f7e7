package sender

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/callscope/callscope/internal/model"
)

// DefaultSendTimeout bounds one zabbix_sender invocation.
const DefaultSendTimeout = 5 * time.Second

// runCommand executes a sender process and returns its combined output.
// Swappable in tests so no real zabbix_sender binary is needed.
type runCommand func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// ZabbixSender delivers samples by invoking the zabbix_sender utility.
type ZabbixSender struct {
	server  string
	port    int
	command string
	timeout time.Duration
	run     runCommand
	logger  *zap.Logger
}

// NewZabbixSender creates a sender targeting the given Zabbix server.
func NewZabbixSender(server string, port int, logger *zap.Logger) *ZabbixSender {
	return &ZabbixSender{
		server:  server,
		port:    port,
		command: "zabbix_sender",
		timeout: DefaultSendTimeout,
		run:     execRunner,
		logger:  logger,
	}
}

// Send invokes zabbix_sender for one sample. Delivery is confirmed only when
// the process exits zero AND its summary reports the value as processed;
// either signal alone is not trusted. zabbix_sender can exit zero while the
// server rejects the value (for example on an unsupported item type), so the
// textual summary is inspected as well.
func (s *ZabbixSender) Send(ctx context.Context, sample model.MetricSample) error {
	args := []string{
		"-z", s.server,
		"-p", strconv.Itoa(s.port),
		"-s", sample.Host,
		"-k", sample.ItemKey,
		"-o", sample.Value,
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	output, err := s.run(ctx, s.command, args...)
	summary := strings.TrimSpace(string(output))

	if err != nil {
		s.logger.Error("zabbix_sender failed",
			zap.String("item_key", sample.ItemKey),
			zap.String("value", sample.Value),
			zap.String("output", summary),
			zap.Error(err))
		return fmt.Errorf("sender: zabbix_sender %s=%s: %w", sample.ItemKey, sample.Value, err)
	}

	if !processedOK(summary) {
		s.logger.Warn("zabbix_sender partial failure",
			zap.String("item_key", sample.ItemKey),
			zap.String("value", sample.Value),
			zap.String("output", summary))
		return fmt.Errorf("sender: zabbix_sender %s=%s: server did not accept value: %s",
			sample.ItemKey, sample.Value, summary)
	}

	s.logger.Info("sent metric to zabbix",
		zap.String("item_key", sample.ItemKey),
		zap.String("value", sample.Value),
		zap.String("zabbix_host", sample.Host))
	return nil
}

// processedOK reports whether a zabbix_sender summary line is success-shaped,
// e.g. "info from server: \"processed: 1; failed: 0; total: 1 ...\"".
func processedOK(summary string) bool {
	return strings.Contains(summary, "processed: 1") && strings.Contains(summary, "failed: 0")
}
