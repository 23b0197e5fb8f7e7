// Package probe extracts metric samples from free-form probe report text.
package probe

import (
	"regexp"
	"time"

	"github.com/callscope/callscope/internal/model"
)

// metricPattern binds a trapper item key to the token that carries its value
// inside a report message.
type metricPattern struct {
	itemKey string
	pattern *regexp.Regexp
}

// metricPatterns is the fixed extraction table. Order matters only for
// deterministic delivery order; each pattern is searched independently and a
// report need not contain all of them.
var metricPatterns = []metricPattern{
	{model.ItemKeyMOSRating, regexp.MustCompile(`(?i)mos=(\d+\.?\d*)`)},
	{model.ItemKeyLatency, regexp.MustCompile(`(?i)rtt=(\d+\.?\d*)`)},
	{model.ItemKeyJitter, regexp.MustCompile(`(?i)jitter=(\d+\.?\d*)`)},
	{model.ItemKeyLoss, regexp.MustCompile(`(?i)loss=(\d+\.?\d*)`)},
}

// MetricKeys returns the item keys the extractor knows about, in delivery
// order.
func MetricKeys() []string {
	keys := make([]string, 0, len(metricPatterns))
	for _, mp := range metricPatterns {
		keys = append(keys, mp.itemKey)
	}
	return keys
}

// Extract returns one sample per known metric token found in message,
// attributed to host. Missing tokens are skipped silently.
func Extract(message, host string, now time.Time) []model.MetricSample {
	var samples []model.MetricSample
	for _, mp := range metricPatterns {
		m := mp.pattern.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		samples = append(samples, model.MetricSample{
			ItemKey:   mp.itemKey,
			Value:     m[1],
			Host:      host,
			Timestamp: now,
		})
	}
	return samples
}
