package probe

import (
	"testing"
	"time"

	"github.com/callscope/callscope/internal/model"
)

func TestExtractPartialReport(t *testing.T) {
	t.Parallel()

	samples := Extract("probe-7 mos=4.1 loss=0.5", "Client-1-Log-API", time.Now())
	if len(samples) != 2 {
		t.Fatalf("samples = %d, want 2", len(samples))
	}
	if samples[0].ItemKey != model.ItemKeyMOSRating || samples[0].Value != "4.1" {
		t.Errorf("sample[0] = %s=%s, want mos.rating=4.1", samples[0].ItemKey, samples[0].Value)
	}
	if samples[1].ItemKey != model.ItemKeyLoss || samples[1].Value != "0.5" {
		t.Errorf("sample[1] = %s=%s, want voip.loss=0.5", samples[1].ItemKey, samples[1].Value)
	}
}

func TestExtractFullReport(t *testing.T) {
	t.Parallel()

	msg := "MOS=3.9 RTT=23.4 Jitter=1.2 Loss=0.1 from probe eu-west"
	samples := Extract(msg, "host", time.Now())
	if len(samples) != 4 {
		t.Fatalf("samples = %d, want 4", len(samples))
	}

	want := map[string]string{
		model.ItemKeyMOSRating: "3.9",
		model.ItemKeyLatency:   "23.4",
		model.ItemKeyJitter:    "1.2",
		model.ItemKeyLoss:      "0.1",
	}
	for _, s := range samples {
		if want[s.ItemKey] != s.Value {
			t.Errorf("%s = %q, want %q", s.ItemKey, s.Value, want[s.ItemKey])
		}
		if s.Host != "host" {
			t.Errorf("%s host = %q, want host", s.ItemKey, s.Host)
		}
	}
}

func TestExtractCaseInsensitive(t *testing.T) {
	t.Parallel()

	samples := Extract("MoS=4.0", "host", time.Now())
	if len(samples) != 1 || samples[0].ItemKey != model.ItemKeyMOSRating {
		t.Fatalf("samples = %v, want single mos.rating", samples)
	}
}

func TestExtractNoTokens(t *testing.T) {
	t.Parallel()

	if samples := Extract("nothing to see here", "host", time.Now()); len(samples) != 0 {
		t.Fatalf("samples = %d, want 0", len(samples))
	}
}

func TestExtractIntegerValues(t *testing.T) {
	t.Parallel()

	samples := Extract("rtt=25", "host", time.Now())
	if len(samples) != 1 || samples[0].Value != "25" {
		t.Fatalf("samples = %v, want single voip.latency=25", samples)
	}
}

func TestMetricKeysOrder(t *testing.T) {
	t.Parallel()

	keys := MetricKeys()
	want := []string{
		model.ItemKeyMOSRating,
		model.ItemKeyLatency,
		model.ItemKeyJitter,
		model.ItemKeyLoss,
	}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}
