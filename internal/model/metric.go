package model

import "time"

// Zabbix trapper item keys used across the system. The keys must match the
// trapper item configuration on the Zabbix side.
const (
	// ItemKeyMOSActual carries the averaged MOS computed from CDR records.
	ItemKeyMOSActual = "mos.actual"

	// Keys extracted from probe report text.
	ItemKeyMOSRating = "mos.rating"
	ItemKeyLatency   = "voip.latency"
	ItemKeyJitter    = "voip.jitter"
	ItemKeyLoss      = "voip.loss"
)

// MetricSample is one observation bound for the monitoring backend.
// Value is kept as pre-formatted text because the trapper protocol is
// stringly typed on the wire.
type MetricSample struct {
	ItemKey   string
	Value     string
	Host      string
	Timestamp time.Time
}
