// Package sender delivers metric samples to the Zabbix monitoring backend.
//
// Two transports exist behind one contract: an HTTP push to the log-relay
// API and an invocation of the external zabbix_sender utility. Neither
// retries; retry policy belongs to the caller.
package sender

import (
	"context"

	"github.com/callscope/callscope/internal/model"
)

// Sender delivers one metric sample. Implementations log every attempt and
// return an error for any delivery that cannot be confirmed.
type Sender interface {
	Send(ctx context.Context, sample model.MetricSample) error
}
