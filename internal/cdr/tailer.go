package cdr

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/callscope/callscope/internal/checkpoint"
	"github.com/callscope/callscope/internal/model"
	"github.com/callscope/callscope/internal/sender"
)

// Tailer performs one checkpointed pass over the CDR log file. It is meant
// to be invoked periodically by an external scheduler; there is no internal
// loop. The checkpoint file is the only state carried between runs and is
// not lock-protected: run one instance at a time.
type Tailer struct {
	path        string
	zabbixHost  string
	checkpoints *checkpoint.Store
	sink        sender.Sender
	logger      *zap.Logger
}

// NewTailer creates a tailer over the CDR file at path. Samples are pushed
// to sink attributed to zabbixHost.
func NewTailer(path, zabbixHost string, checkpoints *checkpoint.Store, sink sender.Sender, logger *zap.Logger) *Tailer {
	return &Tailer{
		path:        path,
		zabbixHost:  zabbixHost,
		checkpoints: checkpoints,
		sink:        sink,
		logger:      logger,
	}
}

// Run reads everything appended to the CDR file since the last checkpoint,
// averages the MOS of matching records, and pushes the result as a single
// mos.actual sample.
//
// The checkpoint is saved after any clean read pass, whether or not the push
// succeeds and whether or not any records were found: a sink outage costs
// that window's aggregate but never causes historical data to be re-read.
// Conversely, any open/seek/read error aborts before the checkpoint write so
// the same byte range is retried on the next invocation.
func (t *Tailer) Run(ctx context.Context) error {
	offset, ok := t.checkpoints.Load()
	if !ok {
		t.logger.Warn("checkpoint missing or invalid, starting from the beginning",
			zap.String("checkpoint_file", t.checkpoints.Path()))
	}

	f, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("cdr: open log file %s: %w", t.path, err)
	}
	defer f.Close()

	if info, statErr := f.Stat(); statErr == nil && offset > info.Size() {
		// Likely rotation or truncation. The seek below still succeeds and
		// reads nothing; flagged for operators rather than auto-reset.
		t.logger.Warn("checkpoint is beyond end of file",
			zap.Int64("offset", offset),
			zap.Int64("file_size", info.Size()))
	}

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("cdr: seek to offset %d: %w", offset, err)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("cdr: read from offset %d: %w", offset, err)
	}
	newOffset := offset + int64(len(data))

	var scores []float64
	for _, line := range strings.Split(string(data), "\n") {
		rec, ok := ParseLine(line)
		if !ok {
			continue
		}
		// Zero is a placeholder for calls without quality data.
		if rec.MOS > 0 {
			scores = append(scores, rec.MOS)
		}
	}

	if len(scores) > 0 {
		var sum float64
		for _, v := range scores {
			sum += v
		}
		average := sum / float64(len(scores))
		t.logger.Info("found new CDR records",
			zap.Int("records", len(scores)),
			zap.Float64("average_mos", average))

		sample := model.MetricSample{
			ItemKey: model.ItemKeyMOSActual,
			Value:   fmt.Sprintf("%.2f", average),
			Host:    t.zabbixHost,
		}
		if err := t.sink.Send(ctx, sample); err != nil {
			// Logged, not returned: the checkpoint still advances and this
			// window's aggregate is dropped rather than double-counted later.
			t.logger.Error("push failed, metric window lost", zap.Error(err))
		}
	} else {
		t.logger.Info("no new CDR records since last run")
	}

	if err := t.checkpoints.Save(newOffset); err != nil {
		return fmt.Errorf("cdr: save checkpoint: %w", err)
	}
	return nil
}
