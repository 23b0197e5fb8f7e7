// Command cdrtail performs one checkpointed pass over the 3CX CDR log file
// and pushes the averaged MOS of new records to the log-relay API. It is
// meant to be run periodically by cron or a systemd timer; the checkpoint
// file carries progress between invocations.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/callscope/callscope/internal/cdr"
	"github.com/callscope/callscope/internal/checkpoint"
	"github.com/callscope/callscope/internal/config"
	"github.com/callscope/callscope/internal/logging"
	"github.com/callscope/callscope/internal/sender"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	var configPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (environment variables win over file values)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("cdrtail - CDR MOS Trapper\n")
		fmt.Printf("  Version: %s\n", version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Built:   %s\n", buildTime)
		return
	}

	if err := run(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, true)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	store, err := checkpoint.NewStore(cfg.CheckpointFile)
	if err != nil {
		return err
	}

	sink := sender.NewHTTPSender(cfg.LogAPIURL, cfg.ClientID, logger)
	tailer := cdr.NewTailer(cfg.CDRFile, cfg.ZabbixHost, store, sink, logger)

	logger.Info("starting CDR tail pass",
		zap.String("cdr_file", cfg.CDRFile),
		zap.String("checkpoint_file", cfg.CheckpointFile))

	return tailer.Run(context.Background())
}
