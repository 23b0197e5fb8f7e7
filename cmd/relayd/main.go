// Command relayd receives probe report text over HTTP, audits every
// accepted message, and relays the metric tokens it contains to a Zabbix
// server via zabbix_sender.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/callscope/callscope/internal/auditlog"
	"github.com/callscope/callscope/internal/config"
	"github.com/callscope/callscope/internal/httpserver"
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
		fmt.Printf("relayd - Remote Log Server\n")
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

	logger, err := logging.New(cfg.LogLevel, false)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	// Rotating audit file shared by all request handlers.
	auditWriter := &lumberjack.Logger{
		Filename:   cfg.AuditLog,
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
	}
	defer auditWriter.Close()
	audit := auditlog.New(auditWriter)

	sink := sender.NewZabbixSender(cfg.ZabbixServer, cfg.ZabbixPort, logger)

	srv := httpserver.NewServer(cfg.ListenAddr, cfg.ClientID, cfg.ZabbixHost, sink, audit, logger)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("starting HTTP server: %w", err)
	}

	logger.Info("relayd started",
		zap.String("listen_addr", cfg.ListenAddr),
		zap.String("client_id", cfg.ClientID),
		zap.String("zabbix_target", cfg.ZabbixHost),
		zap.String("zabbix_server", cfg.ZabbixServer),
		zap.Int("zabbix_port", cfg.ZabbixPort))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return srv.Stop()
	})

	return g.Wait()
}
