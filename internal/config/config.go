// Package config loads runtime configuration for the callscope binaries.
package config

import (
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/callscope/callscope/internal/model"
)

const (
	defaultCDRFile        = "/var/lib/3cxpbx/Instance1/Data/Logs/CDRLogs/cdr.log"
	defaultCheckpointFile = "/var/log/app/cdr_checkpoint.txt"
	defaultAuditLogDir    = "/var/log/app"
	defaultBindHost       = "0.0.0.0"
	defaultLogLevel       = "info"
)

// Config is the immutable runtime configuration shared by cdrtail and
// relayd. It is constructed once at process entry and passed explicitly into
// component constructors.
type Config struct {
	ClientID       string `mapstructure:"client-id"`
	ZabbixHost     string `mapstructure:"zabbix-host"`
	LogAPIURL      string `mapstructure:"log-api-url"`
	CDRFile        string `mapstructure:"cdr-file"`
	CheckpointFile string `mapstructure:"checkpoint-file"`
	ZabbixServer   string `mapstructure:"zabbix-server"`
	ZabbixPort     int    `mapstructure:"zabbix-port"`
	ListenAddr     string `mapstructure:"listen-addr"`
	ListenPort     int    `mapstructure:"listen-port"`
	AuditLog       string `mapstructure:"audit-log"`
	LogLevel       string `mapstructure:"log-level"`
}

// Load reads configuration from the environment (CALLSCOPE_* variables) and
// an optional YAML file. Environment variables win over file values; both
// win over defaults.
func Load(configPath string) (Config, error) {
	var cfg Config

	v := viper.New()
	v.SetEnvPrefix("CALLSCOPE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("client-id", model.DefaultClientID)
	v.SetDefault("zabbix-host", model.DefaultZabbixHost)
	v.SetDefault("log-api-url", model.DefaultLogAPIURL)
	v.SetDefault("cdr-file", defaultCDRFile)
	v.SetDefault("checkpoint-file", defaultCheckpointFile)
	v.SetDefault("zabbix-server", model.DefaultZabbixAddr)
	v.SetDefault("zabbix-port", model.DefaultZabbixPort)
	v.SetDefault("listen-addr", "")
	v.SetDefault("listen-port", model.DefaultListenPort)
	v.SetDefault("audit-log", "")
	v.SetDefault("log-level", defaultLogLevel)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = net.JoinHostPort(defaultBindHost, strconv.Itoa(cfg.ListenPort))
	}
	if cfg.AuditLog == "" {
		cfg.AuditLog = filepath.Join(defaultAuditLogDir, cfg.ClientID+"_remote_logs.log")
	}

	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.ClientID) == "" {
		return errors.New("client-id must not be empty")
	}
	if strings.TrimSpace(c.ZabbixHost) == "" {
		return errors.New("zabbix-host must not be empty")
	}
	if c.ZabbixPort <= 0 || c.ZabbixPort > 65535 {
		return fmt.Errorf("invalid zabbix-port: %d", c.ZabbixPort)
	}
	if c.ListenPort <= 0 || c.ListenPort > 65535 {
		return fmt.Errorf("invalid listen-port: %d", c.ListenPort)
	}
	return nil
}
