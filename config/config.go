// Package config loads the FIX session configuration recognised by the
// session (§6): fix_version, comp ids, credentials, heartbeat interval,
// sequence-reset behaviour, connect/reconnect timeouts. Grounded on the
// teacher's Config struct in fixclient/fixapp.go, generalized from
// Coinbase-specific auth fields to the session's own field set and loaded
// through viper instead of being constructed by hand in main().
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FixVersion is the negotiated BeginString.
type FixVersion string

const (
	FIX42 FixVersion = "FIX.4.2"
	FIX44 FixVersion = "FIX.4.4"
)

// FixSessionConfig mirrors the fields the session consults before and
// during connect().
type FixSessionConfig struct {
	FixVersion   FixVersion `mapstructure:"fix_version"`
	SenderCompID string     `mapstructure:"sender_comp_id"`
	TargetCompID string     `mapstructure:"target_comp_id"`

	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Account  string `mapstructure:"account"`

	HeartbeatIntervalSeconds int  `mapstructure:"heartbeat_interval_seconds"`
	ResetSeqNum              bool `mapstructure:"reset_seq_num"`

	ConnectTimeoutNs   int64 `mapstructure:"connect_timeout_ns"`
	ReconnectTimeoutNs int64 `mapstructure:"reconnect_timeout_ns"`
	ReconnectEnabled   bool  `mapstructure:"reconnect_enabled"`
	SendTestRequests   bool  `mapstructure:"send_test_requests"`

	Address string `mapstructure:"address"`
}

// HeartbeatInterval returns the configured interval as a time.Duration.
func (c *FixSessionConfig) HeartbeatInterval() time.Duration {
	return time.Duration(c.HeartbeatIntervalSeconds) * time.Second
}

// ConnectTimeout returns connect_timeout_ns as a time.Duration.
func (c *FixSessionConfig) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutNs)
}

// ReconnectTimeout returns reconnect_timeout_ns as a time.Duration.
func (c *FixSessionConfig) ReconnectTimeout() time.Duration {
	return time.Duration(c.ReconnectTimeoutNs)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("fix_version", string(FIX42))
	v.SetDefault("heartbeat_interval_seconds", 30)
	v.SetDefault("reset_seq_num", true)
	v.SetDefault("connect_timeout_ns", int64(5*time.Second))
	v.SetDefault("reconnect_timeout_ns", int64(5*time.Second))
	v.SetDefault("reconnect_enabled", false)
	v.SetDefault("send_test_requests", false)
}

// Load reads a FixSessionConfig from path (YAML/TOML/JSON, detected by
// viper from the file extension), overlaid with PRIMEFIX_-prefixed
// environment variables, and validates the fields connect() requires.
func Load(path string) (*FixSessionConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("PRIMEFIX")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	var cfg FixSessionConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields connect() requires before dialing.
func (c *FixSessionConfig) Validate() error {
	if c.FixVersion != FIX42 && c.FixVersion != FIX44 {
		return fmt.Errorf("config: fix_version must be FIX42 or FIX44, got %q", c.FixVersion)
	}
	if c.SenderCompID == "" {
		return fmt.Errorf("config: sender_comp_id is required")
	}
	if c.TargetCompID == "" {
		return fmt.Errorf("config: target_comp_id is required")
	}
	return nil
}
