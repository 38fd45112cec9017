// Package config describes configuration of the settlement daemon.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/vouch-news/vouch-contract/settler"
)

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

// RPCConfig holds Neo RPC connection settings.
type RPCConfig struct {
	Endpoint       string        `mapstructure:"endpoint"` // WebSocket endpoint, e.g. ws://localhost:30333/ws
	DialTimeout    time.Duration `mapstructure:"dial_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// WalletConfig points to the settler account.
type WalletConfig struct {
	Path     string `mapstructure:"path"`
	Address  string `mapstructure:"address"` // default wallet account if empty
	Password string `mapstructure:"password"`
}

// SettlerConfig controls settlement processing.
type SettlerConfig struct {
	ReconcileInterval time.Duration `mapstructure:"reconcile_interval"`
	RetryAfter        time.Duration `mapstructure:"retry_after"`
	AutoRelease       bool          `mapstructure:"auto_release"`
	MinPayout         string        `mapstructure:"min_payout"` // GAS, e.g. "0.5"
	BlockedReceivers  []string      `mapstructure:"blocked_receivers"`
}

// Config is the top-level configuration structure.
type Config struct {
	Logger   LoggerConfig  `mapstructure:"logger"`
	RPC      RPCConfig     `mapstructure:"rpc"`
	Contract string        `mapstructure:"contract"` // script hash (LE) or address
	Wallet   WalletConfig  `mapstructure:"wallet"`
	Settler  SettlerConfig `mapstructure:"settler"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.RPC.Endpoint == "" {
		c.RPC.Endpoint = "ws://localhost:30333/ws"
	}
	if c.RPC.DialTimeout == 0 {
		c.RPC.DialTimeout = 15 * time.Second
	}
	if c.RPC.RequestTimeout == 0 {
		c.RPC.RequestTimeout = 15 * time.Second
	}
	if c.Settler.ReconcileInterval == 0 {
		c.Settler.ReconcileInterval = time.Minute
	}
	if c.Settler.RetryAfter == 0 {
		c.Settler.RetryAfter = 5 * time.Minute
	}
}

// ContractHash parses the Vouch contract reference.
func (c Config) ContractHash() (util.Uint160, error) {
	s := strings.TrimSpace(c.Contract)
	if s == "" {
		return util.Uint160{}, errors.New("missing contract hash")
	}

	if h, err := util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x")); err == nil {
		return h, nil
	}

	h, err := address.StringToUint160(s)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("invalid contract reference %q: neither hash nor address", s)
	}

	return h, nil
}

// Policy builds payout policy from the settler configuration.
func (c Config) Policy() (settler.Policy, error) {
	var p settler.Policy

	if c.Settler.MinPayout != "" {
		v, err := fixedn.FromString(c.Settler.MinPayout, 8)
		if err != nil {
			return p, fmt.Errorf("invalid min payout: %w", err)
		}
		p.MinPayout = v
	}

	for _, s := range c.Settler.BlockedReceivers {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		h, err := address.StringToUint160(s)
		if err != nil {
			return p, fmt.Errorf("invalid blocked receiver %q: %w", s, err)
		}
		p.BlockedReceivers = append(p.BlockedReceivers, h)
	}

	return p, nil
}
