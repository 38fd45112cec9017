package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vouch-news/vouch-contract/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile string
	appCfg  config.Config
)

// rootCmd is the base command called without any subcommands.
var rootCmd = &cobra.Command{
	Use:          "vouch-settler",
	Short:        "Settlement processor of the Vouch contract",
	Long:         "Confirms or reverts payouts requested by the Vouch contract and inspects its state.",
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
}

func initConfig() {
	v := viper.GetViper()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/vouch-settler")
	}

	v.SetEnvPrefix("VOUCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			fmt.Fprintf(os.Stderr, "error reading config: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "error parsing config: %v\n", err)
		os.Exit(1)
	}

	appCfg.FillDefaults()
}

// GetConfig exposes the loaded configuration to subcommands.
func GetConfig() config.Config {
	return appCfg
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(lvl)
	c.Encoding = "console"
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return c.Build()
}

// dial opens WebSocket connection to the Neo RPC server. Connection is
// initialized, so it can be used by actors right away.
func dial(ctx context.Context, cfg config.RPCConfig) (*rpcclient.WSClient, error) {
	c, err := rpcclient.NewWS(ctx, cfg.Endpoint, rpcclient.WSOptions{
		Options: rpcclient.Options{
			DialTimeout:    cfg.DialTimeout,
			RequestTimeout: cfg.RequestTimeout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	if err = c.Init(); err != nil {
		c.Close()
		return nil, fmt.Errorf("RPC client init: %w", err)
	}

	return c, nil
}

// loadAccount opens the wallet and decrypts the settler account.
func loadAccount(cfg config.WalletConfig) (*wallet.Account, error) {
	if cfg.Path == "" {
		return nil, errors.New("missing wallet path")
	}

	w, err := wallet.NewWalletFromFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}
	defer w.Close()

	var acc *wallet.Account
	if cfg.Address == "" {
		acc = w.GetAccount(w.GetChangeAddress())
	} else {
		h, err := address.StringToUint160(cfg.Address)
		if err != nil {
			return nil, fmt.Errorf("invalid wallet address: %w", err)
		}
		acc = w.GetAccount(h)
	}
	if acc == nil {
		return nil, errors.New("account not found in the wallet")
	}

	if err = acc.Decrypt(cfg.Password, w.Scrypt); err != nil {
		return nil, fmt.Errorf("decrypt account %s: %w", acc.Address, err)
	}

	return acc, nil
}

func contractHash() (util.Uint160, error) {
	return GetConfig().ContractHash()
}
