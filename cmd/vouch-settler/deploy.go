package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/spf13/cobra"
	"github.com/vouch-news/vouch-contract/deploy"
)

var (
	deployNEF         string
	deployManifest    string
	deployAdmin       string
	deploySettler     string
	deployPayoutCount int64
	deployTimeout     time.Duration
	deployInitEpoch   bool
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the Vouch contract signed by the wallet account",
	Long: `Deploys compiled Vouch contract unless it is already deployed by the wallet account,
and optionally initializes the settlement epoch. Admin and settler default to the wallet account.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		log, err := newLogger(cfg.Logger.Level)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctr, err := readContract(deployNEF, deployManifest)
		if err != nil {
			return err
		}

		acc, err := loadAccount(cfg.Wallet)
		if err != nil {
			return err
		}

		admin, err := accountOrDefault(deployAdmin, acc.ScriptHash())
		if err != nil {
			return fmt.Errorf("invalid admin: %w", err)
		}
		settlerAcc, err := accountOrDefault(deploySettler, acc.ScriptHash())
		if err != nil {
			return fmt.Errorf("invalid settler: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		c, err := dial(ctx, cfg.RPC)
		if err != nil {
			return err
		}
		defer c.Close()

		addr, err := deploy.Deploy(ctx, deploy.Prm{
			Logger:            log,
			Blockchain:        c,
			LocalAccount:      acc,
			Contract:          ctr,
			Admin:             admin,
			Settler:           settlerAcc,
			PayoutCount:       deployPayoutCount,
			SettlementTimeout: deployTimeout.Milliseconds(),
			InitializeEpoch:   deployInitEpoch,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), addr.StringLE())

		return nil
	},
}

func readContract(nefPath, manifestPath string) (deploy.CommonDeployPrm, error) {
	var res deploy.CommonDeployPrm

	data, err := os.ReadFile(nefPath)
	if err != nil {
		return res, fmt.Errorf("read NEF file: %w", err)
	}
	res.NEF, err = nef.FileFromBytes(data)
	if err != nil {
		return res, fmt.Errorf("decode NEF file: %w", err)
	}

	data, err = os.ReadFile(manifestPath)
	if err != nil {
		return res, fmt.Errorf("read manifest file: %w", err)
	}
	if err = json.Unmarshal(data, &res.Manifest); err != nil {
		return res, fmt.Errorf("decode manifest file: %w", err)
	}

	return res, nil
}

func accountOrDefault(addr string, def util.Uint160) (util.Uint160, error) {
	if addr == "" {
		return def, nil
	}
	return address.StringToUint160(addr)
}

func init() {
	deployCmd.Flags().StringVar(&deployNEF, "nef", "contracts/vouch/contract.nef", "compiled contract file")
	deployCmd.Flags().StringVar(&deployManifest, "manifest", "contracts/vouch/manifest.json", "contract manifest file")
	deployCmd.Flags().StringVar(&deployAdmin, "admin", "", "address of the contract administrator")
	deployCmd.Flags().StringVar(&deploySettler, "settler", "", "address of the settlement processor")
	deployCmd.Flags().Int64Var(&deployPayoutCount, "payout-count", 0, "number of items paid out per epoch (contract default if zero)")
	deployCmd.Flags().DurationVar(&deployTimeout, "settlement-timeout", 0, "time given to resolve settlements (contract default if zero)")
	deployCmd.Flags().BoolVar(&deployInitEpoch, "init-epoch", false, "initialize settlement epoch, admin must be the wallet account")

	rootCmd.AddCommand(deployCmd)
}
