package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/spf13/cobra"
	"github.com/vouch-news/vouch-contract/rpc/vouch"
	"github.com/vouch-news/vouch-contract/settler"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process settlement requests of the Vouch contract",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		log, err := newLogger(cfg.Logger.Level)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		h, err := contractHash()
		if err != nil {
			return err
		}

		policy, err := cfg.Policy()
		if err != nil {
			return err
		}

		acc, err := loadAccount(cfg.Wallet)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c, err := dial(ctx, cfg.RPC)
		if err != nil {
			return err
		}
		defer c.Close()

		act, err := actor.NewSimple(c, acc)
		if err != nil {
			return fmt.Errorf("init actor: %w", err)
		}

		contract := vouch.New(act, h)

		settlerAcc, err := contract.Settler()
		if err != nil {
			return fmt.Errorf("read contract settler: %w", err)
		}
		if !settlerAcc.Equals(acc.ScriptHash()) {
			log.Warn("local account is not the contract settler, decisions will be rejected",
				zap.String("local", acc.Address),
				zap.Stringer("settler", settlerAcc))
		}

		ch := make(chan *state.ContainedNotificationEvent, 64)
		subID, err := c.ReceiveExecutionNotifications(&neorpc.NotificationFilter{Contract: &h}, ch)
		if err != nil {
			return fmt.Errorf("subscribe to contract notifications: %w", err)
		}
		defer func() { _ = c.Unsubscribe(subID) }()

		proc := settler.New(settler.Prm{
			Logger:            log,
			Ledger:            contract,
			Policy:            policy,
			ReconcileInterval: cfg.Settler.ReconcileInterval,
			RetryAfter:        cfg.Settler.RetryAfter,
			AutoRelease:       cfg.Settler.AutoRelease,
		})

		log.Info("settlement processor started",
			zap.Stringer("contract", h),
			zap.String("account", acc.Address),
			zap.Bool("auto release", cfg.Settler.AutoRelease))

		return proc.Run(ctx, ch)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
