package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/spf13/cobra"
	"github.com/vouch-news/vouch-contract/rpc/vouch"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List settlements waiting for the decision",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := contractHash()
		if err != nil {
			return err
		}

		c, err := dial(cmd.Context(), GetConfig().RPC)
		if err != nil {
			return err
		}
		defer c.Close()

		list, err := vouch.NewReader(invoker.New(c, nil), h).PendingSettlements()
		if err != nil {
			return fmt.Errorf("read pending settlements: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ITEM\tRECEIVER\tAMOUNT (GAS)\tDEADLINE")
		for _, s := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				s.ItemID,
				address.Uint160ToString(s.Receiver),
				fixedn.ToString(s.Amount, 8),
				time.UnixMilli(s.Deadline.Int64()).UTC().Format(time.RFC3339))
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(pendingCmd)
}
