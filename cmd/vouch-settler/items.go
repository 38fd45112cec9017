package main

import (
	"fmt"
	"math/big"
	"text/tabwriter"

	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/spf13/cobra"
	"github.com/vouch-news/vouch-contract/rpc/vouch"
)

var itemsTop int

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List news items with their stakes",
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

		r := vouch.NewReader(invoker.New(c, nil), h)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTAKE (GAS)\tSTATE\tTITLE")
		printItem := func(item *vouch.VouchNewsItem) error {
			_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				item.ID, fixedn.ToString(item.TotalStaked, 8), stateString(item.State), item.Title)
			return err
		}

		if itemsTop > 0 {
			items, err := r.TopByStake(big.NewInt(int64(itemsTop)))
			if err != nil {
				return fmt.Errorf("read top items: %w", err)
			}
			for _, item := range items {
				if err = printItem(item); err != nil {
					return err
				}
			}
		} else if err = r.TraverseItems(printItem); err != nil {
			return err
		}

		return w.Flush()
	},
}

func stateString(s *big.Int) string {
	switch {
	case s.Cmp(vouch.ItemStateActive) == 0:
		return "active"
	case s.Cmp(vouch.ItemStatePendingSettlement) == 0:
		return "pending settlement"
	case s.Cmp(vouch.ItemStateSettled) == 0:
		return "settled"
	default:
		return "unknown (" + s.String() + ")"
	}
}

func init() {
	itemsCmd.Flags().IntVar(&itemsTop, "top", 0, "show only N items with the highest stake")
	rootCmd.AddCommand(itemsCmd)
}
