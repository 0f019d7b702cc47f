package cli

import (
	"fmt"

	"github.com/soyeahso/chatbasket/internal/config"
	"github.com/soyeahso/chatbasket/internal/topology"
	"github.com/spf13/cobra"
)

func newBasketsCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "baskets",
		Short: "List the baskets of each mode and their instance counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			modes := table.ModeNames()
			if mode != "" {
				if _, ok := table.Mode(mode); !ok {
					return &topology.ConfigMissingError{What: "mode", Mode: mode}
				}
				modes = []string{mode}
			}

			out := cmd.OutOrStdout()
			for _, m := range modes {
				mc, _ := table.Mode(m)
				for _, b := range mc.BasketNames() {
					count, err := topology.InstanceCount(table, m, b)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%-10s %-10s %d\n", m, b, count)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "only list baskets of this mode")
	return cmd
}
