package cli

import (
	"fmt"

	"github.com/soyeahso/chatbasket/internal/config"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config table for missing or inconsistent entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			issues := config.Validate(table)
			if len(issues) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", cfgPath)
				return nil
			}

			for _, issue := range issues {
				log.Error().Str("path", issue.Path).Msg(issue.Message)
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", issue)
			}
			return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
		},
	}
}
