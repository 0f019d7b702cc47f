package cli

import (
	"io"

	"github.com/soyeahso/chatbasket/internal/config"
	"github.com/soyeahso/chatbasket/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string

	// loaded at init time
	cfgPath string
	env     config.Env
	log     *logging.Logger

	// logOutput is nil outside tests, which selects console output on stderr.
	logOutput io.Writer
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chatbasket",
		Short: "chatbasket — chat server topology and key namespace",
		Long: "chatbasket resolves which basket instance a chat server process runs as, " +
			"and prints the shared-store keys the chat servers agree on.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			env, err = config.LoadEnv()
			if err != nil {
				return err
			}
			cfgPath = env.ConfigPath()
			if cfgFile != "" {
				cfgPath = cfgFile
			}
			level := logLevel
			if level == "" {
				level = env.LogLevel
			}
			if level == "" {
				level = "info"
			}
			log = logging.New(logOutput, level)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $WIKIA_CONFIG_ROOT/ChatConfig.json)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, critical, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newResolveCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newBasketsCmd())
	cmd.AddCommand(newKeysCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
