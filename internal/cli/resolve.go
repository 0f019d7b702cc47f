package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/soyeahso/chatbasket/internal/config"
	"github.com/soyeahso/chatbasket/internal/logging"
	"github.com/soyeahso/chatbasket/internal/topology"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newResolveCmd() *cobra.Command {
	var (
		mode     string
		basket   string
		instance int
		format   string
	)

	cmd := &cobra.Command{
		Use:   "resolve [mode=M basket=B instance=N loglevel=L]",
		Short: "Resolve this process's basket instance and endpoints",
		Long: "Resolve looks up the mode, basket and 1-based instance in the config table " +
			"and prints the endpoints this process must use. The key=value form used by " +
			"older launch scripts is accepted in place of flags.",
		RunE: func(cmd *cobra.Command, args []string) error {
			legacy, err := parseLegacyArgs(args)
			if err != nil {
				return err
			}

			// --log-level, then loglevel=, then CHAT_LOG_LEVEL, then the default.
			p := topology.Params{Mode: mode, Basket: basket, Instance: instance, LogLevel: logLevel}
			if err := applyLegacyArgs(&p, legacy, cmd.Flags().Changed("instance")); err != nil {
				return err
			}
			if p.LogLevel == "" {
				p.LogLevel = env.LogLevel
			}
			if p.LogLevel == "" {
				p.LogLevel = topology.DefaultLogLevel
			}
			if !logging.ValidLevel(p.LogLevel) {
				return fmt.Errorf("unknown log level %q", p.LogLevel)
			}
			p.LogLevel = strings.ToLower(p.LogLevel)
			log = logging.New(logOutput, p.LogLevel)

			table, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			log.Info().Str("path", cfgPath).Msg("loaded config")

			id, err := topology.Resolve(table, p)
			if err != nil {
				log.Error().Err(err).
					Str("mode", p.Mode).
					Str("basket", p.Basket).
					Int("instance", p.Instance).
					Msg("could not resolve identity")
				return fmt.Errorf("resolving identity: %w", err)
			}

			log.Sub("topology").
				WithStr("run_id", uuid.NewString()).
				With("identity", id).
				Info().Msg("identity resolved")

			return printIdentity(cmd.OutOrStdout(), id, format)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "config block to use (prod, dev, preview, verify)")
	cmd.Flags().StringVar(&basket, "basket", "", "basket (server pool) to run in")
	cmd.Flags().IntVar(&instance, "instance", 0, "1-based instance number within the basket")
	cmd.Flags().StringVar(&format, "format", "text", "output format (text, yaml)")

	return cmd
}

// parseLegacyArgs reads key=value arguments.
func parseLegacyArgs(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("argument %q is not in key=value form", arg)
		}
		out[strings.ToLower(k)] = v
	}
	return out, nil
}

// applyLegacyArgs fills fields of p not already set by flags.
func applyLegacyArgs(p *topology.Params, legacy map[string]string, instanceFromFlag bool) error {
	for k, v := range legacy {
		switch k {
		case "mode":
			if p.Mode == "" {
				p.Mode = v
			}
		case "basket":
			if p.Basket == "" {
				p.Basket = v
			}
		case "instance":
			if instanceFromFlag {
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("instance %q is not a number", v)
			}
			p.Instance = n
		case "loglevel":
			if p.LogLevel == "" {
				p.LogLevel = v
			}
		default:
			return fmt.Errorf("unknown argument %q", k)
		}
	}
	return nil
}

func printIdentity(w io.Writer, id *topology.Identity, format string) error {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(id)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "text", "":
		fmt.Fprintf(w, "Mode:      %s\n", id.Mode)
		fmt.Fprintf(w, "Basket:    %s\n", id.Basket)
		fmt.Fprintf(w, "Instance:  %d of %d\n", id.Instance, id.InstanceCount)
		fmt.Fprintf(w, "Chat:      %s (public host %s)\n", id.Chat, id.ChatHost)
		fmt.Fprintf(w, "API:       %s\n", id.API)
		fmt.Fprintf(w, "Store:     %s\n", id.Store)
		fmt.Fprintf(w, "Policy:    port %d\n", id.PolicyPort)
		fmt.Fprintf(w, "App:       %s (%s)\n", id.AppServerHost, id.SiteBridgeScript)
		fmt.Fprintf(w, "Proxy:     %s\n", id.ProxyServer)
		fmt.Fprintf(w, "Backlog:   %d (show %d on connect)\n", id.BacklogSize, id.ConnectPreviewSize)
		fmt.Fprintf(w, "Log level: %s\n", id.LogLevel)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
