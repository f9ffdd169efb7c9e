package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/beeper/profilehub/pkg/connector"
	"github.com/beeper/profilehub/pkg/profilego/debug"
)

// Information to find out exactly which commit the binary was built from.
// These are filled at build time with the -X linker flag.
var (
	Tag       = "unknown"
	Commit    = "unknown"
	BuildTime = "unknown"
)

const Version = "0.1.0"

var (
	configPath   string
	cookieHeader string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:           "profilehub",
	Short:         "Browse and edit social network profiles",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "profilehub %s (tag %s, commit %s, built %s)\n", Version, Tag, Commit, BuildTime)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the config file (default: built-in example config)")
	rootCmd.PersistentFlags().StringVar(&cookieHeader, "cookies", "", "Session cookies as a Cookie header, overrides the config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(viewCmd, serveCmd, whoamiCmd, versionCmd)
}

func loadConfig() (*connector.Config, error) {
	cfg, err := connector.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if cookieHeader != "" {
		cfg.Cookies = cookieHeader
	}
	if verbose {
		cfg.LogLevel = zerolog.DebugLevel.String()
	}
	return cfg, nil
}

// startConnector loads the config, builds the connector and resolves the
// session user. Logs go to logOut, or to stdout when it is nil.
func startConnector(ctx context.Context, logOut io.Writer) (*connector.ProfileConnector, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := debug.NewLogger()
	if logOut != nil {
		log = debug.NewLoggerTo(logOut)
	}
	log = log.Level(cfg.Level())

	pc, err := connector.NewProfileConnector(cfg, log)
	if err != nil {
		return nil, err
	}
	if err = pc.Start(ctx); err != nil {
		return nil, err
	}
	return pc, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
