package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/corey/carbot/internal/adapters/socket"
	"github.com/corey/carbot/internal/app"
	"github.com/corey/carbot/internal/config"
	"github.com/corey/carbot/internal/logging"
)

// Resolved in PersistentPreRunE for every subcommand.
var (
	cfg     *config.Config
	logger  = zap.NewNop()
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "carbot",
	Short: "carbot: ask questions about cars and movies",
	Long: "Answers plain-English questions by matching them against known phrase patterns.\n" +
		"Runs the interactive chat when called without a subcommand.",
	Args:              cobra.NoArgs,
	PersistentPreRunE: loadSettings,
	RunE:              runChat,
	SilenceUsage:      true,
}

// loadSettings resolves configuration and builds the logger.
func loadSettings(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	log, err := logging.New(c.LogLevel, c.LogFormat)
	if err != nil {
		return err
	}
	cfg = c
	logger = log
	if cfg.ConfigFile != "" {
		logger.Debug("config file", zap.String("path", cfg.ConfigFile))
	}
	return nil
}

// projectRoot returns the working directory; daemon sockets are scoped to it.
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}

// socketPath is the configured socket, or the one derived from the working
// directory and catalog.
func socketPath() string {
	if cfg.Socket != "" {
		return cfg.Socket
	}
	return socket.SocketPath(projectRoot(), cfg.Catalog)
}

// dbPath is the configured database, or the default under ~/.carbot.
func dbPath() string {
	return app.DefaultPaths().ResolveDB(cfg.DB)
}

// newApp builds an App for the configured catalog and dataset. sockPath and
// httpPort are only set for the daemon.
func newApp(sockPath string, httpPort int) (*app.App, error) {
	a, err := app.New(app.Config{
		Catalog:     cfg.Catalog,
		DatasetPath: cfg.Dataset,
		DBPath:      cfg.DB,
		SocketPath:  sockPath,
		HTTPPort:    httpPort,
		Logger:      logger,
	})
	if err != nil {
		if cfg.DB != "" && isDBLockError(err) {
			return nil, fmt.Errorf("%w\n%s", err, diagnoseDBLock(socketPath()))
		}
		return nil, err
	}
	return a, nil
}

// Execute runs the root command.
func Execute() error {
	defer func() { logger.Sync() }()
	return rootCmd.Execute()
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Suppress color output")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(datasetsCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(configCmd)
}
