package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/carbot/internal/adapters/socket"
	"github.com/corey/carbot/internal/app"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the effective configuration, dataset source, socket path and daemon status. No daemon required.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	color := useColor()
	sockPath := socketPath()

	client := socket.NewClient(sockPath)
	daemonStatus := paint(color, colorYellow, "✗ not running")
	httpURL := ""
	if health, err := client.Health(); err == nil {
		daemonStatus = paint(color, colorGreen, fmt.Sprintf("✓ running (%s, %d records, up %s)",
			health.Catalog, health.Records, health.Uptime))
		if port, err := os.ReadFile(app.HTTPPortFile(sockPath)); err == nil {
			httpURL = fmt.Sprintf("http://localhost:%s", strings.TrimSpace(string(port)))
		}
	}

	dataset := "bundled"
	switch {
	case cfg.DB != "":
		dataset = "db " + cfg.DB
	case cfg.Dataset != "":
		dataset = "file " + cfg.Dataset
	}
	configFile := cfg.ConfigFile
	if configFile == "" {
		configFile = "(none)"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, paint(color, colorBold, "carbot config"))
	fmt.Fprintf(out, "  Catalog:    %s (available: %s)\n", cfg.Catalog, strings.Join(app.Catalogs(), ", "))
	fmt.Fprintf(out, "  Dataset:    %s\n", dataset)
	fmt.Fprintf(out, "  Import DB:  %s\n", dbPath())
	fmt.Fprintf(out, "  Config:     %s\n", configFile)
	fmt.Fprintf(out, "  Log:        %s (%s)\n", cfg.LogLevel, cfg.LogFormat)
	fmt.Fprintf(out, "  Socket:     %s\n", sockPath)
	fmt.Fprintf(out, "  Daemon:     %s\n", daemonStatus)
	if httpURL != "" {
		fmt.Fprintf(out, "  HTTP:       %s\n", httpURL)
	}
	return nil
}
