package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/corey/carbot/internal/adapters/socket"
	"github.com/corey/carbot/internal/adapters/web"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the carbot daemon",
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon in the foreground",
	Long:  "Loads the dataset once and serves questions over a Unix socket until stopped.",
	Args:  cobra.NoArgs,
	RunE:  runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	Args:  cobra.NoArgs,
	RunE:  runDaemonStop,
}

var (
	daemonHTTPPort int
	daemonNoHTTP   bool
)

func init() {
	daemonStartCmd.Flags().IntVar(&daemonHTTPPort, "http-port", 0, "HTTP API port (default: derived from directory and catalog)")
	daemonStartCmd.Flags().BoolVar(&daemonNoHTTP, "no-http", false, "Serve the Unix socket only")
	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStopCmd)
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	sockPath := socketPath()
	out := cmd.OutOrStdout()

	client := socket.NewClient(sockPath)
	if client.Ping() {
		fmt.Fprintln(out, "daemon already running")
		return nil
	}

	httpPort := 0
	if !daemonNoHTTP {
		httpPort = daemonHTTPPort
		if httpPort == 0 {
			httpPort = web.DefaultPort(projectRoot(), cfg.Catalog)
		}
	}

	a, err := newApp(sockPath, httpPort)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if err := a.Start(); err != nil {
		a.Close()
		return err
	}

	fmt.Fprintf(out, "carbot daemon (%s, %d records) started at %s\n", a.Catalog(), a.RecordCount(), sockPath)
	if a.WebServer != nil {
		fmt.Fprintf(out, "http api at %s\n", a.WebServer.URL())
	}

	// Wait for an OS signal or a remote stop.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.Info("signal received", zap.String("signal", sig.String()))
	case <-a.Server.ShutdownCh():
		logger.Info("remote shutdown requested")
	}

	fmt.Fprintln(out, "shutting down...")
	return a.Stop()
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	client := socket.NewClient(socketPath())
	out := cmd.OutOrStdout()

	if !client.Ping() {
		fmt.Fprintln(out, "daemon is not running")
		return nil
	}
	if err := client.Shutdown(); err != nil {
		return err
	}
	fmt.Fprintln(out, "daemon stopped")
	return nil
}
