package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/corey/carbot/internal/repl"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive query loop (default command)",
	Long:  "Reads one question per line and prints the answers. Type bye, press Ctrl-D or Ctrl-C to leave.",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	a, err := newApp("", 0)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := &repl.Loop{
		Answerer: a,
		Catalog:  a.Catalog(),
		In:       cmd.InOrStdin(),
		Out:      cmd.OutOrStdout(),
		Log:      logger,
	}
	return loop.Run(ctx)
}
