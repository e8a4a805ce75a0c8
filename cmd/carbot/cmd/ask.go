package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/corey/carbot/internal/adapters/socket"
	"github.com/corey/carbot/internal/domain/query"
	"github.com/corey/carbot/internal/ports"
	"github.com/corey/carbot/internal/repl"
)

var (
	askExplain bool
	askLocal   bool
)

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Answer a single question",
	Long:  "Answers one question. Uses the daemon when it is running, otherwise loads the dataset locally.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askExplain, "explain", false, "Show the matched pattern and captures")
	askCmd.Flags().BoolVar(&askLocal, "local", false, "Skip the daemon and answer in-process")
}

func runAsk(cmd *cobra.Command, args []string) error {
	tokens := query.Tokenize(strings.Join(args, " "))

	answerer, closeFn, err := resolveAnswerer()
	if err != nil {
		return err
	}
	defer closeFn()

	reply, err := answerer.Answer(tokens)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if askExplain {
		fmt.Fprint(out, formatExplain(reply, useColor()))
	}
	if reply.Terminate {
		fmt.Fprintln(out, repl.Farewell)
		return nil
	}
	for _, ans := range reply.Answers {
		fmt.Fprintln(out, ans)
	}
	return nil
}

// resolveAnswerer prefers a running daemon and falls back to a local App.
func resolveAnswerer() (ports.Answerer, func(), error) {
	if !askLocal {
		sockPath := socketPath()
		client := socket.NewClient(sockPath)
		if client.Ping() {
			logger.Debug("answering via daemon", zap.String("socket", sockPath))
			return client, func() {}, nil
		}
	}
	a, err := newApp("", 0)
	if err != nil {
		return nil, nil, err
	}
	return a, func() { a.Close() }, nil
}
