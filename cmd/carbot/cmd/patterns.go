package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/carbot/internal/adapters/socket"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the pattern table in precedence order",
	Args:  cobra.NoArgs,
	RunE:  runPatterns,
}

func runPatterns(cmd *cobra.Command, args []string) error {
	client := socket.NewClient(socketPath())
	if client.Ping() {
		result, err := client.Patterns()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatPatterns(result.Catalog, result.Patterns, useColor()))
		return nil
	}

	a, err := newApp("", 0)
	if err != nil {
		return err
	}
	defer a.Close()
	fmt.Fprint(cmd.OutOrStdout(), formatPatterns(a.Catalog(), a.Patterns(), useColor()))
	return nil
}
