// carbot answers questions about a small dataset by matching them against
// phrase patterns. Single binary: chat, one-shot ask, or a socket daemon.
package main

import (
	"os"

	"github.com/corey/carbot/cmd/carbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
