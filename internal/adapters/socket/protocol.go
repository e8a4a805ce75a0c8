// Package socket implements a JSON-over-Unix-socket protocol for the carbot daemon.
// The protocol uses newline-delimited JSON: each message is one JSON object + \n.
package socket

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"

	"github.com/corey/carbot/internal/ports"
)

// SocketPath returns the Unix socket path for a working directory and catalog.
// Format: /tmp/carbot-{first12hex}.sock
func SocketPath(root, catalog string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	h := sha256.Sum256([]byte(abs + "\x00" + catalog))
	return fmt.Sprintf("/tmp/carbot-%x.sock", h[:6])
}

// Method names for the protocol.
const (
	MethodAsk      = "ask"
	MethodPatterns = "patterns"
	MethodHealth   = "health"
	MethodShutdown = "shutdown"
)

// Request is the wire format for client-to-server messages.
type Request struct {
	ID     string      `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
}

// Response is the wire format for server-to-client messages.
type Response struct {
	ID     string      `json:"id"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// AskParams is the params for an ask request. Tokens are already normalized.
type AskParams struct {
	Tokens []string `json:"tokens"`
}

// AskResult is the result of an ask request.
type AskResult struct {
	Reply   ports.Reply `json:"reply"`
	Elapsed string      `json:"elapsed"`
}

// PatternsResult is the result of a patterns request, in precedence order.
type PatternsResult struct {
	Catalog  string   `json:"catalog"`
	Patterns []string `json:"patterns"`
}

// HealthResult is the result of a health request.
type HealthResult struct {
	Status  string `json:"status"`
	Catalog string `json:"catalog"`
	Records int    `json:"records"`
	Rules   int    `json:"rules"`
	Uptime  string `json:"uptime"`
}
