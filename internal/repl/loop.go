// Package repl runs the interactive query loop: read a line, normalize it,
// ask the answerer, print each answer, repeat until the user says bye, input
// ends or the context is cancelled.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/corey/carbot/internal/domain/query"
	"github.com/corey/carbot/internal/ports"
)

const (
	Prompt   = "Your query? "
	Farewell = "So long!"
)

// Loop is one interactive session.
type Loop struct {
	Answerer ports.Answerer
	Catalog  string
	In       io.Reader
	Out      io.Writer
	Log      *zap.Logger // nil = no logging
}

// Run drives the session until termination. A failing query prints an
// error line and the loop continues; only write errors end it early.
//
// Input is read on a separate goroutine so cancellation is observed while
// blocked on a read. That goroutine exits when In returns EOF; on
// cancellation In is closed if it is an io.Closer, which unblocks it.
func (l *Loop) Run(ctx context.Context) error {
	log := l.Log
	if log == nil {
		log = zap.NewNop()
	}

	if _, err := fmt.Fprintf(l.Out, "Welcome to the %s database!\n", l.Catalog); err != nil {
		return err
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(l.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		if _, err := fmt.Fprintf(l.Out, "\n%s", Prompt); err != nil {
			return err
		}

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			log.Debug("query loop interrupted")
			if c, ok := l.In.(io.Closer); ok {
				c.Close()
			}
			return l.farewell()
		case line, ok = <-lines:
		}
		if !ok {
			select {
			case err := <-readErr:
				if err != nil {
					log.Warn("read input", zap.Error(err))
				}
			default:
			}
			return l.farewell()
		}

		reply, err := l.Answerer.Answer(query.Tokenize(line))
		if err != nil {
			if _, werr := fmt.Fprintf(l.Out, "error: %v\n", err); werr != nil {
				return werr
			}
			continue
		}
		if reply.Terminate {
			return l.farewell()
		}
		for _, ans := range reply.Answers {
			if _, err := fmt.Fprintln(l.Out, ans); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) farewell() error {
	_, err := fmt.Fprintf(l.Out, "\n%s\n", Farewell)
	return err
}
