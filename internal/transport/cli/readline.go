package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/I-am-Milind/backend-ai/internal/config"
	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/I-am-Milind/backend-ai/internal/service/agent"
	"github.com/I-am-Milind/backend-ai/internal/service/ui"
	"github.com/I-am-Milind/backend-ai/pkg/log"
	"github.com/chzyer/readline"
)

const defaultSessionID = "cli-local"

type Handler interface {
	Handle(ctx context.Context, sessionID, input string, w agent.ReplyWriter) error
}

type ReadLine struct {
	agent  Handler
	router core.CmdRouter
	rl     *readline.Instance
}

func NewReadLine(agent Handler, router core.CmdRouter, cfg *config.AppConfig) (*ReadLine, error) {
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		agent:  agent,
		router: router,
		rl:     rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("ReadLine chat started. Type 'exit' to quit.")

	out := r.rl.Stdout()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if result, ok := r.router.Execute(ctx, defaultSessionID, line); ok {
			fmt.Fprintln(out, result)
			continue
		}

		w := NewTerminalWriter(out)
		if err := r.agent.Handle(ctx, defaultSessionID, line, w); err != nil {
			logger.Error().Err(err).Msg("agent failed")
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		w.Finish()
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

// TerminalWriter prints tokens as they arrive and envelopes in a styled block.
type TerminalWriter struct {
	out      io.Writer
	streamed bool
}

func NewTerminalWriter(out io.Writer) *TerminalWriter {
	return &TerminalWriter{out: out}
}

func (w *TerminalWriter) WriteEnvelope(env core.Envelope) error {
	_, err := io.WriteString(w.out, ui.RenderEnvelope(env))
	return err
}

func (w *TerminalWriter) WriteToken(token string) error {
	w.streamed = true
	_, err := io.WriteString(w.out, token)
	return err
}

// Finish terminates a streamed reply with a newline.
func (w *TerminalWriter) Finish() {
	if w.streamed {
		fmt.Fprintln(w.out)
	}
}
