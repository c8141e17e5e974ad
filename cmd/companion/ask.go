package main

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/I-am-Milind/backend-ai/internal/transport/cli"
	"github.com/spf13/cobra"
)

var (
	askSession     string
	askResolveOnly bool
	askJSON        bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		query := strings.Join(args, " ")
		out := cmd.OutOrStdout()

		if askResolveOnly {
			env, ok := a.agent.Resolve(ctx, query)
			if !ok {
				return errors.New("no strategy could resolve the question")
			}
			if askJSON {
				return json.NewEncoder(out).Encode(env)
			}
			return cli.NewTerminalWriter(out).WriteEnvelope(env)
		}

		if askJSON {
			reply, err := a.agent.Collect(ctx, askSession, query)
			if err != nil {
				return err
			}
			if reply.Envelope != nil {
				return json.NewEncoder(out).Encode(reply.Envelope)
			}
			return json.NewEncoder(out).Encode(map[string]string{"reply": reply.Text})
		}

		w := cli.NewTerminalWriter(out)
		defer w.Finish()
		return a.agent.Handle(ctx, askSession, query, w)
	},
}

func init() {
	askCmd.Flags().StringVarP(&askSession, "session", "s", "cli-local", "session identifier for conversation history")
	askCmd.Flags().BoolVar(&askResolveOnly, "resolve-only", false, "only consult the fact pipeline, never generate")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the reply as JSON")
	rootCmd.AddCommand(askCmd)
}
