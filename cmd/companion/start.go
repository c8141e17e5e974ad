package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/I-am-Milind/backend-ai/pkg/log"
	"github.com/I-am-Milind/backend-ai/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Companion services",
	Long:  `Initializes and starts the enabled transports (HTTP, Telegram, CLI) and the background fact refresher.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting companion")

		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		services, err := a.services(ctx)
		if err != nil {
			_ = a.Close()
			return err
		}

		srv.StartServices(ctx, services)

		// Blocks until the signal context is cancelled.
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("companion has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
