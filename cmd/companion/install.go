package main

import (
	"github.com/I-am-Milind/backend-ai/internal/config"
	"github.com/I-am-Milind/backend-ai/internal/service/installer"
	"github.com/I-am-Milind/backend-ai/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Configure providers, channels and the default persona",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting installation process")

		runtimePath := config.GetRuntimePath()
		if _, err := installer.RunWizard(runtimePath); err != nil {
			return err
		}

		logger.Info().Str("path", runtimePath).Msg("initialized runtime directory")
		logger.Info().Msg("Installation complete! You can now run 'companion start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
