package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"launchquote/internal/app"
	"launchquote/internal/config"
	"launchquote/internal/domain/wizard"
	"launchquote/internal/pkg/logger"
	"launchquote/internal/terminal"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, terminal.ErrAborted) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "quote",
		Short:         "Get an instant website quote from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			lggr, err := logger.New(logLevel, cfg.AppEnv)
			if err != nil {
				return err
			}
			defer func() { _ = lggr.Sync() }()

			a, err := app.New(cfg, lggr)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			if err := a.Migrate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			runner := terminal.NewRunner(terminal.NewSurveyDriver(cmd.OutOrStdout()), a.Gateway, lggr)
			sess := wizard.NewSession(uuid.NewString(), a.Calculator)
			rec, err := runner.Run(ctx, sess)
			if err != nil {
				if !errors.Is(err, terminal.ErrAborted) && !errors.Is(err, context.Canceled) {
					fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
				}
				return err
			}
			if rec != nil && rec.LeadID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Reference: %s\n", rec.LeadID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	return cmd
}
