package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/pureparts/internal/logger"
	"github.com/Faultbox/pureparts/internal/watcher"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Reload and report a model every time the file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fw, err := watcher.New(args[0], debounce, logger.Named("watcher"))
			if err != nil {
				return err
			}

			ld := a.loader()
			out := cmd.OutOrStdout()
			report := func(path string) {
				res, err := ld.Load(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
					return
				}
				printResult(out, res)
				fmt.Fprintln(out)
			}

			report(fw.Path())
			logger.Info("watching model", zap.String("path", fw.Path()))

			err = fw.Run(ctx, report)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "Quiet period before reloading")
	return cmd
}
