package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"TechLens/internal/scheduler"
)

func init() {
	ServeCmd.Flags().Bool("run-on-start", false, "run once immediately before waiting for the schedule")
	RootCmd.AddCommand(ServeCmd)
}

var ServeCmd = &cobra.Command{
	Use:          "serve",
	Short:        "recompute indicators on the configured cron schedule",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		r, store, err := newRunner(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sched := scheduler.NewScheduler(ctx, "indicators", func(ctx context.Context) error {
			_, err := r.Run(ctx)
			return err
		})
		if _, err := sched.Register(cfg.Schedule.Cron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		runOnStart, err := cmd.Flags().GetBool("run-on-start")
		if err != nil {
			return err
		}
		if runOnStart || os.Getenv("RUN_ON_START") == "true" {
			log.Info("run-on-start enabled, executing now")
			sched.Trigger()
		}

		log.Infof("techlens is serving %s on %q. Press Ctrl+C to stop.", cfg.DataSource.Symbol, cfg.Schedule.Cron)
		<-ctx.Done()
		log.Info("shutdown signal received, stopping...")
		return nil
	},
}
