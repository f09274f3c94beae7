package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func init() {
	RunCmd.Flags().String("symbol", "", "ticker symbol, overrides data_source.symbol")
	RunCmd.Flags().String("start", "", "start date YYYY-MM-DD (inclusive)")
	RunCmd.Flags().String("end", "", "end date YYYY-MM-DD (exclusive)")
	RunCmd.Flags().String("out", "", "output directory")
	RootCmd.AddCommand(RunCmd)
}

var RunCmd = &cobra.Command{
	Use:          "run",
	Short:        "compute indicators once and write charts and csv",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		overrides := []struct {
			flag string
			dst  *string
		}{
			{"symbol", &cfg.DataSource.Symbol},
			{"start", &cfg.DataSource.Start},
			{"end", &cfg.DataSource.End},
			{"out", &cfg.Output.Dir},
		}
		for _, o := range overrides {
			v, err := cmd.Flags().GetString(o.flag)
			if err != nil {
				return err
			}
			if v != "" {
				*o.dst = v
			}
		}

		r, store, err := newRunner(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		res, err := r.Run(ctx)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), res.Summary)
		return nil
	},
}
