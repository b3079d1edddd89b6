package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/thuchi/internal/cli"
	"github.com/Veraticus/thuchi/internal/model"
	"github.com/Veraticus/thuchi/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [all|week|month]",
		Short: "Show income, expenses and balance for a period",
		Long: `Show totals, balance and the per-category breakdown of each direction.

The week starts on Monday and the month on its first day, both at midnight
local time, and both run until now. "tuan" and "thang" are accepted too.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"all", "week", "month", "tuan", "thang"},
		RunE:      runReport,
	}

	cmd.Flags().Bool("plain", false, "Plain text output without styling")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	plain, _ := cmd.Flags().GetBool("plain")

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	period, err := model.ParsePeriod(arg)
	if err != nil {
		return err
	}

	a, err := initApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	r, err := a.engine.Report(ctx, a.cfg.UserID, period)
	if err != nil {
		return userFacing(err)
	}

	output := cli.RenderReport(r)
	if plain {
		output = report.Render(r)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
	return err
}
