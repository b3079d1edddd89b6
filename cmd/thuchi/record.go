package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/thuchi/internal/cli"
)

func recordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "record <message>",
		Short: "Record one transaction from a natural-language message",
		Long: `Record one transaction the way the chat bot would.

The largest number in the message is the amount. Add "thu" or "+" for income;
everything else is an expense unless it mentions salary, bonus or interest.`,
		Example: `  thuchi record 50000 ăn trưa
  thuchi record "thu 10000000 lương"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRecord,
	}
}

func runRecord(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := initApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	receipt, err := a.engine.Record(ctx, a.cfg.UserID, strings.Join(args, " "))
	if err != nil {
		return userFacing(err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderReceipt(receipt))
	return err
}
