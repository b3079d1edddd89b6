package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/thuchi/internal/cli"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the ledger interactively",
		Long: `Start an interactive session that reads one message per line.

Messages are recorded as transactions. Lines starting with "/" are commands:
/tuan, /thang and /all show reports, /teach stores a labelled example and
/help lists everything.`,
		Args: cobra.NoArgs,
		RunE: runChat,
	}
}

func runChat(cmd *cobra.Command, _ []string) error {
	handler := cli.NewInterruptHandler(cmd.OutOrStdout(), "Tạm biệt! 👋")
	ctx, stop := handler.HandleInterrupts(cmd.Context())
	defer stop()

	a, err := initApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	return cli.NewChat(a.engine, cmd.InOrStdin(), cmd.OutOrStdout(), a.cfg.UserID).Run(ctx)
}
