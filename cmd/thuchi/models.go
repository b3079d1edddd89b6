package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/thuchi/internal/cli"
)

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "Show the live classifier models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := initApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderModels(a.classifier.Status()))
			return err
		},
	}
}
