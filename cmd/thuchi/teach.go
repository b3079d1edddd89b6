package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/thuchi/internal/cli"
	"github.com/Veraticus/thuchi/internal/model"
)

func teachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teach <thu|chi> <category> <description>",
		Short: "Teach the classifier a labelled description",
		Long: `Store a labelled example for the classifier of one direction.

The example is used from the next retrain on; the live models do not change
until then. Pass --retrain to refit right away.`,
		Example: `  thuchi teach chi "Ăn vặt" xúc xích nướng
  thuchi teach thu "Quà tặng" bà cho tiền --retrain`,
		Args: cobra.MinimumNArgs(3),
		RunE: runTeach,
	}

	cmd.Flags().Bool("retrain", false, "Retrain both models after storing the example")

	return cmd
}

func runTeach(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	retrain, _ := cmd.Flags().GetBool("retrain")

	direction, err := model.ParseDirection(args[0])
	if err != nil {
		return err
	}

	a, err := initApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	example, err := a.engine.Teach(ctx, a.cfg.UserID, direction, args[1], strings.Join(args[2:], " "))
	if err != nil {
		return userFacing(err)
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, cli.RenderTeach(example)); err != nil {
		return err
	}

	if !retrain {
		return nil
	}
	if _, err := a.engine.Retrain(ctx); err != nil {
		return userFacing(err)
	}
	_, err = fmt.Fprintln(out, cli.RenderModels(a.classifier.Status()))
	return err
}
