package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/thuchi/internal/cli"
	"github.com/Veraticus/thuchi/internal/storage"
)

func retrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retrain",
		Short: "Refit both classifiers from the seed corpus and all taught examples",
		Long: `Refit the income and expense classifiers from the bundled seed corpus plus
every example stored with "teach", replace the saved snapshots and switch to
the new models. If anything fails the current models stay in place.

An automatic backup of the ledger is taken first unless --no-backup is set.`,
		Args: cobra.NoArgs,
		RunE: runRetrain,
	}

	cmd.Flags().Bool("no-backup", false, "Skip the automatic backup before retraining")

	return cmd
}

func runRetrain(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := initApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if noBackup, _ := cmd.Flags().GetBool("no-backup"); !noBackup {
		if err := autoBackup(ctx, a.store, "retrain"); err != nil {
			return err
		}
	}

	directions, err := a.engine.Retrain(ctx)
	if err != nil {
		return userFacing(err)
	}
	slog.Info("Models retrained", "directions", directions)

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderModels(a.classifier.Status()))
	return err
}

// autoBackup snapshots the ledger before an operation that replaces state.
func autoBackup(ctx context.Context, store *storage.SQLiteStorage, reason string) error {
	manager, err := store.NewBackupManager()
	if err != nil {
		return fmt.Errorf("failed to create backup manager: %w", err)
	}
	info, err := manager.AutoBackup(ctx, reason)
	if err != nil {
		return err
	}
	slog.Debug("Automatic backup taken", "id", info.ID, "dir", manager.Dir())
	return nil
}
