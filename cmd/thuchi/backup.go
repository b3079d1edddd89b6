package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/thuchi/internal/cli"
	"github.com/Veraticus/thuchi/internal/config"
	"github.com/Veraticus/thuchi/internal/storage"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage ledger backups",
		Long: `Create, list, verify and delete copies of the ledger database.

Backups live in a "backups" directory next to the database. An automatic
backup is taken before every retrain; only the newest few are kept.`,
		Example: `  thuchi backup create --tag before-tet
  thuchi backup list
  thuchi backup verify before-tet`,
	}

	cmd.AddCommand(createBackupCmd())
	cmd.AddCommand(listBackupsCmd())
	cmd.AddCommand(verifyBackupCmd())
	cmd.AddCommand(deleteBackupCmd())

	return cmd
}

// withBackups opens the database and hands a backup manager to fn.
func withBackups(ctx context.Context, fn func(*storage.BackupManager) error) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	manager, err := store.NewBackupManager()
	if err != nil {
		return fmt.Errorf("failed to create backup manager: %w", err)
	}
	return fn(manager)
}

func createBackupCmd() *cobra.Command {
	var tag, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackups(cmd.Context(), func(bm *storage.BackupManager) error {
				info, err := bm.Create(cmd.Context(), tag, description)
				if err != nil {
					return fmt.Errorf("failed to create backup: %w", err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "✅ Backup %s created (%d transactions, %d examples, %s)\n",
					cli.BoldStyle.Render(info.ID), info.Transactions, info.Feedback, formatBytes(info.FileSize))
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Name for the backup (default: timestamp)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description of the backup")

	return cmd
}

func listBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all backups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackups(cmd.Context(), func(bm *storage.BackupManager) error {
				backups, err := bm.List(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(backups) == 0 {
					_, err = fmt.Fprintln(out, cli.SubtleStyle.Render("No backups yet."))
					return err
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tCREATED\tTRANSACTIONS\tEXAMPLES\tSIZE\tDESCRIPTION")
				for _, b := range backups {
					id := b.ID
					if b.IsAuto {
						id += " (auto)"
					}
					fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
						id,
						b.CreatedAt.Local().Format("2006-01-02 15:04"),
						b.Transactions,
						b.Feedback,
						formatBytes(b.FileSize),
						b.Description)
				}
				return w.Flush()
			})
		},
	}
}

func verifyBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <id>",
		Short: "Run an integrity check on a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackups(cmd.Context(), func(bm *storage.BackupManager) error {
				if err := bm.Verify(cmd.Context(), args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "✅ Backup %s is intact\n", args[0])
				return err
			})
		},
	}
}

func deleteBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackups(cmd.Context(), func(bm *storage.BackupManager) error {
				if err := bm.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Backup %s deleted\n", args[0])
				return err
			})
		},
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
