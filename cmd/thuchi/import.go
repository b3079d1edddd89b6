package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/thuchi/internal/cli"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Record every line of a file as a transaction",
		Long: `Record one transaction per line, exactly as if each line were sent to
the chat. Empty lines and lines starting with "#" are skipped. Lines that
cannot be understood are listed at the end; the rest are still recorded.`,
		Example: `  thuchi import notes.txt
  pbpaste | thuchi import -`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("no-progress", false, "Hide the progress bar")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	var input io.Reader
	if args[0] == "-" {
		input = cmd.InOrStdin()
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer func() { _ = f.Close() }()
		input = f
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Đã dừng nhập. Các dòng đã ghi vẫn được giữ lại.")
	ctx, stop := handler.HandleInterrupts(cmd.Context())
	defer stop()

	a, err := initApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	importer := cli.NewImporter(a.engine, cmd.ErrOrStderr(), a.cfg.UserID, !noProgress)
	result, err := importer.Import(ctx, input)

	slog.Info("Import finished",
		"recorded", result.Recorded,
		"skipped", result.Skipped,
		"failed", len(result.Failures))

	if _, writeErr := fmt.Fprintln(cmd.OutOrStdout(), cli.RenderImportResult(result)); writeErr != nil {
		return writeErr
	}
	return err
}
