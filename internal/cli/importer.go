package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/thuchi/internal/common"
)

// ImportFailure is an input line that could not be recorded.
type ImportFailure struct {
	Text    string
	Message string
	Line    int
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Failures []ImportFailure
	Recorded int
	Skipped  int
}

// Importer records one message per input line, the way the chat would.
type Importer struct {
	ledger       Ledger
	writer       io.Writer
	userID       int64
	showProgress bool
}

// NewImporter creates an importer that reports progress to writer.
func NewImporter(ledger Ledger, writer io.Writer, userID int64, showProgress bool) *Importer {
	return &Importer{
		ledger:       ledger,
		writer:       writer,
		userID:       userID,
		showProgress: showProgress,
	}
}

// Import records every non-empty line of r. Lines starting with '#' are
// skipped. A failed line does not stop the import; a canceled ctx does.
func (im *Importer) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return ImportResult{}, fmt.Errorf("failed to read input: %w", err)
	}

	bar := im.newProgressBar(len(lines))

	var result ImportResult
	for i, raw := range lines {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") {
			result.Skipped++
			im.advance(bar)
			continue
		}

		if _, err := im.ledger.Record(ctx, im.userID, text); err != nil {
			slog.Debug("Import line rejected", "line", i+1, "error", err)
			result.Failures = append(result.Failures, ImportFailure{
				Line:    i + 1,
				Text:    text,
				Message: common.UserMessage(err),
			})
		} else {
			result.Recorded++
		}
		im.advance(bar)
	}

	return result, nil
}

func (im *Importer) newProgressBar(total int) *progressbar.ProgressBar {
	if !im.showProgress || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(im.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Đang nhập giao dịch...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(im.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

func (im *Importer) advance(bar *progressbar.ProgressBar) {
	if bar == nil {
		return
	}
	if err := bar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// RenderImportResult summarizes an import for the terminal.
func RenderImportResult(result ImportResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Đã ghi %d giao dịch", IncomeIcon, result.Recorded)
	if result.Skipped > 0 {
		fmt.Fprintf(&sb, ", bỏ qua %d dòng", result.Skipped)
	}
	if len(result.Failures) == 0 {
		return sb.String()
	}

	fmt.Fprintf(&sb, "\n%s %d dòng lỗi:", ExpenseIcon, len(result.Failures))
	for _, f := range result.Failures {
		fmt.Fprintf(&sb, "\n  %s %s %s",
			SubtleStyle.Render(fmt.Sprintf("dòng %d:", f.Line)),
			f.Text,
			WarningStyle.Render("→ "+f.Message))
	}
	return sb.String()
}
