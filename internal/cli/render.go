package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/thuchi/internal/classifier"
	"github.com/Veraticus/thuchi/internal/model"
	"github.com/Veraticus/thuchi/internal/report"
)

// RenderReceipt confirms a recorded transaction.
func RenderReceipt(r model.Receipt) string {
	income := r.Direction == model.DirectionIncome
	icon := ExpenseIcon
	if income {
		icon = IncomeIcon
	}

	header := fmt.Sprintf("%s Đã ghi nhận một khoản %s", icon,
		directionStyle(income).Bold(true).Render(strings.ToUpper(r.Direction.Label())))

	lines := []string{
		header,
		BoldStyle.Render("Số tiền:") + " " + report.FormatAmount(r.Amount),
		BoldStyle.Render("Nội dung:") + " " + r.Description,
		BoldStyle.Render("Danh mục:") + " " + r.Category,
	}
	if r.TransactionID > 0 {
		lines = append(lines, SubtleStyle.Render(fmt.Sprintf("#%d", r.TransactionID)))
	}
	return strings.Join(lines, "\n")
}

// RenderReport lays a report out like the bot's financial summary.
func RenderReport(r report.Report) string {
	if r.Empty() {
		return SubtleStyle.Render("Bạn không có giao dịch nào trong " + strings.ToLower(r.Title) + ".")
	}

	var sb strings.Builder
	sb.WriteString(IncomeIcon + " " + BoldStyle.Render("Tổng Thu:") + " " + IncomeStyle.Render(report.FormatAmount(r.Income.Total)) + "\n")
	sb.WriteString(ExpenseIcon + " " + BoldStyle.Render("Tổng Chi:") + " " + ExpenseStyle.Render(report.FormatAmount(r.Expense.Total)) + "\n")
	sb.WriteString(SubtleStyle.Render(strings.Repeat("⎯", 13)) + "\n")
	sb.WriteString(BalanceIcon + " " + BoldStyle.Render("Số dư: "+report.FormatAmount(r.Balance)))

	for _, direction := range []model.Direction{model.DirectionIncome, model.DirectionExpense} {
		section := r.Section(direction)
		if len(section.Categories) == 0 {
			continue
		}
		style := directionStyle(direction == model.DirectionIncome)
		sb.WriteString("\n\n" + style.Bold(true).Render("--- Chi tiết các khoản "+strings.ToUpper(direction.Label())+" ---"))
		sb.WriteString("\n" + categoryTable(section.Categories))
	}

	return RenderBox(ChartIcon+" Báo cáo tài chính "+r.Title, sb.String())
}

func categoryTable(rows []report.CategoryTotal) string {
	width := 0
	for _, row := range rows {
		if w := lipgloss.Width(row.Category); w > width {
			width = w
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		name := row.Category + strings.Repeat(" ", width-lipgloss.Width(row.Category))
		lines = append(lines, fmt.Sprintf("  - %s  %s %s", name, report.FormatAmount(row.Amount),
			SubtleStyle.Render(fmt.Sprintf("(%d)", row.Count))))
	}
	return strings.Join(lines, "\n")
}

// RenderTeach confirms a stored teaching example.
func RenderTeach(example model.TeachingExample) string {
	return fmt.Sprintf("%s Đã lưu ví dụ %s: %q → %s\n%s",
		BookIcon,
		strings.ToUpper(example.Direction.Label()),
		example.Description,
		BoldStyle.Render(example.Category),
		SubtleStyle.Render("Ví dụ sẽ được áp dụng sau lần huấn luyện lại tiếp theo (thuchi retrain)."))
}

// RenderModels lists the live classifier models.
func RenderModels(models []*classifier.Model) string {
	var sb strings.Builder
	for i, direction := range model.Directions {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		var m *classifier.Model
		if i < len(models) {
			m = models[i]
		}
		sb.WriteString(BoldStyle.Render(strings.ToUpper(direction.Label())+" ("+string(direction)+")") + "\n")
		if m == nil {
			sb.WriteString(FormatWarning("  chưa có mô hình"))
			continue
		}
		fmt.Fprintf(&sb, "  version:    %s\n", m.Version)
		fmt.Fprintf(&sb, "  trained at: %s\n", m.TrainedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&sb, "  examples:   %d\n", m.Examples)
		fmt.Fprintf(&sb, "  labels:     %s", strings.Join(m.Labels, ", "))
	}
	return RenderBox(BookIcon+" Mô hình phân loại", sb.String())
}
