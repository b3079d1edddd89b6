package report

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Veraticus/thuchi/internal/model"
)

// Currency is appended to every amount in rendered output.
const Currency = "VNĐ"

var printer = message.NewPrinter(language.English)

// FormatAmount renders n with thousands separators, e.g. "10,000,000 VNĐ".
func FormatAmount(n int64) string {
	return printer.Sprintf("%d %s", n, Currency)
}

// Render lays r out as plain text.
func Render(r Report) string {
	if r.Empty() {
		return "Bạn không có giao dịch nào trong " + strings.ToLower(r.Title) + "."
	}

	var sb strings.Builder
	sb.WriteString("📊 Báo cáo tài chính " + r.Title + "\n\n")
	sb.WriteString("🟢 Tổng Thu: " + FormatAmount(r.Income.Total) + "\n")
	sb.WriteString("🔴 Tổng Chi: " + FormatAmount(r.Expense.Total) + "\n")
	sb.WriteString("⎯⎯⎯⎯⎯⎯⎯⎯⎯⎯⎯⎯⎯\n")
	sb.WriteString("📈 Số dư: " + FormatAmount(r.Balance) + "\n")

	for _, direction := range []model.Direction{model.DirectionIncome, model.DirectionExpense} {
		section := r.Section(direction)
		if len(section.Categories) == 0 {
			continue
		}
		sb.WriteString("\n--- Chi tiết các khoản " + strings.ToUpper(direction.Label()) + " ---\n")
		for _, ct := range section.Categories {
			sb.WriteString("  - " + ct.Category + ": " + FormatAmount(ct.Amount) + "\n")
		}
	}

	return sb.String()
}
