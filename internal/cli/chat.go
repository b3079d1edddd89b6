package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/thuchi/internal/common"
	"github.com/Veraticus/thuchi/internal/model"
	"github.com/Veraticus/thuchi/internal/report"
)

// Ledger is what the chat session needs from the engine.
type Ledger interface {
	Record(ctx context.Context, userID int64, text string) (model.Receipt, error)
	Report(ctx context.Context, userID int64, period model.Period) (report.Report, error)
	TeachText(ctx context.Context, userID int64, args string) (model.TeachingExample, error)
}

const welcomeText = `Tôi là bot quản lý Thu - Chi cá nhân.

Để ghi một giao dịch, chỉ cần gõ số tiền và nội dung.
Bạn có thể đặt số tiền ở trước hoặc sau nội dung.

Ví dụ chi tiêu:  50000 ăn trưa  hoặc  ăn trưa 50000
Ví dụ thu nhập (thêm 'thu' hoặc '+'):  thu 10000000 lương  hoặc  lương 10000000 +

Nếu không có 'thu' hoặc '+', tôi sẽ mặc định là CHI TIÊU.
Gõ /help để xem tất cả các lệnh.`

const helpText = `Các lệnh bạn có thể dùng:

/start - Xem hướng dẫn
/help  - Xem lại tin nhắn này
/tuan  - Thống kê Thu-Chi tuần này
/thang - Thống kê Thu-Chi tháng này
/all   - Thống kê toàn bộ
/teach <thu|chi> <danh mục> | <nội dung> - Dạy bot một danh mục mới
/quit  - Thoát`

// Chat is an interactive session for one user over a line-oriented stream.
type Chat struct {
	ledger Ledger
	reader *LineReader
	writer io.Writer
	userID int64
}

// NewChat creates a chat session reading from in and replying to out.
func NewChat(ledger Ledger, in io.Reader, out io.Writer, userID int64) *Chat {
	return &Chat{
		ledger: ledger,
		reader: NewLineReader(in),
		writer: out,
		userID: userID,
	}
}

// Run serves messages until the input ends, the user quits or ctx is canceled.
func (c *Chat) Run(ctx context.Context) error {
	c.reply(RenderBox(MoneyIcon+" thuchi", welcomeText))

	for {
		if _, err := fmt.Fprint(c.writer, FormatPrompt(">")); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := c.reader.ReadLine(ctx)
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, ErrInputCancelled):
			_, _ = fmt.Fprintln(c.writer)
			return nil
		case err != nil:
			return fmt.Errorf("failed to read input: %w", err)
		}

		if line == "" {
			continue
		}

		answer, quit := c.Handle(ctx, line)
		if answer != "" {
			c.reply(answer)
		}
		if quit {
			return nil
		}
	}
}

// Handle answers one message. quit is true when the user asked to leave.
func (c *Chat) Handle(ctx context.Context, line string) (answer string, quit bool) {
	if !strings.HasPrefix(line, "/") {
		receipt, err := c.ledger.Record(ctx, c.userID, line)
		if err != nil {
			return c.failure(err), false
		}
		return RenderReceipt(receipt), false
	}

	command, args, _ := strings.Cut(line, " ")
	switch strings.ToLower(command) {
	case "/start":
		return welcomeText, false
	case "/help":
		return helpText, false
	case "/tuan", "/tuần", "/week":
		return c.report(ctx, model.PeriodWeek), false
	case "/thang", "/tháng", "/month":
		return c.report(ctx, model.PeriodMonth), false
	case "/all":
		return c.report(ctx, model.PeriodAll), false
	case "/teach", "/day", "/dạy":
		example, err := c.ledger.TeachText(ctx, c.userID, args)
		if err != nil {
			return c.failure(err), false
		}
		return RenderTeach(example), false
	case "/quit", "/exit":
		return "Tạm biệt! 👋", true
	default:
		return FormatWarning(fmt.Sprintf("Không hiểu lệnh %s. Gõ /help để xem các lệnh.", command)), false
	}
}

func (c *Chat) report(ctx context.Context, period model.Period) string {
	r, err := c.ledger.Report(ctx, c.userID, period)
	if err != nil {
		return c.failure(err)
	}
	return RenderReport(r)
}

func (c *Chat) failure(err error) string {
	var userErr *common.UserError
	if !errors.As(err, &userErr) {
		slog.Error("Chat request failed", "user_id", c.userID, "error", err)
	}
	return FormatWarning(common.UserMessage(err))
}

func (c *Chat) reply(text string) {
	if _, err := fmt.Fprintln(c.writer, text); err != nil {
		slog.Warn("Failed to write reply", "error", err)
	}
}
