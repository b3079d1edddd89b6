// Package engine turns chat messages into ledger entries and serves reports
// and teaching feedback on top of the stores and the classifier.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/thuchi/internal/common"
	"github.com/Veraticus/thuchi/internal/model"
	"github.com/Veraticus/thuchi/internal/parser"
	"github.com/Veraticus/thuchi/internal/report"
)

// User-facing messages.
const (
	msgNoAmount       = "⚠️ Không tìm thấy số tiền trong tin nhắn của bạn. Vui lòng thử lại."
	msgInvalidAmount  = "⚠️ Số tiền không hợp lệ. Số tiền phải là số nguyên dương."
	msgNoDescription  = "⚠️ Giao dịch của bạn cần có nội dung mô tả.\nVí dụ: Ăn sáng 20000"
	msgStoreDown      = "⚠️ Không thể lưu dữ liệu lúc này, vui lòng thử lại sau."
	msgTeachUsage     = "⚠️ Cú pháp: /teach <thu|chi> <danh mục> | <nội dung>\nVí dụ: /teach chi Ăn vặt | xúc xích nướng"
	msgRetrainBusy    = "⏳ Mô hình đang được huấn luyện lại, vui lòng đợi."
	msgRetrainFailure = "⚠️ Huấn luyện lại mô hình thất bại. Mô hình hiện tại vẫn được giữ nguyên."
)

// Engine runs the write path, the report path and feedback ingestion.
type Engine struct {
	store       Store
	categorizer Categorizer
	now         func() time.Time
	retry       common.RetryOptions
}

// Config holds configuration options for the engine.
type Config struct {
	Now   func() time.Time
	Retry common.RetryOptions
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Now: time.Now,
		Retry: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 50 * time.Millisecond,
			MaxDelay:     time.Second,
			Multiplier:   2.0,
		},
	}
}

// New creates an engine with the default configuration.
func New(store Store, categorizer Categorizer) *Engine {
	return NewWithConfig(store, categorizer, DefaultConfig())
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(store Store, categorizer Categorizer, config Config) *Engine {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Engine{
		store:       store,
		categorizer: categorizer,
		now:         config.Now,
		retry:       config.Retry,
	}
}

// Record interprets text as one transaction for userID and stores it.
// Parse failures come back as *common.UserError and nothing is stored.
func (e *Engine) Record(ctx context.Context, userID int64, text string) (model.Receipt, error) {
	parsed, err := parser.Parse(text)
	if err != nil {
		return model.Receipt{}, parseError(err)
	}

	txn := model.Transaction{
		UserID:      userID,
		Timestamp:   e.now(),
		Direction:   parsed.Direction,
		Amount:      parsed.Amount,
		Description: parsed.Description,
		Category:    e.categorizer.Predict(parsed.Description, parsed.Direction),
	}

	err = common.WithRetry(ctx, func() error {
		return e.store.AppendTransaction(ctx, &txn)
	}, e.retry)
	if err != nil {
		common.LogError(err, "Failed to store transaction", common.Fields{"user_id": userID})
		return model.Receipt{}, storeError(err)
	}

	slog.Info("Recorded transaction",
		"id", txn.ID,
		"user_id", userID,
		"direction", txn.Direction,
		"amount", txn.Amount,
		"category", txn.Category,
		"rule", parsed.Rule)

	return model.ReceiptFor(txn), nil
}

func parseError(err error) error {
	switch {
	case errors.Is(err, common.ErrNoAmountFound):
		return common.NewUserError(msgNoAmount, err)
	case errors.Is(err, common.ErrInvalidAmount):
		return common.NewUserError(msgInvalidAmount, err)
	case errors.Is(err, common.ErrEmptyDescription):
		return common.NewUserError(msgNoDescription, err)
	default:
		return err
	}
}

func storeError(err error) error {
	return common.NewUserError(msgStoreDown, fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err))
}

// Report aggregates userID's ledger over period as of the engine clock.
func (e *Engine) Report(ctx context.Context, userID int64, period model.Period) (report.Report, error) {
	now := e.now()
	filter := report.Range(period, now)

	txns, err := e.store.ListTransactions(ctx, userID, filter)
	if err != nil {
		common.LogError(err, "Failed to load transactions for report", common.Fields{"user_id": userID, "period": period})
		return report.Report{}, storeError(err)
	}

	slog.Debug("Building report", "user_id", userID, "period", period, "transactions", len(txns))
	return report.Aggregate(period, report.Title(period, now), filter, txns), nil
}

// Retrain refits both classifier models from the seed corpus and all feedback.
func (e *Engine) Retrain(ctx context.Context) ([]model.Direction, error) {
	started := e.now()
	models, err := e.categorizer.Retrain(ctx)
	switch {
	case errors.Is(err, common.ErrRetrainInProgress):
		return nil, common.NewUserError(msgRetrainBusy, err)
	case err != nil:
		common.LogError(err, "Retrain failed", nil)
		return nil, common.NewUserError(msgRetrainFailure, err)
	}

	directions := make([]model.Direction, 0, len(models))
	for _, m := range models {
		directions = append(directions, m.Direction)
	}
	slog.Info("Retrain complete", "directions", directions, "duration", e.now().Sub(started))
	return directions, nil
}
