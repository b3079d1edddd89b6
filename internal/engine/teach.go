package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Veraticus/thuchi/internal/common"
	"github.com/Veraticus/thuchi/internal/model"
)

// Teach stores a labelled description for the next retrain. The live
// classifier is not changed.
func (e *Engine) Teach(ctx context.Context, userID int64, direction model.Direction, category, description string) (model.TeachingExample, error) {
	example, err := model.NewTeachingExample(userID, direction, category, description)
	if err != nil {
		return model.TeachingExample{}, common.NewUserError(msgTeachUsage, err)
	}

	err = common.WithRetry(ctx, func() error {
		return e.store.AppendFeedback(ctx, &example)
	}, e.retry)
	if err != nil {
		common.LogError(err, "Failed to store teaching example", common.Fields{"user_id": userID})
		return model.TeachingExample{}, storeError(err)
	}

	slog.Info("Stored teaching example",
		"id", example.ID,
		"user_id", userID,
		"direction", example.Direction,
		"category", example.Category)

	return example, nil
}

// TeachArgs is a parsed teach command.
type TeachArgs struct {
	Direction   model.Direction
	Category    string
	Description string
}

// ParseTeachArgs parses "<thu|chi|income|expense> <category> | <description>".
// The category may contain spaces; the first "|" ends it.
func ParseTeachArgs(args string) (TeachArgs, error) {
	head, description, found := strings.Cut(args, "|")
	if !found {
		return TeachArgs{}, common.NewUserError(msgTeachUsage, errors.Join(common.ErrInvalidFeedback, errors.New("missing '|' separator")))
	}

	fields := strings.Fields(head)
	if len(fields) < 2 {
		return TeachArgs{}, common.NewUserError(msgTeachUsage, errors.Join(common.ErrInvalidFeedback, errors.New("missing direction or category")))
	}

	direction, err := model.ParseDirection(fields[0])
	if err != nil {
		return TeachArgs{}, common.NewUserError(msgTeachUsage, err)
	}

	return TeachArgs{
		Direction:   direction,
		Category:    strings.Join(fields[1:], " "),
		Description: strings.TrimSpace(description),
	}, nil
}

// TeachText parses a chat-style teach command and stores it.
func (e *Engine) TeachText(ctx context.Context, userID int64, args string) (model.TeachingExample, error) {
	parsed, err := ParseTeachArgs(args)
	if err != nil {
		return model.TeachingExample{}, err
	}
	return e.Teach(ctx, userID, parsed.Direction, parsed.Category, parsed.Description)
}
