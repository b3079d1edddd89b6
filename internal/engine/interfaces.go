package engine

import (
	"context"

	"github.com/Veraticus/thuchi/internal/classifier"
	"github.com/Veraticus/thuchi/internal/model"
	"github.com/Veraticus/thuchi/internal/service"
)

// Categorizer defines the contract for category prediction and model refits.
type Categorizer interface {
	// Predict never fails; it falls back to model.CategoryOther.
	Predict(description string, direction model.Direction) string
	Retrain(ctx context.Context) ([]*classifier.Model, error)
}

// Store is the persistence the engine writes to and reports from.
type Store interface {
	service.TransactionStore
	service.FeedbackStore
}
