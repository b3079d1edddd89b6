package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Veraticus/thuchi/internal/common"
	"github.com/Veraticus/thuchi/internal/model"
	"github.com/Veraticus/thuchi/internal/service"
)

// Service owns the live model of each direction and its persisted snapshot.
// Readers always see a fully built model or none at all.
type Service struct {
	snapshots service.SnapshotStore
	feedback  service.FeedbackStore
	seed      Corpus
	expense   atomic.Pointer[Model]
	income    atomic.Pointer[Model]
	trainMu   sync.Mutex
}

// NewService creates a classifier service. No model is live until Load or Retrain.
func NewService(snapshots service.SnapshotStore, feedback service.FeedbackStore, seed Corpus) *Service {
	return &Service{
		snapshots: snapshots,
		feedback:  feedback,
		seed:      seed,
	}
}

func (s *Service) slot(direction model.Direction) *atomic.Pointer[Model] {
	if direction == model.DirectionIncome {
		return &s.income
	}
	return &s.expense
}

// Model returns the live model for direction.
func (s *Service) Model(direction model.Direction) (*Model, error) {
	if !direction.IsValid() {
		return nil, fmt.Errorf("%w: invalid direction %q", common.ErrModelUnavailable, direction)
	}
	m := s.slot(direction).Load()
	if m == nil {
		return nil, fmt.Errorf("%w: %s", common.ErrModelUnavailable, direction)
	}
	return m, nil
}

// Predict categorizes description. It never fails: without a live model the
// result is model.CategoryOther.
func (s *Service) Predict(description string, direction model.Direction) string {
	m, err := s.Model(direction)
	if err != nil {
		slog.Debug("Classifier not ready, using fallback category", "direction", direction, "error", err)
		return model.CategoryOther
	}
	return m.Predict(description)
}

// Swap installs m as the live model for its direction and returns the previous one.
func (s *Service) Swap(m *Model) *Model {
	return s.slot(m.Direction).Swap(m)
}

// Train fits a model for direction from the seed corpus plus every teaching
// example stored so far. The live model is not touched.
func (s *Service) Train(ctx context.Context, direction model.Direction) (*Model, error) {
	examples := append([]Example(nil), s.seed[direction]...)

	taught, err := s.feedback.ListFeedback(ctx, direction)
	if err != nil {
		return nil, fmt.Errorf("failed to load teaching examples: %w", err)
	}
	for _, te := range taught {
		examples = append(examples, Example{Description: te.Description, Category: te.Category})
	}

	m, err := Train(direction, examples)
	if err != nil {
		return nil, err
	}

	slog.Info("Trained classifier",
		"direction", direction,
		"version", m.Version,
		"seed_examples", len(s.seed[direction]),
		"teaching_examples", len(taught),
		"labels", len(m.Labels))

	return m, nil
}

// Load brings up both directions. A persisted snapshot is used as-is; a
// direction without one is trained and persisted. Directions that fail stay
// unavailable and their errors are returned together.
func (s *Service) Load(ctx context.Context) error {
	s.trainMu.Lock()
	defer s.trainMu.Unlock()

	var errs []error
	for _, direction := range model.Directions {
		if err := s.loadDirection(ctx, direction); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", direction, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Service) loadDirection(ctx context.Context, direction model.Direction) error {
	data, err := s.snapshots.LoadSnapshot(ctx, direction)
	switch {
	case err == nil:
		m, decodeErr := UnmarshalModel(data)
		if decodeErr == nil && m.Direction == direction {
			s.Swap(m)
			slog.Info("Loaded classifier snapshot",
				"direction", direction,
				"version", m.Version,
				"trained_at", m.TrainedAt)
			return nil
		}
		slog.Warn("Discarding unreadable classifier snapshot", "direction", direction, "error", decodeErr)
	case errors.Is(err, common.ErrNotFound):
		slog.Info("No classifier snapshot, training from scratch", "direction", direction)
	default:
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	m, err := s.Train(ctx, direction)
	if err != nil {
		return err
	}
	if err := s.persist(ctx, m); err != nil {
		return err
	}
	s.Swap(m)
	return nil
}

func (s *Service) persist(ctx context.Context, m *Model) error {
	data, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	if err := s.snapshots.SaveSnapshot(ctx, m.Direction, data); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Retrain refits both directions from the seed corpus and all teaching
// examples, replaces both snapshots and then swaps the new models in. On any
// failure the live models are left as they were.
func (s *Service) Retrain(ctx context.Context) ([]*Model, error) {
	if !s.trainMu.TryLock() {
		return nil, common.ErrRetrainInProgress
	}
	defer s.trainMu.Unlock()

	fresh := make([]*Model, 0, len(model.Directions))
	for _, direction := range model.Directions {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrRetrainFailure, err)
		}
		m, err := s.Train(ctx, direction)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrRetrainFailure, direction, err)
		}
		fresh = append(fresh, m)
	}

	for _, m := range fresh {
		if err := s.snapshots.DeleteSnapshot(ctx, m.Direction); err != nil {
			return nil, fmt.Errorf("%w: failed to delete %s snapshot: %w", common.ErrRetrainFailure, m.Direction, err)
		}
		if err := s.persist(ctx, m); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrRetrainFailure, m.Direction, err)
		}
	}

	for _, m := range fresh {
		old := s.Swap(m)
		attrs := []any{"direction", m.Direction, "version", m.Version, "examples", m.Examples}
		if old != nil {
			attrs = append(attrs, "replaced_version", old.Version)
		}
		slog.Info("Swapped in retrained classifier", attrs...)
	}

	return fresh, nil
}

// Status returns the live model of each direction in model.Directions order.
// An entry is nil when that direction has no live model.
func (s *Service) Status() []*Model {
	status := make([]*Model, 0, len(model.Directions))
	for _, direction := range model.Directions {
		status = append(status, s.slot(direction).Load())
	}
	return status
}
