// Package classifier assigns categories to transaction descriptions with one
// TF-IDF naive bayes model per direction, and owns the lifecycle of those models.
package classifier

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"sort"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jbrukh/bayesian"

	"github.com/Veraticus/thuchi/internal/model"
	"github.com/Veraticus/thuchi/internal/parser"
)

// ErrNotEnoughLabels is returned when a corpus cannot separate at least two categories.
var ErrNotEnoughLabels = errors.New("training needs at least two distinct categories")

// Example is one labelled description used for training.
type Example struct {
	Description string
	Category    string
}

// Model is a fitted classifier for a single direction. A Model is never
// changed after Train returns it, so it is safe for concurrent Predict calls.
type Model struct {
	TrainedAt time.Time
	clf       *bayesian.Classifier
	Direction model.Direction
	Version   string
	Labels    []string
	Examples  int
}

// Terms splits a description the way a default TF-IDF vectorizer does:
// runs of two or more word characters, after normalization.
func Terms(text string) []string {
	normalized := parser.Normalize(text)

	var terms []string
	var current []rune
	flush := func() {
		if len(current) >= 2 {
			terms = append(terms, string(current))
		}
		current = current[:0]
	}

	for _, r := range normalized {
		if r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			current = append(current, r)
			continue
		}
		flush()
	}
	flush()

	return terms
}

// Train fits a new model for direction from examples.
func Train(direction model.Direction, examples []Example) (m *Model, err error) {
	if !direction.IsValid() {
		return nil, fmt.Errorf("invalid direction %q", direction)
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("no training examples for %s", direction)
	}

	seen := make(map[string]struct{})
	for _, ex := range examples {
		seen[ex.Category] = struct{}{}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	if len(labels) < 2 {
		return nil, fmt.Errorf("%w: %s has %d", ErrNotEnoughLabels, direction, len(labels))
	}

	// The bayesian package reports misuse by panicking.
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fmt.Errorf("training %s model: %v", direction, r)
		}
	}()

	classes := make([]bayesian.Class, len(labels))
	for i, label := range labels {
		classes[i] = bayesian.Class(label)
	}

	clf := bayesian.NewClassifierTfIdf(classes...)
	for _, ex := range examples {
		clf.Learn(Terms(ex.Description), bayesian.Class(ex.Category))
	}
	clf.ConvertTermsFreqToTfIdf()

	return &Model{
		clf:       clf,
		Direction: direction,
		Version:   uuid.NewString(),
		TrainedAt: time.Now().UTC(),
		Labels:    labels,
		Examples:  len(examples),
	}, nil
}

// Predict returns the most likely category. Ties go to the label that sorts first.
func (m *Model) Predict(description string) string {
	_, inx, _ := m.clf.LogScores(Terms(description))
	return string(m.clf.Classes[inx])
}

// snapshot is the persisted form of a Model.
type snapshot struct {
	TrainedAt  time.Time
	Direction  model.Direction
	Version    string
	Labels     []string
	Classifier []byte
	Examples   int
}

// MarshalBinary encodes the model into an opaque snapshot blob.
func (m *Model) MarshalBinary() ([]byte, error) {
	var clf bytes.Buffer
	if err := m.clf.WriteTo(&clf); err != nil {
		return nil, fmt.Errorf("failed to encode classifier: %w", err)
	}

	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(snapshot{
		TrainedAt:  m.TrainedAt,
		Direction:  m.Direction,
		Version:    m.Version,
		Labels:     m.Labels,
		Classifier: clf.Bytes(),
		Examples:   m.Examples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalModel decodes a blob written by MarshalBinary.
func UnmarshalModel(data []byte) (*Model, error) {
	var snap snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if !snap.Direction.IsValid() {
		return nil, fmt.Errorf("snapshot has invalid direction %q", snap.Direction)
	}

	clf, err := bayesian.NewClassifierFromReader(bytes.NewReader(snap.Classifier))
	if err != nil {
		return nil, fmt.Errorf("failed to decode classifier: %w", err)
	}
	if !clf.DidConvertTfIdf {
		return nil, fmt.Errorf("snapshot for %s was never converted to tf-idf", snap.Direction)
	}
	if len(clf.Classes) < 2 {
		return nil, fmt.Errorf("%w: snapshot for %s has %d", ErrNotEnoughLabels, snap.Direction, len(clf.Classes))
	}

	return &Model{
		clf:       clf,
		Direction: snap.Direction,
		Version:   snap.Version,
		TrainedAt: snap.TrainedAt,
		Labels:    snap.Labels,
		Examples:  snap.Examples,
	}, nil
}
