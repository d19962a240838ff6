// Package domain defines the business logic for the gymlog service.
package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrMissingWeight indicates the create payload carried no weight.
	ErrMissingWeight = errors.New("weight is required")
	// ErrMissingExercise indicates the create payload carried no exercise name.
	ErrMissingExercise = errors.New("exercise is required")
	// ErrMissingRepetitions indicates the create payload carried no repetition count.
	ErrMissingRepetitions = errors.New("repetitions is required")
)

// SetRepository captures persistence operations. Every operation is scoped to
// the owning user; the repository never exposes a lookup by id alone.
type SetRepository interface {
	ListByOwner(ctx context.Context, userID string) ([]SetRow, error)
	Create(ctx context.Context, row SetRow) error
	DeleteByOwner(ctx context.Context, userID, setID string) (*SetRow, error)
}

// Service orchestrates set workflows for an authenticated identity.
type Service struct {
	repo SetRepository
}

// NewService constructs a Service.
func NewService(repo SetRepository) *Service {
	return &Service{repo: repo}
}

// CreateSetInput captures the payload from the API layer. Weight and
// Repetitions are pointers so absent fields are distinguishable from zero.
type CreateSetInput struct {
	Weight      *float64
	Exercise    string
	Repetitions *int
}

// Validate reports the first missing required field.
func (in CreateSetInput) Validate() error {
	if in.Weight == nil {
		return ErrMissingWeight
	}
	if strings.TrimSpace(in.Exercise) == "" {
		return ErrMissingExercise
	}
	if in.Repetitions == nil {
		return ErrMissingRepetitions
	}
	return nil
}

// ListSets returns all rows owned by the identity. An optional userID filter
// intersects with ownership: it can narrow the result to nothing, but it can
// never widen visibility to another user's rows.
func (s *Service) ListSets(ctx context.Context, identity, userIDFilter string) ([]SetRow, error) {
	if userIDFilter != "" && userIDFilter != identity {
		return nil, nil
	}
	return s.repo.ListByOwner(ctx, identity)
}

// CreateSet validates the input, assigns id and creation time, and persists
// the row attributed to the identity. Any userId from the client is ignored.
func (s *Service) CreateSet(ctx context.Context, identity string, input CreateSetInput) (*SetRow, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	row := SetRow{
		ID:          uuid.NewString(),
		UserID:      identity,
		Weight:      *input.Weight,
		Exercise:    strings.TrimSpace(input.Exercise),
		Repetitions: *input.Repetitions,
		CreatedDate: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteSet removes at most one row matching both setID and the identity.
// It returns the deleted row, or nil when no owned row matched; absence is a
// normal outcome, not an error.
func (s *Service) DeleteSet(ctx context.Context, identity, setID string) (*SetRow, error) {
	return s.repo.DeleteByOwner(ctx, identity, setID)
}
