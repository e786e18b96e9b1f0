package leave

import (
	"context"
	"fmt"
)

// Store is the persistence capability the service needs.
type Store interface {
	HasOverlap(ctx context.Context, studentID int64, from, to string) (bool, error)
	Insert(ctx context.Context, studentID int64, from, to, reason string) (Request, error)
	UpdateStatus(ctx context.Context, id int64, department, status string) (bool, error)
}

// Service applies the overlap rule on submission and department scoping on
// review.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Apply submits a leave request unless one already covers overlapping dates.
// Dates are ISO strings (YYYY-MM-DD), validated at the API boundary.
func (s *Service) Apply(ctx context.Context, studentID int64, from, to, reason string) (Request, error) {
	overlap, err := s.store.HasOverlap(ctx, studentID, from, to)
	if err != nil {
		return Request{}, fmt.Errorf("check overlap: %w", err)
	}
	if overlap {
		return Request{}, ErrOverlap
	}
	return s.store.Insert(ctx, studentID, from, to, reason)
}

// Resolve approves or rejects a request belonging to the reviewer's
// department.
func (s *Service) Resolve(ctx context.Context, id int64, department, status string) error {
	ok, err := s.store.UpdateStatus(ctx, id, department, status)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
