package employee

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// Resolve finds or creates the employee identified by full name and
// national id.
func (s *Service) Resolve(ctx context.Context, sub Submission) (Employee, error) {
	sub.FullName = strings.TrimSpace(sub.FullName)
	sub.NationalID = strings.TrimSpace(sub.NationalID)
	sub.Designation = strings.TrimSpace(sub.Designation)
	emp, err := s.store.Upsert(ctx, sub)
	if err != nil {
		return Employee{}, fmt.Errorf("resolve employee: %w", err)
	}
	return emp, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (Employee, error) {
	id, ok := ParseCode(code)
	if !ok {
		return Employee{}, ErrEmployeeNotFound
	}
	return s.store.Get(ctx, id)
}
