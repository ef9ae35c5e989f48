package employee

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps employees in process. It backs development runs without
// a database and the handler tests.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]Employee
	byKey  map[[2]string]int64
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:  make(map[int64]Employee),
		byKey: make(map[[2]string]int64),
		now:   time.Now,
	}
}

func (m *MemoryStore) Upsert(_ context.Context, sub Submission) (Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	key := [2]string{sub.FullName, sub.NationalID}
	emp, ok := m.byID[m.byKey[key]]
	if !ok {
		m.nextID++
		emp = Employee{ID: m.nextID, FullName: sub.FullName, NationalID: sub.NationalID, CreatedAt: now}
		m.byKey[key] = emp.ID
	}
	emp.Designation = sub.Designation
	emp.AnnualCTC = sub.AnnualCTC
	emp.IncrementPerMonth = sub.IncrementPerMonth
	emp.ResignationDate = sub.ResignationDate
	emp.UpdatedAt = now
	m.byID[emp.ID] = emp
	return emp, nil
}

func (m *MemoryStore) Get(_ context.Context, id int64) (Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	emp, ok := m.byID[id]
	if !ok {
		return Employee{}, ErrEmployeeNotFound
	}
	return emp, nil
}
