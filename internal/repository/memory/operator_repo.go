package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/vedran77/replydesk/internal/domain"
	"github.com/vedran77/replydesk/internal/repository"
)

var _ repository.OperatorRepository = (*OperatorRepo)(nil)

type OperatorRepo struct {
	mu        sync.RWMutex
	operators map[uuid.UUID]domain.Operator
}

func NewOperatorRepo() *OperatorRepo {
	return &OperatorRepo{operators: make(map[uuid.UUID]domain.Operator)}
}

func (r *OperatorRepo) Create(ctx context.Context, op *domain.Operator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.operators[op.ID]; ok {
		return repository.ErrDuplicate
	}
	for _, existing := range r.operators {
		if strings.EqualFold(existing.Email, op.Email) {
			return repository.ErrDuplicate
		}
	}
	r.operators[op.ID] = *op
	return nil
}

func (r *OperatorRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Operator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	op, ok := r.operators[id]
	if !ok {
		return nil, nil
	}
	return &op, nil
}

func (r *OperatorRepo) GetByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, op := range r.operators {
		if strings.EqualFold(op.Email, email) {
			return &op, nil
		}
	}
	return nil, nil
}
