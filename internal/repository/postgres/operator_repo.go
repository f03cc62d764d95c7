package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vedran77/replydesk/internal/domain"
	"github.com/vedran77/replydesk/internal/repository"
)

var _ repository.OperatorRepository = (*OperatorRepo)(nil)

const operatorColumns = "id, email, display_name, company_name, password_hash, created_at, updated_at"

type OperatorRepo struct {
	pool *pgxpool.Pool
}

func NewOperatorRepo(pool *pgxpool.Pool) *OperatorRepo {
	return &OperatorRepo{pool: pool}
}

func (r *OperatorRepo) Create(ctx context.Context, op *domain.Operator) error {
	query := `
		INSERT INTO operators (id, email, display_name, company_name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		op.ID, op.Email, op.DisplayName, op.CompanyName,
		op.PasswordHash, op.CreatedAt, op.UpdatedAt,
	)
	return translate(err)
}

func (r *OperatorRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Operator, error) {
	return r.scanOperator(ctx, "SELECT "+operatorColumns+" FROM operators WHERE id = $1", id)
}

func (r *OperatorRepo) GetByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	return r.scanOperator(ctx, "SELECT "+operatorColumns+" FROM operators WHERE email = $1", email)
}

func (r *OperatorRepo) scanOperator(ctx context.Context, query string, arg any) (*domain.Operator, error) {
	var op domain.Operator
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&op.ID, &op.Email, &op.DisplayName, &op.CompanyName,
		&op.PasswordHash, &op.CreatedAt, &op.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &op, nil
}
