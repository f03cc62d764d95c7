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

var _ repository.ConversationRepository = (*ConversationRepo)(nil)

const conversationColumns = "id, owner_id, sender, platform, unread, starred, paused, archived, created_at"

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

func (r *ConversationRepo) ListConversations(ctx context.Context, ownerID uuid.UUID) ([]domain.Conversation, error) {
	// position is a bigserial, so ordering by it keeps insertion order
	query := `SELECT ` + conversationColumns + `
		FROM conversations WHERE owner_id = $1 ORDER BY position`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := scanConversation(rows, &c); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

func (r *ConversationRepo) GetConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`
	var c domain.Conversation
	err := scanConversation(r.pool.QueryRow(ctx, query, id), &c)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ConversationRepo) CreateConversation(ctx context.Context, c *domain.Conversation) error {
	query := `
		INSERT INTO conversations (id, owner_id, sender, platform, unread, starred, paused, archived, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		c.ID, c.OwnerID, c.Sender, string(c.Platform), c.Unread, c.Starred, c.Paused, c.Archived, c.CreatedAt,
	)
	return translate(err)
}

// UpdateConversation writes the mutable flags; sender and platform never change.
func (r *ConversationRepo) UpdateConversation(ctx context.Context, c *domain.Conversation) error {
	query := `UPDATE conversations SET unread = $1, starred = $2, paused = $3, archived = $4 WHERE id = $5`
	tag, err := r.pool.Exec(ctx, query, c.Unread, c.Starred, c.Paused, c.Archived, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteConversation removes the conversation; messages go with it via ON DELETE CASCADE.
func (r *ConversationRepo) DeleteConversation(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM conversations WHERE id = $1`, id)
	return err
}

func scanConversation(row pgx.Row, c *domain.Conversation) error {
	var platform string
	if err := row.Scan(
		&c.ID, &c.OwnerID, &c.Sender, &platform,
		&c.Unread, &c.Starred, &c.Paused, &c.Archived, &c.CreatedAt,
	); err != nil {
		return err
	}
	c.Platform = domain.Platform(platform)
	return nil
}
