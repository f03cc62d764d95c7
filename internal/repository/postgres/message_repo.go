package postgres

import (
	"context"

	"github.com/vedran77/replydesk/internal/domain"
	"github.com/vedran77/replydesk/internal/repository"
)

func (r *ConversationRepo) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	query := `
		SELECT id, conversation_id, role, content, original_content, showing_original, display_time, sent_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY seq`

	rows, err := r.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var (
			msg  domain.Message
			role string
		)
		if err := rows.Scan(
			&msg.ID, &msg.ConversationID, &role, &msg.Content,
			&msg.OriginalContent, &msg.ShowingOriginal, &msg.Timestamp, &msg.SentAt,
		); err != nil {
			return nil, err
		}
		msg.Role = domain.Role(role)
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *ConversationRepo) CreateMessage(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, role, content, original_content, showing_original, display_time, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		msg.ID, msg.ConversationID, string(msg.Role), msg.Content,
		msg.OriginalContent, msg.ShowingOriginal, msg.Timestamp, msg.SentAt,
	)
	return translate(err)
}

// UpdateMessage persists an edit. original_content is only filled once: an
// existing snapshot is never replaced.
func (r *ConversationRepo) UpdateMessage(ctx context.Context, msg *domain.Message) error {
	query := `
		UPDATE messages
		SET content = $1,
			original_content = COALESCE(original_content, $2),
			showing_original = $3
		WHERE id = $4`
	tag, err := r.pool.Exec(ctx, query, msg.Content, msg.OriginalContent, msg.ShowingOriginal, msg.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
