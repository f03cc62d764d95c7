package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/replydesk/internal/domain"
	"github.com/vedran77/replydesk/internal/repository/memory"
)

func TestSeedServiceSeedsAndResetsSession(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewConversationRepo()
	inspectors := NewInspectorService(repo, quietLogger(), time.UTC)
	seeder := NewSeedService(repo, inspectors, quietLogger(), time.UTC)
	owner := uuid.New()

	view, err := inspectors.View(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, view.Conversations)

	require.NoError(t, seeder.SeedOperator(ctx, &domain.Operator{ID: owner}))

	convs, err := repo.ListConversations(ctx, owner)
	require.NoError(t, err)
	assert.NotEmpty(t, convs)

	view, err = inspectors.View(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, len(convs)-view.Counts[domain.FilterArchived], len(view.Conversations))
}

func TestSeedServiceCounts(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewConversationRepo()
	seeder := NewSeedService(repo, nil, quietLogger(), time.UTC)

	res, err := seeder.Seed(ctx, uuid.New())
	require.NoError(t, err)
	assert.Greater(t, res.Conversations, 0)
	assert.Greater(t, res.Messages, res.Conversations)
}
