package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/replydesk/internal/domain"
	"github.com/vedran77/replydesk/internal/repository"
)

func TestConversationRepoPreservesOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepo()
	owner := uuid.New()
	other := uuid.New()

	for _, id := range []string{"b", "a", "c"} {
		c := domain.NewConversation(id, "sender "+id, domain.PlatformWebsite)
		c.OwnerID = owner
		require.NoError(t, repo.CreateConversation(ctx, c))
	}
	foreign := domain.NewConversation("x", "someone", domain.PlatformMessenger)
	foreign.OwnerID = other
	require.NoError(t, repo.CreateConversation(ctx, foreign))

	convs, err := repo.ListConversations(ctx, owner)
	require.NoError(t, err)
	require.Len(t, convs, 3)
	assert.Equal(t, "b", convs[0].ID)
	assert.Equal(t, "a", convs[1].ID)
	assert.Equal(t, "c", convs[2].ID)

	err = repo.CreateConversation(ctx, foreign)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestConversationRepoUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepo()

	c := domain.NewConversation("c1", "Ana", domain.PlatformInstagram)
	require.NoError(t, repo.CreateConversation(ctx, c))
	require.NoError(t, repo.CreateMessage(ctx, &domain.Message{ID: "m1", ConversationID: "c1", Role: domain.RoleUser, Content: "hey"}))

	c.Archived = true
	c.Paused = true
	c.Sender = "changed"
	require.NoError(t, repo.UpdateConversation(ctx, c))

	got, err := repo.GetConversation(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Archived)
	assert.True(t, got.Paused)
	assert.Equal(t, "Ana", got.Sender, "sender is immutable")

	require.NoError(t, repo.DeleteConversation(ctx, "c1"))
	got, err = repo.GetConversation(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got)

	msgs, err := repo.ListMessages(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, msgs)

	assert.ErrorIs(t, repo.UpdateConversation(ctx, c), repository.ErrNotFound)
}

func TestMessageRepoKeepsFirstOriginal(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepo()
	require.NoError(t, repo.CreateConversation(ctx, domain.NewConversation("c1", "Ana", domain.PlatformWebsite)))

	msg := &domain.Message{ID: "m1", ConversationID: "c1", Role: domain.RoleBot, Content: "Hi"}
	require.NoError(t, repo.CreateMessage(ctx, msg))

	first := "Hi"
	msg.Content = "Hello"
	msg.OriginalContent = &first
	require.NoError(t, repo.UpdateMessage(ctx, msg))

	other := "Hello"
	msg.Content = "Hello there"
	msg.OriginalContent = &other
	require.NoError(t, repo.UpdateMessage(ctx, msg))

	msgs, err := repo.ListMessages(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Hello there", msgs[0].Content)
	require.NotNil(t, msgs[0].OriginalContent)
	assert.Equal(t, "Hi", *msgs[0].OriginalContent)

	assert.ErrorIs(t, repo.CreateMessage(ctx, &domain.Message{ID: "m2", ConversationID: "nope"}), repository.ErrNotFound)
}
