package seed

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/replydesk/internal/domain"
)

func TestDataset(t *testing.T) {
	owner := uuid.New()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	convs, messages := Dataset(owner, now, nil)
	require.Len(t, convs, len(demo))
	require.Len(t, messages, len(demo))

	seen := map[domain.Platform]bool{}
	for _, c := range convs {
		assert.Equal(t, owner, c.OwnerID)
		assert.True(t, c.Platform.Valid())
		assert.False(t, c.Starred && c.Archived, "%s starred while archived", c.Sender)
		if c.Archived {
			assert.True(t, c.Paused)
		}
		seen[c.Platform] = true

		thread := messages[c.ID]
		require.NotEmpty(t, thread)
		for _, m := range thread {
			assert.Equal(t, c.ID, m.ConversationID)
			assert.True(t, m.Role.Valid())
			assert.NotEmpty(t, m.Timestamp)
			assert.Nil(t, m.OriginalContent)
		}
	}
	assert.Len(t, seen, len(domain.Platforms))
}

func TestDatasetIDsAreFreshPerCall(t *testing.T) {
	owner := uuid.New()
	a, _ := Dataset(owner, time.Now(), time.UTC)
	b, _ := Dataset(owner, time.Now(), time.UTC)
	assert.NotEqual(t, a[0].ID, b[0].ID)
}
