package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voz-urbana/api-go/models"
)

func TestCountConfirmed(t *testing.T) {
	participants := []models.EventParticipant{
		{EventID: 1, UserID: 10, Status: models.ParticipantConfirmado},
		{EventID: 1, UserID: 11, Status: models.ParticipantConfirmado},
		{EventID: 1, UserID: 12, Status: models.ParticipantCancelado},
		{EventID: 2, UserID: 10, Status: models.ParticipantConfirmado},
	}

	counts := CountConfirmed(participants)

	assert.Equal(t, 2, counts[1])
	assert.Equal(t, 1, counts[2])
	assert.Equal(t, 0, counts[3])
}

func TestConfirmedEventIDs(t *testing.T) {
	participants := []models.EventParticipant{
		{EventID: 1, UserID: 10, Status: models.ParticipantConfirmado},
		{EventID: 2, UserID: 10, Status: models.ParticipantCancelado},
		{EventID: 3, UserID: 11, Status: models.ParticipantConfirmado},
	}

	t.Run("only the user's confirmed events", func(t *testing.T) {
		ids := ConfirmedEventIDs(participants, 10)
		assert.True(t, ids[1])
		assert.False(t, ids[2])
		assert.False(t, ids[3])
	})

	t.Run("anonymous viewer attends nothing", func(t *testing.T) {
		ids := ConfirmedEventIDs(participants, 0)
		assert.Empty(t, ids)
	})
}
