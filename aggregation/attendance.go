package aggregation

import (
	"github.com/voz-urbana/api-go/models"
)

// CountConfirmed tallies confirmed RSVPs per event. The Event row's own
// attendees counter is never consulted: only Confirmado participant rows
// count.
func CountConfirmed(participants []models.EventParticipant) map[uint]int {
	counts := make(map[uint]int)
	for i := range participants {
		if participants[i].Status == models.ParticipantConfirmado {
			counts[participants[i].EventID]++
		}
	}
	return counts
}

// ConfirmedEventIDs returns the set of events the given user has confirmed,
// which drives the Confirm/Cancel button state.
func ConfirmedEventIDs(participants []models.EventParticipant, userID uint) map[uint]bool {
	ids := make(map[uint]bool)
	if userID == 0 {
		return ids
	}
	for i := range participants {
		p := &participants[i]
		if p.UserID == userID && p.Status == models.ParticipantConfirmado {
			ids[p.EventID] = true
		}
	}
	return ids
}
