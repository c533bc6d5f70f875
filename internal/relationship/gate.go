// Package relationship decides the initial acceptance state of a new
// conversation from the two users' follow sets. It is pure: no store access,
// no clock.
package relationship

import "github.com/fathima-sithara/social-api/internal/models"

// DecideInitialStatus returns StatusAccepted when the viewer and the target
// follow each other, StatusPending otherwise. Blank entries in the follow
// sets never satisfy the membership test.
func DecideInitialStatus(viewerFollowing, viewerFollowers []string, viewerID, targetID string) models.ConversationStatus {
	if viewerID == "" || targetID == "" {
		return models.StatusPending
	}
	if contains(viewerFollowing, targetID) && contains(viewerFollowers, targetID) {
		return models.StatusAccepted
	}
	return models.StatusPending
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == "" {
			continue
		}
		if v == id {
			return true
		}
	}
	return false
}
