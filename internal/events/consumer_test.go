package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathima-sithara/social-api/internal/events"
	"github.com/fathima-sithara/social-api/internal/models"
)

func TestSocialEventNotificationMapping(t *testing.T) {
	in, ok := events.SocialEvent{Type: "follow", ActorID: "bob", TargetID: "alice"}.Notification()
	require.True(t, ok)
	assert.Equal(t, models.NotifFollow, in.Type)
	assert.Equal(t, "alice", in.Recipient)
	assert.Equal(t, "bob", in.Sender)
	assert.Equal(t, "started following you.", in.Text)
	assert.Empty(t, in.PostID)

	in, ok = events.SocialEvent{Type: "like", ActorID: "bob", TargetID: "alice", PostID: "p1"}.Notification()
	require.True(t, ok)
	assert.Equal(t, models.NotifLike, in.Type)
	assert.Equal(t, "p1", in.PostID)
	assert.Equal(t, "liked your post.", in.Text)

	in, ok = events.SocialEvent{Type: "comment", ActorID: "bob", TargetID: "alice", PostID: "p1", Text: "commented: nice"}.Notification()
	require.True(t, ok)
	assert.Equal(t, models.NotifComment, in.Type)
	assert.Equal(t, "commented: nice", in.Text, "explicit text wins over the default")
}

func TestSocialEventUnknownType(t *testing.T) {
	_, ok := events.SocialEvent{Type: "poke", ActorID: "bob", TargetID: "alice"}.Notification()
	assert.False(t, ok)
}
