package relationship_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fathima-sithara/social-api/internal/models"
	"github.com/fathima-sithara/social-api/internal/relationship"
)

func TestDecideInitialStatus(t *testing.T) {
	cases := []struct {
		name      string
		following []string
		followers []string
		want      models.ConversationStatus
	}{
		{"mutual follow", []string{"bob"}, []string{"bob"}, models.StatusAccepted},
		{"viewer follows only", []string{"bob"}, nil, models.StatusPending},
		{"target follows only", nil, []string{"bob"}, models.StatusPending},
		{"strangers", nil, nil, models.StatusPending},
		{"mutual among others", []string{"x", "bob", "y"}, []string{"z", "bob"}, models.StatusAccepted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := relationship.DecideInitialStatus(tc.following, tc.followers, "alice", "bob")
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecideInitialStatusFiltersBlankIDs(t *testing.T) {
	// a blank entry in either set must never satisfy the membership test
	got := relationship.DecideInitialStatus([]string{""}, []string{""}, "alice", "")
	assert.Equal(t, models.StatusPending, got)

	got = relationship.DecideInitialStatus([]string{"", "bob"}, []string{"bob", ""}, "alice", "bob")
	assert.Equal(t, models.StatusAccepted, got)
}
