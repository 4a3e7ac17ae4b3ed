package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplaintStatusTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to ComplaintStatus
		allowed  bool
	}{
		{StatusPending, StatusViewed, true},
		{StatusPending, StatusReplied, true},
		{StatusViewed, StatusReplied, true},
		{StatusViewed, StatusViewed, true},
		{StatusReplied, StatusReplied, true},
		{StatusReplied, StatusViewed, false},
		{StatusReplied, StatusPending, false},
		{StatusViewed, StatusPending, false},
		{ComplaintStatus("Bogus"), StatusViewed, false},
		{StatusPending, ComplaintStatus("Bogus"), false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestComplaintStatusValid(t *testing.T) {
	t.Parallel()

	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusViewed.Valid())
	assert.True(t, StatusReplied.Valid())
	assert.False(t, ComplaintStatus("pending").Valid())
	assert.False(t, ComplaintStatus("").Valid())
}
