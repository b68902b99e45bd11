package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForwardWalk(t *testing.T) {
	for i, status := range StatusOrder {
		if i == len(StatusOrder)-1 {
			assert.Equal(t, status, status.Next(), "terminal status must not advance")
			continue
		}
		next := StatusOrder[i+1]
		assert.Equal(t, next, status.Next())
		assert.True(t, status.CanTransition(next), "%s -> %s must be allowed", status, next)
	}
}

func TestStatusNoSkipNoBackward(t *testing.T) {
	assert.False(t, StatusDraftInfos.CanTransition(StatusDraftItems))
	assert.False(t, StatusDraftInfos.CanTransition(StatusSubmitted))
	assert.False(t, StatusDraftInfos.CanTransition(StatusSent))
	assert.False(t, StatusDraftMatrix.CanTransition(StatusDraftInfos))
	assert.False(t, StatusSubmitted.CanTransition(StatusDraftItems))
	assert.False(t, StatusDraftInfos.CanTransition(StatusDraftInfos))
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusSent.IsTerminal())
	for _, status := range StatusOrder[:len(StatusOrder)-1] {
		assert.False(t, status.IsTerminal(), "%s must not be terminal", status)
		assert.True(t, status.CanTransition(status.Next()))
	}
	for _, target := range StatusOrder {
		assert.False(t, StatusSent.CanTransition(target), "Sent -> %s must be refused", target)
	}
}

func TestStatusDraftPredicate(t *testing.T) {
	assert.True(t, StatusDraftInfos.IsDraft())
	assert.True(t, StatusDraftMatrix.IsDraft())
	assert.True(t, StatusDraftItems.IsDraft())
	assert.False(t, StatusSubmitted.IsDraft())
	assert.False(t, StatusSent.IsDraft())
}

func TestStatusValid(t *testing.T) {
	for _, status := range StatusOrder {
		assert.True(t, status.Valid())
	}
	assert.False(t, SampleStatus("Draft").Valid())
	assert.False(t, SampleStatus("").Valid())
}
