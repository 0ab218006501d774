package discord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserLimiterBurstThenBlocks(t *testing.T) {
	l := newUserLimiter(time.Hour, 2)

	assert.True(t, l.Allow("u1"))
	assert.True(t, l.Allow("u1"))
	assert.False(t, l.Allow("u1"), "burst épuisé")
}

func TestUserLimiterIsolatesUsers(t *testing.T) {
	l := newUserLimiter(time.Hour, 1)

	assert.True(t, l.Allow("u1"))
	assert.False(t, l.Allow("u1"))
	assert.True(t, l.Allow("u2"), "chaque user a son bucket")
}

func TestUserLimiterRefills(t *testing.T) {
	l := newUserLimiter(10*time.Millisecond, 1)

	assert.True(t, l.Allow("u1"))
	assert.False(t, l.Allow("u1"))
	time.Sleep(30 * time.Millisecond)
	assert.True(t, l.Allow("u1"))
}
