package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptchaStorePutGetDelete(t *testing.T) {
	s := NewCaptchaStore(time.Minute)
	s.Put("g", "u", &Challenge{Code: "ABC123"})

	ch, ok := s.Get("g", "u")
	require.True(t, ok)
	assert.Equal(t, "ABC123", ch.Code)

	_, ok = s.Get("g", "autre")
	assert.False(t, ok)

	s.Delete("g", "u")
	_, ok = s.Get("g", "u")
	assert.False(t, ok)
}

func TestCaptchaStoreExpiresByTTL(t *testing.T) {
	s := NewCaptchaStore(20 * time.Millisecond)
	s.Put("g", "u", &Challenge{Code: "ABC123"})

	time.Sleep(50 * time.Millisecond)
	_, ok := s.Get("g", "u")
	assert.False(t, ok, "un challenge périmé ne doit jamais ressortir")
}

func TestVerifyMsgStoreTake(t *testing.T) {
	s := NewVerifyMsgStore()
	s.Put("g", "u", MessagePointer{ChannelID: "c1", MessageID: "m1"})

	p, ok := s.Take("g", "u")
	require.True(t, ok)
	assert.Equal(t, "m1", p.MessageID)

	_, ok = s.Take("g", "u")
	assert.False(t, ok, "Take consomme le pointeur")
}
