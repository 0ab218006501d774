package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollMapNeverRepeatsExcluded(t *testing.T) {
	for i := 0; i < 200; i++ {
		got := RollMap("Ascent")
		assert.NotEqual(t, "Ascent", got)
		assert.Contains(t, Maps, got)
	}
}

func TestRollMapNoExclusion(t *testing.T) {
	got := RollMap("")
	assert.Contains(t, Maps, got)
}

func TestEveryMapHasSplash(t *testing.T) {
	for _, m := range Maps {
		u := MapSplashURL(m)
		assert.True(t, strings.HasPrefix(u, "https://"), "map %s", m)
		assert.NotContains(t, u, "dummyimage", "map %s doit avoir une vraie illustration", m)
	}
}

func TestMapSplashURLFallback(t *testing.T) {
	u := MapSplashURL("Carte Mystère")
	assert.Contains(t, u, "dummyimage")
	assert.NotContains(t, u, " ", "l'URL doit être échappée")
}

func TestMapSplashURLAlias(t *testing.T) {
	assert.Equal(t, MapSplashURL("Abyss"), MapSplashURL("abysse"))
}
