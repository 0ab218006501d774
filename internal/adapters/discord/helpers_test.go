package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	cases := []struct{ in, want string }{
		{"• Salon-Partie-1", "salon partie 1"},
		{"🛡️・contrats-pp", "🛡️ contrats pp"},
		{"Préparation 2", "préparation 2"},
		{"⚔ · Attaque", "⚔ attaque"},
		{"  DOUBLE   espaces  ", "double espaces"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, slug(c.in), "entrée %q", c.in)
	}
}

func TestAttackDefenseDetection(t *testing.T) {
	assert.True(t, hasAttack("⚔ · Attaque"))
	assert.True(t, hasAttack("ATK team"))
	assert.False(t, hasAttack("🛡 · Défense"))

	assert.True(t, hasDefense("🛡 · Défense"))
	assert.True(t, hasDefense("defense"))
	assert.False(t, hasDefense("⚔ · Attaque"))
}

func TestParseUserID(t *testing.T) {
	id, ok := parseUserID("<@123456789012345678>")
	assert.True(t, ok)
	assert.Equal(t, "123456789012345678", id)

	id, ok = parseUserID("123456789012345678")
	assert.True(t, ok)
	assert.Equal(t, "123456789012345678", id)

	_, ok = parseUserID("pas un id")
	assert.False(t, ok)
	_, ok = parseUserID("1234")
	assert.False(t, ok)
}

func TestMentionList(t *testing.T) {
	assert.Equal(t, "—", mentionList(nil))
	assert.Equal(t, "<@1>, <@2>", mentionList([]string{"1", "2"}))
}
