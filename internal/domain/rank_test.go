package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRank(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"silver 1", "Silver 1"},
		{"Silver-2", "Silver 2"},
		{"silver_3", "Silver 3"},
		{"asc 1", "Ascendant 1"},
		{"ASC II", "Ascendant 2"},
		{"immortal iii", "Immortal 3"},
		{"radiant", "Radiant"},
		{"radiant 2", "Radiant"}, // division ignorée sur un tier mono-division
		{"argent 2", "Silver 2"}, // alias FR
		{"or 1", "Gold 1"},
		{"platine", "Platinum 1"}, // division manquante → 1
		{"diamant 3", "Diamond 3"},
		{"gold 9", "Gold 3"},  // division clampée
		{"gold 0", "Gold 1"},  // clampée vers le bas
		{"  gold  2  ", "Gold 2"},
		{"", ""},
		{"wood 4", ""}, // tier inconnu
		{"2", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeRank(c.in), "entrée %q", c.in)
	}
}

func TestNormalizeRankIdempotent(t *testing.T) {
	for _, in := range []string{"asc 1", "silver 3", "radiant", "diamant 2"} {
		once := NormalizeRank(in)
		assert.Equal(t, once, NormalizeRank(once), "normaliser %q deux fois", in)
	}
}

func TestRankValueMonotonic(t *testing.T) {
	// la valeur doit croître strictement en parcourant toute l'échelle
	prev := -1
	for _, tier := range Tiers {
		for d := 1; d <= tier.Divs; d++ {
			label := tier.Label
			if tier.Divs > 1 {
				label = NormalizeRank(tier.Key + " " + string(rune('0'+d)))
			}
			v := RankValue(label)
			assert.Greater(t, v, prev, "label %q", label)
			prev = v
		}
	}
}

func TestRankValueAnchors(t *testing.T) {
	assert.Equal(t, 0, RankValue(""))
	assert.Equal(t, 0, RankValue("Wood 4"))
	assert.Equal(t, 33, RankValue("Iron 1"))
	assert.Equal(t, 100, RankValue("Iron 3"))
	assert.Equal(t, 900, RankValue("Radiant"))
}

func TestRankValueFirstNumericTokenIsDivision(t *testing.T) {
	// un suffixe numérique parasite ne change pas la division lue
	assert.Equal(t, RankValue("Gold 2"), RankValue("Gold 2 2023"))
	assert.Equal(t, RankValue("Silver 1"), RankValue("Silver 1 (saison 9)"))
}

func TestIsRankRoleName(t *testing.T) {
	assert.True(t, IsRankRoleName("Silver 2"))
	assert.True(t, IsRankRoleName("Radiant"))
	assert.False(t, IsRankRoleName("Orga PP"))
	assert.False(t, IsRankRoleName("Membre"))
}
