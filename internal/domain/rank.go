package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Échelle Valorant: neuf tiers ordonnés, 3 divisions sauf Radiant.
type Tier struct {
	Key   string
	Label string
	Divs  int
}

var Tiers = []Tier{
	{"iron", "Iron", 3},
	{"bronze", "Bronze", 3},
	{"silver", "Silver", 3},
	{"gold", "Gold", 3},
	{"platinum", "Platinum", 3},
	{"diamond", "Diamond", 3},
	{"ascendant", "Ascendant", 3},
	{"immortal", "Immortal", 3},
	{"radiant", "Radiant", 1},
}

var tierIndex = func() map[string]int {
	m := make(map[string]int, len(Tiers))
	for i, t := range Tiers {
		m[t.Key] = i
	}
	return m
}()

// alias FR + abréviations usuelles
var tierAliases = map[string]string{
	"argent": "silver", "or": "gold", "platine": "platinum", "diamant": "diamond",
	"plat": "platinum", "dia": "diamond", "asc": "ascendant", "imm": "immortal",
	"imo": "immortal", "rad": "radiant", "gld": "gold", "silv": "silver",
	"bron": "bronze", "unrank": "iron",
}

var romanDivs = map[string]int{"i": 1, "ii": 2, "iii": 3}

// RoleColors couleurs des rôles de rang côté Discord.
var RoleColors = map[string]int{
	"Iron": 0x7A7A7A, "Bronze": 0x8C5A3C, "Silver": 0xA7B4C0, "Gold": 0xD4AF37,
	"Platinum": 0x47C1B2, "Diamond": 0x5EC1FF, "Ascendant": 0x6AD16A,
	"Immortal": 0xB45FFF, "Radiant": 0xFFF26B,
}

// NormalizeRank parse une déclaration libre ("asc 1", "silver-2", "Radiant")
// vers le label canonique ("Ascendant 1"). Retourne "" si le tier est inconnu.
func NormalizeRank(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return ""
	}
	tier := parts[0]
	if canon, ok := tierAliases[tier]; ok {
		tier = canon
	}
	idx, ok := tierIndex[tier]
	if !ok {
		return ""
	}
	t := Tiers[idx]
	if t.Divs == 1 {
		return t.Label
	}
	div := 1
	if len(parts) >= 2 {
		if n, err := strconv.Atoi(parts[1]); err == nil {
			div = n
		} else if n, ok := romanDivs[parts[1]]; ok {
			div = n
		}
	}
	if div < 1 {
		div = 1
	}
	if div > t.Divs {
		div = t.Divs
	}
	return fmt.Sprintf("%s %d", t.Label, div)
}

// RankValue score ordinal d'un label: tierIndex*100 + round(div/divs*100).
// Strictement croissant entre tiers et, dans un tier, entre divisions.
// Label inconnu → 0.
func RankValue(label string) int {
	if label == "" {
		return 0
	}
	s := strings.ToLower(label)
	for i, t := range Tiers {
		if !strings.Contains(s, strings.ToLower(t.Label)) {
			continue
		}
		div := 1
		if t.Divs > 1 {
			// premier token numérique = division, comme dans les labels
			// produits par NormalizeRank ("Gold 2")
			for _, tok := range strings.Fields(s) {
				if n, err := strconv.Atoi(tok); err == nil {
					div = n
					break
				}
			}
			if div < 1 {
				div = 1
			}
			if div > t.Divs {
				div = t.Divs
			}
		}
		return i*100 + int(float64(div)/float64(t.Divs)*100+0.5)
	}
	return 0
}

// IsRankRoleName dit si un nom de rôle Discord correspond à un tier connu.
func IsRankRoleName(name string) bool {
	n := strings.ToLower(name)
	for _, t := range Tiers {
		if strings.Contains(n, strings.ToLower(t.Label)) {
			return true
		}
	}
	return false
}
