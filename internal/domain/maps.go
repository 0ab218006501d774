package domain

import (
	"math/rand"
	"net/url"
	"strings"
)

// Catalogue fixe de la roulette.
var Maps = []string{
	"Ascent", "Bind", "Haven", "Split", "Lotus", "Sunset",
	"Icebox", "Breeze", "Pearl", "Fracture", "Corrode", "Abyss",
}

var mapSplash = map[string]string{
	"Haven":    "https://c-valorant-api.op.gg/Assets/Maps/2BEE0DC9-4FFE-519B-1CBD-7FBE763A6047_splash.png",
	"Corrode":  "https://c-valorant-api.op.gg/Assets/Maps/1C18AB1F-420D-0D8B-71D0-77AD3C439115_splash.png",
	"Icebox":   "https://c-valorant-api.op.gg/Assets/Maps/E2AD5C54-4114-A870-9641-8EA21279579A_splash.png",
	"Pearl":    "https://c-valorant-api.op.gg/Assets/Maps/FD267378-4D1D-484F-FF52-77821ED10DC2_splash.png",
	"Sunset":   "https://c-valorant-api.op.gg/Assets/Maps/92584FBE-486A-B1B2-9FAA-39B0F486B498_splash.png",
	"Lotus":    "https://c-valorant-api.op.gg/Assets/Maps/2FE4ED3A-450A-948B-6D6B-E89A78E680A9_splash.png",
	"Abyss":    "https://c-valorant-api.op.gg/Assets/Maps/224B0A95-48B9-F703-1BD8-67ACA101A61F_splash.png",
	"Breeze":   "https://c-valorant-api.op.gg/Assets/Maps/2FB9A4FD-47B8-4E7D-A969-74B4046EBD53_splash.png",
	"Ascent":   "https://c-valorant-api.op.gg/Assets/Maps/7EAECC1B-4337-BBF6-6AB9-04B8F06B3319_splash.png",
	"Split":    "https://c-valorant-api.op.gg/Assets/Maps/D960549E-485C-E861-8D71-AA9D1AED12A2_splash.png",
	"Fracture": "https://c-valorant-api.op.gg/Assets/Maps/B529448B-4D60-346E-E89E-00A4C527A405_splash.png",
	"Bind":     "https://c-valorant-api.op.gg/Assets/Maps/2C9D57EC-4431-9C5E-2939-8F9EF6DD5CBA_splash.png",
}

var mapAliases = map[string]string{"abysse": "Abyss", "corode": "Corrode", "ice box": "Icebox"}

// RollMap tire une map uniformément, en excluant l'éventuelle map précédente.
// Si l'exclusion vidait le pool (impossible avec 12 maps), on retombe sur
// le catalogue complet.
func RollMap(exclude string) string {
	pool := Maps
	if exclude != "" {
		pool = make([]string, 0, len(Maps)-1)
		for _, m := range Maps {
			if m != exclude {
				pool = append(pool, m)
			}
		}
		if len(pool) == 0 {
			pool = Maps
		}
	}
	return pool[rand.Intn(len(pool))]
}

// MapSplashURL renvoie l'illustration de la map (placeholder si inconnue).
func MapSplashURL(name string) string {
	key := name
	if canon, ok := mapAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		key = canon
	} else {
		key = strings.TrimSpace(name)
	}
	if u, ok := mapSplash[key]; ok {
		return u
	}
	return "https://dummyimage.com/1280x640/111827/ffffff&text=" + url.QueryEscape(name)
}
