package service

import "sort"

// Player est un joueur extrait de la file avec son ordinal de rang
// (0 si aucun rôle de rang).
type Player struct {
	ID    string
	Skill int
}

// BalanceTeams répartit les joueurs en deux équipes par glouton: tri par
// skill décroissant (stable, l'ordre de pop départage les égalités) puis
// chaque joueur rejoint l'équipe au total le plus faible, égalité → équipe A.
// Les effectifs sont plafonnés à la moitié: sans ça, dix joueurs tous sans
// rang (skill 0) finiraient tous dans A. Pas optimal globalement, mais
// déterministe et suffisant pour des parties perso.
func BalanceTeams(players []Player) (teamA, teamB []Player, sumA, sumB int) {
	sorted := make([]Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Skill > sorted[j].Skill })

	half := (len(sorted) + 1) / 2
	for _, p := range sorted {
		if len(teamA) < half && (sumA <= sumB || len(teamB) >= half) {
			teamA = append(teamA, p)
			sumA += p.Skill
		} else {
			teamB = append(teamB, p)
			sumB += p.Skill
		}
	}
	return teamA, teamB, sumA, sumB
}
