package discord

// Toute la topologie du serveur: catégories, salons, rôles. Le /setup ne
// crée que ce qui manque, donc ces noms sont aussi les clés d'idempotence.

const (
	SlotCount      = 4
	PrepVoiceLimit = 10
	SideVoiceLimit = 5

	CreateVoiceName = "➕ Créer un salon"

	CatWelcomeName = "🐺・KAER MORHEN"
	CatCommuName   = "🍻・TAVERNE"
	CatFunName     = "🎻・BALLADES"
	CatPPName      = "🛡️・CONTRATS (P-P)"

	UnverifiedRoleName = "Non vérifié"
	MemberRoleName     = "Membre"
	OrgaRoleName       = "Orga PP"
	TeamARoleName      = "Équipe Attaque"
	TeamBRoleName      = "Équipe Défense"
)

type channelSpec struct {
	name string
	kind string // "text" | "voice"
}

var welcomeChannels = []channelSpec{
	{"🐺・bienvenue", "text"},
	{"🕯️・règlement", "text"},
	{"📣・annonces", "text"},
	{"🏰・table-ronde", "text"},
	{"🆘・support", "text"},
	{"🍷・passiflore", "text"},
	{"🪙・auto-rôles", "text"},
}

var commuChannels = []channelSpec{
	{"🍻・taverne", "text"},
	{"🖼️・médias", "text"},
	{"🎯・scrims", "text"},
	{"🏆・ranked", "text"},
	{"🧩・commandes", "text"},
	{"💡・suggestions", "text"},
	{"🔗・vos-réseaux", "text"},
}

var funChannels = []channelSpec{
	{"🎭・conte-auteurs", "text"},
	{"🎨・fan-art", "text"},
}

var ppChannels = []channelSpec{
	{"🛡️・contrats-pp", "text"},
	{"📜・règlement-pp", "text"},
	{"🧭・demande-orga-pp", "text"},
}

const serverRulesText = `**RÈGLEMENT DU SERVEUR — ARÈNE DE KAER MORHEN**
Respect, jeu propre, pas de triche/ghost, pubs limitées, décisions Orga PP/Staff priment.
Le détail des règles PP est dans ` + "`📜・règlement-pp`" + `. Bon jeu 🐺 !`

const ppRulesText = `**RÈGLEMENT PARTIES PERSO — VALORANT**
Fair-play, pas de triche, vocal Attaque/Défense, party-code privé, sanctions graduées.`
