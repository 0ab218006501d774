package discord

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
)

var reUserID = regexp.MustCompile(`\d{15,20}`)

// parseUserID accepte un id brut ou une @mention.
func parseUserID(raw string) (string, bool) {
	m := reUserID.FindString(raw)
	return m, m != ""
}

var attackKeywords = []string{"attaque", "att", "atk"}
var defenseKeywords = []string{"défense", "defense", "def"}

// slug aplatit les noms de salons décorés d'emoji/séparateurs pour les
// comparer ("• Salon-Partie-1" → "salon partie 1").
func slug(s string) string {
	for _, sep := range []string{"・", "｜", "|", "—", "-", "•", "·"} {
		s = strings.ReplaceAll(s, sep, " ")
	}
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func hasAttack(name string) bool {
	n := slug(name)
	for _, k := range attackKeywords {
		if strings.Contains(n, k) {
			return true
		}
	}
	return false
}

func hasDefense(name string) bool {
	n := slug(name)
	for _, k := range defenseKeywords {
		if strings.Contains(n, k) {
			return true
		}
	}
	return false
}

// ---------- lecture de la topologie du serveur ----------

func (r *Router) guildChannels(guildID string) []*discordgo.Channel {
	chs, err := r.s.GuildChannels(guildID)
	if err != nil {
		r.log.Warnw("GuildChannels", "err", err)
		return nil
	}
	return chs
}

func findCategory(chs []*discordgo.Channel, name string) *discordgo.Channel {
	for _, ch := range chs {
		if ch.Type == discordgo.ChannelTypeGuildCategory && ch.Name == name {
			return ch
		}
	}
	return nil
}

// findTextBySlug cherche un salon texte d'une catégorie dont le slug
// contient la cible.
func findTextBySlug(chs []*discordgo.Channel, categoryID, target string) *discordgo.Channel {
	t := strings.ToLower(target)
	for _, ch := range chs {
		if ch.Type == discordgo.ChannelTypeGuildText && ch.ParentID == categoryID && strings.Contains(slug(ch.Name), t) {
			return ch
		}
	}
	return nil
}

func findVoiceBySlug(chs []*discordgo.Channel, categoryID, target string) *discordgo.Channel {
	t := slug(target)
	for _, ch := range chs {
		if ch.Type == discordgo.ChannelTypeGuildVoice && ch.ParentID == categoryID && slug(ch.Name) == t {
			return ch
		}
	}
	return nil
}

// slotTextChannel retrouve le `• salon-partie-i` de la catégorie PP.
func (r *Router) slotTextChannel(guildID string, slot int) *discordgo.Channel {
	chs := r.guildChannels(guildID)
	cat := findCategory(chs, CatPPName)
	if cat == nil {
		return nil
	}
	return findTextBySlug(chs, cat.ID, fmt.Sprintf("salon partie %d", slot))
}

// slotVoiceChannels retrouve (Préparation i, Attaque, Défense) en bornant la
// fenêtre entre Préparation i et la suivante (ordre de position).
func (r *Router) slotVoiceChannels(guildID string, slot int) (prep, atk, def *discordgo.Channel) {
	chs := r.guildChannels(guildID)
	cat := findCategory(chs, CatPPName)
	if cat == nil {
		return nil, nil, nil
	}
	var vcs []*discordgo.Channel
	for _, ch := range chs {
		if ch.Type == discordgo.ChannelTypeGuildVoice && ch.ParentID == cat.ID {
			vcs = append(vcs, ch)
		}
	}
	sortByPosition(vcs)

	prepIdx := -1
	for i, vc := range vcs {
		if slug(vc.Name) == fmt.Sprintf("préparation %d", slot) {
			prepIdx = i
			break
		}
	}
	if prepIdx < 0 {
		return nil, nil, nil
	}
	nextIdx := len(vcs)
	for i := prepIdx + 1; i < len(vcs); i++ {
		if strings.HasPrefix(slug(vcs[i].Name), "préparation ") {
			nextIdx = i
			break
		}
	}
	for _, vc := range vcs[prepIdx+1 : nextIdx] {
		if atk == nil && hasAttack(vc.Name) {
			atk = vc
		}
		if def == nil && hasDefense(vc.Name) {
			def = vc
		}
	}
	return vcs[prepIdx], atk, def
}

func sortByPosition(chs []*discordgo.Channel) {
	for i := 1; i < len(chs); i++ {
		for j := i; j > 0 && chs[j-1].Position > chs[j].Position; j-- {
			chs[j-1], chs[j] = chs[j], chs[j-1]
		}
	}
}

// welcomeChannel renvoie le #bienvenue (ou le premier texte de la catégorie).
func (r *Router) welcomeChannel(guildID string) *discordgo.Channel {
	chs := r.guildChannels(guildID)
	cat := findCategory(chs, CatWelcomeName)
	if cat == nil {
		return nil
	}
	if ch := findTextBySlug(chs, cat.ID, "bienvenue"); ch != nil {
		return ch
	}
	for _, ch := range chs {
		if ch.Type == discordgo.ChannelTypeGuildText && ch.ParentID == cat.ID {
			return ch
		}
	}
	return nil
}

func mentionList(ids []string) string {
	if len(ids) == 0 {
		return "—"
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = "<@" + id + ">"
	}
	return strings.Join(out, ", ")
}
