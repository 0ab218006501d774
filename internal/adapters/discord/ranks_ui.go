package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/kaermorhen/wolfbot/internal/domain"
)

// Le peak ELO est déclaratif: un modal, un rôle nommé comme le rang.
// La valeur ordinale du rôle sert ensuite à l'équilibrage des équipes.

func (r *Router) ensureRankPrompt(guildID string) {
	chs := r.guildChannels(guildID)
	cat := findCategory(chs, CatWelcomeName)
	if cat == nil {
		return
	}
	ch := findTextBySlug(chs, cat.ID, "auto rôles")
	if ch == nil {
		ch = findTextBySlug(chs, cat.ID, "auto roles")
	}
	if ch == nil {
		return
	}

	me := r.s.State.User.ID
	if pins, err := r.s.ChannelMessagesPinned(ch.ID); err == nil {
		for _, m := range pins {
			if m.Author != nil && m.Author.ID == me && len(m.Components) > 0 {
				return
			}
		}
	}
	if msgs, err := r.s.ChannelMessages(ch.ID, 25, "", "", ""); err == nil {
		for _, m := range msgs {
			if m.Author != nil && m.Author.ID == me && len(m.Components) > 0 {
				return
			}
		}
	}

	msg, err := r.s.ChannelMessageSendComplex(ch.ID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "🎯 Peak ELO — Valorant",
			Description: "Clique pour déclarer ton **peak ELO** et recevoir ton rôle.",
			Color:       colorBlurple,
		}},
		Components: []discordgo.MessageComponent{discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{discordgo.Button{
				Label:    "🎯 Déclarer mon peak ELO",
				Style:    discordgo.PrimaryButton,
				CustomID: "rank:open",
			}},
		}},
	})
	if err != nil {
		r.log.Warnw("pose prompt rang", "err", err)
		return
	}
	if err := r.s.ChannelMessagePin(ch.ID, msg.ID); err != nil {
		r.log.Debugw("pin prompt rang", "err", err)
	}
}

func (r *Router) handleRankOpen(s *discordgo.Session, ic *discordgo.InteractionCreate, log *zap.SugaredLogger) {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "rank:modal",
			Title:    "Déclare ton peak ELO (VALORANT)",
			Components: []discordgo.MessageComponent{discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{discordgo.TextInput{
					CustomID:    "valeur",
					Label:       "Ex: Silver 1, Asc 1, Immortal 2, Radiant",
					Style:       discordgo.TextInputShort,
					Placeholder: "asc 1",
					Required:    true,
					MaxLength:   32,
				}},
			}},
		},
	})
	if err != nil {
		log.Warnw("ouverture modal rang", "err", err)
	}
}

func (r *Router) handleRankSubmit(s *discordgo.Session, ic *discordgo.InteractionCreate, raw string, log *zap.SugaredLogger) {
	display := domain.NormalizeRank(raw)
	if display == "" {
		_ = RespondEphemeral(s, ic, log, "Format invalide. Ex: `Silver 1`, `Asc 1`, `Radiant`.")
		return
	}
	r.applyRankRole(ic.GuildID, ic.Member.User.ID, display)
	_ = RespondEphemeral(s, ic, log, "✅ Peak enregistré : **"+display+"**")
}

// applyRankRole remplace les rôles de rang du membre par celui déclaré,
// en créant le rôle coloré au besoin.
func (r *Router) applyRankRole(guildID, userID, display string) {
	roles, err := r.s.GuildRoles(guildID)
	if err != nil {
		r.log.Warnw("GuildRoles", "err", err)
		return
	}
	m := r.member(guildID, userID)
	if m == nil {
		return
	}

	byID := make(map[string]*discordgo.Role, len(roles))
	for _, ro := range roles {
		byID[ro.ID] = ro
	}
	for _, rid := range m.Roles {
		if ro, ok := byID[rid]; ok && domain.IsRankRoleName(ro.Name) {
			if err := r.s.GuildMemberRoleRemove(guildID, userID, rid); err != nil {
				r.log.Debugw("retrait ancien rang", "err", err)
			}
		}
	}

	var target *discordgo.Role
	for _, ro := range roles {
		if ro.Name == display {
			target = ro
			break
		}
	}
	if target == nil {
		base := strings.Fields(display)[0]
		color := domain.RoleColors[base]
		if color == 0 {
			color = colorBlurple
		}
		target, err = r.s.GuildRoleCreate(guildID, &discordgo.RoleParams{Name: display, Color: &color})
		if err != nil {
			r.log.Warnw("création rôle de rang", "name", display, "err", err)
			return
		}
	}
	if err := r.s.GuildMemberRoleAdd(guildID, userID, target.ID); err != nil {
		r.log.Warnw("ajout rôle de rang", "err", err)
	}
}

// memberBestRank renvoie (label, valeur) du meilleur rôle de rang du membre.
func (r *Router) memberBestRank(guildID, userID string) (string, int) {
	m := r.member(guildID, userID)
	if m == nil {
		return "", 0
	}
	byID := r.roleNames(guildID)
	best, bestV := "", 0
	for _, rid := range m.Roles {
		name := byID[rid]
		if domain.IsRankRoleName(name) {
			if v := domain.RankValue(name); v > bestV {
				best, bestV = name, v
			}
		}
	}
	return best, bestV
}
