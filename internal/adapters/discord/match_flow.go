package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/kaermorhen/wolfbot/internal/app/service"
	"github.com/kaermorhen/wolfbot/internal/infra/metrics"
)

func (r *Router) memberInVoice(guildID, userID string) bool {
	vs, err := r.s.State.VoiceState(guildID, userID)
	return err == nil && vs != nil && vs.ChannelID != ""
}

// startMatch: pop des 10 premiers, équilibrage glouton par peak ELO, rôles
// d'équipe, déplacement des joueurs déjà en vocal vers Attaque/Défense.
func (r *Router) startMatch(s *discordgo.Session, ic *discordgo.InteractionCreate, slot int, log *zap.SugaredLogger) {
	if !r.queues.Ready(slot) {
		ReplyEphemeral(s, ic, log, fmt.Sprintf("Il manque **%d** joueurs.", r.queues.Need(slot)))
		return
	}

	ids := r.queues.PopTen(slot)
	players := make([]service.Player, 0, len(ids))
	for _, id := range ids {
		_, v := r.memberBestRank(ic.GuildID, id)
		players = append(players, service.Player{ID: id, Skill: v})
	}
	teamA, teamB, sumA, sumB := service.BalanceTeams(players)

	roles := r.ensureRoles(ic.GuildID)
	roleA, roleB := roles[TeamARoleName], roles[TeamBRoleName]
	_, atk, def := r.slotVoiceChannels(ic.GuildID, slot)

	assign := func(team []service.Player, roleID string, vc *discordgo.Channel) []string {
		out := make([]string, 0, len(team))
		for _, p := range team {
			out = append(out, p.ID)
			if roleID != "" {
				if err := s.GuildMemberRoleAdd(ic.GuildID, p.ID, roleID); err != nil {
					log.Debugw("rôle équipe", "user", p.ID, "err", err)
				}
			}
			// on ne force jamais la connexion: déplacés seulement s'ils sont en vocal
			if vc != nil && r.memberInVoice(ic.GuildID, p.ID) {
				if err := s.GuildMemberMove(ic.GuildID, p.ID, &vc.ID); err != nil {
					log.Debugw("move équipe", "user", p.ID, "err", err)
				}
			}
		}
		return out
	}
	idsA := assign(teamA, roleA, atk)
	idsB := assign(teamB, roleB, def)

	metrics.MatchesStarted.Inc()
	log.Infow("match lancé", "slot", slot, "sumA", sumA, "sumB", sumB)

	em := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Match lancé — Préparation %d", slot),
		Description: "Équilibrage par peak ELO.",
		Color:       colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: TeamARoleName, Value: mentionList(idsA)},
			{Name: TeamBRoleName, Value: mentionList(idsB)},
		},
	}
	if _, err := s.ChannelMessageSendEmbed(ic.ChannelID, em); err != nil {
		log.Warnw("annonce match", "err", err)
	}
	ReplyEphemeral(s, ic, log, "🚀 Partie lancée.")

	if ic.Message != nil {
		r.editPanelMessage(ic.ChannelID, ic.Message.ID, r.panelEmbed(slot), panelComponents(slot))
	}
}

// endMatch: retire les rôles d'équipe partout, vide la file, remet le scrutin
// à zéro et nettoie le salon-partie (les panneaux épinglés restent).
func (r *Router) endMatch(s *discordgo.Session, ic *discordgo.InteractionCreate, slot int, log *zap.SugaredLogger) {
	roles := r.ensureRoles(ic.GuildID)
	roleA, roleB := roles[TeamARoleName], roles[TeamBRoleName]

	removed := 0
	after := ""
	for {
		members, err := s.GuildMembers(ic.GuildID, after, 1000)
		if err != nil || len(members) == 0 {
			break
		}
		for _, m := range members {
			after = m.User.ID
			touched := false
			for _, rid := range m.Roles {
				if rid == roleA || rid == roleB {
					if err := s.GuildMemberRoleRemove(ic.GuildID, m.User.ID, rid); err != nil {
						log.Debugw("retrait rôle équipe", "user", m.User.ID, "err", err)
					} else {
						touched = true
					}
				}
			}
			if touched {
				removed++
			}
		}
		if len(members) < 1000 {
			break
		}
	}

	r.queues.Clear(slot)
	r.votes.Reset(slot)

	if chat := r.slotTextChannel(ic.GuildID, slot); chat != nil {
		r.purgeChannel(chat.ID, 500)
		r.ensureQueuePanel(chat.ID, slot)
		r.ensureMapvotePanel(chat.ID, slot)
	}

	ReplyEphemeral(s, ic, log, fmt.Sprintf("Rôles retirés de **%d** membres. File réinitialisée. Salon-partie nettoyé.", removed))
	if ic.Message != nil {
		r.editPanelMessage(ic.ChannelID, ic.Message.ID, r.panelEmbed(slot), panelComponents(slot))
	}
}
