package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/kaermorhen/wolfbot/internal/app/service"
	"github.com/kaermorhen/wolfbot/internal/infra/metrics"
)

func countOccupants(s *discordgo.Session, voiceID string) int {
	n := 0
	s.State.RLock()
	defer s.State.RUnlock()
	for _, g := range s.State.Guilds {
		for _, vs := range g.VoiceStates {
			if vs.ChannelID == voiceID {
				n++
			}
		}
	}
	return n
}

// VoiceOps implémente les ports Occupancy et Janitor du service de salons
// temporaires, par-dessus la session gateway. Construit avant le Router pour
// casser le cycle service ↔ adapter.
type VoiceOps struct {
	s   *discordgo.Session
	log *zap.SugaredLogger
}

func NewVoiceOps(s *discordgo.Session, log *zap.SugaredLogger) *VoiceOps {
	return &VoiceOps{s: s, log: log}
}

func (v *VoiceOps) Occupants(voiceID string) int {
	return countOccupants(v.s, voiceID)
}

func (v *VoiceOps) DeleteRoom(voiceID, textID string) {
	if _, err := v.s.ChannelDelete(voiceID); err != nil {
		v.log.Debugw("suppression salon vocal temporaire", "channel", voiceID, "err", err)
	}
	if textID != "" {
		if _, err := v.s.ChannelDelete(textID); err != nil {
			v.log.Debugw("suppression panneau de salon", "channel", textID, "err", err)
		}
	}
	metrics.TempRoomsDeleted.Inc()
	v.log.Infow("salon temporaire supprimé", "voice", voiceID)
}

// onMemberJoin: reset sécurité (retrait Membre, pose Non vérifié) + prompt
// CAPTCHA public dans #bienvenue. Jamais de DM.
func (r *Router) onMemberJoin(s *discordgo.Session, ev *discordgo.GuildMemberAdd) {
	if ev.User == nil || ev.User.Bot {
		return
	}
	unv, mem := r.ensureSecurityRoles(ev.GuildID)
	if mem != "" {
		if err := s.GuildMemberRoleRemove(ev.GuildID, ev.User.ID, mem); err != nil {
			r.log.Debugw("reset rôle membre à l'arrivée", "user", ev.User.ID, "err", err)
		}
	}
	if unv != "" {
		if err := s.GuildMemberRoleAdd(ev.GuildID, ev.User.ID, unv); err != nil {
			r.log.Warnw("rôle non vérifié à l'arrivée", "user", ev.User.ID, "err", err)
		}
	}
	r.sendVerifyPrompt(ev.GuildID, ev.User.ID)
}

// onVoiceStateUpdate pilote le cycle de vie des salons temporaires:
// entrée dans "➕ Créer un salon" → room; room désertée → grâce puis
// suppression; retour pendant la grâce → annulation; entrée d'un indésirable
// (blacklist, salon privé) → déconnexion.
func (r *Router) onVoiceStateUpdate(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
	if s.State.User != nil && vs.UserID == s.State.User.ID {
		return
	}
	beforeID := ""
	if vs.BeforeUpdate != nil {
		beforeID = vs.BeforeUpdate.ChannelID
	}
	afterID := vs.ChannelID
	if beforeID == afterID {
		return // mute/deafen, pas un déplacement
	}

	if beforeID != "" && r.rooms.Tracked(beforeID) && countOccupants(s, beforeID) == 0 {
		r.rooms.ScheduleDelete(beforeID)
	}

	if afterID == "" {
		return
	}

	ch, err := s.State.Channel(afterID)
	if err != nil || ch == nil {
		ch, err = s.Channel(afterID)
		if err != nil || ch == nil {
			return
		}
	}
	if ch.Name == CreateVoiceName {
		r.createTempRoom(s, vs.GuildID, vs.UserID, ch)
		return
	}

	if !r.rooms.Tracked(afterID) {
		return
	}
	r.rooms.CancelDelete(afterID)

	switch r.rooms.Access(afterID, vs.UserID, r.memberIsAdmin(vs.GuildID, vs.UserID)) {
	case service.AccessDenyBlacklist, service.AccessDenyPrivate:
		if err := s.GuildMemberMove(vs.GuildID, vs.UserID, nil); err != nil {
			r.log.Warnw("éjection du salon", "user", vs.UserID, "channel", afterID, "err", err)
		}
	}
}

// createTempRoom: paire vocal + texte de contrôle, owner déplacé dedans.
func (r *Router) createTempRoom(s *discordgo.Session, guildID, userID string, entry *discordgo.Channel) {
	m := r.member(guildID, userID)
	if m == nil {
		return
	}
	display := m.Nick
	if display == "" && m.User != nil {
		display = m.User.Username
	}

	// les rooms vivent dans la catégorie commu (repli: celle du channel d'entrée)
	parentID := entry.ParentID
	if cat := findCategory(r.guildChannels(guildID), CatCommuName); cat != nil {
		parentID = cat.ID
	}

	vc, err := s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:     "🎤 Salon de " + display,
		Type:     discordgo.ChannelTypeGuildVoice,
		ParentID: parentID,
	})
	if err != nil {
		r.log.Warnw("création salon temporaire", "owner", userID, "err", err)
		return
	}

	// le panneau de contrôle n'est visible que du créateur (et du bot)
	ctrlName := "🔧-controle-" + display
	if m.User != nil {
		ctrlName = "🔧-controle-" + m.User.Username
	}
	tc, err := s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:     strings.ToLower(ctrlName),
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: parentID,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
			{ID: userID, Type: discordgo.PermissionOverwriteTypeMember, Allow: discordgo.PermissionViewChannel | discordgo.PermissionReadMessageHistory},
			{ID: s.State.User.ID, Type: discordgo.PermissionOverwriteTypeMember, Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages},
		},
	})
	if err != nil {
		r.log.Warnw("création panneau de salon", "owner", userID, "err", err)
	}

	textID := ""
	if tc != nil {
		textID = tc.ID
	}
	r.rooms.Track(userID, vc.ID, textID)
	metrics.TempRoomsCreated.Inc()
	r.log.Infow("salon temporaire créé", "owner", userID, "voice", vc.ID)

	if err := s.GuildMemberMove(guildID, userID, &vc.ID); err != nil {
		r.log.Warnw("déplacement du créateur", "user", userID, "err", err)
	}
	if tc != nil {
		r.sendRoomPanel(tc.ID, userID, vc.ID)
	}
}

func (r *Router) sendRoomPanel(textID, ownerID, voiceID string) {
	embed := &discordgo.MessageEmbed{
		Title: "🛠 Ton salon vocal",
		Description: "<@" + ownerID + "> ce salon est à toi.\n" +
			"• **Privé** : seuls toi et ta whitelist peuvent rester\n" +
			"• **Blacklist** : éjectés même en public\n" +
			"• Salon supprimé **60s** après le départ du dernier membre",
		Color: colorBlurple,
	}
	_, err := r.s.ChannelMessageSendComplex(textID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "🔒 Privé", Style: discordgo.SecondaryButton, CustomID: roomCustomID("private", voiceID)},
				discordgo.Button{Label: "🔓 Public", Style: discordgo.SecondaryButton, CustomID: roomCustomID("public", voiceID)},
				discordgo.Button{Label: "👥 Limite", Style: discordgo.SecondaryButton, CustomID: roomCustomID("limit", voiceID)},
				discordgo.Button{Label: "📋 Listes", Style: discordgo.SecondaryButton, CustomID: roomCustomID("lists", voiceID)},
			}},
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "✅ Whitelist +", Style: discordgo.SuccessButton, CustomID: roomCustomID("wl_add", voiceID)},
				discordgo.Button{Label: "➖ Whitelist −", Style: discordgo.SecondaryButton, CustomID: roomCustomID("wl_del", voiceID)},
				discordgo.Button{Label: "⛔ Blacklist +", Style: discordgo.DangerButton, CustomID: roomCustomID("bl_add", voiceID)},
				discordgo.Button{Label: "➖ Blacklist −", Style: discordgo.SecondaryButton, CustomID: roomCustomID("bl_del", voiceID)},
			}},
		},
	})
	if err != nil {
		r.log.Warnw("envoi panneau de salon", "err", err)
	}
}
