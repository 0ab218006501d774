package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// /setup est relançable: tout est "find or create" par nom, les panneaux et
// messages épinglés sont posés au plus une fois. Relancer répare la dérive
// (rôle supprimé, salon manquant) sans rien dupliquer.

var keyRolePerms = map[string]int64{
	"Admin":        discordgo.PermissionAdministrator,
	OrgaRoleName:   discordgo.PermissionVoiceMoveMembers | discordgo.PermissionVoiceMuteMembers | discordgo.PermissionVoiceDeafenMembers,
	"Staff":        0,
	"Joueur":       0,
	"Spectateur":   0,
	TeamARoleName:  0,
	TeamBRoleName:  0,
}

// ensureRoles crée/répare les rôles clés, renvoie name → id.
func (r *Router) ensureRoles(guildID string) map[string]string {
	out := map[string]string{}
	roles, err := r.s.GuildRoles(guildID)
	if err != nil {
		r.log.Warnw("GuildRoles", "err", err)
		return out
	}
	byName := make(map[string]*discordgo.Role, len(roles))
	for _, ro := range roles {
		byName[ro.Name] = ro
	}

	for name, perms := range keyRolePerms {
		if ro, ok := byName[name]; ok {
			if ro.Permissions != perms {
				p := perms
				if _, err := r.s.GuildRoleEdit(guildID, ro.ID, &discordgo.RoleParams{Name: name, Permissions: &p}); err != nil {
					r.log.Debugw("édition rôle", "name", name, "err", err)
				}
			}
			out[name] = ro.ID
			continue
		}
		p := perms
		ro, err := r.s.GuildRoleCreate(guildID, &discordgo.RoleParams{Name: name, Permissions: &p})
		if err != nil {
			r.log.Warnw("création rôle", "name", name, "err", err)
			continue
		}
		out[name] = ro.ID
	}
	return out
}

// ensureSecurityRoles renvoie (Non vérifié, Membre), créés au besoin.
func (r *Router) ensureSecurityRoles(guildID string) (unverifiedID, memberID string) {
	roles, err := r.s.GuildRoles(guildID)
	if err != nil {
		r.log.Warnw("GuildRoles", "err", err)
		return "", ""
	}
	for _, ro := range roles {
		switch ro.Name {
		case UnverifiedRoleName:
			unverifiedID = ro.ID
		case MemberRoleName:
			memberID = ro.ID
		}
	}
	if unverifiedID == "" {
		if ro, err := r.s.GuildRoleCreate(guildID, &discordgo.RoleParams{Name: UnverifiedRoleName}); err == nil {
			unverifiedID = ro.ID
		} else {
			r.log.Warnw("création rôle non vérifié", "err", err)
		}
	}
	if memberID == "" {
		if ro, err := r.s.GuildRoleCreate(guildID, &discordgo.RoleParams{Name: MemberRoleName}); err == nil {
			memberID = ro.ID
		} else {
			r.log.Warnw("création rôle membre", "err", err)
		}
	}
	return unverifiedID, memberID
}

func (r *Router) ensureCategory(guildID, name string, items []channelSpec) *discordgo.Channel {
	chs := r.guildChannels(guildID)
	cat := findCategory(chs, name)
	if cat == nil {
		var err error
		cat, err = r.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
			Name: name,
			Type: discordgo.ChannelTypeGuildCategory,
		})
		if err != nil {
			r.log.Warnw("création catégorie", "name", name, "err", err)
			return nil
		}
	}

	existing := map[string]bool{}
	for _, ch := range chs {
		if ch.ParentID == cat.ID {
			existing[ch.Name] = true
		}
	}
	for _, it := range items {
		if existing[it.name] {
			continue
		}
		kind := discordgo.ChannelTypeGuildText
		if it.kind == "voice" {
			kind = discordgo.ChannelTypeGuildVoice
		}
		if _, err := r.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
			Name:     it.name,
			Type:     kind,
			ParentID: cat.ID,
		}); err != nil {
			r.log.Warnw("création salon", "name", it.name, "err", err)
		}
	}
	return cat
}

// lockCategory pose les overwrites de sécurité: invisible par défaut,
// visible pour Membre, et pour Non vérifié uniquement la welcome en
// lecture seule (avec les slash commands pour /verify).
func (r *Router) lockCategory(guildID string, cat *discordgo.Channel, unverifiedID, memberID string, isWelcome bool) {
	if cat == nil || unverifiedID == "" || memberID == "" {
		return
	}
	everyoneID := guildID // le rôle @everyone porte l'id de la guilde

	ows := []*discordgo.PermissionOverwrite{
		{ID: everyoneID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		{ID: memberID, Type: discordgo.PermissionOverwriteTypeRole, Allow: discordgo.PermissionViewChannel},
	}
	if isWelcome {
		ows = append(ows, &discordgo.PermissionOverwrite{
			ID:    unverifiedID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionReadMessageHistory | discordgo.PermissionUseSlashCommands,
			Deny:  discordgo.PermissionSendMessages | discordgo.PermissionAddReactions,
		})
	} else {
		ows = append(ows, &discordgo.PermissionOverwrite{
			ID:   unverifiedID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		})
	}

	if _, err := r.s.ChannelEdit(cat.ID, &discordgo.ChannelEdit{PermissionOverwrites: ows}); err != nil {
		r.log.Warnw("verrouillage catégorie", "cat", cat.Name, "err", err)
	}
}

// ensurePPVoiceStructure garantit Préparation i (limite 10) + Attaque et
// Défense (limite 5) pour chaque slot, en réparant noms et limites.
func (r *Router) ensurePPVoiceStructure(guildID string, cat *discordgo.Channel) {
	if cat == nil {
		return
	}
	for i := 1; i <= SlotCount; i++ {
		chs := r.guildChannels(guildID)
		prep := findVoiceBySlug(chs, cat.ID, fmt.Sprintf("préparation %d", i))
		if prep == nil {
			limit := PrepVoiceLimit
			if _, err := r.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
				Name:      fmt.Sprintf("Préparation %d", i),
				Type:      discordgo.ChannelTypeGuildVoice,
				ParentID:  cat.ID,
				UserLimit: limit,
			}); err != nil {
				r.log.Warnw("création préparation", "slot", i, "err", err)
				continue
			}
		} else if prep.UserLimit != PrepVoiceLimit {
			if err := r.setVoiceLimit(prep.ID, PrepVoiceLimit); err != nil {
				r.log.Debugw("limite préparation", "err", err)
			}
		}

		_, atk, def := r.slotVoiceChannels(guildID, i)
		r.ensureSideVoice(guildID, cat.ID, atk, "⚔ · Attaque")
		r.ensureSideVoice(guildID, cat.ID, def, "🛡 · Défense")
	}
}

func (r *Router) ensureSideVoice(guildID, catID string, existing *discordgo.Channel, name string) {
	if existing == nil {
		limit := SideVoiceLimit
		if _, err := r.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
			Name:      name,
			Type:      discordgo.ChannelTypeGuildVoice,
			ParentID:  catID,
			UserLimit: limit,
		}); err != nil {
			r.log.Warnw("création vocal équipe", "name", name, "err", err)
		}
		return
	}
	if existing.UserLimit != SideVoiceLimit {
		if err := r.setVoiceLimit(existing.ID, SideVoiceLimit); err != nil {
			r.log.Debugw("limite vocal équipe", "err", err)
		}
	}
}

func (r *Router) ensurePartyTextChannels(guildID string, cat *discordgo.Channel) {
	if cat == nil {
		return
	}
	chs := r.guildChannels(guildID)
	existing := map[string]bool{}
	for _, ch := range chs {
		if ch.Type == discordgo.ChannelTypeGuildText && ch.ParentID == cat.ID {
			existing[slug(ch.Name)] = true
		}
	}
	for i := 1; i <= SlotCount; i++ {
		if existing[fmt.Sprintf("salon partie %d", i)] {
			continue
		}
		if _, err := r.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
			Name:     fmt.Sprintf("• salon-partie-%d", i),
			Type:     discordgo.ChannelTypeGuildText,
			ParentID: cat.ID,
		}); err != nil {
			r.log.Warnw("création salon-partie", "slot", i, "err", err)
		}
	}
}

// ensureEntryVoice pose le channel "➕ Créer un salon" dans la catégorie PP.
func (r *Router) ensureEntryVoice(guildID string, cat *discordgo.Channel) {
	if cat == nil {
		return
	}
	chs := r.guildChannels(guildID)
	for _, ch := range chs {
		if ch.Type == discordgo.ChannelTypeGuildVoice && ch.ParentID == cat.ID && ch.Name == CreateVoiceName {
			return
		}
	}
	if _, err := r.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:     CreateVoiceName,
		Type:     discordgo.ChannelTypeGuildVoice,
		ParentID: cat.ID,
	}); err != nil {
		r.log.Warnw("création channel d'entrée", "err", err)
	}
}

// ensureRulesOnce poste + épingle un texte de règlement au plus une fois.
func (r *Router) ensureRulesOnce(channelID, text string) {
	me := r.s.State.User.ID
	firstLine := strings.SplitN(text, "\n", 2)[0]

	if pins, err := r.s.ChannelMessagesPinned(channelID); err == nil {
		for _, m := range pins {
			if m.Author != nil && m.Author.ID == me && strings.HasPrefix(m.Content, firstLine) {
				return
			}
		}
	}
	msg, err := r.s.ChannelMessageSend(channelID, text)
	if err != nil {
		r.log.Warnw("post règlement", "err", err)
		return
	}
	if err := r.s.ChannelMessagePin(channelID, msg.ID); err != nil {
		r.log.Debugw("pin règlement", "err", err)
	}
}

func (r *Router) runSetup(s *discordgo.Session, ic *discordgo.InteractionCreate, log *zap.SugaredLogger) {
	g := ic.GuildID

	r.ensureRoles(g)
	unvID, memID := r.ensureSecurityRoles(g)

	catWelcome := r.ensureCategory(g, CatWelcomeName, welcomeChannels)
	catCommu := r.ensureCategory(g, CatCommuName, commuChannels)
	catFun := r.ensureCategory(g, CatFunName, funChannels)
	catPP := r.ensureCategory(g, CatPPName, ppChannels)

	r.lockCategory(g, catWelcome, unvID, memID, true)
	for _, cat := range []*discordgo.Channel{catCommu, catFun, catPP} {
		r.lockCategory(g, cat, unvID, memID, false)
	}

	r.ensureEntryVoice(g, catPP)
	r.ensurePPVoiceStructure(g, catPP)
	r.ensurePartyTextChannels(g, catPP)

	for i := 1; i <= SlotCount; i++ {
		chat := r.slotTextChannel(g, i)
		if chat == nil {
			continue
		}
		r.ensureQueuePanel(chat.ID, i)
		r.ensureMapvotePanel(chat.ID, i)
	}

	r.ensureRankPrompt(g)

	// branding, best-effort
	if _, err := s.GuildEdit(g, &discordgo.GuildParams{Name: r.cfg.BrandName}); err != nil {
		log.Debugw("brand serveur", "err", err)
	}
	if err := s.GuildMemberNickname(g, "@me", r.cfg.BotNickname); err != nil {
		log.Debugw("brand pseudo bot", "err", err)
	}

	chs := r.guildChannels(g)
	if catWelcome != nil {
		if reg := findTextBySlug(chs, catWelcome.ID, "règlement"); reg != nil {
			r.ensureRulesOnce(reg.ID, serverRulesText)
		}
	}
	if catPP != nil {
		if reg := findTextBySlug(chs, catPP.ID, "règlement pp"); reg != nil {
			r.ensureRulesOnce(reg.ID, ppRulesText)
		}
	}

	ReplyEphemeral(s, ic, log, "✅ Setup terminé.\n"+
		"• Vérif CAPTCHA dans **🐺・bienvenue** (pas de DM)\n"+
		"• Message public de vérif supprimé après validation\n"+
		"• Non vérifiés bloqués partout ailleurs\n"+
		"• Panels 5v5 + roulette map dans `• salon-partie-1..4`\n"+
		"• Peak ELO dans `🪙・auto-rôles`\n"+
		"• Créateur de salon vocal OK (création dans 🍻・TAVERNE)")
}
