package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Les interactions portent les permissions résolues du membre; pour les
// events vocaux (pas d'interaction) on recalcule depuis les rôles.

func interactionIsAdmin(ic *discordgo.InteractionCreate) bool {
	return ic.Member != nil && ic.Member.Permissions&discordgo.PermissionAdministrator != 0
}

func interactionCanManageGuild(ic *discordgo.InteractionCreate) bool {
	return interactionIsAdmin(ic) ||
		(ic.Member != nil && ic.Member.Permissions&discordgo.PermissionManageGuild != 0)
}

func (r *Router) roleNames(guildID string) map[string]string {
	roles, err := r.s.GuildRoles(guildID)
	if err != nil {
		r.log.Warnw("GuildRoles", "err", err)
		return nil
	}
	byID := make(map[string]string, len(roles))
	for _, ro := range roles {
		byID[ro.ID] = ro.Name
	}
	return byID
}

// interactionIsOrga: Orga PP ou Admin.
func (r *Router) interactionIsOrga(ic *discordgo.InteractionCreate) bool {
	if interactionIsAdmin(ic) {
		return true
	}
	byID := r.roleNames(ic.GuildID)
	for _, rid := range ic.Member.Roles {
		if strings.EqualFold(byID[rid], OrgaRoleName) {
			return true
		}
	}
	return false
}

func (r *Router) requireOrga(s *discordgo.Session, ic *discordgo.InteractionCreate, log *zap.SugaredLogger) bool {
	if r.interactionIsOrga(ic) {
		return true
	}
	ReplyEphemeral(s, ic, log, "🔒 Réservé aux **Orga PP** / Admin.")
	return false
}

func (r *Router) requireManageGuild(s *discordgo.Session, ic *discordgo.InteractionCreate, log *zap.SugaredLogger) bool {
	if interactionCanManageGuild(ic) {
		return true
	}
	ReplyEphemeral(s, ic, log, "🔒 Permission **Gérer le serveur** requise.")
	return false
}

func (r *Router) member(guildID, userID string) *discordgo.Member {
	if m, err := r.s.State.Member(guildID, userID); err == nil && m != nil {
		return m
	}
	m, err := r.s.GuildMember(guildID, userID)
	if err != nil {
		return nil
	}
	return m
}

// memberIsAdmin recompose le bit Administrator depuis les rôles (events voix).
func (r *Router) memberIsAdmin(guildID, userID string) bool {
	m := r.member(guildID, userID)
	if m == nil {
		return false
	}
	roles, err := r.s.GuildRoles(guildID)
	if err != nil {
		return false
	}
	byID := make(map[string]*discordgo.Role, len(roles))
	for _, ro := range roles {
		byID[ro.ID] = ro
	}
	for _, rid := range m.Roles {
		if ro, ok := byID[rid]; ok && ro.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}
	return false
}

// memberIsStaff: créateur géré ailleurs; ici Orga PP ou Admin.
func (r *Router) memberIsStaff(guildID, userID string) bool {
	if r.memberIsAdmin(guildID, userID) {
		return true
	}
	m := r.member(guildID, userID)
	if m == nil {
		return false
	}
	byID := r.roleNames(guildID)
	for _, rid := range m.Roles {
		if strings.EqualFold(byID[rid], OrgaRoleName) {
			return true
		}
	}
	return false
}
