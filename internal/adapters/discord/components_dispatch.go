// Dispatch des clics de composants (boutons). Les custom_id typés décident
// de la route; un rate-limit par utilisateur absorbe le spam de clics.
package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/kaermorhen/wolfbot/internal/app/service"
)

func (r *Router) handleComponent(s *discordgo.Session, ic *discordgo.InteractionCreate, log *zap.SugaredLogger) {
	cid := ic.MessageComponentData().CustomID
	uid := ic.Member.User.ID
	log.Infow("composant", "custom_id", cid)

	if !r.clickLimiter.Allow(uid) {
		_ = RespondEphemeral(s, ic, log, "⏳ Doucement… réessaie dans un instant.")
		return
	}

	if id, ok := parseCaptchaID(cid); ok {
		switch id.Action {
		case "start":
			r.handleCaptchaStart(s, ic, id, log)
		case "answer":
			r.handleCaptchaAnswer(s, ic, id, log)
		}
		return
	}

	if id, ok := parseSlotID(cid); ok {
		switch id.Kind {
		case "panel":
			r.handlePanelButton(s, ic, id, log)
		case "mapvote":
			r.handleMapvoteButton(s, ic, id, log)
		}
		return
	}

	if cid == "rank:open" {
		r.handleRankOpen(s, ic, log)
		return
	}

	if id, ok := parseRoomID(cid); ok {
		r.handleRoomButton(s, ic, id, log)
		return
	}

	log.Debugw("composant inconnu", "custom_id", cid)
}

// handlePanelButton: boutons du panneau de file 5v5.
func (r *Router) handlePanelButton(s *discordgo.Session, ic *discordgo.InteractionCreate, id slotID, log *zap.SugaredLogger) {
	uid := ic.Member.User.ID
	_ = DeferEphemeral(s, ic, log)

	switch id.Action {

	case "join":
		if r.queues.Join(id.Slot, uid) {
			n := len(r.queues.Snapshot(id.Slot))
			ReplyEphemeral(s, ic, log, fmt.Sprintf("✅ Tu es dans la file (**%d/%d**).", n, service.MatchSize))
		} else {
			ReplyEphemeral(s, ic, log, "Tu es déjà dans la file.")
		}

	case "leave":
		if r.queues.Leave(id.Slot, uid) {
			ReplyEphemeral(s, ic, log, "🚪 Tu as quitté la file.")
		} else {
			ReplyEphemeral(s, ic, log, "Tu n'étais pas dans la file.")
		}

	case "start":
		if !r.requireOrga(s, ic, log) {
			return
		}
		r.startMatch(s, ic, id.Slot, log)
		return // startMatch réédite lui-même le panneau

	case "end":
		if !r.requireOrga(s, ic, log) {
			return
		}
		r.endMatch(s, ic, id.Slot, log)
		return

	default:
		return
	}

	if ic.Message != nil {
		r.editPanelMessage(ic.ChannelID, ic.Message.ID, r.panelEmbed(id.Slot), panelComponents(id.Slot))
	}
}

// handleMapvoteButton: scrutin oui/non + reroll Orga.
func (r *Router) handleMapvoteButton(s *discordgo.Session, ic *discordgo.InteractionCreate, id slotID, log *zap.SugaredLogger) {
	uid := ic.Member.User.ID
	_ = DeferEphemeral(s, ic, log)

	var snap service.BallotSnapshot
	switch id.Action {

	case "yes", "no":
		var out service.VoteOutcome
		out, snap = r.votes.Vote(id.Slot, uid, id.Action == "yes")
		switch out {
		case service.VoteAlreadyLocked:
			ReplyEphemeral(s, ic, log, "La map est déjà **verrouillée**.")
		case service.VoteDuplicate:
			ReplyEphemeral(s, ic, log, "Tu as déjà voté pour cette map.")
		case service.VoteLockedNow:
			ReplyEphemeral(s, ic, log, fmt.Sprintf("✅ **%s** verrouillée !", snap.Map))
		case service.VoteRerolled:
			ReplyEphemeral(s, ic, log, fmt.Sprintf("🎲 Map refusée, nouvelle proposition : **%s**.", snap.Map))
		default:
			ReplyEphemeral(s, ic, log, "🗳️ Vote enregistré.")
		}

	case "reroll":
		if !r.requireOrga(s, ic, log) {
			return
		}
		snap = r.votes.Reroll(id.Slot)
		ReplyEphemeral(s, ic, log, fmt.Sprintf("🎲 Nouvelle map : **%s**.", snap.Map))

	default:
		return
	}

	if ic.Message != nil {
		r.editPanelMessage(ic.ChannelID, ic.Message.ID, mapvoteEmbed(id.Slot, snap), mapvoteComponents(id.Slot))
	}
}
