package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/kaermorhen/wolfbot/internal/app/service"
	"github.com/kaermorhen/wolfbot/internal/domain"
)

const (
	colorBlurple = 0x5865F2
	colorGreen   = 0x2ecc71
)

func panelTitle(slot int) string   { return fmt.Sprintf("Préparation %d — File 5v5", slot) }
func mapvoteTitle(slot int) string { return fmt.Sprintf("🗺️ Roulette map — Partie %d", slot) }

func (r *Router) panelEmbed(slot int) *discordgo.MessageEmbed {
	ids := r.queues.Snapshot(slot)
	return &discordgo.MessageEmbed{
		Title:       panelTitle(slot),
		Description: "Rejoins la file et lance une partie équilibrée.",
		Color:       colorBlurple,
		Fields: []*discordgo.MessageEmbedField{{
			Name:  fmt.Sprintf("Joueurs (%d/%d)", len(ids), service.MatchSize),
			Value: mentionList(ids),
		}},
		Footer: &discordgo.MessageEmbedFooter{Text: "Boutons: Rejoindre • Quitter • Lancer • Finir"},
	}
}

func panelComponents(slot int) discordgo.MessageComponent {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{Label: "✅ Rejoindre", Style: discordgo.SuccessButton, CustomID: slotCustomID("panel", "join", slot)},
		discordgo.Button{Label: "🚪 Quitter", Style: discordgo.SecondaryButton, CustomID: slotCustomID("panel", "leave", slot)},
		discordgo.Button{Label: "🚀 Lancer la partie", Style: discordgo.PrimaryButton, CustomID: slotCustomID("panel", "start", slot)},
		discordgo.Button{Label: "🧹 Finir la partie", Style: discordgo.DangerButton, CustomID: slotCustomID("panel", "end", slot)},
	}}
}

func mapvoteEmbed(slot int, snap service.BallotSnapshot) *discordgo.MessageEmbed {
	color := colorBlurple
	footer := "Votez avec les boutons ci-dessous"
	if snap.Locked {
		color = colorGreen
		footer = "✅ Map acceptée"
	}
	return &discordgo.MessageEmbed{
		Title: mapvoteTitle(slot),
		Description: fmt.Sprintf(
			"**Map proposée :** **%s**\n\n**Votes** — ✅ Oui: **%d/%d** • ❌ Non: **%d/%d**\n*(1 vote par personne)*",
			snap.Map, snap.Yes, service.VoteAcceptThreshold, snap.No, service.VoteRejectThreshold,
		),
		Color:  color,
		Image:  &discordgo.MessageEmbedImage{URL: domain.MapSplashURL(snap.Map)},
		Footer: &discordgo.MessageEmbedFooter{Text: footer},
	}
}

func mapvoteComponents(slot int) discordgo.MessageComponent {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{Label: "✅ Oui", Style: discordgo.SuccessButton, CustomID: slotCustomID("mapvote", "yes", slot)},
		discordgo.Button{Label: "❌ Non", Style: discordgo.DangerButton, CustomID: slotCustomID("mapvote", "no", slot)},
		discordgo.Button{Label: "🎲 Relancer (Orga)", Style: discordgo.SecondaryButton, CustomID: slotCustomID("mapvote", "reroll", slot)},
	}}
}

// editPanelMessage réédite en place le message porteur du panneau.
func (r *Router) editPanelMessage(channelID, messageID string, embed *discordgo.MessageEmbed, comps discordgo.MessageComponent) {
	em := []*discordgo.MessageEmbed{embed}
	cc := []discordgo.MessageComponent{comps}
	_, err := r.s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Embeds:     &em,
		Components: &cc,
	})
	if err != nil {
		r.log.Warnw("edit panneau", "channel", channelID, "err", err)
	}
}

// ensurePanelOnce poste + épingle le panneau sauf s'il existe déjà (scan des
// pins puis de l'historique récent). C'est la clé de l'idempotence du /setup.
func (r *Router) ensurePanelOnce(channelID, title string, embed *discordgo.MessageEmbed, comps discordgo.MessageComponent) {
	me := r.s.State.User.ID

	if pins, err := r.s.ChannelMessagesPinned(channelID); err == nil {
		for _, m := range pins {
			if m.Author != nil && m.Author.ID == me && len(m.Embeds) > 0 && m.Embeds[0].Title == title {
				return
			}
		}
	}
	if msgs, err := r.s.ChannelMessages(channelID, 30, "", "", ""); err == nil {
		for _, m := range msgs {
			if m.Author != nil && m.Author.ID == me && len(m.Embeds) > 0 && m.Embeds[0].Title == title {
				return
			}
		}
	}

	msg, err := r.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{comps},
	})
	if err != nil {
		r.log.Warnw("pose panneau", "channel", channelID, "title", title, "err", err)
		return
	}
	if err := r.s.ChannelMessagePin(channelID, msg.ID); err != nil {
		r.log.Warnw("pin panneau", "channel", channelID, "err", err)
	}
}

func (r *Router) ensureQueuePanel(channelID string, slot int) {
	r.ensurePanelOnce(channelID, panelTitle(slot), r.panelEmbed(slot), panelComponents(slot))
}

func (r *Router) ensureMapvotePanel(channelID string, slot int) {
	snap := r.votes.Ensure(slot)
	r.ensurePanelOnce(channelID, mapvoteTitle(slot), mapvoteEmbed(slot, snap), mapvoteComponents(slot))
}

// purgeChannel supprime l'historique récent en épargnant les épinglés.
func (r *Router) purgeChannel(channelID string, limit int) {
	pinned := map[string]bool{}
	if pins, err := r.s.ChannelMessagesPinned(channelID); err == nil {
		for _, m := range pins {
			pinned[m.ID] = true
		}
	}

	before := ""
	for limit > 0 {
		page := 100
		if limit < page {
			page = limit
		}
		msgs, err := r.s.ChannelMessages(channelID, page, before, "", "")
		if err != nil || len(msgs) == 0 {
			return
		}
		var ids []string
		for _, m := range msgs {
			if !pinned[m.ID] {
				ids = append(ids, m.ID)
			}
			before = m.ID
		}
		switch {
		case len(ids) == 1:
			if err := r.s.ChannelMessageDelete(channelID, ids[0]); err != nil {
				r.log.Warnw("purge", "channel", channelID, "err", err)
			}
		case len(ids) > 1:
			if err := r.s.ChannelMessagesBulkDelete(channelID, ids); err != nil {
				r.log.Warnw("purge bulk", "channel", channelID, "err", err)
			}
		}
		if len(msgs) < page {
			return
		}
		limit -= page
	}
}
