// Dispatch des slash commands. Ici on ne fait que parser l'interaction et
// appeler services/helpers; pas de règle métier.
package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/kaermorhen/wolfbot/internal/domain"
)

func optStr(ic *discordgo.InteractionCreate, name string) (string, bool) {
	for _, o := range ic.ApplicationCommandData().Options {
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionString {
			return o.StringValue(), true
		}
	}
	return "", false
}

func optInt(ic *discordgo.InteractionCreate, name string) (int, bool) {
	for _, o := range ic.ApplicationCommandData().Options {
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionInteger {
			return int(o.IntValue()), true
		}
	}
	return 0, false
}

func optBool(ic *discordgo.InteractionCreate, name string) (bool, bool) {
	for _, o := range ic.ApplicationCommandData().Options {
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionBoolean {
			return o.BoolValue(), true
		}
	}
	return false, false
}

func optUserID(ic *discordgo.InteractionCreate, name string) (string, bool) {
	for _, o := range ic.ApplicationCommandData().Options {
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionUser {
			return o.Value.(string), true
		}
	}
	return "", false
}

func (r *Router) handleSlashCommand(s *discordgo.Session, ic *discordgo.InteractionCreate, log *zap.SugaredLogger) {
	cmd := ic.ApplicationCommandData()
	log.Infow("commande", "cmd", cmd.Name)

	switch cmd.Name {

	case "ping":
		_ = RespondEphemeral(s, ic, log, "🏓 Pong !")

	case "setup":
		if !r.requireManageGuild(s, ic, log) {
			return
		}
		_ = DeferEphemeral(s, ic, log)
		r.runSetup(s, ic, log)

	// relance manuelle pour qui a raté ou épuisé sa vérification
	case "verify":
		_ = DeferEphemeral(s, ic, log)
		r.sendVerifyPrompt(ic.GuildID, ic.Member.User.ID)
		ReplyEphemeral(s, ic, log, "✅ Je t'ai remis la vérification dans **🐺・bienvenue**.")

	case "party-code":
		if !r.requireOrga(s, ic, log) {
			return
		}
		_ = DeferEphemeral(s, ic, log)
		slot, _ := optInt(ic, "partie")
		code, _ := optStr(ic, "code")
		pingHere, _ := optBool(ic, "ping_here")

		chat := r.slotTextChannel(ic.GuildID, slot)
		if chat == nil {
			ReplyEphemeral(s, ic, log, "⚠️ Salon-partie introuvable. Lance `/setup` d'abord.")
			return
		}
		content := ""
		if pingHere {
			content = "@here"
		}
		_, err := s.ChannelMessageSendComplex(chat.ID, &discordgo.MessageSend{
			Content: content,
			Embeds: []*discordgo.MessageEmbed{{
				Title:       fmt.Sprintf("🎮 Party Code — Partie %d", slot),
				Description: fmt.Sprintf("**Code :** `%s`\nSalon associé : **Préparation %d**", code, slot),
				Color:       colorGreen,
			}},
		})
		if err != nil {
			log.Warnw("publication party code", "err", err)
			ReplyEphemeral(s, ic, log, "⚠️ Impossible de publier le code.")
			return
		}
		topic := fmt.Sprintf("Party code actuel: %s (partie %d)", code, slot)
		if _, err := s.ChannelEdit(chat.ID, &discordgo.ChannelEdit{Topic: topic}); err != nil {
			log.Debugw("topic party code", "err", err)
		}
		ReplyEphemeral(s, ic, log, fmt.Sprintf("✅ Code posté dans <#%s>.", chat.ID))

	case "map-seed":
		if !r.requireManageGuild(s, ic, log) {
			return
		}
		_ = DeferEphemeral(s, ic, log)
		n := 0
		for i := 1; i <= SlotCount; i++ {
			if chat := r.slotTextChannel(ic.GuildID, i); chat != nil {
				r.ensureMapvotePanel(chat.ID, i)
				n++
			}
		}
		ReplyEphemeral(s, ic, log, fmt.Sprintf("🗺️ Roulette posée dans **%d** salon(s)-partie.", n))

	case "set-rank":
		raw, _ := optStr(ic, "valeur")
		display := domain.NormalizeRank(raw)
		if display == "" {
			_ = RespondEphemeral(s, ic, log, "Format invalide. Ex: `Silver 1`, `Asc 1`, `Radiant`.")
			return
		}
		_ = DeferEphemeral(s, ic, log)
		r.applyRankRole(ic.GuildID, ic.Member.User.ID, display)
		ReplyEphemeral(s, ic, log, "✅ Peak enregistré : **"+display+"**")

	case "rank-show":
		target := ic.Member.User.ID
		if uid, ok := optUserID(ic, "membre"); ok {
			target = uid
		}
		label, _ := r.memberBestRank(ic.GuildID, target)
		if label == "" {
			_ = RespondEphemeral(s, ic, log, fmt.Sprintf("<@%s> n'a pas déclaré de peak ELO.", target))
			return
		}
		_ = RespondEphemeral(s, ic, log, fmt.Sprintf("🎯 <@%s> — **%s**", target, label))

	case "roulette":
		m := domain.RollMap("")
		err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Embeds: []*discordgo.MessageEmbed{{
					Title:       "🎲 Roulette map",
					Description: fmt.Sprintf("La roue s'arrête sur… **%s** !", m),
					Color:       colorBlurple,
					Image:       &discordgo.MessageEmbedImage{URL: domain.MapSplashURL(m)},
				}},
			},
		})
		if err != nil {
			log.Warnw("roulette", "err", err)
		}
	}
}
