package discord

import (
	"bytes"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/kaermorhen/wolfbot/internal/app/service"
	"github.com/kaermorhen/wolfbot/internal/infra/metrics"
	"github.com/kaermorhen/wolfbot/internal/infra/store"
)

// Flux CAPTCHA: prompt public dans #bienvenue → bouton start (image éphémère)
// → bouton répondre (modal) → verdict. Un seul prompt public par membre,
// supprimé après succès ou épuisement des essais.

func (r *Router) sendVerifyPrompt(guildID, userID string) {
	ch := r.welcomeChannel(guildID)
	if ch == nil {
		r.log.Warnw("pas de salon bienvenue, prompt non posté", "guild", guildID)
		return
	}

	// anti-doublon: l'ancien prompt saute avant d'en poster un nouveau
	r.deleteVerifyMsg(guildID, userID)

	msg, err := r.s.ChannelMessageSendComplex(ch.ID, &discordgo.MessageSend{
		Content: fmt.Sprintf("<@%s> 🐺 **Bienvenue !** Clique sur le bouton pour te vérifier :", userID),
		Components: []discordgo.MessageComponent{discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{discordgo.Button{
				Label:    "🔒 Commencer la vérification",
				Style:    discordgo.PrimaryButton,
				CustomID: r.captchaCustomID("start", guildID, userID),
			}},
		}},
	})
	if err != nil {
		r.log.Warnw("envoi prompt vérification", "err", err)
		return
	}
	r.verifyMsg.Put(guildID, userID, store.MessagePointer{ChannelID: ch.ID, MessageID: msg.ID})
}

func (r *Router) deleteVerifyMsg(guildID, userID string) {
	p, ok := r.verifyMsg.Take(guildID, userID)
	if !ok {
		return
	}
	if err := r.s.ChannelMessageDelete(p.ChannelID, p.MessageID); err != nil {
		r.log.Debugw("suppression prompt vérification", "err", err)
	}
}

// handleCaptchaStart: émet un code et répond l'image en éphémère.
// Tag HMAC invalide → on ignore en silence (bouton forgé ou restart).
func (r *Router) handleCaptchaStart(s *discordgo.Session, ic *discordgo.InteractionCreate, id captchaID, log *zap.SugaredLogger) {
	if !r.signer.Verify(id.Action, id.GuildID, id.UserID, id.Tag) || ic.GuildID != id.GuildID {
		return
	}
	if ic.Member.User.ID != id.UserID {
		_ = RespondEphemeral(s, ic, log, "Ce bouton ne t'est pas destiné.")
		return
	}

	code := r.captcha.Issue(id.GuildID, id.UserID)
	png, err := r.renderer.RenderPNG(code)
	if err != nil {
		log.Errorw("rendu captcha", "err", err)
		_ = RespondEphemeral(s, ic, log, "⚠️ Impossible de générer le CAPTCHA, réessaie.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🔐 Vérification",
		Description: "Recopie **exactement** le code de l'image (MAJUSCULES, sans espace).",
		Color:       colorBlurple,
		Image:       &discordgo.MessageEmbedImage{URL: "attachment://captcha.png"},
	}
	err = s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:  discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{embed},
			Files: []*discordgo.File{{
				Name:        "captcha.png",
				ContentType: "image/png",
				Reader:      bytes.NewReader(png),
			}},
			Components: []discordgo.MessageComponent{discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{discordgo.Button{
					Label:    "✍️ Répondre",
					Style:    discordgo.SuccessButton,
					CustomID: r.captchaCustomID("answer", id.GuildID, id.UserID),
				}},
			}},
		},
	})
	if err != nil {
		log.Warnw("réponse captcha", "err", err)
	}
}

// handleCaptchaAnswer ouvre le modal de saisie. Le modal doit être la
// réponse initiale: pas de defer ici.
func (r *Router) handleCaptchaAnswer(s *discordgo.Session, ic *discordgo.InteractionCreate, id captchaID, log *zap.SugaredLogger) {
	if !r.signer.Verify(id.Action, id.GuildID, id.UserID, id.Tag) || ic.GuildID != id.GuildID {
		return
	}
	if ic.Member.User.ID != id.UserID {
		_ = RespondEphemeral(s, ic, log, "Ce bouton ne t'est pas destiné.")
		return
	}

	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: captchaModalID(id.GuildID, id.UserID),
			Title:    "Vérification CAPTCHA",
			Components: []discordgo.MessageComponent{discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{discordgo.TextInput{
					CustomID:    "answer",
					Label:       "Recopie le code (MAJUSCULES, sans espace)",
					Style:       discordgo.TextInputShort,
					Placeholder: "Ex: 7K8P2Q",
					Required:    true,
					MaxLength:   16,
				}},
			}},
		},
	})
	if err != nil {
		log.Warnw("ouverture modal captcha", "err", err)
	}
}

func (r *Router) handleCaptchaSubmit(s *discordgo.Session, ic *discordgo.InteractionCreate, guildID, userID, submitted string, log *zap.SugaredLogger) {
	if ic.GuildID != guildID {
		return
	}
	if ic.Member.User.ID != userID {
		_ = RespondEphemeral(s, ic, log, "Ce formulaire ne t'est pas destiné.")
		return
	}

	res := r.captcha.Attempt(guildID, userID, submitted)
	switch res.Outcome {

	case service.AttemptVerified:
		// réponse d'abord, effets ensuite: les mutations de rôles peuvent
		// dépasser la fenêtre de réponse du modal
		_ = RespondEphemeral(s, ic, log, "✅ Vérifié ! Bienvenue.")
		r.deleteVerifyMsg(guildID, userID)
		r.grantVerifiedRoles(guildID, userID)
		metrics.CaptchaVerified.Inc()

	case service.AttemptExhausted:
		// on nettoie aussi le prompt public; /verify pour recommencer
		_ = RespondEphemeral(s, ic, log, "❌ Trop d'essais. Relance `/verify` pour un nouveau code.")
		r.deleteVerifyMsg(guildID, userID)
		metrics.CaptchaExhausted.Inc()

	case service.AttemptExpired:
		_ = RespondEphemeral(s, ic, log, "CAPTCHA expiré. Clique à nouveau sur **🔒 Commencer**.")

	case service.AttemptTooFast:
		_ = RespondEphemeral(s, ic, log, "Trop rapide 😅 Réessaie dans 1 seconde.")

	case service.AttemptCooldown:
		_ = RespondEphemeral(s, ic, log, fmt.Sprintf("Cooldown… attends **%ds**.", res.CooldownLeft))

	case service.AttemptMismatch:
		_ = RespondEphemeral(s, ic, log, fmt.Sprintf("❌ Mauvais code. Essais restants : **%d**.", res.Remaining))
	}
}

// grantVerifiedRoles retire Non vérifié et donne Membre (best-effort).
func (r *Router) grantVerifiedRoles(guildID, userID string) {
	unv, mem := r.ensureSecurityRoles(guildID)
	if unv != "" {
		if err := r.s.GuildMemberRoleRemove(guildID, userID, unv); err != nil {
			r.log.Debugw("retrait rôle non vérifié", "err", err)
		}
	}
	if mem != "" {
		if err := r.s.GuildMemberRoleAdd(guildID, userID, mem); err != nil {
			r.log.Warnw("ajout rôle membre", "err", err)
		}
	}
}
