package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// RespondEphemeral répond directement (sans defer préalable).
func RespondEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate, log *zap.SugaredLogger, msg string) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Warnw("RespondEphemeral", "err", err)
	}
	return err
}

// DeferEphemeral accuse réception (pour les traitements >3s).
func DeferEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate, log *zap.SugaredLogger) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Warnw("DeferEphemeral", "err", err)
	}
	return err
}

// ReplyEphemeral suit un defer; retombe sur une réponse directe si le
// webhook d'interaction est inconnu (defer jamais parti).
func ReplyEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate, log *zap.SugaredLogger, content string, embeds ...*discordgo.MessageEmbed) {
	_, err := s.FollowupMessageCreate(ic.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Embeds:  embeds,
	})
	if err != nil {
		var reqErr *discordgo.RESTError
		if errors.As(err, &reqErr) && reqErr.Message != nil && reqErr.Message.Code == 10015 {
			_ = s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: content,
					Flags:   discordgo.MessageFlagsEphemeral,
					Embeds:  embeds,
				},
			})
			return
		}
		log.Warnw("ReplyEphemeral", "err", err)
	}
}
