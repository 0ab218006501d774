// Dispatch des soumissions de modals. L'extraction des TextInput est faite
// une fois ici; les handlers reçoivent des valeurs déjà aplaties.
package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// modalValue retrouve la valeur d'un TextInput par custom_id.
func modalValue(data discordgo.ModalSubmitInteractionData, field string) string {
	for _, row := range data.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range ar.Components {
			if ti, ok := c.(*discordgo.TextInput); ok && ti.CustomID == field {
				return strings.TrimSpace(ti.Value)
			}
		}
	}
	return ""
}

func (r *Router) handleModalSubmit(s *discordgo.Session, ic *discordgo.InteractionCreate, log *zap.SugaredLogger) {
	data := ic.ModalSubmitData()
	log.Infow("modal", "custom_id", data.CustomID)

	if guildID, userID, ok := parseCaptchaModalID(data.CustomID); ok {
		answer := strings.ToUpper(modalValue(data, "answer"))
		r.handleCaptchaSubmit(s, ic, guildID, userID, answer, log)
		return
	}

	if data.CustomID == "rank:modal" {
		r.handleRankSubmit(s, ic, modalValue(data, "valeur"), log)
		return
	}

	if kind, voiceID, ok := parseRoomModalID(data.CustomID); ok {
		field := "membre"
		if kind == "limit" {
			field = "valeur"
		}
		r.handleRoomModal(s, ic, kind, voiceID, modalValue(data, field), log)
		return
	}

	log.Debugw("modal inconnu", "custom_id", data.CustomID)
}
