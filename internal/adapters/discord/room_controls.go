package discord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/kaermorhen/wolfbot/internal/app/service"
)

// Boutons vc:* du panneau de contrôle. Les actions à saisie (limite,
// listes +/−) ouvrent un modal; le service tranche owner/staff à la mutation.

// channelLimitPatch sérialise user_limit même à zéro: le ChannelEdit de
// discordgo marque le champ omitempty, donc "0 = illimité" n'atteindrait
// jamais Discord via l'API haut niveau.
type channelLimitPatch struct {
	UserLimit int `json:"user_limit"`
}

func (r *Router) setVoiceLimit(voiceID string, n int) error {
	_, err := r.s.RequestWithBucketID("PATCH", discordgo.EndpointChannel(voiceID),
		channelLimitPatch{UserLimit: n}, discordgo.EndpointChannel(voiceID))
	return err
}

func (r *Router) handleRoomButton(s *discordgo.Session, ic *discordgo.InteractionCreate, id roomID, log *zap.SugaredLogger) {
	actor := ic.Member.User.ID

	switch id.Action {
	case "private", "public":
		staff := r.memberIsStaff(ic.GuildID, actor)
		err := r.rooms.SetPrivate(id.VoiceID, id.Action == "private", actor, staff)
		if err != nil {
			r.replyRoomErr(s, ic, err, log)
			return
		}
		if id.Action == "private" {
			// on répond avant d'éjecter: l'éviction peut dépasser la
			// fenêtre de réponse de l'interaction
			_ = RespondEphemeral(s, ic, log, "🔒 Salon **privé** : créateur + whitelist uniquement.")
			r.evictUnwelcome(s, ic.GuildID, id.VoiceID, log)
		} else {
			_ = RespondEphemeral(s, ic, log, "🔓 Salon **public**.")
		}

	case "limit":
		r.openRoomModal(s, ic, "limit", id.VoiceID, "Limite de places", "valeur", "0 = illimité, max 99", log)

	case "wl_add":
		r.openRoomModal(s, ic, "wl_add", id.VoiceID, "Ajouter à la whitelist", "membre", "@mention ou ID du membre", log)
	case "wl_del":
		r.openRoomModal(s, ic, "wl_del", id.VoiceID, "Retirer de la whitelist", "membre", "@mention ou ID du membre", log)
	case "bl_add":
		r.openRoomModal(s, ic, "bl_add", id.VoiceID, "Ajouter à la blacklist", "membre", "@mention ou ID du membre", log)
	case "bl_del":
		r.openRoomModal(s, ic, "bl_del", id.VoiceID, "Retirer de la blacklist", "membre", "@mention ou ID du membre", log)

	case "lists":
		info, ok := r.rooms.Info(id.VoiceID)
		if !ok {
			r.replyRoomErr(s, ic, service.ErrRoomNotTracked, log)
			return
		}
		mode := "🔓 public"
		if info.Private {
			mode = "🔒 privé"
		}
		limit := "illimitée"
		if info.Limit > 0 {
			limit = strconv.Itoa(info.Limit)
		}
		_ = RespondEphemeral(s, ic, log, strings.Join([]string{
			"**Salon** : " + mode + " — limite " + limit,
			"**Whitelist** : " + mentionList(info.Whitelist),
			"**Blacklist** : " + mentionList(info.Blacklist),
		}, "\n"))
	}
}

func (r *Router) openRoomModal(s *discordgo.Session, ic *discordgo.InteractionCreate, kind, voiceID, title, field, placeholder string, log *zap.SugaredLogger) {
	if !r.rooms.Tracked(voiceID) {
		r.replyRoomErr(s, ic, service.ErrRoomNotTracked, log)
		return
	}
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: roomModalID(kind, voiceID),
			Title:    title,
			Components: []discordgo.MessageComponent{discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{discordgo.TextInput{
					CustomID:    field,
					Label:       title,
					Style:       discordgo.TextInputShort,
					Placeholder: placeholder,
					Required:    true,
					MaxLength:   32,
				}},
			}},
		},
	})
	if err != nil {
		log.Warnw("ouverture modal salon", "kind", kind, "err", err)
	}
}

func (r *Router) handleRoomModal(s *discordgo.Session, ic *discordgo.InteractionCreate, kind, voiceID, raw string, log *zap.SugaredLogger) {
	actor := ic.Member.User.ID
	staff := r.memberIsStaff(ic.GuildID, actor)

	if kind == "limit" {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			_ = RespondEphemeral(s, ic, log, "Entre un nombre (0 = illimité).")
			return
		}
		clamped, err := r.rooms.SetLimit(voiceID, n, actor, staff)
		if err != nil {
			r.replyRoomErr(s, ic, err, log)
			return
		}
		if err := r.setVoiceLimit(voiceID, clamped); err != nil {
			log.Debugw("limite salon", "err", err)
		}
		if clamped == 0 {
			_ = RespondEphemeral(s, ic, log, "👥 Limite retirée.")
		} else {
			_ = RespondEphemeral(s, ic, log, fmt.Sprintf("👥 Limite fixée à **%d**.", clamped))
		}
		return
	}

	target, ok := parseUserID(raw)
	if !ok {
		_ = RespondEphemeral(s, ic, log, "Membre introuvable. Donne une @mention ou un ID.")
		return
	}

	var err error
	var msg string
	switch kind {
	case "wl_add":
		err = r.rooms.WhitelistAdd(voiceID, target, actor, staff)
		msg = fmt.Sprintf("✅ <@%s> ajouté à la whitelist.", target)
	case "wl_del":
		err = r.rooms.WhitelistRemove(voiceID, target, actor, staff)
		msg = fmt.Sprintf("➖ <@%s> retiré de la whitelist.", target)
	case "bl_add":
		err = r.rooms.BlacklistAdd(voiceID, target, actor, staff)
		msg = fmt.Sprintf("⛔ <@%s> blacklisté.", target)
	case "bl_del":
		err = r.rooms.BlacklistRemove(voiceID, target, actor, staff)
		msg = fmt.Sprintf("➖ <@%s> retiré de la blacklist.", target)
	default:
		return
	}
	if err != nil {
		r.replyRoomErr(s, ic, err, log)
		return
	}
	_ = RespondEphemeral(s, ic, log, msg)
	// un blacklisté déjà dans le salon est éjecté immédiatement
	if kind == "bl_add" {
		r.evictUnwelcome(s, ic.GuildID, voiceID, log)
	}
}

// evictUnwelcome déconnecte les occupants qui ne passent plus le contrôle
// d'accès (après passage en privé ou ajout en blacklist).
func (r *Router) evictUnwelcome(s *discordgo.Session, guildID, voiceID string, log *zap.SugaredLogger) {
	var inside []string
	s.State.RLock()
	for _, g := range s.State.Guilds {
		if g.ID != guildID {
			continue
		}
		for _, vs := range g.VoiceStates {
			if vs.ChannelID == voiceID {
				inside = append(inside, vs.UserID)
			}
		}
	}
	s.State.RUnlock()

	for _, uid := range inside {
		verdict := r.rooms.Access(voiceID, uid, r.memberIsAdmin(guildID, uid))
		if verdict == service.AccessAllow {
			continue
		}
		if err := s.GuildMemberMove(guildID, uid, nil); err != nil {
			log.Debugw("éviction", "user", uid, "err", err)
		}
	}
}

func (r *Router) replyRoomErr(s *discordgo.Session, ic *discordgo.InteractionCreate, err error, log *zap.SugaredLogger) {
	switch {
	case errors.Is(err, service.ErrRoomNotTracked):
		_ = RespondEphemeral(s, ic, log, "Ce salon n'existe plus.")
	case errors.Is(err, service.ErrRoomNotAllowed):
		_ = RespondEphemeral(s, ic, log, "🔒 Réservé au **créateur du salon**, aux **Orga PP** ou aux Admins.")
	default:
		_ = RespondEphemeral(s, ic, log, "⚠️ Action impossible.")
	}
}
