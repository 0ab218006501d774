package discord

import (
	"fmt"
	"strconv"
	"strings"
)

// Les custom_id des composants sont décodés UNE fois ici, en variantes
// typées, avant tout accès à l'état. Ceux du CAPTCHA embarquent un tag HMAC
// vérifié avant toute lecture du store.

// ---------- CAPTCHA: cap:<action>:<guild>:<user>:<tag> ----------

type captchaID struct {
	Action  string // "start" | "answer"
	GuildID string
	UserID  string
	Tag     string
}

func (r *Router) captchaCustomID(action, guildID, userID string) string {
	return strings.Join([]string{"cap", action, guildID, userID, r.signer.Sign(action, guildID, userID)}, ":")
}

func parseCaptchaID(raw string) (captchaID, bool) {
	parts := strings.Split(raw, ":")
	if len(parts) != 5 || parts[0] != "cap" {
		return captchaID{}, false
	}
	return captchaID{Action: parts[1], GuildID: parts[2], UserID: parts[3], Tag: parts[4]}, true
}

// capmodal:<guild>:<user>
func captchaModalID(guildID, userID string) string {
	return strings.Join([]string{"capmodal", guildID, userID}, ":")
}

func parseCaptchaModalID(raw string) (guildID, userID string, ok bool) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 || parts[0] != "capmodal" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// ---------- panneaux par slot: panel:<action>:<slot>, mapvote:<action>:<slot> ----------

type slotID struct {
	Kind   string // "panel" | "mapvote"
	Action string
	Slot   int
}

func slotCustomID(kind, action string, slot int) string {
	return fmt.Sprintf("%s:%s:%d", kind, action, slot)
}

func parseSlotID(raw string) (slotID, bool) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 || (parts[0] != "panel" && parts[0] != "mapvote") {
		return slotID{}, false
	}
	slot, err := strconv.Atoi(parts[2])
	if err != nil || slot < 1 || slot > SlotCount {
		return slotID{}, false
	}
	return slotID{Kind: parts[0], Action: parts[1], Slot: slot}, true
}

// ---------- salons temporaires: vc:<action>:<voiceID>, vcmodal:<kind>:<voiceID> ----------

type roomID struct {
	Action  string // private/public/limit/wl_add/wl_del/bl_add/bl_del/lists
	VoiceID string
}

func roomCustomID(action, voiceID string) string {
	return strings.Join([]string{"vc", action, voiceID}, ":")
}

func parseRoomID(raw string) (roomID, bool) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 || parts[0] != "vc" {
		return roomID{}, false
	}
	return roomID{Action: parts[1], VoiceID: parts[2]}, true
}

func roomModalID(kind, voiceID string) string {
	return strings.Join([]string{"vcmodal", kind, voiceID}, ":")
}

func parseRoomModalID(raw string) (kind, voiceID string, ok bool) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 || parts[0] != "vcmodal" {
		return "", "", false
	}
	return parts[1], parts[2], true
}
