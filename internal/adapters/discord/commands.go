package discord

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
)

var slotChoices = func() []*discordgo.ApplicationCommandOptionChoice {
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, SlotCount)
	for i := 1; i <= SlotCount; i++ {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{
			Name:  strconv.Itoa(i),
			Value: i,
		})
	}
	return out
}()

var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "ping",
		Description: "Le bot répond pong",
	},
	{
		Name:        "setup",
		Description: "Configurer tout le serveur (sans doublons, relançable)",
	},
	{
		Name:        "verify",
		Description: "Relancer la vérification (si tu n'as pas pu la faire)",
	},
	{
		Name:        "party-code",
		Description: "Publier un party code dans le salon-partie choisi",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "partie",
				Description: "1 à 4",
				Required:    true,
				Choices:     slotChoices,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "code",
				Description: "Le party code",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "ping_here",
				Description: "Ping @here ?",
			},
		},
	},
	{
		Name:        "map-seed",
		Description: "(Re)poser la roulette map dans chaque salon-partie existant",
	},
	{
		Name:        "set-rank",
		Description: "Définir ton peak ELO (VALORANT)",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "valeur",
			Description: "Ex: 'silver 1', 'asc 1', 'immortal 2', 'radiant'",
			Required:    true,
		}},
	},
	{
		Name:        "rank-show",
		Description: "Voir le peak ELO d'un membre",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "membre",
			Description: "Laisser vide pour toi-même",
		}},
	},
	{
		Name:        "roulette",
		Description: "Tirer une map au hasard (simple)",
	},
}
