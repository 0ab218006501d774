package config

import (
	"log"
	"os"
)

type Config struct {
	DiscordToken string
	DiscordGuild string // vide = commandes globales
	BrandName    string
	BotNickname  string
	HTTPAddr     string // keep-alive + /metrics, default :8080
	AppEnv       string // "production" ou dev
}

func Load() Config {
	get := func(k string, req bool) string {
		v := os.Getenv(k)
		if v == "" && req {
			log.Fatalf("env manquante %s", k)
		}
		return v
	}

	cfg := Config{
		DiscordToken: get("DISCORD_BOT_TOKEN", true),
		DiscordGuild: get("DISCORD_GUILD_ID", false),
		BrandName:    get("SERVER_BRAND_NAME", false),
		BotNickname:  get("BOT_NICKNAME", false),
		HTTPAddr:     get("HTTP_ADDR", false),
		AppEnv:       get("APP_ENV", false),
	}
	if cfg.BrandName == "" {
		cfg.BrandName = "Arène de Kaer Morhen"
	}
	if cfg.BotNickname == "" {
		cfg.BotNickname = "WOLF-BOT"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	return cfg
}
