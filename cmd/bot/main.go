package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kaermorhen/wolfbot/internal/adapters/captchaimg"
	discordrouter "github.com/kaermorhen/wolfbot/internal/adapters/discord"
	"github.com/kaermorhen/wolfbot/internal/adapters/httphealth"
	"github.com/kaermorhen/wolfbot/internal/app/service"
	"github.com/kaermorhen/wolfbot/internal/infra/config"
	"github.com/kaermorhen/wolfbot/internal/infra/logging"
	"github.com/kaermorhen/wolfbot/internal/infra/store"
	"github.com/kaermorhen/wolfbot/internal/infra/token"
)

const tempRoomGrace = 60 * time.Second

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logging.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	// Session gateway d'abord: les ports vocaux en dépendent.
	s, err := discordrouter.NewSession(cfg.DiscordToken)
	if err != nil {
		log.Fatalw("session discord", "err", err)
	}
	if err := s.Open(); err != nil {
		log.Fatalw("connexion gateway", "err", err)
	}
	defer func() { _ = s.Close() }()
	log.Infow("connecté", "user", s.State.User.Username, "id", s.State.User.ID)

	signer, err := token.NewSigner()
	if err != nil {
		log.Fatalw("secret HMAC", "err", err)
	}

	capCfg := service.DefaultCaptchaConfig()
	captchaSvc := service.NewCaptchaService(store.NewCaptchaStore(service.CaptchaTTL), capCfg)
	queueSvc := service.NewQueueService(discordrouter.SlotCount)
	voteSvc := service.NewMapVoteService()

	vops := discordrouter.NewVoiceOps(s, log)
	roomSvc := service.NewTempRoomService(tempRoomGrace, vops, vops)

	r := discordrouter.NewRouter(s, log, cfg, discordrouter.Deps{
		Captcha:   captchaSvc,
		Queues:    queueSvc,
		Votes:     voteSvc,
		Rooms:     roomSvc,
		Signer:    signer,
		Renderer:  captchaimg.New(service.CaptchaAlphabet, capCfg.CodeLength),
		VerifyMsg: store.NewVerifyMsgStore(),
	})
	if err := r.Register(); err != nil {
		log.Fatalw("enregistrement des commandes", "err", err)
	}
	r.Handlers()
	log.Infow("commandes enregistrées", "guild", cfg.DiscordGuild)

	go httphealth.New(log).Start(cfg.HTTPAddr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop
	log.Infow("arrêt demandé")
}
