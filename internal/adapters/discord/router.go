package discord

import (
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kaermorhen/wolfbot/internal/adapters/captchaimg"
	"github.com/kaermorhen/wolfbot/internal/app/service"
	"github.com/kaermorhen/wolfbot/internal/infra/config"
	"github.com/kaermorhen/wolfbot/internal/infra/store"
	"github.com/kaermorhen/wolfbot/internal/infra/token"
)

type Router struct {
	s   *discordgo.Session
	log *zap.SugaredLogger
	cfg config.Config

	captcha   *service.CaptchaService
	queues    *service.QueueService
	votes     *service.MapVoteService
	rooms     *service.TempRoomService
	signer    *token.Signer
	renderer  *captchaimg.Renderer
	verifyMsg *store.VerifyMsgStore

	clickLimiter *userLimiter
}

type Deps struct {
	Captcha   *service.CaptchaService
	Queues    *service.QueueService
	Votes     *service.MapVoteService
	Rooms     *service.TempRoomService
	Signer    *token.Signer
	Renderer  *captchaimg.Renderer
	VerifyMsg *store.VerifyMsgStore
}

func NewRouter(s *discordgo.Session, log *zap.SugaredLogger, cfg config.Config, d Deps) *Router {
	return &Router{
		s:            s,
		log:          log,
		cfg:          cfg,
		captcha:      d.Captcha,
		queues:       d.Queues,
		votes:        d.Votes,
		rooms:        d.Rooms,
		signer:       d.Signer,
		renderer:     d.Renderer,
		verifyMsg:    d.VerifyMsg,
		clickLimiter: newUserLimiter(1*time.Second, 2),
	}
}

func (r *Router) Register() error {
	appID := r.s.State.User.ID
	for _, cmd := range Commands {
		if _, err := r.s.ApplicationCommandCreate(appID, r.cfg.DiscordGuild, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) Handlers() {
	r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic.GuildID == "" || ic.Member == nil || ic.Member.User == nil {
			return
		}
		log := r.log.With("trace_id", uuid.NewString(), "guild", ic.GuildID, "user", ic.Member.User.ID)

		defer func() {
			if rec := recover(); rec != nil {
				log.Errorw("panic dans un handler d'interaction", "panic", rec)
				ReplyEphemeral(s, ic, r.log, "⚠️ Une erreur inattendue est survenue.")
			}
		}()

		switch ic.Type {
		case discordgo.InteractionApplicationCommand:
			r.handleSlashCommand(s, ic, log)
		case discordgo.InteractionMessageComponent:
			r.handleComponent(s, ic, log)
		case discordgo.InteractionModalSubmit:
			r.handleModalSubmit(s, ic, log)
		}
	})

	r.s.AddHandler(func(s *discordgo.Session, ev *discordgo.GuildMemberAdd) {
		r.onMemberJoin(s, ev)
	})

	r.s.AddHandler(func(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
		r.onVoiceStateUpdate(s, vs)
	})
}

func normalizeAuth(tok string) string {
	t := strings.TrimSpace(tok)
	if !strings.HasPrefix(strings.ToLower(t), "bot ") {
		t = "Bot " + t
	}
	return t
}

// NewSession ouvre la session gateway avec les intents nécessaires.
func NewSession(botToken string) (*discordgo.Session, error) {
	s, err := discordgo.New(normalizeAuth(botToken))
	if err != nil {
		return nil, err
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMessages
	return s, nil
}
