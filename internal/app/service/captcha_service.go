package service

import (
	"crypto/rand"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/kaermorhen/wolfbot/internal/infra/store"
)

// Alphabet sans caractères ambigus (pas de 0/O, 1/I...).
const CaptchaAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const CaptchaTTL = 15 * time.Minute

type CaptchaConfig struct {
	CodeLength    int
	MaxAttempts   int
	MinHumanDelay time.Duration // en dessous: replay non interactif
	RetryCooldown time.Duration
}

func DefaultCaptchaConfig() CaptchaConfig {
	return CaptchaConfig{
		CodeLength:    6,
		MaxAttempts:   3,
		MinHumanDelay: 1 * time.Second,
		RetryCooldown: 3 * time.Second,
	}
}

type AttemptOutcome int

const (
	AttemptVerified AttemptOutcome = iota
	// AttemptExpired couvre aussi "jamais démarré": même message côté user.
	AttemptExpired
	AttemptTooFast
	AttemptCooldown
	AttemptMismatch
	AttemptExhausted
)

type AttemptResult struct {
	Outcome      AttemptOutcome
	Remaining    int // essais restants après un mismatch
	CooldownLeft int // secondes avant le prochain essai autorisé
}

// CaptchaService gère le cycle de vie des challenges. Les transitions
// (compteur d'essais, suppression) se font sous mutex, sans aucun appel
// réseau: le rendu et les effets Discord restent à la charge de l'appelant.
type CaptchaService struct {
	mu    sync.Mutex
	store *store.CaptchaStore
	cfg   CaptchaConfig
	now   func() time.Time
}

func NewCaptchaService(st *store.CaptchaStore, cfg CaptchaConfig) *CaptchaService {
	return &CaptchaService{store: st, cfg: cfg, now: time.Now}
}

// Issue génère un nouveau code et écrase l'éventuel challenge précédent.
func (s *CaptchaService) Issue(guildID, userID string) string {
	code := randCode(s.cfg.CodeLength)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Put(guildID, userID, &store.Challenge{
		Code:     code,
		IssuedAt: s.now(),
	})
	return code
}

// Attempt traite une soumission. Too-fast et cooldown ne consomment pas
// d'essai; un mismatch oui, et le troisième supprime le challenge.
func (s *CaptchaService) Attempt(guildID, userID, submitted string) AttemptResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.store.Get(guildID, userID)
	if !ok {
		return AttemptResult{Outcome: AttemptExpired}
	}

	t := s.now()
	if t.Sub(ch.IssuedAt) < s.cfg.MinHumanDelay {
		return AttemptResult{Outcome: AttemptTooFast}
	}
	if !ch.LastTry.IsZero() {
		if since := t.Sub(ch.LastTry); since < s.cfg.RetryCooldown {
			left := int((s.cfg.RetryCooldown - since).Seconds())
			if left < 1 {
				left = 1
			}
			return AttemptResult{Outcome: AttemptCooldown, CooldownLeft: left}
		}
	}

	ch.LastTry = t
	ch.Tries++

	got := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(submitted)), " ", "")
	if got == ch.Code {
		s.store.Delete(guildID, userID)
		return AttemptResult{Outcome: AttemptVerified}
	}
	if ch.Tries >= s.cfg.MaxAttempts {
		s.store.Delete(guildID, userID)
		return AttemptResult{Outcome: AttemptExhausted}
	}
	return AttemptResult{Outcome: AttemptMismatch, Remaining: s.cfg.MaxAttempts - ch.Tries}
}

func randCode(n int) string {
	var b strings.Builder
	max := big.NewInt(int64(len(CaptchaAlphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// rand.Reader ne doit jamais échouer; si c'est le cas on
			// préfère un code constant à un panic dans un handler.
			idx = big.NewInt(0)
		}
		b.WriteByte(CaptchaAlphabet[idx.Int64()])
	}
	return b.String()
}
