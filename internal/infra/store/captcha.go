package store

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Challenge est un CAPTCHA en cours pour un couple (guild, user).
type Challenge struct {
	Code     string
	Tries    int
	IssuedAt time.Time
	LastTry  time.Time
}

// CaptchaStore garde les challenges en mémoire avec expiration TTL.
// go-cache balaie les entrées périmées à la lecture et via son janitor,
// donc un challenge expiré ne peut jamais réussir silencieusement.
type CaptchaStore struct {
	c *gocache.Cache
}

func NewCaptchaStore(ttl time.Duration) *CaptchaStore {
	return &CaptchaStore{c: gocache.New(ttl, ttl)}
}

func key(guildID, userID string) string { return guildID + ":" + userID }

func (s *CaptchaStore) Put(guildID, userID string, ch *Challenge) {
	s.c.SetDefault(key(guildID, userID), ch)
}

func (s *CaptchaStore) Get(guildID, userID string) (*Challenge, bool) {
	v, ok := s.c.Get(key(guildID, userID))
	if !ok {
		return nil, false
	}
	return v.(*Challenge), true
}

func (s *CaptchaStore) Delete(guildID, userID string) {
	s.c.Delete(key(guildID, userID))
}
