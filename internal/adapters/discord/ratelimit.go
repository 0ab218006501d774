package discord

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// userLimiter borne les clics par utilisateur (anti double-clic / spam de
// boutons). Un limiteur token-bucket par user, créé à la volée.
type userLimiter struct {
	mu    sync.Mutex
	users map[string]*rate.Limiter
	every time.Duration
	burst int
}

func newUserLimiter(every time.Duration, burst int) *userLimiter {
	return &userLimiter{users: map[string]*rate.Limiter{}, every: every, burst: burst}
}

func (l *userLimiter) Allow(userID string) bool {
	l.mu.Lock()
	lim, ok := l.users[userID]
	if !ok {
		lim = rate.NewLimiter(rate.Every(l.every), l.burst)
		l.users[userID] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}
