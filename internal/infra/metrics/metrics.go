package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CaptchaVerified = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wolfbot_captcha_verified_total",
		Help: "Vérifications CAPTCHA réussies.",
	})
	CaptchaExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wolfbot_captcha_exhausted_total",
		Help: "CAPTCHA abandonnés après trois échecs.",
	})
	MatchesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wolfbot_matches_started_total",
		Help: "Parties 5v5 lancées.",
	})
	TempRoomsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wolfbot_temp_rooms_created_total",
		Help: "Salons vocaux temporaires créés.",
	})
	TempRoomsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wolfbot_temp_rooms_deleted_total",
		Help: "Salons vocaux temporaires supprimés après la période de grâce.",
	})
)
