package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaermorhen/wolfbot/internal/infra/store"
)

func newTestCaptcha(t *testing.T) (*CaptchaService, *time.Time) {
	t.Helper()
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	svc := NewCaptchaService(store.NewCaptchaStore(CaptchaTTL), DefaultCaptchaConfig())
	svc.now = func() time.Time { return now }
	return svc, &now
}

func TestCaptchaIssueFormat(t *testing.T) {
	svc, _ := newTestCaptcha(t)
	code := svc.Issue("g", "u")
	require.Len(t, code, 6)
	for i := 0; i < len(code); i++ {
		assert.Contains(t, CaptchaAlphabet, string(code[i]))
	}
}

func TestCaptchaHappyPath(t *testing.T) {
	svc, now := newTestCaptcha(t)
	code := svc.Issue("g", "u")

	*now = now.Add(2 * time.Second)
	res := svc.Attempt("g", "u", code)
	assert.Equal(t, AttemptVerified, res.Outcome)

	// le challenge est consommé: rejouer le même code échoue
	res = svc.Attempt("g", "u", code)
	assert.Equal(t, AttemptExpired, res.Outcome)
}

func TestCaptchaAcceptsSpacesAndLowercase(t *testing.T) {
	svc, now := newTestCaptcha(t)
	code := svc.Issue("g", "u")
	*now = now.Add(2 * time.Second)

	sloppy := " " + string(code[0]) + " " + string(code[1:])
	res := svc.Attempt("g", "u", sloppy)
	assert.Equal(t, AttemptVerified, res.Outcome)
}

func TestCaptchaTooFastDoesNotConsumeTry(t *testing.T) {
	svc, now := newTestCaptcha(t)
	code := svc.Issue("g", "u")

	// sous le délai humain minimal
	*now = now.Add(500 * time.Millisecond)
	res := svc.Attempt("g", "u", code)
	assert.Equal(t, AttemptTooFast, res.Outcome)

	*now = now.Add(2 * time.Second)
	res = svc.Attempt("g", "u", code)
	assert.Equal(t, AttemptVerified, res.Outcome)
}

func TestCaptchaCooldownBetweenTries(t *testing.T) {
	svc, now := newTestCaptcha(t)
	code := svc.Issue("g", "u")

	*now = now.Add(2 * time.Second)
	res := svc.Attempt("g", "u", "WRONG1")
	require.Equal(t, AttemptMismatch, res.Outcome)
	assert.Equal(t, 2, res.Remaining)

	*now = now.Add(1 * time.Second)
	res = svc.Attempt("g", "u", code)
	assert.Equal(t, AttemptCooldown, res.Outcome)
	assert.GreaterOrEqual(t, res.CooldownLeft, 1)

	*now = now.Add(3 * time.Second)
	res = svc.Attempt("g", "u", code)
	assert.Equal(t, AttemptVerified, res.Outcome)
}

func TestCaptchaExhaustedAfterThreeMismatches(t *testing.T) {
	svc, now := newTestCaptcha(t)
	svc.Issue("g", "u")

	*now = now.Add(2 * time.Second)
	res := svc.Attempt("g", "u", "AAAAAA")
	require.Equal(t, AttemptMismatch, res.Outcome)

	*now = now.Add(4 * time.Second)
	res = svc.Attempt("g", "u", "BBBBBB")
	require.Equal(t, AttemptMismatch, res.Outcome)
	assert.Equal(t, 1, res.Remaining)

	*now = now.Add(4 * time.Second)
	res = svc.Attempt("g", "u", "CCCCCC")
	assert.Equal(t, AttemptExhausted, res.Outcome)

	// plus de challenge: tout envoi suivant est "expiré"
	*now = now.Add(4 * time.Second)
	res = svc.Attempt("g", "u", "DDDDDD")
	assert.Equal(t, AttemptExpired, res.Outcome)
}

func TestCaptchaReissueOverwrites(t *testing.T) {
	svc, now := newTestCaptcha(t)
	first := svc.Issue("g", "u")
	second := svc.Issue("g", "u")

	*now = now.Add(2 * time.Second)
	if first != second {
		res := svc.Attempt("g", "u", first)
		assert.Equal(t, AttemptMismatch, res.Outcome)

		*now = now.Add(4 * time.Second)
	}
	res := svc.Attempt("g", "u", second)
	assert.Equal(t, AttemptVerified, res.Outcome)
}

func TestCaptchaNeverStartedLooksExpired(t *testing.T) {
	svc, _ := newTestCaptcha(t)
	res := svc.Attempt("g", "inconnu", "AAAAAA")
	assert.Equal(t, AttemptExpired, res.Outcome)
}

func TestCaptchaIsolatedPerGuildAndUser(t *testing.T) {
	svc, now := newTestCaptcha(t)
	codeA := svc.Issue("g1", "u")
	svc.Issue("g2", "u")

	*now = now.Add(2 * time.Second)
	res := svc.Attempt("g2", "u", codeA)
	if codeA != "" {
		assert.NotEqual(t, AttemptVerified, res.Outcome, "le code de g1 ne doit pas valider g2 (sauf collision)")
	}
}
