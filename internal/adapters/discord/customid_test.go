package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaermorhen/wolfbot/internal/infra/token"
)

func testRouterWithSigner(t *testing.T) *Router {
	t.Helper()
	sg, err := token.NewSigner()
	require.NoError(t, err)
	return &Router{signer: sg}
}

func TestCaptchaCustomIDRoundtrip(t *testing.T) {
	r := testRouterWithSigner(t)

	raw := r.captchaCustomID("start", "g1", "u1")
	id, ok := parseCaptchaID(raw)
	require.True(t, ok)
	assert.Equal(t, "start", id.Action)
	assert.Equal(t, "g1", id.GuildID)
	assert.Equal(t, "u1", id.UserID)
	assert.True(t, r.signer.Verify(id.Action, id.GuildID, id.UserID, id.Tag))
}

func TestParseCaptchaIDRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "cap", "cap:start:g1:u1", "panel:join:1", "cap:a:b:c:d:e"} {
		_, ok := parseCaptchaID(raw)
		assert.False(t, ok, "entrée %q", raw)
	}
}

func TestCaptchaModalIDRoundtrip(t *testing.T) {
	g, u, ok := parseCaptchaModalID(captchaModalID("g1", "u1"))
	require.True(t, ok)
	assert.Equal(t, "g1", g)
	assert.Equal(t, "u1", u)

	_, _, ok = parseCaptchaModalID("rank:modal")
	assert.False(t, ok)
}

func TestSlotIDRoundtrip(t *testing.T) {
	id, ok := parseSlotID(slotCustomID("panel", "join", 3))
	require.True(t, ok)
	assert.Equal(t, slotID{Kind: "panel", Action: "join", Slot: 3}, id)

	id, ok = parseSlotID(slotCustomID("mapvote", "reroll", 1))
	require.True(t, ok)
	assert.Equal(t, "mapvote", id.Kind)
}

func TestParseSlotIDBounds(t *testing.T) {
	for _, raw := range []string{"panel:join:0", "panel:join:5", "panel:join:x", "vote:yes:1"} {
		_, ok := parseSlotID(raw)
		assert.False(t, ok, "entrée %q", raw)
	}
}

func TestRoomIDRoundtrip(t *testing.T) {
	id, ok := parseRoomID(roomCustomID("bl_add", "123456"))
	require.True(t, ok)
	assert.Equal(t, roomID{Action: "bl_add", VoiceID: "123456"}, id)

	kind, vid, ok := parseRoomModalID(roomModalID("limit", "123456"))
	require.True(t, ok)
	assert.Equal(t, "limit", kind)
	assert.Equal(t, "123456", vid)
}
