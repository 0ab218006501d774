package discord

import (
	"encoding/json"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelLimitPatchSerializesZero(t *testing.T) {
	// "0 = illimité" doit partir sur le fil; le ChannelEdit de discordgo
	// omet le champ à zéro, d'où le PATCH dédié.
	b, err := json.Marshal(channelLimitPatch{UserLimit: 0})
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_limit":0}`, string(b))

	b, err = json.Marshal(&discordgo.ChannelEdit{UserLimit: 0})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "user_limit")

	b, err = json.Marshal(channelLimitPatch{UserLimit: 5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_limit":5}`, string(b))
}
