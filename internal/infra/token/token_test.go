package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundtrip(t *testing.T) {
	sg, err := NewSigner()
	require.NoError(t, err)

	tag := sg.Sign("start", "g1", "u1")
	assert.Len(t, tag, 16)
	assert.True(t, sg.Verify("start", "g1", "u1", tag))
}

func TestVerifyRejectsTampering(t *testing.T) {
	sg, err := NewSigner()
	require.NoError(t, err)
	tag := sg.Sign("start", "g1", "u1")

	assert.False(t, sg.Verify("answer", "g1", "u1", tag), "action modifiée")
	assert.False(t, sg.Verify("start", "g2", "u1", tag), "guilde modifiée")
	assert.False(t, sg.Verify("start", "g1", "u2", tag), "user modifié")
	assert.False(t, sg.Verify("start", "g1", "u1", "deadbeefdeadbeef"))
	assert.False(t, sg.Verify("start", "g1", "u1", ""))
}

func TestSignersDoNotShareSecrets(t *testing.T) {
	a, err := NewSigner()
	require.NoError(t, err)
	b, err := NewSigner()
	require.NoError(t, err)

	// après un restart (nouveau secret) les anciens tags deviennent muets
	tag := a.Sign("start", "g1", "u1")
	assert.False(t, b.Verify("start", "g1", "u1", tag))
}

func TestSignDeterministic(t *testing.T) {
	sg, err := NewSigner()
	require.NoError(t, err)
	assert.Equal(t, sg.Sign("start", "g", "u"), sg.Sign("start", "g", "u"))
}
