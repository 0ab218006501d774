package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestVotes câble un roll déterministe: map-1, map-2, ...
func newTestVotes() *MapVoteService {
	svc := NewMapVoteService()
	n := 0
	svc.roll = func(exclude string) string {
		n++
		return fmt.Sprintf("map-%d", n)
	}
	return svc
}

func TestVoteLocksAtFiveYes(t *testing.T) {
	svc := newTestVotes()

	for i := 1; i <= 4; i++ {
		out, snap := svc.Vote(1, fmt.Sprintf("v%d", i), true)
		require.Equal(t, VoteRecorded, out)
		assert.Equal(t, i, snap.Yes)
		assert.False(t, snap.Locked)
	}

	out, snap := svc.Vote(1, "v5", true)
	assert.Equal(t, VoteLockedNow, out)
	assert.True(t, snap.Locked)

	// verrouillé: le 6e vote est refusé
	out, _ = svc.Vote(1, "v6", true)
	assert.Equal(t, VoteAlreadyLocked, out)
}

func TestVoteRerollsAtFiveNo(t *testing.T) {
	svc := newTestVotes()

	_, first := svc.Vote(1, "v1", false)
	for i := 2; i <= 4; i++ {
		svc.Vote(1, fmt.Sprintf("v%d", i), false)
	}
	out, snap := svc.Vote(1, "v5", false)

	assert.Equal(t, VoteRerolled, out)
	assert.NotEqual(t, first.Map, snap.Map, "la map rejetée ne doit pas être reproposée")
	assert.Zero(t, snap.Yes)
	assert.Zero(t, snap.No)
	assert.False(t, snap.Locked)

	// scrutin repart à neuf: les anciens votants peuvent revoter
	out, _ = svc.Vote(1, "v1", true)
	assert.Equal(t, VoteRecorded, out)
}

func TestVoteDuplicateRejected(t *testing.T) {
	svc := newTestVotes()
	svc.Vote(1, "alice", true)

	out, snap := svc.Vote(1, "alice", false)
	assert.Equal(t, VoteDuplicate, out)
	assert.Equal(t, 1, snap.Yes)
	assert.Zero(t, snap.No)
}

func TestVoteSlotsIndependent(t *testing.T) {
	svc := newTestVotes()
	svc.Vote(1, "alice", true)
	_, snap := svc.Vote(2, "alice", true)
	assert.Equal(t, 1, snap.Yes)

	s1, ok := svc.Snapshot(1)
	require.True(t, ok)
	assert.Equal(t, 1, s1.Yes)
}

func TestManualReroll(t *testing.T) {
	svc := newTestVotes()
	_, before := svc.Vote(1, "alice", true)

	snap := svc.Reroll(1)
	assert.NotEqual(t, before.Map, snap.Map)
	assert.Zero(t, snap.Yes)
	assert.False(t, snap.Locked)
}

func TestResetKeepsMapClearsTallies(t *testing.T) {
	svc := newTestVotes()
	for i := 1; i <= 5; i++ {
		svc.Vote(1, fmt.Sprintf("v%d", i), true)
	}
	locked, ok := svc.Snapshot(1)
	require.True(t, ok)
	require.True(t, locked.Locked)

	svc.Reset(1)
	snap, ok := svc.Snapshot(1)
	require.True(t, ok)
	assert.Equal(t, locked.Map, snap.Map)
	assert.Zero(t, snap.Yes)
	assert.False(t, snap.Locked)
}

func TestEnsureInitializesBallot(t *testing.T) {
	svc := newTestVotes()
	snap := svc.Ensure(3)
	assert.NotEmpty(t, snap.Map)

	again := svc.Ensure(3)
	assert.Equal(t, snap.Map, again.Map, "Ensure est idempotent")
}
