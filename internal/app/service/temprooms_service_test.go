package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVoice struct {
	mu        sync.Mutex
	occupants map[string]int
	deleted   [][2]string
}

func newFakeVoice() *fakeVoice {
	return &fakeVoice{occupants: map[string]int{}}
}

func (f *fakeVoice) Occupants(voiceID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.occupants[voiceID]
}

func (f *fakeVoice) DeleteRoom(voiceID, textID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, [2]string{voiceID, textID})
}

func (f *fakeVoice) deletedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deleted)
}

func (f *fakeVoice) setOccupants(voiceID string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.occupants[voiceID] = n
}

func waitFor(t *testing.T, cond func() bool, d time.Duration) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition jamais atteinte")
}

func TestTempRoomDeletedAfterGrace(t *testing.T) {
	fv := newFakeVoice()
	svc := NewTempRoomService(30*time.Millisecond, fv, fv)
	svc.Track("owner", "vc1", "tc1")

	svc.ScheduleDelete("vc1")
	waitFor(t, func() bool { return fv.deletedCount() == 1 }, time.Second)

	assert.Equal(t, [2]string{"vc1", "tc1"}, fv.deleted[0])
	assert.False(t, svc.Tracked("vc1"))
}

func TestTempRoomRejoinCancelsDeletion(t *testing.T) {
	fv := newFakeVoice()
	svc := NewTempRoomService(40*time.Millisecond, fv, fv)
	svc.Track("owner", "vc1", "tc1")

	svc.ScheduleDelete("vc1")
	time.Sleep(10 * time.Millisecond)
	svc.CancelDelete("vc1")

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, fv.deletedCount())
	assert.True(t, svc.Tracked("vc1"))
}

func TestTempRoomExpiryRechecksOccupancy(t *testing.T) {
	// quelqu'un est revenu sans que CancelDelete ait été vu: le timer
	// re-vérifie l'occupation et renonce.
	fv := newFakeVoice()
	svc := NewTempRoomService(20*time.Millisecond, fv, fv)
	svc.Track("owner", "vc1", "tc1")

	fv.setOccupants("vc1", 1)
	svc.ScheduleDelete("vc1")

	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, fv.deletedCount())
	assert.True(t, svc.Tracked("vc1"))
}

func TestTempRoomRearmReplacesTimer(t *testing.T) {
	fv := newFakeVoice()
	svc := NewTempRoomService(30*time.Millisecond, fv, fv)
	svc.Track("owner", "vc1", "tc1")

	svc.ScheduleDelete("vc1")
	svc.ScheduleDelete("vc1")
	svc.ScheduleDelete("vc1")

	waitFor(t, func() bool { return fv.deletedCount() >= 1 }, time.Second)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, fv.deletedCount(), "un seul timer vivant par room")
}

func TestTempRoomStaleExpiryLeavesLiveTimer(t *testing.T) {
	// tir tardif d'un timer déjà remplacé (quelqu'un est revenu puis
	// reparti): il ne doit pas désarmer le timer vivant, qui supprime
	// bien la room une fois vide.
	fv := newFakeVoice()
	svc := NewTempRoomService(30*time.Millisecond, fv, fv)
	svc.Track("owner", "vc1", "tc1")

	svc.ScheduleDelete("vc1")
	svc.mu.Lock()
	stale := svc.timers["vc1"].gen
	svc.mu.Unlock()

	svc.ScheduleDelete("vc1") // ré-arme: nouvelle génération

	fv.setOccupants("vc1", 1)
	svc.expire("vc1", stale) // le premier timer tire en retard
	assert.Zero(t, fv.deletedCount())
	assert.True(t, svc.Tracked("vc1"))

	fv.setOccupants("vc1", 0)
	waitFor(t, func() bool { return fv.deletedCount() == 1 }, time.Second)
	assert.False(t, svc.Tracked("vc1"))
}

func TestTempRoomAccessBlacklistBeatsPublic(t *testing.T) {
	fv := newFakeVoice()
	svc := NewTempRoomService(time.Minute, fv, fv)
	svc.Track("owner", "vc1", "tc1")
	require.NoError(t, svc.BlacklistAdd("vc1", "pest", "owner", false))

	assert.Equal(t, AccessDenyBlacklist, svc.Access("vc1", "pest", false))
	assert.Equal(t, AccessAllow, svc.Access("vc1", "ami", false))
}

func TestTempRoomAccessPrivate(t *testing.T) {
	fv := newFakeVoice()
	svc := NewTempRoomService(time.Minute, fv, fv)
	svc.Track("owner", "vc1", "tc1")
	require.NoError(t, svc.SetPrivate("vc1", true, "owner", false))

	assert.Equal(t, AccessDenyPrivate, svc.Access("vc1", "inconnu", false))
	assert.Equal(t, AccessAllow, svc.Access("vc1", "owner", false))

	require.NoError(t, svc.WhitelistAdd("vc1", "ami", "owner", false))
	assert.Equal(t, AccessAllow, svc.Access("vc1", "ami", false))

	// un admin passe toujours
	assert.Equal(t, AccessAllow, svc.Access("vc1", "inconnu", true))
}

func TestTempRoomBlacklistBeatsWhitelist(t *testing.T) {
	fv := newFakeVoice()
	svc := NewTempRoomService(time.Minute, fv, fv)
	svc.Track("owner", "vc1", "tc1")
	require.NoError(t, svc.WhitelistAdd("vc1", "janus", "owner", false))
	require.NoError(t, svc.BlacklistAdd("vc1", "janus", "owner", false))

	assert.Equal(t, AccessDenyBlacklist, svc.Access("vc1", "janus", false))
}

func TestTempRoomMutationAuthz(t *testing.T) {
	fv := newFakeVoice()
	svc := NewTempRoomService(time.Minute, fv, fv)
	svc.Track("owner", "vc1", "tc1")

	assert.ErrorIs(t, svc.SetPrivate("vc1", true, "random", false), ErrRoomNotAllowed)
	assert.NoError(t, svc.SetPrivate("vc1", true, "random", true), "staff autorisé")
	assert.NoError(t, svc.SetPrivate("vc1", false, "owner", false))

	assert.ErrorIs(t, svc.SetPrivate("vc404", true, "owner", false), ErrRoomNotTracked)
}

func TestTempRoomLimitClamped(t *testing.T) {
	fv := newFakeVoice()
	svc := NewTempRoomService(time.Minute, fv, fv)
	svc.Track("owner", "vc1", "tc1")

	n, err := svc.SetLimit("vc1", 250, "owner", false)
	require.NoError(t, err)
	assert.Equal(t, 99, n)

	n, err = svc.SetLimit("vc1", -3, "owner", false)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTempRoomInfoSortedCopies(t *testing.T) {
	fv := newFakeVoice()
	svc := NewTempRoomService(time.Minute, fv, fv)
	svc.Track("owner", "vc1", "tc1")
	_ = svc.WhitelistAdd("vc1", "zoe", "owner", false)
	_ = svc.WhitelistAdd("vc1", "ana", "owner", false)

	info, ok := svc.Info("vc1")
	require.True(t, ok)
	assert.Equal(t, []string{"ana", "zoe"}, info.Whitelist)
	assert.Equal(t, "owner", info.OwnerID)

	_, ok = svc.Info("vc404")
	assert.False(t, ok)
}

func TestTempRoomScheduleDeleteUntracked(t *testing.T) {
	fv := newFakeVoice()
	svc := NewTempRoomService(10*time.Millisecond, fv, fv)
	svc.ScheduleDelete("vc404")
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, fv.deletedCount())
}
