package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(t *testing.T, q *QueueService, slot, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("u%02d", i)
		require.True(t, q.Join(slot, id))
		ids = append(ids, id)
	}
	return ids
}

func TestQueueJoinIsSetLike(t *testing.T) {
	q := NewQueueService(4)
	assert.True(t, q.Join(1, "alice"))
	assert.False(t, q.Join(1, "alice"), "double join = no-op")
	assert.Len(t, q.Snapshot(1), 1)
}

func TestQueueLeave(t *testing.T) {
	q := NewQueueService(4)
	q.Join(1, "alice")
	q.Join(1, "bob")

	assert.True(t, q.Leave(1, "alice"))
	assert.False(t, q.Leave(1, "alice"))
	assert.Equal(t, []string{"bob"}, q.Snapshot(1))
}

func TestQueueUnknownSlotRejected(t *testing.T) {
	q := NewQueueService(4)
	assert.False(t, q.Join(5, "alice"))
	assert.False(t, q.Join(0, "alice"))
}

func TestQueueSlotsIndependent(t *testing.T) {
	q := NewQueueService(4)
	q.Join(1, "alice")
	assert.True(t, q.Join(2, "alice"), "slots indépendants: même joueur accepté ailleurs")
}

func TestQueueReadyAndNeed(t *testing.T) {
	q := NewQueueService(4)
	fill(t, q, 1, 7)
	assert.False(t, q.Ready(1))
	assert.Equal(t, 3, q.Need(1))

	fill2 := []string{"x1", "x2", "x3"}
	for _, id := range fill2 {
		q.Join(1, id)
	}
	assert.True(t, q.Ready(1))
	assert.Equal(t, 0, q.Need(1))
}

func TestQueuePopTenKeepsOverflowInOrder(t *testing.T) {
	q := NewQueueService(4)
	ids := fill(t, q, 1, 12)

	popped := q.PopTen(1)
	require.Equal(t, ids[:10], popped, "FIFO: les 10 premiers arrivés")
	assert.Equal(t, ids[10:], q.Snapshot(1), "le surplus garde sa place")
	assert.False(t, q.Ready(1))
}

func TestQueueClear(t *testing.T) {
	q := NewQueueService(4)
	fill(t, q, 1, 5)
	q.Clear(1)
	assert.Empty(t, q.Snapshot(1))
}

func TestQueueSnapshotIsCopy(t *testing.T) {
	q := NewQueueService(4)
	q.Join(1, "alice")
	snap := q.Snapshot(1)
	snap[0] = "mallory"
	assert.Equal(t, []string{"alice"}, q.Snapshot(1))
}
