package lobby

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ShieldBattery/ShieldBattery-sub010/internal/engine"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/slot"
)

// helper: receive one snapshot with a timeout so tests never hang
func recvSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatalf("client outbox closed unexpectedly")
		}
		return snap
	case <-time.After(within):
		t.Fatalf("timed out waiting for snapshot")
		return Snapshot{} // unreachable
	}
}

func recvNoSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) {
	t.Helper()
	select {
	case s, ok := <-ch:
		if !ok {
			// channel closed → that's fine; no further snapshots possible
			return
		}
		t.Fatalf("expected no snapshot within %v, but got: %+v", within, s)
	case <-time.After(within):
		// good: no snapshot
	}
}

func newTestLobby(t *testing.T, onDissolve func(*Lobby)) *Lobby {
	t.Helper()
	gen := slot.NewSequenceGen("s")
	initial, err := engine.Create(gen, "X", engine.Map{Name: "Lost Temple", Hash: "beef"},
		engine.GameTypeMelee, 0, 4, "Boxer", slot.RaceProtoss, false)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewLobby(ctx, initial, gen, zap.NewNop(), onDissolve)
}

func TestLobby_Join_BroadcastsSnapshotAndVersionIncrements(t *testing.T) {
	l := newTestLobby(t, nil)
	ctx := context.Background()

	clientOut := make(chan Snapshot, 2) // small buffer so broadcast doesn't block
	require.NoError(t, l.Send(ctx, Join{ClientID: "ch1", Outbox: clientOut}))

	first := recvSnapshot(t, clientOut, 100*time.Millisecond)
	assert.Equal(t, 0, first.Version)
	assert.Equal(t, 1, engine.HumanSlotCount(first.Lobby))

	require.NoError(t, l.Apply(ctx, engine.Command{Type: engine.CmdJoin, Actor: "Pachi"}))

	next := recvSnapshot(t, clientOut, 100*time.Millisecond)
	assert.Equal(t, 1, next.Version)
	assert.Equal(t, 2, engine.HumanSlotCount(next.Lobby))
	assert.True(t, engine.ContainsEvent(next.Events, engine.EvtPlayerJoined))
}

func TestLobby_RejectedCommandRepliesWithoutBroadcast(t *testing.T) {
	l := newTestLobby(t, nil)
	ctx := context.Background()

	out := make(chan Snapshot, 2)
	require.NoError(t, l.Send(ctx, Join{ClientID: "ch1", Outbox: out}))
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	err := l.Apply(ctx, engine.Command{Type: engine.CmdCloseSlot, Actor: "Pachi", Team: 0, Slot: 1})
	assert.ErrorIs(t, err, engine.ErrNotHost)
	recvNoSnapshot(t, out, 50*time.Millisecond)

	view, err := l.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Version)
}

func TestLobby_DropSlowClient(t *testing.T) {
	l := newTestLobby(t, nil)
	ctx := context.Background()

	clientOut := make(chan Snapshot, 1)
	require.NoError(t, l.Send(ctx, Join{ClientID: "ch1", Outbox: clientOut}))

	require.NoError(t, l.Apply(ctx, engine.Command{Type: engine.CmdJoin, Actor: "Pachi"}))

	view, err := l.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, view.NumClients, "expected slow client to be dropped")
	assert.Equal(t, 1, view.Version)
}

func TestLobby_Summary(t *testing.T) {
	l := newTestLobby(t, nil)

	s, err := l.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "X", s.Name)
	assert.Equal(t, "Boxer", s.Host.Name)
	assert.Equal(t, 3, s.OpenSlotCount)
}

func TestLobby_LastHumanLeavingDissolves(t *testing.T) {
	dissolved := make(chan *Lobby, 1)
	l := newTestLobby(t, func(lb *Lobby) { dissolved <- lb })
	ctx := context.Background()

	out := make(chan Snapshot, 4)
	require.NoError(t, l.Send(ctx, Join{ClientID: "ch1", Outbox: out}))
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	require.NoError(t, l.Apply(ctx, engine.Command{Type: engine.CmdLeave, Actor: "Boxer"}))

	final := recvSnapshot(t, out, 100*time.Millisecond)
	assert.Nil(t, final.Lobby)
	assert.True(t, engine.ContainsEvent(final.Events, engine.EvtLobbyDissolved))

	select {
	case lb := <-dissolved:
		assert.Same(t, l, lb)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("dissolve callback not invoked")
	}

	select {
	case <-l.Done():
	case <-time.After(100 * time.Millisecond):
		t.Fatal("actor did not exit")
	}
	_, ok := <-out
	assert.False(t, ok, "outbox should be closed")

	err := l.Apply(ctx, engine.Command{Type: engine.CmdJoin, Actor: "Late"})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestLobby_StopClosesOutboxes(t *testing.T) {
	l := newTestLobby(t, nil)
	ctx := context.Background()

	out := make(chan Snapshot, 2)
	require.NoError(t, l.Send(ctx, Join{ClientID: "c1", Outbox: out}))
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	l.Stop()
	<-l.Done()

	recvNoSnapshot(t, out, 50*time.Millisecond)
	_, err := l.Summary(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestLobby_SendHonorsContext(t *testing.T) {
	l := newTestLobby(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l.Stop()
	<-l.Done()

	err := l.Send(ctx, Shutdown{})
	assert.Error(t, err)
}

func TestLobby_LeaveClosesOutbox(t *testing.T) {
	l := newTestLobby(t, nil)
	ctx := context.Background()

	out := make(chan Snapshot, 2)
	require.NoError(t, l.Send(ctx, Join{ClientID: "c1", Outbox: out}))
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	require.NoError(t, l.Send(ctx, Leave{ClientID: "c1"}))

	select {
	case _, ok := <-out:
		assert.False(t, ok, "expected closed outbox, got a snapshot")
	case <-time.After(100 * time.Millisecond):
		t.Fatal("outbox not closed after Leave")
	}

	// a second Leave for the same client must not close the outbox again
	require.NoError(t, l.Send(ctx, Leave{ClientID: "c1"}))
	view, err := l.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, view.NumClients)
}

func TestLobby_PlayerKeepsSeatWhileConnected(t *testing.T) {
	l := newTestLobby(t, nil)
	ctx := context.Background()
	require.NoError(t, l.Apply(ctx, engine.Command{Type: engine.CmdJoin, Actor: "Pachi"}))

	first := make(chan Snapshot, 4)
	second := make(chan Snapshot, 4)
	require.NoError(t, l.Send(ctx, Join{ClientID: "c1", Player: "Pachi", Outbox: first}))
	require.NoError(t, l.Send(ctx, Join{ClientID: "c2", Player: "Pachi", Outbox: second}))
	_ = recvSnapshot(t, first, 100*time.Millisecond)
	_ = recvSnapshot(t, second, 100*time.Millisecond)

	require.NoError(t, l.Send(ctx, Leave{ClientID: "c1", Player: "Pachi"}))
	view, err := l.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, view.NumClients)
	assert.Equal(t, 2, engine.HumanSlotCount(view.Lobby))
	recvNoSnapshot(t, second, 50*time.Millisecond)

	require.NoError(t, l.Send(ctx, Leave{ClientID: "c2", Player: "Pachi"}))
	view, err = l.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, view.NumClients)
	assert.Equal(t, 1, engine.HumanSlotCount(view.Lobby))
	assert.Equal(t, 2, view.Version)
}

func TestLobby_LastHostConnectionLeavingDissolves(t *testing.T) {
	dissolved := make(chan *Lobby, 1)
	l := newTestLobby(t, func(lb *Lobby) { dissolved <- lb })
	ctx := context.Background()

	out := make(chan Snapshot, 2)
	require.NoError(t, l.Send(ctx, Join{ClientID: "c1", Player: "Boxer", Outbox: out}))
	_ = recvSnapshot(t, out, 100*time.Millisecond)
	require.NoError(t, l.Send(ctx, Leave{ClientID: "c1", Player: "Boxer"}))

	select {
	case <-dissolved:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("lobby not dissolved")
	}
	<-l.Done()
}
