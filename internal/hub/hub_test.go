package hub

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

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewHub(ctx, slot.NewSequenceGen("s"), zap.NewNop())
}

func newState(t *testing.T, h *Hub, name string) *engine.Lobby {
	t.Helper()
	l, err := engine.Create(h.IDGen(), name, engine.Map{Name: "Fighting Spirit"},
		engine.GameTypeMelee, 0, 4, "Boxer", slot.RaceTerran, false)
	require.NoError(t, err)
	return l
}

func TestHub_Create_Get_SamePointer(t *testing.T) {
	ctx := context.Background()
	h := newTestHub(t)

	lb1, err := h.Create(ctx, newState(t, h, "ZED123"))
	require.NoError(t, err)

	lb2, err := h.Get(ctx, "ZED123")
	require.NoError(t, err)
	assert.Same(t, lb1, lb2)
}

func TestHub_CreateDuplicateName(t *testing.T) {
	ctx := context.Background()
	h := newTestHub(t)

	_, err := h.Create(ctx, newState(t, h, "dupe"))
	require.NoError(t, err)

	_, err = h.Create(ctx, newState(t, h, "dupe"))
	assert.ErrorIs(t, err, ErrLobbyExists)
}

func TestHub_GetMissing(t *testing.T) {
	h := newTestHub(t)

	_, err := h.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrLobbyNotFound)
}

func TestHub_List(t *testing.T) {
	ctx := context.Background()
	h := newTestHub(t)

	for _, name := range []string{"a", "b", "c"} {
		_, err := h.Create(ctx, newState(t, h, name))
		require.NoError(t, err)
	}

	all, err := h.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestHub_DissolvedLobbyIsRemoved(t *testing.T) {
	ctx := context.Background()
	h := newTestHub(t)

	lb, err := h.Create(ctx, newState(t, h, "short"))
	require.NoError(t, err)
	require.NoError(t, lb.Apply(ctx, engine.Command{Type: engine.CmdLeave, Actor: "Boxer"}))

	assert.Eventually(t, func() bool {
		_, err := h.Get(ctx, "short")
		return err == ErrLobbyNotFound
	}, time.Second, 10*time.Millisecond)
}

func TestHub_ShutdownStopsLobbies(t *testing.T) {
	ctx := context.Background()
	h := newTestHub(t)

	lb, err := h.Create(ctx, newState(t, h, "x"))
	require.NoError(t, err)

	h.Shutdown()

	select {
	case <-lb.Done():
	case <-time.After(time.Second):
		t.Fatal("lobby still running after hub shutdown")
	}
	assert.Eventually(t, func() bool {
		_, err := h.Get(ctx, "x")
		return err == ErrHubClosed
	}, time.Second, 10*time.Millisecond)
}
