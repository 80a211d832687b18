package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ShieldBattery/ShieldBattery-sub010/internal/engine"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/hub"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/lobby"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/slot"
	"github.com/ShieldBattery/ShieldBattery-sub010/pkg/types"
)

var errUnknownType = errors.New("unknown message type")

type Options struct {
	ClientBuffer int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.ClientBuffer < 1 {
		o.ClientBuffer = 8
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = time.Minute
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 3 * time.Second
	}
	return o
}

// Handler seats the player named in the query in the lobby (unless already
// seated), streams lobby snapshots, and turns client messages into commands.
// The player leaves the lobby when their last connection closes.
func Handler(h *hub.Hub, opts Options, log *zap.Logger) http.HandlerFunc {
	opts = opts.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("lobby")
		player := r.URL.Query().Get("player")
		if name == "" || player == "" {
			http.Error(w, "missing lobby or player", http.StatusBadRequest)
			return
		}

		lb, err := h.Get(r.Context(), name)
		if err != nil {
			http.Error(w, "lobby not found", http.StatusNotFound)
			return
		}

		view, err := lb.State(r.Context())
		if err != nil {
			http.Error(w, "lobby not found", http.StatusNotFound)
			return
		}
		joined := false
		if _, _, s := engine.FindSlotByName(view.Lobby, player); s == nil {
			err := lb.Apply(r.Context(), engine.Command{Type: engine.CmdJoin, Actor: player})
			if err != nil {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			joined = true
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			if joined {
				leave(lb, player)
			}
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := uuid.NewString()
		clog := log.With(zap.String("lobby", name), zap.String("client", clientID), zap.String("player", player))
		out := make(chan lobby.Snapshot, opts.ClientBuffer)

		if err := lb.Send(r.Context(), lobby.Join{ClientID: clientID, Player: player, Outbox: out}); err != nil {
			if joined {
				leave(lb, player)
			}
			return
		}
		defer func() {
			// the actor closes out and releases the seat if this was the
			// player's last connection
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = lb.Send(ctx, lobby.Leave{ClientID: clientID, Player: player})
		}()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		writerDone := make(chan struct{})
		defer func() {
			writeCancel()
			<-writerDone
		}()
		go func() {
			defer close(writerDone)
			defer writeCancel()
			for {
				select {
				case <-writeCtx.Done():
					return
				case snap, ok := <-out:
					if !ok {
						// outbox closed without a final snapshot: dropped or shut down
						conn.Close(websocket.StatusGoingAway, "lobby closed")
						return
					}
					if err := write(writeCtx, conn, opts.WriteTimeout, snapshotMessage(snap)); err != nil {
						clog.Debug("write failed", zap.Error(err))
						return
					}
					if snap.Lobby == nil {
						conn.Close(websocket.StatusNormalClosure, "lobby dissolved")
						return
					}
				}
			}
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(writeCtx, opts.ReadTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					clog.Debug("read failed", zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = write(writeCtx, conn, opts.WriteTimeout, types.ServerMessage{Type: types.MsgError, Error: "bad json"})
				continue
			}

			cmd, err := toEngineCommand(player, cm)
			if err != nil {
				_ = write(writeCtx, conn, opts.WriteTimeout, types.ServerMessage{Type: types.MsgError, Error: err.Error()})
				continue
			}

			if err := lb.Apply(writeCtx, cmd); err != nil {
				if errors.Is(err, lobby.ErrClosed) {
					return
				}
				_ = write(writeCtx, conn, opts.WriteTimeout, types.ServerMessage{Type: types.MsgError, Error: err.Error()})
				continue
			}
			if cmd.Type == engine.CmdLeave {
				return
			}
		}
	}
}

// leave undoes a join made for a connection that never subscribed. Errors
// mean the player is already gone or the lobby is.
func leave(lb *lobby.Lobby, player string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = lb.Apply(ctx, engine.Command{Type: engine.CmdLeave, Actor: player})
}

func write(ctx context.Context, conn *websocket.Conn, timeout time.Duration, msg types.ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, payload)
}

func snapshotMessage(snap lobby.Snapshot) types.ServerMessage {
	msg := types.ServerMessage{
		Type:    types.MsgLobbySnapshot,
		Version: snap.Version,
		Lobby:   types.FromLobby(snap.Lobby),
		Events:  types.FromEvents(snap.Events),
	}
	if snap.Lobby == nil {
		msg.Type = types.MsgLobbyDissolved
	}
	return msg
}

func toEngineCommand(player string, m types.ClientMessage) (engine.Command, error) {
	cmd := engine.Command{
		Actor:    player,
		Race:     slot.Race(m.Race),
		Team:     m.Team,
		Slot:     m.Slot,
		ToTeam:   m.ToTeam,
		ToSlot:   m.ToSlot,
		TargetID: slot.ID(m.Target),
	}

	switch m.Type {
	case "Leave":
		cmd.Type = engine.CmdLeave
	case "AddComputer":
		cmd.Type = engine.CmdAddComputer
	case "Kick":
		cmd.Type = engine.CmdKick
	case "MoveSlot":
		cmd.Type = engine.CmdMoveSlot
	case "SetRace":
		cmd.Type = engine.CmdSetRace
	case "OpenSlot":
		cmd.Type = engine.CmdOpenSlot
	case "CloseSlot":
		cmd.Type = engine.CmdCloseSlot
	case "MakeObserver":
		cmd.Type = engine.CmdMakeObserver
	case "RemoveObserver":
		cmd.Type = engine.CmdRemoveObserver
	default:
		return engine.Command{}, errUnknownType
	}
	return cmd, nil
}
