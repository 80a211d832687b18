package lobby

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ShieldBattery/ShieldBattery-sub010/internal/engine"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/slot"
)

var ErrClosed = errors.New("lobby closed")

type Msg interface{ isLobbyMsg() }

// FromClient applies Cmd. Reply, when set, receives the outcome and must be
// buffered.
type FromClient struct {
	Cmd   engine.Command
	Reply chan<- error
}

func (FromClient) isLobbyMsg() {}

// Join subscribes Outbox. Player, when set, is the seated player the
// subscription belongs to.
type Join struct {
	ClientID string
	Player   string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isLobbyMsg() {}

// Leave unsubscribes ClientID and closes its outbox. A Player left without
// any subscription is taken out of the lobby.
type Leave struct {
	ClientID string
	Player   string
}

func (Leave) isLobbyMsg() {}

type Shutdown struct{}

func (Shutdown) isLobbyMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isLobbyMsg() {}

type GetSummary struct {
	Reply chan engine.Summary
}

func (GetSummary) isLobbyMsg() {}

// Snapshot is what subscribers receive after every accepted command. A nil
// Lobby is the final snapshot of a dissolved lobby.
type Snapshot struct {
	Version int
	Lobby   *engine.Lobby
	Events  []engine.Event
}

type View struct {
	Version    int
	NumClients int
	Lobby      *engine.Lobby
}

type client struct {
	player string
	out    chan Snapshot
}

type Lobby struct {
	name       string
	inbox      chan Msg
	state      *engine.Lobby
	gen        slot.IDGen
	version    int
	clients    map[string]client
	log        *zap.Logger
	onDissolve func(*Lobby)
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewLobby starts the actor owning initial. onDissolve runs on the actor
// goroutine once the last human leaves; it may be nil.
func NewLobby(parent context.Context, initial *engine.Lobby, gen slot.IDGen, log *zap.Logger, onDissolve func(*Lobby)) *Lobby {
	ctx, cancel := context.WithCancel(parent)

	l := &Lobby{
		name:       initial.Name,
		inbox:      make(chan Msg, 64), // Small buffer
		state:      initial,
		gen:        gen,
		clients:    make(map[string]client),
		log:        log.With(zap.String("lobby", initial.Name)),
		onDissolve: onDissolve,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}

	go l.loop()
	return l
}

func (l *Lobby) loop() {
	defer close(l.done)
	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				l.clients[msg.ClientID] = client{player: msg.Player, out: msg.Outbox}
				msg.Outbox <- Snapshot{Version: l.version, Lobby: l.state}
				l.log.Debug("client subscribed", zap.String("client", msg.ClientID))

			case Leave:
				l.unsubscribe(msg.ClientID)
				if msg.Player == "" || l.connected(msg.Player) {
					break
				}
				if _, _, s := engine.FindSlotByName(l.state, msg.Player); s == nil {
					break
				}
				if dissolved, _ := l.apply(engine.Command{Type: engine.CmdLeave, Actor: msg.Player}); dissolved {
					return
				}

			case FromClient:
				dissolved, err := l.apply(msg.Cmd)
				if msg.Reply != nil {
					msg.Reply <- err
				}
				if dissolved {
					return
				}

			case GetState:
				msg.Reply <- View{
					Version:    l.version,
					NumClients: len(l.clients),
					Lobby:      l.state,
				}

			case GetSummary:
				msg.Reply <- engine.ToSummary(l.state)

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

// apply runs cmd and broadcasts the result. dissolved reports that the actor
// has shut down and the loop must exit.
func (l *Lobby) apply(cmd engine.Command) (dissolved bool, err error) {
	events, next, err := engine.Apply(l.state, l.gen, cmd)
	if err != nil {
		l.log.Debug("command rejected",
			zap.String("command", string(cmd.Type)),
			zap.String("actor", cmd.Actor),
			zap.Error(err))
		return false, err
	}
	l.version++
	if next == nil {
		l.log.Info("lobby dissolved", zap.Int("version", l.version))
		l.broadcast(Snapshot{Version: l.version, Events: events})
		l.state = nil
		if l.onDissolve != nil {
			l.onDissolve(l)
		}
		l.shutdown()
		return true, nil
	}
	if engine.ContainsEvent(events, engine.EvtHostChanged) {
		l.log.Info("host changed", zap.String("host", next.Host.Name), zap.Int("version", l.version))
	}
	l.state = next
	l.broadcast(Snapshot{Version: l.version, Lobby: l.state, Events: events})
	return false, nil
}

func (l *Lobby) unsubscribe(id string) {
	if c, ok := l.clients[id]; ok {
		close(c.out)
		delete(l.clients, id)
	}
}

// connected reports whether player still has a subscription.
func (l *Lobby) connected(player string) bool {
	for _, c := range l.clients {
		if c.player == player {
			return true
		}
	}
	return false
}

func (l *Lobby) shutdown() {
	for id, c := range l.clients {
		close(c.out) // Tell client no more snapshots
		delete(l.clients, id)
	}
	l.cancel()
}

func (l *Lobby) broadcast(snap Snapshot) {
	for id, c := range l.clients {
		select {
		case c.out <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			l.log.Warn("dropping slow client", zap.String("client", id))
			close(c.out)
			delete(l.clients, id)
		}
	}
}

func (l *Lobby) Name() string { return l.name }

// Expose the inbox so tests or WS layer can send messages.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }

// Done is closed once the actor has exited.
func (l *Lobby) Done() <-chan struct{} { return l.done }

// Stop cancels the actor without going through the inbox.
func (l *Lobby) Stop() { l.cancel() }

// Send delivers m unless ctx ends or the actor has already exited.
func (l *Lobby) Send(ctx context.Context, m Msg) error {
	select {
	case <-l.done:
		return ErrClosed
	default:
	}
	select {
	case l.inbox <- m:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Apply runs cmd on the actor and returns the engine's verdict.
func (l *Lobby) Apply(ctx context.Context, cmd engine.Command) error {
	reply := make(chan error, 1)
	if err := l.Send(ctx, FromClient{Cmd: cmd, Reply: reply}); err != nil {
		return err
	}
	res, err := await(ctx, l, reply)
	if err != nil {
		return err
	}
	return res
}

func (l *Lobby) State(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	if err := l.Send(ctx, GetState{Reply: reply}); err != nil {
		return View{}, err
	}
	return await(ctx, l, reply)
}

func (l *Lobby) Summary(ctx context.Context) (engine.Summary, error) {
	reply := make(chan engine.Summary, 1)
	if err := l.Send(ctx, GetSummary{Reply: reply}); err != nil {
		return engine.Summary{}, err
	}
	return await(ctx, l, reply)
}

func await[T any](ctx context.Context, l *Lobby, reply chan T) (T, error) {
	var zero T
	select {
	case v := <-reply:
		return v, nil
	case <-l.done:
		// the actor may have replied right before exiting
		select {
		case v := <-reply:
			return v, nil
		default:
			return zero, ErrClosed
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
