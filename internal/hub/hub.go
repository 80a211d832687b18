package hub

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ShieldBattery/ShieldBattery-sub010/internal/engine"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/lobby"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/slot"
)

var (
	ErrLobbyExists   = errors.New("lobby already exists")
	ErrLobbyNotFound = errors.New("lobby not found")
	ErrHubClosed     = errors.New("hub closed")
)

type HubMsg interface{ isHubMsg() }

type Created struct {
	Lobby *lobby.Lobby
	Err   error
}

type CreateLobby struct {
	Name  string
	State *engine.Lobby
	Reply chan Created
}

type GetLobby struct {
	Name  string
	Reply chan *lobby.Lobby
}

// RemoveLobby unregisters Lobby if it is still the one registered under Name.
type RemoveLobby struct {
	Name  string
	Lobby *lobby.Lobby
}

type ListLobbies struct {
	Reply chan []*lobby.Lobby
}

type ShutdownHub struct{}

type Hub struct {
	inbox   chan HubMsg
	lobbies map[string]*lobby.Lobby
	gen     slot.IDGen
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func (CreateLobby) isHubMsg() {}
func (GetLobby) isHubMsg()    {}
func (RemoveLobby) isHubMsg() {}
func (ListLobbies) isHubMsg() {}
func (ShutdownHub) isHubMsg() {}

// NewHub starts the registry. gen is shared by every lobby so slot ids stay
// unique across the process.
func NewHub(parent context.Context, gen slot.IDGen, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:   make(chan HubMsg, 64),
		lobbies: make(map[string]*lobby.Lobby),
		gen:     gen,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) IDGen() slot.IDGen { return h.gen }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateLobby:
				if h.lobbies[msg.Name] != nil {
					msg.Reply <- Created{Err: ErrLobbyExists}
					break
				}
				lb := lobby.NewLobby(h.ctx, msg.State, h.gen, h.log, h.dissolved)
				h.lobbies[msg.Name] = lb
				h.log.Info("lobby created",
					zap.String("lobby", msg.Name),
					zap.String("gameType", string(msg.State.GameType)))
				msg.Reply <- Created{Lobby: lb}

			case GetLobby:
				msg.Reply <- h.lobbies[msg.Name] // May be nil

			case RemoveLobby:
				if lb := h.lobbies[msg.Name]; lb != nil && (msg.Lobby == nil || lb == msg.Lobby) {
					delete(h.lobbies, msg.Name)
					h.log.Info("lobby removed", zap.String("lobby", msg.Name))
				}

			case ListLobbies:
				out := make([]*lobby.Lobby, 0, len(h.lobbies))
				for _, lb := range h.lobbies {
					out = append(out, lb)
				}
				msg.Reply <- out

			case ShutdownHub:
				h.shutdown()
				h.cancel()
				return
			}
		}
	}
}

func (h *Hub) shutdown() {
	for _, lb := range h.lobbies {
		lb.Stop()
	}
	clear(h.lobbies)
}

// dissolved runs on a lobby goroutine, so it must not wait on the hub loop
// once the hub is gone.
func (h *Hub) dissolved(lb *lobby.Lobby) {
	select {
	case h.inbox <- RemoveLobby{Name: lb.Name(), Lobby: lb}:
	case <-h.ctx.Done():
	}
}

func (h *Hub) send(ctx context.Context, m HubMsg) error {
	select {
	case <-h.ctx.Done():
		return ErrHubClosed
	default:
	}
	select {
	case h.inbox <- m:
		return nil
	case <-h.ctx.Done():
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func await[T any](ctx context.Context, h *Hub, reply chan T) (T, error) {
	var zero T
	select {
	case v := <-reply:
		return v, nil
	case <-h.ctx.Done():
		return zero, ErrHubClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Create registers state under its name and starts its actor.
func (h *Hub) Create(ctx context.Context, state *engine.Lobby) (*lobby.Lobby, error) {
	reply := make(chan Created, 1)
	if err := h.send(ctx, CreateLobby{Name: state.Name, State: state, Reply: reply}); err != nil {
		return nil, err
	}
	c, err := await(ctx, h, reply)
	if err != nil {
		return nil, err
	}
	return c.Lobby, c.Err
}

func (h *Hub) Get(ctx context.Context, name string) (*lobby.Lobby, error) {
	reply := make(chan *lobby.Lobby, 1)
	if err := h.send(ctx, GetLobby{Name: name, Reply: reply}); err != nil {
		return nil, err
	}
	lb, err := await(ctx, h, reply)
	if err != nil {
		return nil, err
	}
	if lb == nil {
		return nil, ErrLobbyNotFound
	}
	return lb, nil
}

func (h *Hub) List(ctx context.Context) ([]*lobby.Lobby, error) {
	reply := make(chan []*lobby.Lobby, 1)
	if err := h.send(ctx, ListLobbies{Reply: reply}); err != nil {
		return nil, err
	}
	return await(ctx, h, reply)
}

func (h *Hub) Shutdown() {
	select {
	case h.inbox <- ShutdownHub{}:
	case <-h.ctx.Done():
	}
}
