package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ShieldBattery/ShieldBattery-sub010/internal/hub"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/maps"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/ws"
)

func SetupRoutes(h *hub.Hub, store maps.Store, wsOpts ws.Options, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Post("/lobbies", CreateLobby(h, store, log))
	r.Get("/lobbies", ListLobbies(h))
	r.Get("/lobbies/{name}", GetLobby(h))
	r.Post("/maps", PutMap(store))
	r.Get("/maps", ListMaps(store))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, wsOpts, log))
	return r
}
