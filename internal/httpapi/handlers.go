package httpapi

import (
	"crypto/rand"
	"errors"
	"math/big"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/ShieldBattery/ShieldBattery-sub010/internal/engine"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/hub"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/maps"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/slot"
)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

type createLobbyRequest struct {
	Name           string `json:"name"`
	Map            string `json:"map"`
	GameType       string `json:"gameType"`
	GameSubType    int    `json:"gameSubType"`
	NumSlots       int    `json:"numSlots"`
	HostName       string `json:"hostName"`
	HostRace       string `json:"hostRace"`
	AllowObservers bool   `json:"allowObservers"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func CreateLobby(h *hub.Hub, store maps.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createLobbyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.HostName == "" {
			writeError(w, http.StatusBadRequest, "hostName is required")
			return
		}

		m, err := store.Get(r.Context(), req.Map)
		if err != nil {
			if errors.Is(err, maps.ErrMapNotFound) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Error("map lookup failed", zap.String("map", req.Map), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "map lookup failed")
			return
		}

		name := req.Name
		if name == "" {
			if name, err = GenerateCode(); err != nil {
				writeError(w, http.StatusInternalServerError, "failed to generate code")
				return
			}
		}

		race := slot.Race(req.HostRace)
		if race == "" {
			race = slot.RaceRandom
		}
		state, err := engine.Create(h.IDGen(), name, m, engine.GameType(req.GameType),
			req.GameSubType, req.NumSlots, req.HostName, race, req.AllowObservers)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if _, err := h.Create(r.Context(), state); err != nil {
			if errors.Is(err, hub.ErrLobbyExists) {
				writeError(w, http.StatusConflict, err.Error())
				return
			}
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, engine.ToSummary(state))
	}
}

func ListLobbies(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := h.List(r.Context())
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		out := make([]engine.Summary, 0, len(all))
		for _, lb := range all {
			s, err := lb.Summary(r.Context())
			if err != nil {
				// dissolved between listing and asking
				continue
			}
			out = append(out, s)
		}
		slices.SortFunc(out, func(a, b engine.Summary) int { return strings.Compare(a.Name, b.Name) })
		writeJSON(w, http.StatusOK, out)
	}
}

func GetLobby(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lb, err := h.Get(r.Context(), chi.URLParam(r, "name"))
		if err != nil {
			writeError(w, http.StatusNotFound, "lobby not found")
			return
		}
		s, err := lb.Summary(r.Context())
		if err != nil {
			writeError(w, http.StatusNotFound, "lobby not found")
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

func PutMap(store maps.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m engine.Map
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := store.Put(r.Context(), m); err != nil {
			switch {
			case errors.Is(err, maps.ErrMapExists):
				writeError(w, http.StatusConflict, err.Error())
			case errors.Is(err, maps.ErrInvalidMap):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

func ListMaps(store maps.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := store.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, all)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
