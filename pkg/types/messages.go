package types

import "github.com/ShieldBattery/ShieldBattery-sub010/internal/engine"

// Client -> Server
//
// The acting player is the one named in the websocket URL.
//
// MoveSlot:       toTeam, toSlot
// SetRace:        race, target (optional; a computer's slot id, host only)
// AddComputer:    team, slot, race
// Kick:           target
// OpenSlot:       team, slot
// CloseSlot:      team, slot
// MakeObserver:   team, slot
// RemoveObserver: slot
// Leave:          {}
type ClientMessage struct {
	Type   string `json:"type"`
	Race   string `json:"race,omitempty"`
	Team   int    `json:"team,omitempty"`
	Slot   int    `json:"slot,omitempty"`
	ToTeam int    `json:"toTeam,omitempty"`
	ToSlot int    `json:"toSlot,omitempty"`
	Target string `json:"target,omitempty"`
}

const (
	MsgLobbySnapshot  = "LobbySnapshot"
	MsgLobbyDissolved = "LobbyDissolved"
	MsgError          = "Error"
)

// Server -> Client
type ServerMessage struct {
	Type    string         `json:"type"` // "LobbySnapshot" | "LobbyDissolved" | "Error"
	Version int            `json:"version,omitempty"`
	Lobby   *LobbySnapshot `json:"lobby,omitempty"`
	Events  []EventView    `json:"events,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type EventView struct {
	Type   string `json:"type"`
	Name   string `json:"name,omitempty"`
	SlotID string `json:"slotId,omitempty"`
	Team   int    `json:"team"`
	Slot   int    `json:"slot"`
}

func FromEvents(events []engine.Event) []EventView {
	if len(events) == 0 {
		return nil
	}
	out := make([]EventView, len(events))
	for i, e := range events {
		out[i] = EventView{
			Type:   string(e.Type),
			Name:   e.Name,
			SlotID: string(e.SlotID),
			Team:   e.Team,
			Slot:   e.Slot,
		}
	}
	return out
}
