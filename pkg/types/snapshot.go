package types

import (
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/engine"
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/slot"
)

// LobbySnapshot is the full client view of a lobby. Hidden map slots are not
// included.
type LobbySnapshot struct {
	Name        string     `json:"name"`
	Map         string     `json:"map"`
	GameType    string     `json:"gameType"`
	GameSubType int        `json:"gameSubType"`
	Host        string     `json:"host"`
	Teams       []TeamView `json:"teams"`
}

type TeamView struct {
	ID         int        `json:"id"`
	Name       string     `json:"name,omitempty"`
	IsObserver bool       `json:"isObserver,omitempty"`
	Slots      []SlotView `json:"slots"`
}

type SlotView struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Name          string `json:"name"`
	Race          string `json:"race"`
	ControlledBy  string `json:"controlledBy,omitempty"`
	HasForcedRace bool   `json:"hasForcedRace,omitempty"`
}

func FromLobby(l *engine.Lobby) *LobbySnapshot {
	if l == nil {
		return nil
	}
	out := &LobbySnapshot{
		Name:        l.Name,
		Map:         l.Map.Name,
		GameType:    string(l.GameType),
		GameSubType: l.GameSubType,
		Host:        string(l.Host.ID),
		Teams:       make([]TeamView, len(l.Teams)),
	}
	for i, t := range l.Teams {
		tv := TeamView{ID: t.ID, Name: t.Name, IsObserver: t.IsObserver, Slots: make([]SlotView, len(t.Slots))}
		for j, s := range t.Slots {
			tv.Slots[j] = fromSlot(s)
		}
		out.Teams[i] = tv
	}
	return out
}

func fromSlot(s slot.Slot) SlotView {
	v := SlotView{
		ID:   string(s.SlotID()),
		Type: string(s.Kind()),
		Name: slot.NameOf(s),
		Race: string(s.SlotRace()),
	}
	if ctrl, ok := slot.ControllerOf(s); ok {
		v.ControlledBy = string(ctrl)
	}
	switch x := s.(type) {
	case slot.Human:
		v.HasForcedRace = x.HasForcedRace
	case slot.Open:
		v.HasForcedRace = x.HasForcedRace
	case slot.Closed:
		v.HasForcedRace = x.HasForcedRace
	case slot.UmsComputer:
		v.HasForcedRace = x.HasForcedRace
	}
	return v
}
