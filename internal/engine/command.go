package engine

import (
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/slot"
)

type CommandType string

const (
	CmdJoin           CommandType = "Join"
	CmdLeave          CommandType = "Leave"
	CmdAddComputer    CommandType = "AddComputer"
	CmdKick           CommandType = "Kick"
	CmdMoveSlot       CommandType = "MoveSlot"
	CmdSetRace        CommandType = "SetRace"
	CmdOpenSlot       CommandType = "OpenSlot"
	CmdCloseSlot      CommandType = "CloseSlot"
	CmdMakeObserver   CommandType = "MakeObserver"
	CmdRemoveObserver CommandType = "RemoveObserver"
)

/*
	CmdJoin           -> EvtPlayerJoined
	CmdLeave, CmdKick -> EvtPlayerLeft/EvtPlayerKicked -> EvtHostChanged or EvtLobbyDissolved
	CmdAddComputer    -> EvtPlayerJoined
	CmdMoveSlot       -> EvtPlayerMoved
	CmdSetRace        -> EvtRaceChanged
	CmdOpenSlot       -> EvtSlotOpened
	CmdCloseSlot      -> EvtSlotClosed
	CmdMakeObserver   -> EvtObserverAdded
	CmdRemoveObserver -> EvtObserverRemoved
*/

// Command is issued by Actor, the name of a human in the lobby (or joining it).
type Command struct {
	Type     CommandType
	Actor    string
	Race     slot.Race
	Team     int
	Slot     int
	ToTeam   int
	ToSlot   int
	TargetID slot.ID
}

type EventType string

const (
	EvtPlayerJoined    EventType = "PlayerJoined"
	EvtPlayerLeft      EventType = "PlayerLeft"
	EvtPlayerKicked    EventType = "PlayerKicked"
	EvtPlayerMoved     EventType = "PlayerMoved"
	EvtRaceChanged     EventType = "RaceChanged"
	EvtSlotOpened      EventType = "SlotOpened"
	EvtSlotClosed      EventType = "SlotClosed"
	EvtObserverAdded   EventType = "ObserverAdded"
	EvtObserverRemoved EventType = "ObserverRemoved"
	EvtHostChanged     EventType = "HostChanged"
	EvtLobbyDissolved  EventType = "LobbyDissolved"
)

type Event struct {
	Type   EventType
	Name   string
	SlotID slot.ID
	Team   int
	Slot   int
}

// Apply validates cmd against l and returns the resulting lobby. A nil lobby
// with a nil error means the command dissolved the lobby.
func Apply(l *Lobby, gen slot.IDGen, cmd Command) ([]Event, *Lobby, error) {
	if l == nil {
		return nil, nil, ErrLobbyDissolved
	}

	switch cmd.Type {
	case CmdJoin:
		if _, _, s := FindSlotByName(l, cmd.Actor); s != nil {
			return nil, l, ErrNameTaken
		}
		team, index := FindAvailableSlot(l)
		if team < 0 {
			return nil, l, ErrLobbyFull
		}
		race := raceOrRandom(cmd.Race)
		if !race.Valid() {
			return nil, l, ErrInvalidRace
		}
		h := slot.NewHuman(gen, cmd.Actor, race)
		next, err := AddPlayer(l, gen, team, index, h)
		if err != nil {
			return nil, l, err
		}
		return []Event{{Type: EvtPlayerJoined, Name: h.Name, SlotID: h.ID, Team: team, Slot: index}}, next, nil

	case CmdLeave:
		team, index, s := FindSlotByName(l, cmd.Actor)
		if s == nil {
			return nil, l, ErrUnknownActor
		}
		return removeOccupant(l, gen, team, index, s, EvtPlayerLeft)

	case CmdAddComputer:
		if err := requireHost(l, cmd.Actor); err != nil {
			return nil, l, err
		}
		race := raceOrRandom(cmd.Race)
		if !race.Valid() {
			return nil, l, ErrInvalidRace
		}
		c := slot.NewComputer(gen, race)
		next, err := AddPlayer(l, gen, cmd.Team, cmd.Slot, c)
		if err != nil {
			return nil, l, err
		}
		return []Event{{Type: EvtPlayerJoined, Name: slot.ComputerName, SlotID: c.ID, Team: cmd.Team, Slot: cmd.Slot}}, next, nil

	case CmdKick:
		if err := requireHost(l, cmd.Actor); err != nil {
			return nil, l, err
		}
		if cmd.TargetID == l.Host.ID {
			return nil, l, ErrCannotKickSelf
		}
		team, index, s := FindSlotByID(l, cmd.TargetID)
		if s == nil || !slot.IsOccupied(s) {
			return nil, l, ErrSlotNotOccupied
		}
		switch s.(type) {
		case slot.Human, slot.Computer:
		default:
			// map-placed computers belong to the map
			return nil, l, ErrNotKickable
		}
		return removeOccupant(l, gen, team, index, s, EvtPlayerKicked)

	case CmdMoveSlot:
		team, index, s := FindSlotByName(l, cmd.Actor)
		if s == nil {
			return nil, l, ErrUnknownActor
		}
		next, err := MovePlayerToSlot(l, gen, team, index, cmd.ToTeam, cmd.ToSlot)
		if err != nil {
			return nil, l, err
		}
		return []Event{{Type: EvtPlayerMoved, Name: cmd.Actor, SlotID: s.SlotID(), Team: cmd.ToTeam, Slot: cmd.ToSlot}}, next, nil

	case CmdSetRace:
		team, index, s := FindSlotByName(l, cmd.Actor)
		if s == nil {
			return nil, l, ErrUnknownActor
		}
		if cmd.TargetID != "" && cmd.TargetID != s.SlotID() {
			if err := requireHost(l, cmd.Actor); err != nil {
				return nil, l, err
			}
			team, index, s = FindSlotByID(l, cmd.TargetID)
			if _, ok := s.(slot.Computer); !ok {
				return nil, l, ErrSlotNotOccupied
			}
		}
		next, err := SetRace(l, team, index, cmd.Race)
		if err != nil {
			return nil, l, err
		}
		return []Event{{Type: EvtRaceChanged, Name: slot.NameOf(s), SlotID: s.SlotID(), Team: team, Slot: index}}, next, nil

	case CmdOpenSlot, CmdCloseSlot:
		if err := requireHost(l, cmd.Actor); err != nil {
			return nil, l, err
		}
		op, evt := OpenSlot, EvtSlotOpened
		if cmd.Type == CmdCloseSlot {
			op, evt = CloseSlot, EvtSlotClosed
		}
		next, err := op(l, cmd.Team, cmd.Slot)
		if err != nil {
			return nil, l, err
		}
		return []Event{{Type: evt, Team: cmd.Team, Slot: cmd.Slot}}, next, nil

	case CmdMakeObserver:
		if err := requireHost(l, cmd.Actor); err != nil {
			return nil, l, err
		}
		next, err := MakeObserver(l, gen, cmd.Team, cmd.Slot)
		if err != nil {
			return nil, l, err
		}
		return []Event{{Type: EvtObserverAdded, Team: cmd.Team, Slot: cmd.Slot}}, next, nil

	case CmdRemoveObserver:
		if err := requireHost(l, cmd.Actor); err != nil {
			return nil, l, err
		}
		next, err := RemoveObserver(l, gen, cmd.Slot)
		if err != nil {
			return nil, l, err
		}
		return []Event{{Type: EvtObserverRemoved, Team: l.ObserverTeam(), Slot: cmd.Slot}}, next, nil

	default:
		return nil, l, ErrUnsupportedCommand
	}
}

func removeOccupant(l *Lobby, gen slot.IDGen, team, index int, s slot.Slot, typ EventType) ([]Event, *Lobby, error) {
	next, err := RemovePlayer(l, gen, team, index, s)
	if err != nil {
		return nil, l, err
	}
	events := []Event{{Type: typ, Name: slot.NameOf(s), SlotID: s.SlotID(), Team: team, Slot: index}}
	if next == nil {
		return append(events, Event{Type: EvtLobbyDissolved}), nil, nil
	}
	if next.Host.ID != l.Host.ID {
		events = append(events, Event{Type: EvtHostChanged, Name: next.Host.Name, SlotID: next.Host.ID})
	}
	return events, next, nil
}

func requireHost(l *Lobby, actor string) error {
	if actor == "" || actor != l.Host.Name {
		return ErrNotHost
	}
	return nil
}
