// Package slot defines the seats a lobby team is made of. Every variant is an
// immutable value; constructors draw identifiers from an explicit IDGen.
package slot

// ID identifies a slot within a lobby.
type ID string

type Race string

const (
	RaceZerg    Race = "z"
	RaceTerran  Race = "t"
	RaceProtoss Race = "p"
	RaceRandom  Race = "r"
)

// Valid reports whether r is one of the playable races.
func (r Race) Valid() bool {
	switch r {
	case RaceZerg, RaceTerran, RaceProtoss, RaceRandom:
		return true
	}
	return false
}

type Type string

const (
	TypeHuman            Type = "human"
	TypeComputer         Type = "computer"
	TypeOpen             Type = "open"
	TypeClosed           Type = "closed"
	TypeControlledOpen   Type = "controlledOpen"
	TypeControlledClosed Type = "controlledClosed"
	TypeUmsComputer      Type = "umsComputer"
)

const (
	ComputerName = "Computer"
	OpenName     = "Open"
	ClosedName   = "Closed"
)

// Slot is implemented by exactly the variants in this package.
type Slot interface {
	SlotID() ID
	SlotRace() Race
	Kind() Type
	isSlot()
}

// Human is a connected player. PlayerID and HasForcedRace are only meaningful
// in use-map-settings lobbies.
type Human struct {
	ID            ID
	Name          string
	Race          Race
	Order         uint64
	PlayerID      int
	HasForcedRace bool
}

type Computer struct {
	ID    ID
	Race  Race
	Order uint64
}

type Open struct {
	ID            ID
	Race          Race
	PlayerID      int
	HasForcedRace bool
}

type Closed struct {
	ID            ID
	Race          Race
	PlayerID      int
	HasForcedRace bool
}

// ControlledOpen is played by ControlledBy until someone takes the seat.
type ControlledOpen struct {
	ID           ID
	Race         Race
	ControlledBy ID
}

type ControlledClosed struct {
	ID           ID
	Race         Race
	ControlledBy ID
}

// UmsComputer is an AI seat dictated by map force data.
type UmsComputer struct {
	ID            ID
	Race          Race
	Order         uint64
	PlayerID      int
	TypeID        int
	HasForcedRace bool
}

func (s Human) SlotID() ID            { return s.ID }
func (s Computer) SlotID() ID         { return s.ID }
func (s Open) SlotID() ID             { return s.ID }
func (s Closed) SlotID() ID           { return s.ID }
func (s ControlledOpen) SlotID() ID   { return s.ID }
func (s ControlledClosed) SlotID() ID { return s.ID }
func (s UmsComputer) SlotID() ID      { return s.ID }

func (s Human) SlotRace() Race            { return s.Race }
func (s Computer) SlotRace() Race         { return s.Race }
func (s Open) SlotRace() Race             { return s.Race }
func (s Closed) SlotRace() Race           { return s.Race }
func (s ControlledOpen) SlotRace() Race   { return s.Race }
func (s ControlledClosed) SlotRace() Race { return s.Race }
func (s UmsComputer) SlotRace() Race      { return s.Race }

func (Human) Kind() Type            { return TypeHuman }
func (Computer) Kind() Type         { return TypeComputer }
func (Open) Kind() Type             { return TypeOpen }
func (Closed) Kind() Type           { return TypeClosed }
func (ControlledOpen) Kind() Type   { return TypeControlledOpen }
func (ControlledClosed) Kind() Type { return TypeControlledClosed }
func (UmsComputer) Kind() Type      { return TypeUmsComputer }

func (Human) isSlot()            {}
func (Computer) isSlot()         {}
func (Open) isSlot()             {}
func (Closed) isSlot()           {}
func (ControlledOpen) isSlot()   {}
func (ControlledClosed) isSlot() {}
func (UmsComputer) isSlot()      {}

// IsOccupied reports whether s holds a participant rather than a placeholder.
func IsOccupied(s Slot) bool {
	switch s.(type) {
	case Human, Computer, UmsComputer:
		return true
	}
	return false
}

// IsJoinable reports whether a new human or computer may take s.
func IsJoinable(s Slot) bool {
	switch s.(type) {
	case Open, ControlledOpen:
		return true
	}
	return false
}

// NameOf returns the display name of s.
func NameOf(s Slot) string {
	switch v := s.(type) {
	case Human:
		return v.Name
	case Computer, UmsComputer:
		return ComputerName
	case Open, ControlledOpen:
		return OpenName
	case Closed, ControlledClosed:
		return ClosedName
	}
	return ""
}

// ControllerOf returns the controlling occupant of a controlled placeholder.
func ControllerOf(s Slot) (ID, bool) {
	switch v := s.(type) {
	case ControlledOpen:
		return v.ControlledBy, true
	case ControlledClosed:
		return v.ControlledBy, true
	}
	return "", false
}
