package engine

import (
	"slices"

	"github.com/ShieldBattery/ShieldBattery-sub010/internal/slot"
)

type GameType string

const (
	GameTypeMelee          GameType = "melee"
	GameTypeFreeForAll     GameType = "ffa"
	GameTypeOneVOne        GameType = "oneVOne"
	GameTypeTopVBottom     GameType = "topVBottom"
	GameTypeTeamMelee      GameType = "teamMelee"
	GameTypeTeamFreeForAll GameType = "teamFfa"
	GameTypeUseMapSettings GameType = "ums"
)

func (g GameType) Valid() bool {
	switch g {
	case GameTypeMelee, GameTypeFreeForAll, GameTypeOneVOne, GameTypeTopVBottom,
		GameTypeTeamMelee, GameTypeTeamFreeForAll, GameTypeUseMapSettings:
		return true
	}
	return false
}

// IsTeamType reports whether sides are decided by team rather than by slot.
func (g GameType) IsTeamType() bool {
	switch g {
	case GameTypeTopVBottom, GameTypeTeamMelee, GameTypeTeamFreeForAll, GameTypeUseMapSettings:
		return true
	}
	return false
}

// HasControlledSlots reports whether the first human on a team plays the
// team's empty seats until they are filled.
func (g GameType) HasControlledSlots() bool {
	return g == GameTypeTeamMelee || g == GameTypeTeamFreeForAll
}

// Map is the descriptor a lobby is created from.
type Map struct {
	Name string  `json:"name"`
	Hash string  `json:"hash,omitempty"`
	Data MapData `json:"mapData"`
}

type MapData struct {
	UmsForces []Force `json:"umsForces,omitempty"`
}

// Force is a map-defined group of player records sharing a team.
type Force struct {
	Name    string        `json:"name"`
	TeamID  int           `json:"teamId"`
	Players []ForcePlayer `json:"players"`
}

type ForcePlayer struct {
	ID       int    `json:"id"`
	Race     string `json:"race"`
	TypeID   int    `json:"typeId"`
	Computer bool   `json:"computer"`
}

type Team struct {
	ID          int
	Name        string
	Slots       []slot.Slot
	HiddenSlots []slot.Slot
	IsObserver  bool
	// FixedSlots is the number of leading observer slots created with the
	// lobby. Slots past it were moved in by MakeObserver.
	FixedSlots int
}

// Lobby is never modified in place. Every operation returns a new value.
type Lobby struct {
	Name        string
	Map         Map
	GameType    GameType
	GameSubType int
	Teams       []Team
	Host        slot.Human
	// ObserverOrigins[i] is the team the i-th moved observer slot came from.
	ObserverOrigins []int
}

// ObserverTeam returns the index of the observer team, or -1.
func (l *Lobby) ObserverTeam() int {
	for i, t := range l.Teams {
		if t.IsObserver {
			return i
		}
	}
	return -1
}

func (l *Lobby) clone() *Lobby {
	c := *l
	c.Teams = slices.Clone(l.Teams)
	c.ObserverOrigins = slices.Clone(l.ObserverOrigins)
	return &c
}

func (t Team) clone() Team {
	t.Slots = slices.Clone(t.Slots)
	t.HiddenSlots = slices.Clone(t.HiddenSlots)
	return t
}

func (l *Lobby) slotAt(team, index int) (slot.Slot, error) {
	if team < 0 || team >= len(l.Teams) {
		return nil, ErrSlotOutOfRange
	}
	slots := l.Teams[team].Slots
	if index < 0 || index >= len(slots) {
		return nil, ErrSlotOutOfRange
	}
	return slots[index], nil
}
