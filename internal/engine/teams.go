package engine

import (
	"fmt"
	"strconv"

	"github.com/ShieldBattery/ShieldBattery-sub010/internal/slot"
)

const (
	MinSlots = 2
	MaxSlots = 8

	ObserverTeamName = "Observers"
)

// Map player types that never take part in the lobby as visible seats.
const (
	playerTypeRescuable = 3
	playerTypeNeutral   = 7
)

// umsAnyRace marks a map player record whose race the occupant may choose.
const umsAnyRace = "any"

// Create builds a lobby with the host seated in its first available seat.
func Create(
	gen slot.IDGen,
	name string,
	m Map,
	gameType GameType,
	gameSubType int,
	numSlots int,
	hostName string,
	hostRace slot.Race,
	allowObservers bool,
) (*Lobby, error) {
	if !hostRace.Valid() {
		return nil, ErrInvalidRace
	}
	if gameType != GameTypeUseMapSettings && (numSlots < MinSlots || numSlots > MaxSlots) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlotCount, numSlots)
	}

	var (
		teams []Team
		host  slot.Human
		err   error
	)
	switch gameType {
	case GameTypeMelee, GameTypeFreeForAll, GameTypeOneVOne:
		teams, host = meleeTeams(gen, numSlots, hostName, hostRace)
	case GameTypeTopVBottom:
		if gameSubType < 1 || gameSubType >= numSlots {
			return nil, fmt.Errorf("%w: top team of %d in %d slots", ErrInvalidGameSubType, gameSubType, numSlots)
		}
		teams, host = topVBottomTeams(gen, gameSubType, numSlots, hostName, hostRace)
	case GameTypeTeamMelee, GameTypeTeamFreeForAll:
		if gameSubType < 2 || gameSubType > 4 || numSlots%gameSubType != 0 {
			return nil, fmt.Errorf("%w: %d teams in %d slots", ErrInvalidGameSubType, gameSubType, numSlots)
		}
		teams, host = teamMeleeTeams(gen, gameSubType, numSlots, hostName, hostRace)
	case GameTypeUseMapSettings:
		teams, host, err = umsTeams(gen, m.Data.UmsForces, hostName, hostRace)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidGameType, gameType)
	}

	if allowObservers && gameType != GameTypeUseMapSettings {
		teams = append(teams, observerTeam(gen, len(teams), numSlots))
	}

	return &Lobby{
		Name:        name,
		Map:         m,
		GameType:    gameType,
		GameSubType: gameSubType,
		Teams:       teams,
		Host:        host,
	}, nil
}

func meleeTeams(gen slot.IDGen, numSlots int, hostName string, hostRace slot.Race) ([]Team, slot.Human) {
	host := slot.NewHuman(gen, hostName, hostRace)
	slots := make([]slot.Slot, numSlots)
	slots[0] = host
	for i := 1; i < numSlots; i++ {
		slots[i] = slot.NewOpen(gen, slot.RaceRandom)
	}
	return []Team{{ID: 0, Slots: slots}}, host
}

func topVBottomTeams(gen slot.IDGen, topSize, numSlots int, hostName string, hostRace slot.Race) ([]Team, slot.Human) {
	host := slot.NewHuman(gen, hostName, hostRace)
	top := make([]slot.Slot, topSize)
	top[0] = host
	for i := 1; i < topSize; i++ {
		top[i] = slot.NewOpen(gen, slot.RaceRandom)
	}
	bottom := make([]slot.Slot, numSlots-topSize)
	for i := range bottom {
		bottom[i] = slot.NewOpen(gen, slot.RaceRandom)
	}
	return []Team{
		{ID: 0, Name: "Top", Slots: top},
		{ID: 1, Name: "Bottom", Slots: bottom},
	}, host
}

// teamMeleeTeams seats the host on the first team and hands them the rest of
// that team's seats until someone else takes them.
func teamMeleeTeams(gen slot.IDGen, numTeams, numSlots int, hostName string, hostRace slot.Race) ([]Team, slot.Human) {
	host := slot.NewHuman(gen, hostName, hostRace)
	perTeam := numSlots / numTeams
	teams := make([]Team, numTeams)
	for t := range teams {
		slots := make([]slot.Slot, perTeam)
		for i := range slots {
			switch {
			case t == 0 && i == 0:
				slots[i] = host
			case t == 0:
				slots[i] = slot.NewControlledOpen(gen, host.Race, host.ID)
			default:
				slots[i] = slot.NewOpen(gen, slot.RaceRandom)
			}
		}
		teams[t] = Team{ID: t, Name: "Team " + strconv.Itoa(t+1), Slots: slots}
	}
	return teams, host
}

func umsTeams(gen slot.IDGen, forces []Force, hostName string, hostRace slot.Race) ([]Team, slot.Human, error) {
	var (
		host   slot.Human
		seated bool
	)
	teams := make([]Team, 0, len(forces))
	for _, f := range forces {
		t := Team{ID: f.TeamID, Name: f.Name}
		for _, p := range f.Players {
			race, forced := umsRace(p.Race)
			switch {
			case p.Computer && isHiddenPlayerType(p.TypeID):
				t.HiddenSlots = append(t.HiddenSlots, slot.NewUmsComputer(gen, race, p.ID, p.TypeID, forced))
			case p.Computer:
				t.Slots = append(t.Slots, slot.NewUmsComputer(gen, race, p.ID, p.TypeID, forced))
			case !seated:
				r := hostRace
				if forced {
					r = race
				}
				host = slot.NewUmsHuman(gen, hostName, r, p.ID, forced)
				seated = true
				t.Slots = append(t.Slots, host)
			default:
				t.Slots = append(t.Slots, slot.NewUmsOpen(gen, race, p.ID, forced))
			}
		}
		teams = append(teams, t)
	}
	if !seated {
		return nil, slot.Human{}, ErrNoHostSlot
	}
	return teams, host, nil
}

func observerTeam(gen slot.IDGen, id, size int) Team {
	slots := make([]slot.Slot, size)
	for i := range slots {
		slots[i] = slot.NewClosed(gen, slot.RaceRandom)
	}
	return Team{
		ID:         id,
		Name:       ObserverTeamName,
		Slots:      slots,
		IsObserver: true,
		FixedSlots: size,
	}
}

func umsRace(race string) (slot.Race, bool) {
	r := slot.Race(race)
	if race == umsAnyRace || !r.Valid() {
		return slot.RaceRandom, false
	}
	return r, true
}

func isHiddenPlayerType(typeID int) bool {
	return typeID == playerTypeRescuable || typeID == playerTypeNeutral
}
