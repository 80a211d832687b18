package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShieldBattery/ShieldBattery-sub010/internal/slot"
)

func TestCreate_Melee(t *testing.T) {
	l, _ := newLobby(t, GameTypeMelee, 0, 4, false)

	require.Len(t, l.Teams, 1)
	slots := l.Teams[0].Slots
	require.Len(t, slots, 4)
	host, ok := slots[0].(slot.Human)
	require.True(t, ok)
	assert.Equal(t, "Boxer", host.Name)
	assert.Equal(t, host, l.Host)
	assert.Equal(t, []slot.Type{slot.TypeHuman, slot.TypeOpen, slot.TypeOpen, slot.TypeOpen}, kinds(l.Teams[0]))
	assert.Equal(t, -1, l.ObserverTeam())
}

func TestCreate_MeleeWithObservers(t *testing.T) {
	l, _ := newLobby(t, GameTypeMelee, 0, 4, true)

	require.Len(t, l.Teams, 2)
	obs := l.Teams[1]
	assert.True(t, obs.IsObserver)
	assert.Equal(t, 4, obs.FixedSlots)
	assert.Equal(t, []slot.Type{slot.TypeClosed, slot.TypeClosed, slot.TypeClosed, slot.TypeClosed}, kinds(obs))
	assert.Equal(t, 1, l.ObserverTeam())
}

func TestCreate_TopVBottom(t *testing.T) {
	l, _ := newLobby(t, GameTypeTopVBottom, 2, 8, false)

	require.Len(t, l.Teams, 2)
	assert.Equal(t, []slot.Type{slot.TypeHuman, slot.TypeOpen}, kinds(l.Teams[0]))
	assert.Len(t, l.Teams[1].Slots, 6)
	for _, s := range l.Teams[1].Slots {
		assert.Equal(t, slot.TypeOpen, s.Kind())
	}
}

func TestCreate_TeamMelee(t *testing.T) {
	l, _ := newLobby(t, GameTypeTeamMelee, 4, 8, false)

	require.Len(t, l.Teams, 4)
	assert.Equal(t, []slot.Type{slot.TypeHuman, slot.TypeControlledOpen}, kinds(l.Teams[0]))
	ctrl := l.Teams[0].Slots[1].(slot.ControlledOpen)
	assert.Equal(t, l.Host.ID, ctrl.ControlledBy)
	assert.Equal(t, l.Host.Race, ctrl.Race)
	for i := 1; i < 4; i++ {
		assert.Equal(t, i, l.Teams[i].ID)
		assert.Equal(t, []slot.Type{slot.TypeOpen, slot.TypeOpen}, kinds(l.Teams[i]))
	}
}

func TestCreate_Errors(t *testing.T) {
	cases := []struct {
		name     string
		gameType GameType
		subType  int
		numSlots int
		race     slot.Race
		wantErr  error
	}{
		{"uneven teams", GameTypeTeamMelee, 3, 8, slot.RaceZerg, ErrInvalidGameSubType},
		{"too many teams", GameTypeTeamMelee, 5, 5, slot.RaceZerg, ErrInvalidGameSubType},
		{"empty bottom", GameTypeTopVBottom, 8, 8, slot.RaceZerg, ErrInvalidGameSubType},
		{"too many slots", GameTypeMelee, 0, 9, slot.RaceZerg, ErrInvalidSlotCount},
		{"too few slots", GameTypeMelee, 0, 1, slot.RaceZerg, ErrInvalidSlotCount},
		{"unknown type", GameType("coop"), 0, 4, slot.RaceZerg, ErrInvalidGameType},
		{"unknown race", GameTypeMelee, 0, 4, slot.Race("x"), ErrInvalidRace},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := slot.NewSequenceGen("s")
			_, err := Create(gen, "X", testMap, tc.gameType, tc.subType, tc.numSlots, "Boxer", tc.race, false)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func umsMap() Map {
	return Map{
		Name: "Bound",
		Data: MapData{UmsForces: []Force{
			{Name: "Heroes", TeamID: 1, Players: []ForcePlayer{
				{ID: 0, Race: "any", TypeID: 6},
				{ID: 1, Race: "t", TypeID: 6},
			}},
			{Name: "Enemies", TeamID: 3, Players: []ForcePlayer{
				{ID: 2, Race: "z", TypeID: 5, Computer: true},
			}},
			{Name: "Scenery", TeamID: 4, Players: []ForcePlayer{
				{ID: 7, Race: "p", TypeID: 7, Computer: true},
			}},
		}},
	}
}

func newUmsLobby(t *testing.T, m Map) (*Lobby, slot.IDGen) {
	t.Helper()
	gen := slot.NewSequenceGen("s")
	l, err := Create(gen, "U", m, GameTypeUseMapSettings, 0, 0, "Boxer", slot.RaceProtoss, true)
	require.NoError(t, err)
	return l, gen
}

func TestCreate_UseMapSettings(t *testing.T) {
	l, _ := newUmsLobby(t, umsMap())

	require.Len(t, l.Teams, 3)
	assert.Equal(t, -1, l.ObserverTeam())
	assert.Equal(t, []int{1, 3, 4}, []int{l.Teams[0].ID, l.Teams[1].ID, l.Teams[2].ID})
	assert.Equal(t, "Heroes", l.Teams[0].Name)

	host := l.Teams[0].Slots[0].(slot.Human)
	assert.Equal(t, host, l.Host)
	assert.Equal(t, slot.RaceProtoss, host.Race)
	assert.False(t, host.HasForcedRace)
	assert.Equal(t, 0, host.PlayerID)

	open := l.Teams[0].Slots[1].(slot.Open)
	assert.Equal(t, 1, open.PlayerID)
	assert.True(t, open.HasForcedRace)
	assert.Equal(t, slot.RaceTerran, open.Race)

	comp := l.Teams[1].Slots[0].(slot.UmsComputer)
	assert.Equal(t, 2, comp.PlayerID)
	assert.Equal(t, slot.RaceZerg, comp.Race)

	assert.Empty(t, l.Teams[2].Slots)
	require.Len(t, l.Teams[2].HiddenSlots, 1)
	assert.Equal(t, 7, l.Teams[2].HiddenSlots[0].(slot.UmsComputer).PlayerID)
	assert.Equal(t, 4, totalSlots(l))
}

func TestCreate_UseMapSettingsForcedHostRace(t *testing.T) {
	m := umsMap()
	m.Data.UmsForces[0].Players[0].Race = "z"

	l, _ := newUmsLobby(t, m)

	assert.Equal(t, slot.RaceZerg, l.Host.Race)
	assert.True(t, l.Host.HasForcedRace)
}

func TestCreate_UseMapSettingsWithoutHumanSeat(t *testing.T) {
	m := Map{Data: MapData{UmsForces: []Force{
		{Name: "AI", TeamID: 1, Players: []ForcePlayer{{ID: 0, Race: "z", TypeID: 5, Computer: true}}},
	}}}

	_, err := Create(slot.NewSequenceGen("s"), "U", m, GameTypeUseMapSettings, 0, 0, "Boxer", slot.RaceProtoss, false)
	assert.ErrorIs(t, err, ErrNoHostSlot)
}

func TestUseMapSettings_SeatKeepsPlayerRecord(t *testing.T) {
	l, gen := newUmsLobby(t, umsMap())

	events, l, err := Apply(l, gen, Command{Type: CmdJoin, Actor: "Pachi", Race: slot.RaceProtoss})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 0, events[0].Team)
	assert.Equal(t, 1, events[0].Slot)

	pachi := l.Teams[0].Slots[1].(slot.Human)
	assert.Equal(t, 1, pachi.PlayerID)
	assert.Equal(t, slot.RaceTerran, pachi.Race)
	assert.True(t, pachi.HasForcedRace)

	_, err = SetRace(l, 0, 1, slot.RaceZerg)
	assert.ErrorIs(t, err, ErrForcedRace)

	_, l, err = Apply(l, gen, Command{Type: CmdLeave, Actor: "Pachi"})
	require.NoError(t, err)
	open := l.Teams[0].Slots[1].(slot.Open)
	assert.Equal(t, 1, open.PlayerID)
	assert.Equal(t, slot.RaceTerran, open.Race)
	assert.True(t, open.HasForcedRace)
	assert.Equal(t, 4, totalSlots(l))
}

func TestUseMapSettings_RejectsComputers(t *testing.T) {
	l, gen := newUmsLobby(t, umsMap())

	_, err := AddPlayer(l, gen, 0, 1, slot.NewComputer(gen, slot.RaceZerg))
	assert.ErrorIs(t, err, ErrComputerNotAllowed)
}
