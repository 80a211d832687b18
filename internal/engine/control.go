package engine

import "github.com/ShieldBattery/ShieldBattery-sub010/internal/slot"

// reassignControl hands the placeholders controlled by departing to the first
// remaining human of the team. With nobody left to take them over they revert
// to plain open or closed seats.
func reassignControl(gen slot.IDGen, t Team, departing slot.ID) Team {
	next, ok := firstHuman(t, departing)
	t = t.clone()
	for i, s := range t.Slots {
		switch v := s.(type) {
		case slot.ControlledOpen:
			if v.ControlledBy != departing {
				continue
			}
			if ok {
				t.Slots[i] = slot.NewControlledOpen(gen, next.Race, next.ID)
			} else {
				t.Slots[i] = slot.NewOpen(gen, slot.RaceRandom)
			}
		case slot.ControlledClosed:
			if v.ControlledBy != departing {
				continue
			}
			if ok {
				t.Slots[i] = slot.NewControlledClosed(gen, next.Race, next.ID)
			} else {
				t.Slots[i] = slot.NewClosed(gen, slot.RaceRandom)
			}
		}
	}
	return t
}

// claimTeam puts every open seat of t other than skip under h's control.
func claimTeam(gen slot.IDGen, t Team, h slot.Human, skip int) Team {
	for i, s := range t.Slots {
		if i == skip {
			continue
		}
		if _, ok := s.(slot.Open); ok {
			t.Slots[i] = slot.NewControlledOpen(gen, h.Race, h.ID)
		}
	}
	return t
}

// teamController is the human whose race the team's empty seats take: the
// owner of an existing controlled seat, else the team's first human.
func teamController(t Team) (slot.Human, bool) {
	for _, s := range t.Slots {
		id, ok := slot.ControllerOf(s)
		if !ok {
			continue
		}
		for _, o := range t.Slots {
			if h, ok := o.(slot.Human); ok && h.ID == id {
				return h, true
			}
		}
	}
	return firstHuman(t, "")
}

func firstHuman(t Team, except slot.ID) (slot.Human, bool) {
	for _, s := range t.Slots {
		if h, ok := s.(slot.Human); ok && h.ID != except {
			return h, true
		}
	}
	return slot.Human{}, false
}

func controls(t Team, id slot.ID) bool {
	for _, s := range t.Slots {
		if by, ok := slot.ControllerOf(s); ok && by == id {
			return true
		}
	}
	return false
}

func hasOccupant(t Team) bool {
	for _, s := range t.Slots {
		if slot.IsOccupied(s) {
			return true
		}
	}
	return false
}

func hasHuman(t Team) bool {
	_, ok := firstHuman(t, "")
	return ok
}

// vacancy is the placeholder a seat falls back to once prev leaves it.
func vacancy(gameType GameType, gen slot.IDGen, t Team, prev slot.Slot) slot.Slot {
	if gameType == GameTypeUseMapSettings {
		playerID, forced, race := umsSeat(prev)
		return slot.NewUmsOpen(gen, race, playerID, forced)
	}
	if gameType.HasControlledSlots() && !t.IsObserver {
		if ctrl, ok := teamController(t); ok {
			return slot.NewControlledOpen(gen, ctrl.Race, ctrl.ID)
		}
	}
	return slot.NewOpen(gen, slot.RaceRandom)
}

// vacate empties seat index of t, settling control of the team first.
func vacate(gameType GameType, gen slot.IDGen, t Team, index int) Team {
	prev := t.Slots[index]
	t = t.clone()
	t.Slots[index] = slot.Open{}
	if controls(t, prev.SlotID()) {
		t = reassignControl(gen, t, prev.SlotID())
	}
	t.Slots[index] = vacancy(gameType, gen, t, prev)
	return t
}

// umsSeat extracts the map player record a use-map-settings seat is bound to.
func umsSeat(s slot.Slot) (playerID int, forced bool, race slot.Race) {
	switch v := s.(type) {
	case slot.Human:
		playerID, forced, race = v.PlayerID, v.HasForcedRace, v.Race
	case slot.Open:
		playerID, forced, race = v.PlayerID, v.HasForcedRace, v.Race
	case slot.Closed:
		playerID, forced, race = v.PlayerID, v.HasForcedRace, v.Race
	case slot.UmsComputer:
		playerID, forced, race = v.PlayerID, v.HasForcedRace, v.Race
	}
	if !forced {
		race = slot.RaceRandom
	}
	return playerID, forced, race
}

// seatFor returns occupant as it sits in target. In use-map-settings lobbies
// a human takes over the seat's player record and any race the map forces.
func seatFor(gameType GameType, occupant, target slot.Slot) slot.Slot {
	h, ok := occupant.(slot.Human)
	if !ok || gameType != GameTypeUseMapSettings {
		return occupant
	}
	playerID, forced, race := umsSeat(target)
	h.PlayerID = playerID
	if forced {
		h.Race = race
	} else if h.HasForcedRace {
		h.Race = slot.RaceRandom
	}
	h.HasForcedRace = forced
	return h
}
