package slot

func NewHuman(gen IDGen, name string, race Race) Human {
	id, order := gen.Next()
	return Human{ID: id, Name: name, Race: race, Order: order}
}

// NewUmsHuman seats a human on the map player record playerID.
func NewUmsHuman(gen IDGen, name string, race Race, playerID int, hasForcedRace bool) Human {
	h := NewHuman(gen, name, race)
	h.PlayerID = playerID
	h.HasForcedRace = hasForcedRace
	return h
}

func NewComputer(gen IDGen, race Race) Computer {
	id, order := gen.Next()
	return Computer{ID: id, Race: race, Order: order}
}

func NewOpen(gen IDGen, race Race) Open {
	id, _ := gen.Next()
	return Open{ID: id, Race: race}
}

func NewUmsOpen(gen IDGen, race Race, playerID int, hasForcedRace bool) Open {
	id, _ := gen.Next()
	return Open{ID: id, Race: race, PlayerID: playerID, HasForcedRace: hasForcedRace}
}

func NewClosed(gen IDGen, race Race) Closed {
	id, _ := gen.Next()
	return Closed{ID: id, Race: race}
}

func NewControlledOpen(gen IDGen, race Race, controlledBy ID) ControlledOpen {
	id, _ := gen.Next()
	return ControlledOpen{ID: id, Race: race, ControlledBy: controlledBy}
}

func NewControlledClosed(gen IDGen, race Race, controlledBy ID) ControlledClosed {
	id, _ := gen.Next()
	return ControlledClosed{ID: id, Race: race, ControlledBy: controlledBy}
}

func NewUmsComputer(gen IDGen, race Race, playerID, typeID int, hasForcedRace bool) UmsComputer {
	id, order := gen.Next()
	return UmsComputer{
		ID:            id,
		Race:          race,
		Order:         order,
		PlayerID:      playerID,
		TypeID:        typeID,
		HasForcedRace: hasForcedRace,
	}
}
