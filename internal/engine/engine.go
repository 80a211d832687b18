package engine

import (
	"github.com/ShieldBattery/ShieldBattery-sub010/internal/slot"
)

// FindAvailableSlot returns the seat the next joining player should take: the
// lowest joinable seat of the player team with the most joinable seats, ties
// going to the lower team index. Observer seats are only offered once every
// player team is full, rather than competing with player teams for the most
// open seats. A full lobby yields (-1, -1).
func FindAvailableSlot(l *Lobby) (int, int) {
	best, bestCount := -1, 0
	for i, t := range l.Teams {
		if t.IsObserver {
			continue
		}
		if c := joinableCount(t); c > bestCount {
			best, bestCount = i, c
		}
	}
	if best >= 0 {
		return best, firstJoinable(l.Teams[best])
	}
	if obs := l.ObserverTeam(); obs >= 0 {
		if i := firstJoinable(l.Teams[obs]); i >= 0 {
			return obs, i
		}
	}
	return -1, -1
}

func joinableCount(t Team) int {
	n := 0
	for _, s := range t.Slots {
		if slot.IsJoinable(s) {
			n++
		}
	}
	return n
}

func firstJoinable(t Team) int {
	for i, s := range t.Slots {
		if slot.IsJoinable(s) {
			return i
		}
	}
	return -1
}

// AddPlayer seats occupant, a human or computer, in an open seat. In team
// melee the first player on an empty team claims it: a human takes control of
// the remaining open seats, a computer fills them with more computers.
func AddPlayer(l *Lobby, gen slot.IDGen, team, index int, occupant slot.Slot) (*Lobby, error) {
	target, err := l.slotAt(team, index)
	if err != nil {
		return nil, err
	}
	switch occupant.(type) {
	case slot.Human:
	case slot.Computer:
		if l.GameType == GameTypeUseMapSettings {
			return nil, ErrComputerNotAllowed
		}
	default:
		return nil, ErrNotAnOccupant
	}
	if !slot.IsJoinable(target) {
		return nil, ErrSlotNotJoinable
	}

	n := l.clone()
	t := n.Teams[team].clone()
	claims := l.GameType.HasControlledSlots() && !t.IsObserver &&
		!hasOccupant(t) && target.Kind() == slot.TypeOpen

	occupant = seatFor(l.GameType, occupant, target)
	t.Slots[index] = occupant
	if claims {
		switch o := occupant.(type) {
		case slot.Human:
			t = claimTeam(gen, t, o, index)
		case slot.Computer:
			for i, s := range t.Slots {
				if _, ok := s.(slot.Open); ok {
					t.Slots[i] = slot.NewComputer(gen, o.Race)
				}
			}
		}
	}
	n.Teams[team] = t
	return n, nil
}

// RemovePlayer takes expected out of the lobby. A stale expected, one no
// longer sitting in the addressed seat, leaves the lobby untouched. A nil
// lobby and nil error means the last human left and the lobby is gone.
func RemovePlayer(l *Lobby, gen slot.IDGen, team, index int, expected slot.Slot) (*Lobby, error) {
	current, err := l.slotAt(team, index)
	if err != nil || expected == nil || current.SlotID() != expected.SlotID() {
		return l, nil
	}

	n := l.clone()
	switch v := current.(type) {
	case slot.Human:
		if v.ID == l.Host.ID {
			next, ok := nextHost(l, v.ID)
			if !ok {
				return nil, nil
			}
			n.Host = next
		}
	case slot.Computer:
		t := n.Teams[team]
		if l.GameType.HasControlledSlots() && !t.IsObserver && !hasHuman(t) {
			t = t.clone()
			for i, s := range t.Slots {
				if _, ok := s.(slot.Computer); ok {
					t.Slots[i] = slot.NewOpen(gen, slot.RaceRandom)
				}
			}
			n.Teams[team] = t
			return n, nil
		}
	default:
		return l, nil
	}

	n.Teams[team] = vacate(l.GameType, gen, n.Teams[team], index)
	return n, nil
}

// nextHost picks the longest-present human other than departing.
func nextHost(l *Lobby, departing slot.ID) (slot.Human, bool) {
	var (
		next  slot.Human
		found bool
	)
	for _, t := range l.Teams {
		for _, s := range t.Slots {
			h, ok := s.(slot.Human)
			if !ok || h.ID == departing {
				continue
			}
			if !found || h.Order < next.Order {
				next, found = h, true
			}
		}
	}
	return next, found
}

// MovePlayerToSlot relocates the occupant of one seat to an open seat. The
// seat left behind falls back to its team's default placeholder.
func MovePlayerToSlot(l *Lobby, gen slot.IDGen, fromTeam, fromIndex, toTeam, toIndex int) (*Lobby, error) {
	src, err := l.slotAt(fromTeam, fromIndex)
	if err != nil {
		return nil, err
	}
	dst, err := l.slotAt(toTeam, toIndex)
	if err != nil {
		return nil, err
	}
	switch src.(type) {
	case slot.Human, slot.Computer:
	default:
		return nil, ErrSlotNotOccupied
	}
	if !slot.IsJoinable(dst) {
		return nil, ErrSlotNotJoinable
	}

	n := l.clone()
	mover := seatFor(l.GameType, src, dst)
	if fromTeam == toTeam {
		t := n.Teams[fromTeam].clone()
		t.Slots[toIndex] = mover
		t.Slots[fromIndex] = slot.Open{}
		t.Slots[fromIndex] = vacancy(l.GameType, gen, t, src)
		n.Teams[fromTeam] = t
	} else {
		dt := n.Teams[toTeam].clone()
		claims := l.GameType.HasControlledSlots() && !dt.IsObserver &&
			!hasOccupant(dt) && dst.Kind() == slot.TypeOpen

		n.Teams[fromTeam] = vacate(l.GameType, gen, n.Teams[fromTeam], fromIndex)
		dt.Slots[toIndex] = mover
		if h, ok := mover.(slot.Human); ok && claims {
			dt = claimTeam(gen, dt, h, toIndex)
		}
		n.Teams[toTeam] = dt
	}

	if h, ok := mover.(slot.Human); ok && h.ID == l.Host.ID {
		n.Host = h
	}
	return n, nil
}

// SetRace changes the race of the addressed seat. Seats a human controls
// follow the human's race.
func SetRace(l *Lobby, team, index int, race slot.Race) (*Lobby, error) {
	if !race.Valid() {
		return nil, ErrInvalidRace
	}
	current, err := l.slotAt(team, index)
	if err != nil {
		return nil, err
	}

	var next slot.Slot
	switch v := current.(type) {
	case slot.Human:
		if v.HasForcedRace {
			return nil, ErrForcedRace
		}
		v.Race = race
		next = v
	case slot.Computer:
		v.Race = race
		next = v
	case slot.UmsComputer:
		if v.HasForcedRace {
			return nil, ErrForcedRace
		}
		v.Race = race
		next = v
	case slot.Open:
		if v.HasForcedRace {
			return nil, ErrForcedRace
		}
		v.Race = race
		next = v
	case slot.Closed:
		if v.HasForcedRace {
			return nil, ErrForcedRace
		}
		v.Race = race
		next = v
	case slot.ControlledOpen, slot.ControlledClosed:
		return nil, ErrInvalidTransition
	default:
		return nil, ErrUnknownSlot
	}

	n := l.clone()
	t := n.Teams[team].clone()
	t.Slots[index] = next
	if h, ok := next.(slot.Human); ok {
		for i, s := range t.Slots {
			switch v := s.(type) {
			case slot.ControlledOpen:
				if v.ControlledBy == h.ID {
					v.Race = race
					t.Slots[i] = v
				}
			case slot.ControlledClosed:
				if v.ControlledBy == h.ID {
					v.Race = race
					t.Slots[i] = v
				}
			}
		}
		if h.ID == l.Host.ID {
			n.Host = h
		}
	}
	n.Teams[team] = t
	return n, nil
}

// CloseSlot disables joining an empty seat, keeping its race and controller.
func CloseSlot(l *Lobby, team, index int) (*Lobby, error) {
	current, err := l.slotAt(team, index)
	if err != nil {
		return nil, err
	}

	var next slot.Slot
	switch v := current.(type) {
	case slot.Open:
		next = slot.Closed{ID: v.ID, Race: v.Race, PlayerID: v.PlayerID, HasForcedRace: v.HasForcedRace}
	case slot.ControlledOpen:
		next = slot.ControlledClosed{ID: v.ID, Race: v.Race, ControlledBy: v.ControlledBy}
	case slot.Closed, slot.ControlledClosed:
		return nil, ErrInvalidTransition
	case slot.Human, slot.Computer, slot.UmsComputer:
		return nil, ErrSlotOccupied
	default:
		return nil, ErrUnknownSlot
	}
	return replaceSlot(l, team, index, next), nil
}

// OpenSlot is the inverse of CloseSlot.
func OpenSlot(l *Lobby, team, index int) (*Lobby, error) {
	current, err := l.slotAt(team, index)
	if err != nil {
		return nil, err
	}

	var next slot.Slot
	switch v := current.(type) {
	case slot.Closed:
		next = slot.Open{ID: v.ID, Race: v.Race, PlayerID: v.PlayerID, HasForcedRace: v.HasForcedRace}
	case slot.ControlledClosed:
		next = slot.ControlledOpen{ID: v.ID, Race: v.Race, ControlledBy: v.ControlledBy}
	case slot.Open, slot.ControlledOpen:
		return nil, ErrInvalidTransition
	case slot.Human, slot.Computer, slot.UmsComputer:
		return nil, ErrSlotOccupied
	default:
		return nil, ErrUnknownSlot
	}
	return replaceSlot(l, team, index, next), nil
}

func replaceSlot(l *Lobby, team, index int, s slot.Slot) *Lobby {
	n := l.clone()
	t := n.Teams[team].clone()
	t.Slots[index] = s
	n.Teams[team] = t
	return n
}
