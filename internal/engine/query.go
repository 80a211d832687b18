package engine

import "github.com/ShieldBattery/ShieldBattery-sub010/internal/slot"

// FindSlotByName returns the seat of the human called name, or (-1, -1, nil).
func FindSlotByName(l *Lobby, name string) (int, int, slot.Slot) {
	for ti, t := range l.Teams {
		for si, s := range t.Slots {
			if h, ok := s.(slot.Human); ok && h.Name == name {
				return ti, si, s
			}
		}
	}
	return -1, -1, nil
}

// FindSlotByID returns the visible seat with the given id, or (-1, -1, nil).
func FindSlotByID(l *Lobby, id slot.ID) (int, int, slot.Slot) {
	for ti, t := range l.Teams {
		for si, s := range t.Slots {
			if s.SlotID() == id {
				return ti, si, s
			}
		}
	}
	return -1, -1, nil
}

func HumanSlotCount(l *Lobby) int {
	n := 0
	for _, t := range l.Teams {
		for _, s := range t.Slots {
			if _, ok := s.(slot.Human); ok {
				n++
			}
		}
	}
	return n
}

// HasOpposingSides reports whether the players could fight each other. In
// melee modes every occupied seat is its own side; otherwise a side is a team.
// Observers never count.
func HasOpposingSides(l *Lobby) bool {
	sides := 0
	for _, t := range l.Teams {
		if t.IsObserver {
			continue
		}
		occupied := 0
		for _, s := range t.Slots {
			if slot.IsOccupied(s) {
				occupied++
			}
		}
		if l.GameType.IsTeamType() {
			if occupied > 0 {
				sides++
			}
		} else {
			sides += occupied
		}
	}
	return sides > 1
}
