package engine

import (
	"slices"

	"github.com/ShieldBattery/ShieldBattery-sub010/internal/slot"
)

// MakeObserver moves the addressed seat, whatever it holds, from its player
// team to the end of the observer team.
func MakeObserver(l *Lobby, gen slot.IDGen, team, index int) (*Lobby, error) {
	obs := l.ObserverTeam()
	if obs < 0 {
		return nil, ErrObserversDisabled
	}
	if team == obs {
		return nil, ErrInvalidTransition
	}
	moved, err := l.slotAt(team, index)
	if err != nil {
		return nil, err
	}

	n := l.clone()
	t := n.Teams[team].clone()
	t.Slots = slices.Delete(t.Slots, index, index+1)
	if controls(t, moved.SlotID()) {
		t = reassignControl(gen, t, moved.SlotID())
	}
	n.Teams[team] = t

	switch v := moved.(type) {
	case slot.ControlledOpen:
		moved = slot.Open{ID: v.ID, Race: slot.RaceRandom}
	case slot.ControlledClosed:
		moved = slot.Closed{ID: v.ID, Race: slot.RaceRandom}
	}
	o := n.Teams[obs].clone()
	o.Slots = append(o.Slots, moved)
	n.Teams[obs] = o
	n.ObserverOrigins = append(n.ObserverOrigins, team)
	return n, nil
}

// RemoveObserver returns a seat previously moved by MakeObserver to the end
// of the team it came from. The observer team's own seats cannot be moved.
func RemoveObserver(l *Lobby, gen slot.IDGen, index int) (*Lobby, error) {
	obs := l.ObserverTeam()
	if obs < 0 {
		return nil, ErrObserversDisabled
	}
	o := l.Teams[obs]
	if index < o.FixedSlots || index >= len(o.Slots) {
		return nil, ErrNotObserverSlot
	}
	k := index - o.FixedSlots
	origin := l.ObserverOrigins[k]
	moved := o.Slots[index]

	n := l.clone()
	o = o.clone()
	o.Slots = slices.Delete(o.Slots, index, index+1)
	n.Teams[obs] = o
	n.ObserverOrigins = slices.Delete(n.ObserverOrigins, k, k+1)

	t := n.Teams[origin].clone()
	switch v := moved.(type) {
	case slot.Open:
		moved = vacancy(l.GameType, gen, t, v)
	case slot.Closed:
		if ctrl, ok := teamController(t); ok && l.GameType.HasControlledSlots() {
			moved = slot.NewControlledClosed(gen, ctrl.Race, ctrl.ID)
		}
	}
	claims := l.GameType.HasControlledSlots() && !hasOccupant(t)
	t.Slots = append(t.Slots, moved)
	if h, ok := moved.(slot.Human); ok && claims {
		t = claimTeam(gen, t, h, len(t.Slots)-1)
	}
	n.Teams[origin] = t
	return n, nil
}
