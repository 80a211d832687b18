package engine

import "github.com/ShieldBattery/ShieldBattery-sub010/internal/slot"

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

func raceOrRandom(r slot.Race) slot.Race {
	if r == "" {
		return slot.RaceRandom
	}
	return r
}
