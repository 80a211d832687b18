package engine

import (
	"github.com/goccy/go-json"

	"github.com/ShieldBattery/ShieldBattery-sub010/internal/slot"
)

// Summary is the lobby-list view of a lobby.
type Summary struct {
	Name          string      `json:"name"`
	Map           MapSummary  `json:"map"`
	GameType      GameType    `json:"gameType"`
	GameSubType   int         `json:"gameSubType"`
	Host          HostSummary `json:"host"`
	OpenSlotCount int         `json:"openSlotCount"`
}

type MapSummary struct {
	Name string `json:"name"`
	Hash string `json:"hash,omitempty"`
}

type HostSummary struct {
	Name string  `json:"name"`
	ID   slot.ID `json:"id"`
}

func ToSummary(l *Lobby) Summary {
	return Summary{
		Name:          l.Name,
		Map:           MapSummary{Name: l.Map.Name, Hash: l.Map.Hash},
		GameType:      l.GameType,
		GameSubType:   l.GameSubType,
		Host:          HostSummary{Name: l.Host.Name, ID: l.Host.ID},
		OpenSlotCount: OpenSlotCount(l),
	}
}

func ToSummaryJSON(l *Lobby) ([]byte, error) {
	return json.Marshal(ToSummary(l))
}

// OpenSlotCount counts joinable seats over every visible team slot.
func OpenSlotCount(l *Lobby) int {
	n := 0
	for _, t := range l.Teams {
		n += joinableCount(t)
	}
	return n
}
