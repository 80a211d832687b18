package maps

import (
	"context"
	"errors"

	"github.com/ShieldBattery/ShieldBattery-sub010/internal/engine"
)

var (
	ErrMapNotFound = errors.New("map not found")
	ErrMapExists   = errors.New("map already exists")
	ErrInvalidMap  = errors.New("invalid map")
)

// Store holds the map descriptors lobbies can be created on.
type Store interface {
	Get(ctx context.Context, name string) (engine.Map, error)
	Put(ctx context.Context, m engine.Map) error
	List(ctx context.Context) ([]engine.Map, error)
}

// Builtin are the melee maps every store starts out knowing.
var Builtin = []engine.Map{
	{Name: "Fighting Spirit", Hash: "e5b3f4a6c1d27f80"},
	{Name: "Circuit Breaker", Hash: "7a1c90de44b2f613"},
	{Name: "Python", Hash: "0c9d2e5f8ab17344"},
	{Name: "Lost Temple", Hash: "b41f6a07d3ce9e25"},
	{Name: "Big Game Hunters", Hash: "93d0a8e1f27c5b6e"},
}

func validate(m engine.Map) error {
	if m.Name == "" {
		return ErrInvalidMap
	}
	for _, f := range m.Data.UmsForces {
		for _, p := range f.Players {
			if p.ID < 0 || p.ID > 11 {
				return ErrInvalidMap
			}
		}
	}
	return nil
}
