package slot

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGen hands out slot identifiers together with a creation order that
// increases by one on every call.
type IDGen interface {
	Next() (ID, uint64)
}

type UUIDGen struct {
	seq atomic.Uint64
}

func NewUUIDGen() *UUIDGen { return &UUIDGen{} }

func (g *UUIDGen) Next() (ID, uint64) {
	return ID(uuid.NewString()), g.seq.Add(1)
}

// SequenceGen produces predictable ids ("<prefix>1", "<prefix>2", ...).
type SequenceGen struct {
	prefix string
	seq    atomic.Uint64
}

func NewSequenceGen(prefix string) *SequenceGen { return &SequenceGen{prefix: prefix} }

func (g *SequenceGen) Next() (ID, uint64) {
	n := g.seq.Add(1)
	return ID(g.prefix + strconv.FormatUint(n, 10)), n
}
