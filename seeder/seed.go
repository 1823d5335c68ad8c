package seeder

import (
	"encoding/binary"
	"io"
	"math/rand/v2"

	"github.com/google/uuid"
)

// DefaultBaseSeed is the base seed used when none is supplied.
const DefaultBaseSeed int64 = 42

// Phase identifies one of the sequential generation stages.
// Its integer value is the offset added to the base seed for that phase.
type Phase int

const (
	PhaseUsers         Phase = 0
	PhaseSubscriptions Phase = 1
	PhaseEvents        Phase = 2
)

const idStreamDomain = 0x6964733a73656564 // "ids:seed"

// String returns the name used in logs and metric labels.
func (p Phase) String() string {
	switch p {
	case PhaseUsers:
		return "users"
	case PhaseSubscriptions:
		return "subscriptions"
	case PhaseEvents:
		return "events"
	default:
		return "unknown"
	}
}

// PhaseSeed derives the deterministic seed of a phase: base + phase index.
func PhaseSeed(base int64, phase Phase) int64 {
	return base + int64(phase)
}

// PhaseStreams bundles the independent random streams of one phase.
//
// Rand drives all value draws (ages, plans, event names, ...).
// IDs is a separate byte stream used only for identifiers, so identifier generation
// never shifts the value draws.
type PhaseStreams struct {
	Phase Phase
	Seed  int64
	Rand  *rand.Rand
	IDs   io.Reader
}

// NewPhaseStreams constructs the streams for the given phase from the base seed.
//
// Both generators (PCG and ChaCha8) are fully specified by math/rand/v2,
// so identical seeds produce identical output on every platform.
func NewPhaseStreams(base int64, phase Phase) PhaseStreams {
	seed := PhaseSeed(base, phase)
	s := uint64(seed)

	return PhaseStreams{
		Phase: phase,
		Seed:  seed,
		Rand:  rand.New(rand.NewPCG(splitMix64(s), splitMix64(s^0xa5a5a5a5a5a5a5a5))),
		IDs:   rand.NewChaCha8(chaChaKey(s)),
	}
}

// NewID reads a version 4 UUID from the phase's identifier stream.
func (ps PhaseStreams) NewID() (uuid.UUID, error) {
	return uuid.NewRandomFromReader(ps.IDs)
}

func chaChaKey(seed uint64) [32]byte {
	var key [32]byte
	x := seed ^ idStreamDomain

	for i := 0; i < 4; i++ {
		x = splitMix64(x)
		binary.LittleEndian.PutUint64(key[i*8:], x)
	}

	return key
}

func splitMix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	z := x
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb

	return z ^ (z >> 31)
}
