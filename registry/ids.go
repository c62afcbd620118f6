package registry

import "math/rand/v2"

// DefaultFirstID is where a Sequence starts when no start is given.
const DefaultFirstID int64 = 10000

// IDGenerator hands out the opaque handles attached to bindings.
type IDGenerator interface {
	NextID() int64
}

// Sequence is a monotonic IDGenerator.
type Sequence struct {
	next int64
}

// NewSequence returns a Sequence whose first id is start, or DefaultFirstID when start is zero.
func NewSequence(start int64) *Sequence {
	if start == 0 {
		start = DefaultFirstID
	}
	return &Sequence{next: start}
}

// NextID returns the next id in the sequence.
func (s *Sequence) NextID() int64 {
	id := s.next
	s.next++
	return id
}

// RandomIDs draws ids uniformly from [10000, 60000). Collisions are possible but unlikely.
type RandomIDs struct {
	rng *rand.Rand
}

// NewRandomIDs returns a RandomIDs seeded from seed.
func NewRandomIDs(seed uint64) *RandomIDs {
	return &RandomIDs{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NextID returns a random id.
func (r *RandomIDs) NextID() int64 {
	return 10000 + r.rng.Int64N(50000)
}
