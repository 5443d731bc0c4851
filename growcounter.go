package gocrdt

import "sync"

// GrowCounter is a state-based Grow-only Counter CRDT.
//
// It is a distributed counter where the value only increases. To prevent
// double-counting across different replicas, it maintains a vector (map) of
// counts, where each replica is responsible for updating its own slot. The
// total value is derived by summing all slots in the map.
//
// A GrowCounter is bound to a single ReplicaId at construction; only that
// slot is ever written locally. Other slots are populated exclusively via
// Merge, which is how Sequence uses a GrowCounter as its logical clock.
type GrowCounter struct {
	mu      sync.RWMutex
	replica ReplicaId
	slots   map[ReplicaId]uint64
}

// NewGrowCounter initializes a GrowCounter bound to a replica.
func NewGrowCounter(replica ReplicaId) *GrowCounter {
	return &GrowCounter{
		replica: replica,
		slots:   map[ReplicaId]uint64{replica: 0},
	}
}

// Add adds n to the owning replica's slot. n must be non-negative.
func (c *GrowCounter) Add(n uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[c.replica] += n
	return nil
}

// AddInt is a convenience wrapper around Add for callers holding a signed
// value; it returns InvalidArgument if n is negative.
func (c *GrowCounter) AddInt(n int) error {
	if n < 0 {
		return newError(InvalidArgument, "GrowCounter.Add: n must be >= 0, got %d", n)
	}
	return c.Add(uint64(n))
}

// Value returns the counter's current value, satisfying CRDT.
func (c *GrowCounter) Value() any { return c.Get() }

// Get returns the sum of all slots: the counter's current logical value.
func (c *GrowCounter) Get() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var sum uint64
	for _, v := range c.slots {
		sum += v
	}
	return sum
}

// Merge combines the state of another GrowCounter into this one by taking
// the pointwise maximum across the union of replica slots. This is the
// join operation of the underlying join-semilattice: commutative,
// associative and idempotent.
func (c *GrowCounter) Merge(other *GrowCounter) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	other.mu.RLock()
	defer other.mu.RUnlock()

	for replica, count := range other.slots {
		if count > c.slots[replica] {
			c.slots[replica] = count
		}
	}
	return nil
}
