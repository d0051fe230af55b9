// Package mining implements the miner roster: a round-robin gate over the
// set of known peers used to decide, once per scheduler tick, whether this
// host should mine the next block.
package mining

// Miner identifies a peer eligible to mine, by its libp2p peer id.
type Miner struct {
	ID string
}

// Roster holds the ordered list of known miners, with the host reserved at
// slot 0, and the pointer used by the round-robin gate.
type Roster struct {
	host    Miner
	miners  []Miner
	pointer *string
}

// NewRoster constructs a roster with host occupying slot 0.
func NewRoster(host Miner) *Roster {
	return &Roster{host: host, miners: []Miner{host}}
}

// Host returns the host's own miner entry.
func (r *Roster) Host() Miner {
	return r.host
}

// Miners returns the roster in registration order.
func (r *Roster) Miners() []Miner {
	out := make([]Miner, len(r.miners))
	copy(out, r.miners)
	return out
}

// Len returns the number of known miners, including the host.
func (r *Roster) Len() int {
	return len(r.miners)
}

// RegisterMiner appends m if its id is not already present.
func (r *Roster) RegisterMiner(m Miner) {
	for _, existing := range r.miners {
		if existing.ID == m.ID {
			return
		}
	}
	r.miners = append(r.miners, m)
}

// UnregisterMiner removes id if present. Slot 0 (the host) is never
// removed, even if id matches it.
func (r *Roster) UnregisterMiner(id string) {
	if id == r.host.ID {
		return
	}
	for i, m := range r.miners {
		if m.ID == id {
			r.miners = append(r.miners[:i], r.miners[i+1:]...)
			return
		}
	}
}

// SetLastBlockMiner advances the round-robin pointer: if unset, it is
// pinned to the host (slot 0); otherwise the current pointer's slot index k
// advances to (k+1) mod len.
func (r *Roster) SetLastBlockMiner() {
	if r.pointer == nil {
		id := r.host.ID
		r.pointer = &id
		return
	}
	k := r.indexOf(*r.pointer)
	if k < 0 {
		// the previous pointer fell off the roster (unregistered); restart
		// the rotation at the host rather than panicking.
		id := r.host.ID
		r.pointer = &id
		return
	}
	next := r.miners[(k+1)%len(r.miners)].ID
	r.pointer = &next
}

// ShouldMineNewBlock reports whether the rotation currently lands on the
// host.
func (r *Roster) ShouldMineNewBlock() bool {
	return r.pointer != nil && *r.pointer == r.host.ID
}

func (r *Roster) indexOf(id string) int {
	for i, m := range r.miners {
		if m.ID == id {
			return i
		}
	}
	return -1
}
