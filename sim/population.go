package sim

import "math/rand/v2"

// Population is an arena of individuals indexed by ID. Removal tombstones the
// slot; ids are never reused, and removed individuals stay reachable through
// the events that still reference them.
type Population struct {
	individuals []*Individual
	live        []bool
	size        int
}

func newPopulation(size int, model TransmissionModel, rng *rand.Rand, rec *recorder) *Population {
	p := &Population{
		individuals: make([]*Individual, size),
		live:        make([]bool, size),
		size:        size,
	}
	for i := range size {
		p.individuals[i] = newIndividual(ID(i), model, rng, rec)
		p.live[i] = true
	}
	return p
}

// Size returns the number of live individuals.
func (p *Population) Size() int { return p.size }

// Get returns the live individual with the given id.
func (p *Population) Get(id ID) (*Individual, bool) {
	if !p.Contains(id) {
		return nil, false
	}
	return p.individuals[id], true
}

// Contains reports whether id is a live member of the population.
func (p *Population) Contains(id ID) bool {
	return id >= 0 && int(id) < len(p.individuals) && p.live[id]
}

// IDs returns the live ids in ascending order.
func (p *Population) IDs() []ID {
	ids := make([]ID, 0, p.size)
	for i, alive := range p.live {
		if alive {
			ids = append(ids, ID(i))
		}
	}
	return ids
}

// Remove tombstones id. It reports false when id was not live.
func (p *Population) Remove(id ID) bool {
	if !p.Contains(id) {
		return false
	}
	p.live[id] = false
	p.size--
	return true
}

// eligible returns the live, non-quarantined ids other than exclude, in ascending order.
func (p *Population) eligible(exclude ID) []ID {
	ids := make([]ID, 0, p.size)
	for i, alive := range p.live {
		if !alive || ID(i) == exclude || p.individuals[i].IsQuarantined() {
			continue
		}
		ids = append(ids, ID(i))
	}
	return ids
}

// chooseTarget picks one eligible id uniformly at random.
func (p *Population) chooseTarget(exclude ID, rng *rand.Rand) (ID, bool) {
	ids := p.eligible(exclude)
	if len(ids) == 0 {
		return NoID, false
	}
	return ids[rng.IntN(len(ids))], true
}
