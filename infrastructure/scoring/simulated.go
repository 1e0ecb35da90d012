package scoring

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ahrav/go-arena/internal/ports"
)

var _ ports.ScoreGenerator = (*SimulatedGenerator)(nil)

// Profile is the inclusive score range of a category.
type Profile struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// DefaultProfiles returns a score profile for each built-in category.
func DefaultProfiles() map[string]Profile {
	return map[string]Profile{
		"sorting":     {Min: 50, Max: 100},
		"graph":       {Min: 40, Max: 100},
		"linkedlist":  {Min: 45, Max: 95},
		"hashing":     {Min: 55, Max: 100},
		"stack_queue": {Min: 50, Max: 95},
	}
}

// SimulatedGenerator draws scores uniformly from per-category profiles using
// a seeded PCG source, so a given seed always replays the same tournament.
// It is safe for concurrent use.
type SimulatedGenerator struct {
	mu       sync.Mutex
	rng      *rand.Rand
	profiles categoryIndex[Profile]
}

// NewSimulatedGenerator creates a generator over profiles. A zero seed picks
// a time-based seed.
func NewSimulatedGenerator(seed uint64, profiles map[string]Profile) (*SimulatedGenerator, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("simulated generator: no category profiles")
	}
	for name, p := range profiles {
		if p.Max < p.Min {
			return nil, fmt.Errorf("simulated generator: profile %q: max %d below min %d", name, p.Max, p.Min)
		}
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &SimulatedGenerator{
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		profiles: newCategoryIndex(profiles),
	}, nil
}

// Score implements ports.ScoreGenerator. The slot does not influence the
// draw.
func (g *SimulatedGenerator) Score(ctx context.Context, category string, _ int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	p, err := g.profiles.lookup(category)
	if err != nil {
		return 0, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return p.Min + g.rng.IntN(p.Max-p.Min+1), nil
}

// Validate checks up front that every category has a profile.
func (g *SimulatedGenerator) Validate(categories []string) error {
	return g.profiles.validate(categories)
}
