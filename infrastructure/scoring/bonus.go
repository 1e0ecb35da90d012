package scoring

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ahrav/go-arena/internal/domain"
	"github.com/ahrav/go-arena/internal/ports"
)

var (
	_ ports.BonusGenerator = (*UniformBonus)(nil)
	_ ports.BonusGenerator = FixedBonus(0)
)

// UniformBonus draws finale bonuses uniformly from the inclusive range with
// a seeded PCG source. It is safe for concurrent use.
type UniformBonus struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewUniformBonus creates a bonus source. A zero seed picks a time-based
// seed.
func NewUniformBonus(seed uint64) *UniformBonus {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &UniformBonus{rng: rand.New(rand.NewPCG(seed, ^seed))}
}

// Bonus implements ports.BonusGenerator. An empty or inverted range yields
// its minimum.
func (u *UniformBonus) Bonus(r domain.BonusRange) int {
	if r.Max <= r.Min {
		return r.Min
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return r.Min + u.rng.IntN(r.Max-r.Min+1)
}

// FixedBonus always yields its own value, whatever the range.
type FixedBonus int

// Bonus implements ports.BonusGenerator.
func (f FixedBonus) Bonus(domain.BonusRange) int { return int(f) }
