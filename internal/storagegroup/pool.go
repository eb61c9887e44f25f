package storagegroup

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/vnx-tools/vnxctl/internal/logging"
)

// DefaultMaxLUNsPerGroup is the HLU ceiling of a VNX storage group.
const DefaultMaxLUNsPerGroup = 255

// hluRange is an immutable bound with its lazily built full range.
type hluRange struct {
	max  int
	once sync.Once
	full []int
}

func (r *hluRange) slots() []int {
	r.once.Do(func() {
		r.full = lo.RangeFrom(1, r.max)
	})
	return r.full
}

// Limits holds the HLU range bound. It is read on every allocation and
// changed rarely, so the bound and its memoized range are swapped as one
// value.
type Limits struct {
	cur atomic.Pointer[hluRange]
}

// NewLimits returns Limits bounded at max.
func NewLimits(max int) *Limits {
	l := &Limits{}
	l.cur.Store(&hluRange{max: clampMax(max)})
	return l
}

// DefaultLimits is shared by every Group not given its own Limits.
var DefaultLimits = NewLimits(DefaultMaxLUNsPerGroup)

// MaxLUNsPerGroup returns the bound of DefaultLimits.
func MaxLUNsPerGroup() int {
	return DefaultLimits.Max()
}

// SetMaxLUNsPerGroup changes the bound of DefaultLimits.
func SetMaxLUNsPerGroup(n int) {
	DefaultLimits.SetMax(n)
}

func clampMax(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Max returns the highest allocatable HLU.
func (l *Limits) Max() int {
	return l.cur.Load().max
}

// SetMax changes the bound. The memoized range is dropped with the old value.
func (l *Limits) SetMax(n int) {
	n = clampMax(n)
	logging.Info("update max LUNs per storage group", "max", n)
	l.cur.Store(&hluRange{max: n})
}

// FullRange returns [1, Max].
func (l *Limits) FullRange() []int {
	return slices.Clone(l.cur.Load().slots())
}

// FreeHLUs returns the HLUs of [1, Max] not in assigned, ascending.
// Assigned values outside the range are ignored.
func (l *Limits) FreeHLUs(assigned []int) []int {
	return lo.Without(l.cur.Load().slots(), assigned...)
}

// PickPolicy chooses one HLU from a non-empty ascending free list.
type PickPolicy func(free []int) int

// PickLowest is first-fit: the smallest free HLU.
func PickLowest(free []int) int {
	return free[0]
}

// PickRandom picks uniformly among the free HLUs.
func PickRandom(free []int) int {
	return free[rand.IntN(len(free))]
}

// ParsePickPolicy maps a configuration name to a policy.
func ParsePickPolicy(name string) (PickPolicy, error) {
	switch name {
	case "", "lowest":
		return PickLowest, nil
	case "random":
		return PickRandom, nil
	}
	return nil, fmt.Errorf("unknown hlu policy %q (must be lowest or random)", name)
}
