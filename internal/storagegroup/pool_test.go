package storagegroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitsFullRange(t *testing.T) {
	l := NewLimits(3)
	assert.Equal(t, 3, l.Max())
	assert.Equal(t, []int{1, 2, 3}, l.FullRange())

	assert.Len(t, NewLimits(DefaultMaxLUNsPerGroup).FullRange(), 255)
}

func TestLimitsFullRangeIsACopy(t *testing.T) {
	l := NewLimits(3)
	r := l.FullRange()
	r[0] = 42
	assert.Equal(t, []int{1, 2, 3}, l.FullRange())
}

func TestLimitsSetMax(t *testing.T) {
	l := NewLimits(3)
	assert.Equal(t, []int{1, 2, 3}, l.FullRange())

	l.SetMax(5)
	assert.Equal(t, 5, l.Max())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, l.FullRange())

	l.SetMax(0)
	assert.Empty(t, l.FullRange())

	l.SetMax(-4)
	assert.Equal(t, 0, l.Max())
	assert.Empty(t, l.FullRange())
}

func TestLimitsFreeHLUs(t *testing.T) {
	l := NewLimits(6)

	tests := []struct {
		name     string
		assigned []int
		want     []int
	}{
		{"none assigned", nil, []int{1, 2, 3, 4, 5, 6}},
		{"some assigned", []int{2, 5}, []int{1, 3, 4, 6}},
		{"all assigned", []int{1, 2, 3, 4, 5, 6}, []int{}},
		{"out of range ignored", []int{0, 7, 300, 3}, []int{1, 2, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			free := l.FreeHLUs(tt.assigned)
			assert.Equal(t, tt.want, free)
			for _, h := range tt.assigned {
				assert.NotContains(t, free, h)
			}
		})
	}
}

func TestDefaultLimits(t *testing.T) {
	orig := MaxLUNsPerGroup()
	t.Cleanup(func() { SetMaxLUNsPerGroup(orig) })

	assert.Equal(t, DefaultMaxLUNsPerGroup, orig)
	SetMaxLUNsPerGroup(10)
	assert.Equal(t, 10, MaxLUNsPerGroup())
	assert.Len(t, DefaultLimits.FullRange(), 10)
}

func TestPickPolicies(t *testing.T) {
	free := []int{3, 7, 9}
	assert.Equal(t, 3, PickLowest(free))
	for i := 0; i < 50; i++ {
		assert.Contains(t, free, PickRandom(free))
	}
}

func TestParsePickPolicy(t *testing.T) {
	for _, name := range []string{"", "lowest", "random"} {
		p, err := ParsePickPolicy(name)
		require.NoError(t, err, name)
		assert.NotNil(t, p)
	}

	_, err := ParsePickPolicy("highest")
	assert.Error(t, err)
}
