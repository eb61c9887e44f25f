package storagegroup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnx-tools/vnxctl/internal/errors"
)

func TestList(t *testing.T) {
	arr := newFakeArray("web", "db")
	arr.groups["db"].Mappings = []Mapping{{HLU: 1, ALU: 5}}

	groups, err := List(context.Background(), arr, testOptions(10)...)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "db", groups[0].Name())
	assert.Equal(t, "web", groups[1].Name())
	assert.True(t, groups[0].IsValid())
	assert.True(t, groups[0].HasALU(5))
}

func TestDetachFromAll(t *testing.T) {
	ctx := context.Background()
	arr := newFakeArray("a", "b", "c")
	arr.groups["a"].Mappings = []Mapping{{HLU: 1, ALU: 7}}
	arr.groups["c"].Mappings = []Mapping{{HLU: 3, ALU: 7}, {HLU: 4, ALU: 8}}

	groups, err := List(ctx, arr, testOptions(10)...)
	require.NoError(t, err)

	detached, err := DetachFromAll(ctx, groups, LUN(7))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, detached)
	assert.Empty(t, arr.mappings("a"))
	assert.Equal(t, []Mapping{{HLU: 4, ALU: 8}}, arr.mappings("c"))

	detached, err = DetachFromAll(ctx, groups, LUN(7))
	require.NoError(t, err)
	assert.Empty(t, detached)
}

func TestDetachFromAllReportsFailure(t *testing.T) {
	ctx := context.Background()
	arr := newFakeArray("a")
	arr.groups["a"].Mappings = []Mapping{{HLU: 1, ALU: 7}}
	groups, err := List(ctx, arr, testOptions(10)...)
	require.NoError(t, err)

	// removed behind our back
	delete(arr.groups, "a")

	_, err = DetachFromAll(ctx, groups, LUN(7))
	require.Error(t, err)
	assert.Equal(t, errors.ExitStorageGroupError, errors.GetExitCode(err))
}
