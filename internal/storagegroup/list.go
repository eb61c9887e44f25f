package storagegroup

import (
	"context"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// List loads every storage group on the array.
func List(ctx context.Context, backend Backend, opts ...Option) ([]*Group, error) {
	states, err := backend.StorageGroups(ctx)
	if err != nil {
		return nil, err
	}
	groups := make([]*Group, 0, len(states))
	for _, st := range states {
		g := New(st.Name, backend, opts...)
		if err := g.apply(st); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	slices.SortFunc(groups, func(a, b *Group) int {
		return strings.Compare(a.name, b.name)
	})
	return groups, nil
}

// DetachFromAll detaches dev from every group holding it, concurrently. It
// returns the names of the groups it was removed from.
func DetachFromAll(ctx context.Context, groups []*Group, dev Device) ([]string, error) {
	alu, err := dev.ResolveALU(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu       sync.Mutex
		detached []string
	)
	eg, ctx := errgroup.WithContext(ctx)
	for _, g := range groups {
		if !g.HasALU(alu) {
			continue
		}
		eg.Go(func() error {
			if err := g.Detach(ctx, LUN(alu)); err != nil {
				return err
			}
			mu.Lock()
			detached = append(detached, g.Name())
			mu.Unlock()
			return nil
		})
	}
	err = eg.Wait()
	slices.Sort(detached)
	return detached, err
}
