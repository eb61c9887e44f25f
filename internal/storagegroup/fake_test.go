package storagegroup

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/vnx-tools/vnxctl/internal/errors"
)

// fakeArray behaves like the array: it owns the authoritative mappings and
// rejects an HLU that is already taken.
type fakeArray struct {
	mu     sync.Mutex
	groups map[string]*State
	adds   int
}

func newFakeArray(names ...string) *fakeArray {
	a := &fakeArray{groups: make(map[string]*State)}
	for _, n := range names {
		a.groups[n] = &State{Name: n, UID: "uid-" + n}
	}
	return a
}

func (a *fakeArray) CreateStorageGroup(_ context.Context, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.groups[name]; ok {
		return errors.CreateStorageGroupFailed(name, fmt.Errorf("name already in use"))
	}
	a.groups[name] = &State{Name: name, UID: "uid-" + name}
	return nil
}

func (a *fakeArray) RemoveStorageGroup(_ context.Context, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.groups[name]; !ok {
		return errors.StorageGroupNotFound(name)
	}
	delete(a.groups, name)
	return nil
}

func (a *fakeArray) AddHLU(_ context.Context, group string, hlu, alu int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.adds++
	st, ok := a.groups[group]
	if !ok {
		return errors.StorageGroupNotFound(group)
	}
	for _, m := range st.Mappings {
		if m.HLU == hlu {
			return errors.ALUNumberInUse("Requested Host LUN Number already in use", nil)
		}
		if m.ALU == alu {
			return errors.BackendError("LUN already exists in the specified storage group", nil)
		}
	}
	st.Mappings = append(st.Mappings, Mapping{HLU: hlu, ALU: alu})
	return nil
}

func (a *fakeArray) RemoveHLU(_ context.Context, group string, hlu int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	st, ok := a.groups[group]
	if !ok {
		return errors.StorageGroupNotFound(group)
	}
	for i, m := range st.Mappings {
		if m.HLU == hlu {
			st.Mappings = append(st.Mappings[:i], st.Mappings[i+1:]...)
			return nil
		}
	}
	return errors.BackendError(fmt.Sprintf("hlu %d not mapped", hlu), nil)
}

func (a *fakeArray) StorageGroup(_ context.Context, name string) (*State, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	st, ok := a.groups[name]
	if !ok {
		return nil, errors.StorageGroupNotFound(name)
	}
	cp := *st
	cp.Mappings = append([]Mapping(nil), st.Mappings...)
	return &cp, nil
}

func (a *fakeArray) StorageGroups(ctx context.Context) ([]*State, error) {
	a.mu.Lock()
	names := make([]string, 0, len(a.groups))
	for n := range a.groups {
		names = append(names, n)
	}
	a.mu.Unlock()
	sort.Strings(names)

	var out []*State
	for _, n := range names {
		st, err := a.StorageGroup(ctx, n)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (a *fakeArray) ConnectHost(context.Context, string, string) error    { return nil }
func (a *fakeArray) DisconnectHost(context.Context, string, string) error { return nil }
func (a *fakeArray) SetPath(context.Context, string, PathOptions) error   { return nil }

func (a *fakeArray) mappings(group string) []Mapping {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Mapping(nil), a.groups[group].Mappings...)
}

// mockBackend records calls for exact call-count assertions.
type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) CreateStorageGroup(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *mockBackend) RemoveStorageGroup(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *mockBackend) AddHLU(ctx context.Context, group string, hlu, alu int) error {
	return m.Called(ctx, group, hlu, alu).Error(0)
}

func (m *mockBackend) RemoveHLU(ctx context.Context, group string, hlu int) error {
	return m.Called(ctx, group, hlu).Error(0)
}

func (m *mockBackend) StorageGroup(ctx context.Context, name string) (*State, error) {
	args := m.Called(ctx, name)
	st, _ := args.Get(0).(*State)
	return st, args.Error(1)
}

func (m *mockBackend) StorageGroups(ctx context.Context) ([]*State, error) {
	args := m.Called(ctx)
	st, _ := args.Get(0).([]*State)
	return st, args.Error(1)
}

func (m *mockBackend) ConnectHost(ctx context.Context, group, host string) error {
	return m.Called(ctx, group, host).Error(0)
}

func (m *mockBackend) DisconnectHost(ctx context.Context, group, host string) error {
	return m.Called(ctx, group, host).Error(0)
}

func (m *mockBackend) SetPath(ctx context.Context, group string, opts PathOptions) error {
	return m.Called(ctx, group, opts).Error(0)
}
