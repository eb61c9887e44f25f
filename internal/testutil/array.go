package testutil

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/vnx-tools/vnxctl/internal/errors"
	"github.com/vnx-tools/vnxctl/internal/storagegroup"
)

// Array is an in-memory storagegroup.Backend. Like the array it rejects an
// HLU that is already taken with errors.ExitALUNumberInUse.
type Array struct {
	mu     sync.Mutex
	groups map[string]*storagegroup.State
	hosts  map[string][]string
	paths  []storagegroup.PathOptions

	// Errors forces a method, keyed by name (e.g. "AddHLU"), to fail.
	Errors map[string]error
}

var _ storagegroup.Backend = (*Array)(nil)

// NewArray returns an empty Array.
func NewArray() *Array {
	return &Array{
		groups: make(map[string]*storagegroup.State),
		hosts:  make(map[string][]string),
		Errors: make(map[string]error),
	}
}

// AddGroup stores a storage group as if it already existed on the array.
func (a *Array) AddGroup(name string, mappings ...storagegroup.Mapping) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.groups[name] = &storagegroup.State{
		Name:      name,
		UID:       "60:06:01:60:" + name,
		Mappings:  slices.Clone(mappings),
		Shareable: true,
	}
}

// Group returns a copy of a stored storage group, nil when absent.
func (a *Array) Group(name string) *storagegroup.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	st, ok := a.groups[name]
	if !ok {
		return nil
	}
	return cloneState(st)
}

// Hosts returns the hosts connected to a storage group.
func (a *Array) Hosts(group string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.hosts[group])
}

// Paths returns every SetPath call in order.
func (a *Array) Paths() []storagegroup.PathOptions {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.paths)
}

func (a *Array) fail(method string) error {
	return a.Errors[method]
}

func (a *Array) CreateStorageGroup(_ context.Context, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.fail("CreateStorageGroup"); err != nil {
		return err
	}
	if _, ok := a.groups[name]; ok {
		return errors.StorageGroupError("Storage Group name already in use", nil)
	}
	a.groups[name] = &storagegroup.State{Name: name, UID: "60:06:01:60:" + name, Shareable: true}
	return nil
}

func (a *Array) RemoveStorageGroup(_ context.Context, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.fail("RemoveStorageGroup"); err != nil {
		return err
	}
	if _, ok := a.groups[name]; !ok {
		return errors.StorageGroupNotFound(name)
	}
	delete(a.groups, name)
	delete(a.hosts, name)
	return nil
}

func (a *Array) AddHLU(_ context.Context, group string, hlu, alu int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.fail("AddHLU"); err != nil {
		return err
	}
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
	st.Mappings = append(st.Mappings, storagegroup.Mapping{HLU: hlu, ALU: alu})
	return nil
}

func (a *Array) RemoveHLU(_ context.Context, group string, hlu int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.fail("RemoveHLU"); err != nil {
		return err
	}
	st, ok := a.groups[group]
	if !ok {
		return errors.StorageGroupNotFound(group)
	}
	n := len(st.Mappings)
	st.Mappings = slices.DeleteFunc(st.Mappings, func(m storagegroup.Mapping) bool { return m.HLU == hlu })
	if len(st.Mappings) == n {
		return errors.BackendError("The HLU number specified is not in the storage group", nil)
	}
	return nil
}

func (a *Array) StorageGroup(_ context.Context, name string) (*storagegroup.State, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.fail("StorageGroup"); err != nil {
		return nil, err
	}
	st, ok := a.groups[name]
	if !ok {
		return nil, errors.StorageGroupNotFound(name)
	}
	return cloneState(st), nil
}

func (a *Array) StorageGroups(_ context.Context) ([]*storagegroup.State, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.fail("StorageGroups"); err != nil {
		return nil, err
	}
	var out []*storagegroup.State
	for _, name := range slices.Sorted(maps.Keys(a.groups)) {
		out = append(out, cloneState(a.groups[name]))
	}
	return out, nil
}

func (a *Array) ConnectHost(_ context.Context, group, host string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.fail("ConnectHost"); err != nil {
		return err
	}
	if _, ok := a.groups[group]; !ok {
		return errors.StorageGroupNotFound(group)
	}
	a.hosts[group] = append(a.hosts[group], host)
	return nil
}

func (a *Array) DisconnectHost(_ context.Context, group, host string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.fail("DisconnectHost"); err != nil {
		return err
	}
	if _, ok := a.groups[group]; !ok {
		return errors.StorageGroupNotFound(group)
	}
	a.hosts[group] = slices.DeleteFunc(a.hosts[group], func(h string) bool { return h == host })
	return nil
}

func (a *Array) SetPath(_ context.Context, group string, opts storagegroup.PathOptions) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.fail("SetPath"); err != nil {
		return err
	}
	st, ok := a.groups[group]
	if !ok {
		return errors.StorageGroupNotFound(group)
	}
	a.paths = append(a.paths, opts)
	st.HBAPorts = append(st.HBAPorts, storagegroup.HBAPort{
		UID:      opts.HBAUID,
		SP:       opts.Port.SP,
		PortID:   opts.Port.PortID,
		HostName: opts.HostName,
		HostIP:   opts.HostIP,
	})
	return nil
}

func cloneState(st *storagegroup.State) *storagegroup.State {
	c := *st
	c.Mappings = slices.Clone(st.Mappings)
	c.HBAPorts = slices.Clone(st.HBAPorts)
	return &c
}
