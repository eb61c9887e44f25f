package storagegroup

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/samber/lo"

	"github.com/vnx-tools/vnxctl/internal/errors"
	"github.com/vnx-tools/vnxctl/internal/logging"
	"github.com/vnx-tools/vnxctl/internal/metrics"
)

// Group is one storage group with its locally tracked HLU assignments.
type Group struct {
	name       string
	backend    Backend
	limits     *Limits
	pick       PickPolicy
	newBackOff func() backoff.BackOff
	logger     *slog.Logger

	mu          sync.RWMutex
	uid         string
	shareable   bool
	hbaPorts    []HBAPort
	attachments *AttachmentMap
}

// New returns a Group with no known assignments. Call Refresh to load it
// from the array.
func New(name string, backend Backend, opts ...Option) *Group {
	g := &Group{
		name:        name,
		backend:     backend,
		limits:      DefaultLimits,
		pick:        PickLowest,
		newBackOff:  defaultBackOff,
		attachments: NewAttachmentMap(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Get loads an existing storage group.
func Get(ctx context.Context, backend Backend, name string, opts ...Option) (*Group, error) {
	g := New(name, backend, opts...)
	if err := g.Refresh(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

// Create creates the storage group on the array and loads it.
func Create(ctx context.Context, backend Backend, name string, opts ...Option) (*Group, error) {
	if err := backend.CreateStorageGroup(ctx, name); err != nil {
		if errors.HasCode(err, errors.ExitStorageGroupError) {
			return nil, err
		}
		return nil, errors.CreateStorageGroupFailed(name, err)
	}
	g := New(name, backend, opts...)
	g.log().Info("created storage group", "group", name)
	if err := g.Refresh(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Group) log() *slog.Logger {
	if g.logger != nil {
		return g.logger
	}
	return logging.Component("storagegroup")
}

// Name returns the storage group name.
func (g *Group) Name() string {
	return g.name
}

// UID returns the array's identifier, empty until loaded.
func (g *Group) UID() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.uid
}

// Shareable reports the array's shareable flag.
func (g *Group) Shareable() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.shareable
}

// IsValid reports whether the group is named and the array reported a UID
// for it.
func (g *Group) IsValid() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.name != "" && g.uid != ""
}

// Refresh replaces the local view with the array's. Assignments not yet
// confirmed by the array are dropped.
func (g *Group) Refresh(ctx context.Context) error {
	g.log().Debug("refreshing storage group", "group", g.name)
	state, err := g.backend.StorageGroup(ctx, g.name)
	if err != nil {
		return fmt.Errorf("refresh storage group %s: %w", g.name, err)
	}
	return g.apply(state)
}

func (g *Group) apply(state *State) error {
	m, err := newAttachmentMap(state.Mappings)
	if err != nil {
		return errors.BackendError(fmt.Sprintf("storage group %s has inconsistent HLU/ALU pairs", g.name), err)
	}

	g.mu.Lock()
	g.uid = state.UID
	g.shareable = state.Shareable
	g.hbaPorts = slices.Clone(state.HBAPorts)
	g.attachments = m
	free := len(g.limits.FreeHLUs(m.HLUs()))
	g.mu.Unlock()

	metrics.SetFreeHLUs(g.name, free)
	return nil
}

func (g *Group) publishFree() {
	metrics.SetFreeHLUs(g.name, len(g.FreeHLUs()))
}

// Remove destroys the storage group on the array.
func (g *Group) Remove(ctx context.Context) error {
	if err := g.backend.RemoveStorageGroup(ctx, g.name); err != nil {
		return errors.StorageGroupError(fmt.Sprintf("failed to remove storage group %s", g.name), err)
	}
	g.mu.Lock()
	g.uid = ""
	g.attachments = NewAttachmentMap()
	g.hbaPorts = nil
	g.mu.Unlock()
	g.log().Info("removed storage group", "group", g.name)
	return nil
}

// AllocateHLU picks a free HLU and records it for alu. The assignment is
// local only until the array confirms it.
func (g *Group) AllocateHLU(alu int) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if hlu, ok := g.attachments.HLU(alu); ok {
		return 0, errors.AttachFailed(g.name, alu, fmt.Errorf("already attached as HLU %d", hlu))
	}
	free := g.limits.FreeHLUs(g.attachments.HLUs())
	if len(free) == 0 {
		return 0, errors.NoHLUAvailable(g.name, g.limits.Max())
	}
	hlu := g.pick(free)
	g.attachments.Assign(alu, hlu)
	return hlu, nil
}

// ReleaseHLU forgets the assignment of alu. Releasing an unknown ALU is a
// no-op.
func (g *Group) ReleaseHLU(alu int) (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attachments.Unassign(alu)
}

// HLU returns the HLU assigned to alu.
func (g *Group) HLU(alu int) (int, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.attachments.HLU(alu)
}

// HasALU reports whether alu is attached.
func (g *Group) HasALU(alu int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.attachments.HasALU(alu)
}

// HasHLU reports whether hlu is taken.
func (g *Group) HasHLU(hlu int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.attachments.HasHLU(hlu)
}

// UsedHLUs returns the taken HLUs, ascending.
func (g *Group) UsedHLUs() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.attachments.HLUs()
}

// UsedALUs returns the attached ALUs, ascending.
func (g *Group) UsedALUs() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.attachments.ALUs()
}

// FreeHLUs returns the HLUs still available, ascending.
func (g *Group) FreeHLUs() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.limits.FreeHLUs(g.attachments.HLUs())
}

// Mappings returns the HLU/ALU pairs ordered by HLU.
func (g *Group) Mappings() []Mapping {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.attachments.Mappings()
}

// State returns a snapshot of the group.
func (g *Group) State() *State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return &State{
		Name:      g.name,
		UID:       g.uid,
		Mappings:  g.attachments.Mappings(),
		HBAPorts:  slices.Clone(g.hbaPorts),
		Shareable: g.shareable,
	}
}

// Detach removes dev from the group on the array and frees its HLU.
func (g *Group) Detach(ctx context.Context, dev Device) error {
	alu, err := dev.ResolveALU(ctx)
	if err != nil {
		return err
	}
	hlu, ok := g.HLU(alu)
	if !ok {
		metrics.RecordDetach(g.name, metrics.ResultFailed)
		return errors.DetachNotFound(g.name, alu)
	}

	g.log().Debug("removing hlu", "group", g.name, "hlu", hlu, "alu", alu)
	if err := g.backend.RemoveHLU(ctx, g.name, hlu); err != nil {
		metrics.RecordDetach(g.name, metrics.ResultFailed)
		return errors.StorageGroupError(
			fmt.Sprintf("failed to detach HLU %d (ALU %d) from storage group %s", hlu, alu, g.name), err)
	}

	g.ReleaseHLU(alu)
	metrics.RecordDetach(g.name, metrics.ResultSuccess)
	g.publishFree()
	g.log().Info("detached", "group", g.name, "hlu", hlu, "alu", alu)
	return nil
}

// ConnectHost connects host to the group.
func (g *Group) ConnectHost(ctx context.Context, host string) error {
	if host == "" {
		return errors.ValidationError("host name is required")
	}
	if err := g.backend.ConnectHost(ctx, g.name, host); err != nil {
		return errors.StorageGroupError(fmt.Sprintf("failed to connect host %s to storage group %s", host, g.name), err)
	}
	g.log().Info("connected host", "group", g.name, "host", host)
	return nil
}

// DisconnectHost disconnects host from the group.
func (g *Group) DisconnectHost(ctx context.Context, host string) error {
	if host == "" {
		return errors.ValidationError("host name is required")
	}
	if err := g.backend.DisconnectHost(ctx, g.name, host); err != nil {
		return errors.StorageGroupError(fmt.Sprintf("failed to disconnect host %s from storage group %s", host, g.name), err)
	}
	g.log().Info("disconnected host", "group", g.name, "host", host)
	return nil
}

// SetPath registers an initiator path. A virtual port only applies to
// iSCSI ports and is dropped otherwise.
func (g *Group) SetPath(ctx context.Context, opts PathOptions) error {
	if opts.Port.SP == "" {
		return errors.ValidationError("storage processor is required")
	}
	if opts.Port.PortID < 0 {
		return errors.ValidationError("port id is required")
	}
	if opts.HBAUID == "" {
		return errors.ValidationError("HBA UID is required")
	}
	if opts.Port.Type == PortUnknown {
		opts.Port.Type = HBAPort{UID: opts.HBAUID}.PortType()
	}
	if opts.Port.Type != PortISCSI {
		opts.Port.VPortID = nil
	}
	if err := g.backend.SetPath(ctx, g.name, opts); err != nil {
		return errors.StorageGroupError(fmt.Sprintf("failed to set path for %s in storage group %s", opts.HBAUID, g.name), err)
	}
	g.log().Info("set path", "group", g.name, "hba", opts.HBAUID, "sp", opts.Port.SP, "port", opts.Port.PortID)
	return nil
}

// HBAPorts returns the registered HBA/SP pairs.
func (g *Group) HBAPorts() []HBAPort {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.hbaPorts)
}

// InitiatorUIDs returns the distinct initiator UIDs of the given port type,
// or of every type when pt is PortUnknown.
func (g *Group) InitiatorUIDs(pt PortType) []string {
	ports := g.HBAPorts()
	if pt != PortUnknown {
		ports = lo.Filter(ports, func(p HBAPort, _ int) bool { return p.PortType() == pt })
	}
	uids := lo.Uniq(lo.Map(ports, func(p HBAPort, _ int) string { return p.UID }))
	slices.Sort(uids)
	return uids
}

// Ports returns the SP ports the initiator is logged in to.
func (g *Group) Ports(initiatorUID string) []Port {
	var ports []Port
	for _, p := range g.HBAPorts() {
		if p.UID == initiatorUID {
			ports = append(ports, p.Port())
		}
	}
	return ports
}

// Hosts returns the distinct host names with a registered path, sorted.
func (g *Group) Hosts() []string {
	return hostNames(g.HBAPorts())
}
