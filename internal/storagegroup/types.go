package storagegroup

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Mapping is one HLU/ALU pair of a storage group.
type Mapping struct {
	HLU int `json:"hlu" yaml:"hlu"`
	ALU int `json:"alu" yaml:"alu"`
}

// SP identifies a storage processor.
type SP string

const (
	SPA SP = "A"
	SPB SP = "B"
)

// ParseSP accepts "A", "b", "SP A" or "spb".
func ParseSP(s string) (SP, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.TrimSpace(strings.TrimPrefix(v, "SP"))
	switch v {
	case "A":
		return SPA, nil
	case "B":
		return SPB, nil
	}
	return "", fmt.Errorf("invalid storage processor %q", s)
}

// PortType is the transport of a front-end port.
type PortType string

const (
	PortISCSI   PortType = "iSCSI"
	PortFC      PortType = "FC"
	PortUnknown PortType = ""
)

// Port is a storage processor front-end port.
type Port struct {
	SP      SP       `json:"sp" yaml:"sp"`
	PortID  int      `json:"portId" yaml:"portId"`
	VPortID *int     `json:"vportId,omitempty" yaml:"vportId,omitempty"`
	Type    PortType `json:"type,omitempty" yaml:"type,omitempty"`
}

// HBAPort is one registered HBA/SP pair of a storage group.
type HBAPort struct {
	UID      string `json:"uid" yaml:"uid"`
	SP       SP     `json:"sp" yaml:"sp"`
	PortID   int    `json:"portId" yaml:"portId"`
	SPPort   string `json:"spPort,omitempty" yaml:"spPort,omitempty"` // e.g. "A-4v0"
	HostName string `json:"hostName,omitempty" yaml:"hostName,omitempty"`
	HostIP   string `json:"hostIp,omitempty" yaml:"hostIp,omitempty"`
}

// PortType infers the transport from the initiator UID format.
func (p HBAPort) PortType() PortType {
	switch {
	case strings.Contains(p.UID, "."):
		return PortISCSI
	case strings.Contains(p.UID, ":"):
		return PortFC
	}
	return PortUnknown
}

var spPortVLAN = regexp.MustCompile(`v(\d+)$`)

// VLAN returns the virtual port id from the SP port notation "A-4v2".
func (p HBAPort) VLAN() (int, bool) {
	m := spPortVLAN.FindStringSubmatch(p.SPPort)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// Port returns the front-end port this HBA is logged in to.
func (p HBAPort) Port() Port {
	port := Port{SP: p.SP, PortID: p.PortID, Type: p.PortType()}
	if v, ok := p.VLAN(); ok {
		port.VPortID = &v
	}
	return port
}

// State is a storage group as reported by the array.
type State struct {
	Name      string    `json:"name" yaml:"name"`
	UID       string    `json:"uid" yaml:"uid"`
	Mappings  []Mapping `json:"mappings" yaml:"mappings"`
	HBAPorts  []HBAPort `json:"hbaPorts,omitempty" yaml:"hbaPorts,omitempty"`
	Shareable bool      `json:"shareable" yaml:"shareable"`
}

// Hosts returns the distinct host names with a registered path, sorted.
func (s *State) Hosts() []string {
	return hostNames(s.HBAPorts)
}

func hostNames(ports []HBAPort) []string {
	hosts := lo.Uniq(lo.FilterMap(ports, func(p HBAPort, _ int) (string, bool) {
		return p.HostName, p.HostName != ""
	}))
	slices.Sort(hosts)
	return hosts
}

// PathOptions registers an initiator path to a storage group.
type PathOptions struct {
	Port     Port
	HBAUID   string
	HostName string
	HostIP   string
}

// Device is anything that resolves to an array LUN number (ALU).
type Device interface {
	ResolveALU(ctx context.Context) (int, error)
}

// LUN is a device already known by its ALU.
type LUN int

// ResolveALU implements Device.
func (l LUN) ResolveALU(context.Context) (int, error) {
	return int(l), nil
}

// Backend is the array side of storage group management.
type Backend interface {
	CreateStorageGroup(ctx context.Context, name string) error
	RemoveStorageGroup(ctx context.Context, name string) error

	// AddHLU maps alu into the group as hlu. A number already taken on the
	// array is reported with errors.ExitALUNumberInUse.
	AddHLU(ctx context.Context, group string, hlu, alu int) error
	RemoveHLU(ctx context.Context, group string, hlu int) error

	StorageGroup(ctx context.Context, name string) (*State, error)
	StorageGroups(ctx context.Context) ([]*State, error)

	ConnectHost(ctx context.Context, group, host string) error
	DisconnectHost(ctx context.Context, group, host string) error
	SetPath(ctx context.Context, group string, opts PathOptions) error
}
