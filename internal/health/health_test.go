package health

import (
	"context"
	"fmt"
	"testing"

	"github.com/vnx-tools/vnxctl/internal/navicli"
	"github.com/vnx-tools/vnxctl/internal/storagegroup"
	"github.com/vnx-tools/vnxctl/internal/system"
)

type fakeAgents struct {
	addrs map[storagegroup.SP]string
	down  map[storagegroup.SP]bool
}

func (f *fakeAgents) Address(sp storagegroup.SP) string {
	return f.addrs[sp]
}

func (f *fakeAgents) Agent(_ context.Context, sp storagegroup.SP) (*navicli.Agent, error) {
	if f.down[sp] {
		return nil, fmt.Errorf("SP %s is down", sp)
	}
	return &navicli.Agent{SP: sp, Address: f.addrs[sp], Model: "VNX5400"}, nil
}

func TestStatusConstants(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusHealthy, "healthy"},
		{StatusDegraded, "degraded"},
		{StatusUnreachable, "unreachable"},
	}

	for _, tt := range tests {
		if string(tt.status) != tt.want {
			t.Errorf("Status %v = %q, want %q", tt.status, tt.status, tt.want)
		}
	}
}

func TestCheck(t *testing.T) {
	both := map[storagegroup.SP]string{storagegroup.SPA: "10.0.0.1", storagegroup.SPB: "10.0.0.2"}

	tests := []struct {
		name  string
		addrs map[storagegroup.SP]string
		down  map[storagegroup.SP]bool
		want  Status
		count int
	}{
		{"both up", both, nil, StatusHealthy, 2},
		{"one down", both, map[storagegroup.SP]bool{storagegroup.SPB: true}, StatusDegraded, 2},
		{"both down", both, map[storagegroup.SP]bool{storagegroup.SPA: true, storagegroup.SPB: true}, StatusUnreachable, 2},
		{"only SP A configured", map[storagegroup.SP]string{storagegroup.SPA: "10.0.0.1"}, nil, StatusHealthy, 1},
		{"nothing configured", nil, nil, StatusUnreachable, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Check(context.Background(), &fakeAgents{addrs: tt.addrs, down: tt.down})
			if len(result.SPs) != tt.count {
				t.Fatalf("got %d SP results, want %d", len(result.SPs), tt.count)
			}
			if got := result.Status(); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheckReportsErrors(t *testing.T) {
	src := &fakeAgents{
		addrs: map[storagegroup.SP]string{storagegroup.SPA: "10.0.0.1", storagegroup.SPB: "10.0.0.2"},
		down:  map[storagegroup.SP]bool{storagegroup.SPA: true},
	}
	result := Check(context.Background(), src)

	a, b := result.SPs[0], result.SPs[1]
	if a.SP != storagegroup.SPA || a.Reachable || a.Error == "" {
		t.Errorf("SP A result = %+v, want unreachable with error", a)
	}
	if b.SP != storagegroup.SPB || !b.Reachable || b.Agent == nil || b.Agent.Model != "VNX5400" {
		t.Errorf("SP B result = %+v, want reachable with agent", b)
	}
}

func TestCheckWithNavicli(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.AddResponse("-h 10.0.0.1 getagent", []byte("Model:  VNX5400\nSerial No:  APM1\n"), nil)
	exec.AddResponse("-h 10.0.0.2 getagent", []byte("A network error occurred while trying to connect: '10.0.0.2'."), fmt.Errorf("exit status 1"))

	client, err := navicli.New(navicli.Options{SPA: "10.0.0.1", SPB: "10.0.0.2"}, exec)
	if err != nil {
		t.Fatalf("navicli.New failed: %v", err)
	}

	result := Check(context.Background(), client)
	if got := result.Status(); got != StatusDegraded {
		t.Errorf("Status() = %q, want %q", got, StatusDegraded)
	}
	if result.SPs[0].Agent == nil || result.SPs[0].Agent.Serial != "APM1" {
		t.Errorf("SP A agent = %+v", result.SPs[0].Agent)
	}
}
