package navicli

import (
	"context"

	"github.com/vnx-tools/vnxctl/internal/storagegroup"
)

// Agent is the "getagent" report of a storage processor.
type Agent struct {
	SP       storagegroup.SP `json:"sp" yaml:"sp"`
	Address  string          `json:"address" yaml:"address"`
	Name     string          `json:"name,omitempty" yaml:"name,omitempty"`
	Model    string          `json:"model,omitempty" yaml:"model,omitempty"`
	Serial   string          `json:"serial,omitempty" yaml:"serial,omitempty"`
	Revision string          `json:"revision,omitempty" yaml:"revision,omitempty"`
	SPMemory string          `json:"spMemory,omitempty" yaml:"spMemory,omitempty"`
}

// Agent queries one storage processor directly, without failover.
func (c *Client) Agent(ctx context.Context, sp storagegroup.SP) (*Agent, error) {
	out, err := c.runOn(ctx, sp, "getagent")
	if err != nil {
		return nil, err
	}
	f := parseFields(out)
	return &Agent{
		SP:       sp,
		Address:  c.Address(sp),
		Name:     f["Name"],
		Model:    f["Model"],
		Serial:   f["Serial No"],
		Revision: f["Revision"],
		SPMemory: f["SP Memory"],
	}, nil
}
