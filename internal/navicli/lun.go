package navicli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vnx-tools/vnxctl/internal/errors"
	"github.com/vnx-tools/vnxctl/internal/storagegroup"
)

// NamedLUN is a LUN referred to by name. Its ALU is looked up on the array.
type NamedLUN struct {
	client *Client
	Name   string
}

var _ storagegroup.Device = NamedLUN{}

// LUNByName returns a Device for the LUN called name.
func (c *Client) LUNByName(name string) NamedLUN {
	return NamedLUN{client: c, Name: name}
}

// ResolveALU implements storagegroup.Device.
func (l NamedLUN) ResolveALU(ctx context.Context) (int, error) {
	out, err := l.client.run(ctx, "lun", "-list", "-name", l.Name)
	if err != nil {
		return 0, err
	}
	alu, ok := parseLUNNumber(out)
	if !ok {
		return 0, errors.BackendError(fmt.Sprintf("lun %q not found", l.Name), nil)
	}
	return alu, nil
}

// ParseDevice accepts an ALU number or a LUN name.
func (c *Client) ParseDevice(s string) storagegroup.Device {
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return storagegroup.LUN(n)
	}
	return c.LUNByName(s)
}
