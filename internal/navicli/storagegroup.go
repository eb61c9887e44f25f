package navicli

import (
	"context"
	"strconv"
	"strings"

	"github.com/vnx-tools/vnxctl/internal/errors"
	"github.com/vnx-tools/vnxctl/internal/storagegroup"
)

var _ storagegroup.Backend = (*Client)(nil)

// CreateStorageGroup implements storagegroup.Backend.
func (c *Client) CreateStorageGroup(ctx context.Context, name string) error {
	if _, err := c.run(ctx, "storagegroup", "-create", "-gname", name); err != nil {
		if errors.HasCode(err, errors.ExitStorageGroupError) {
			return errors.CreateStorageGroupFailed(name, err)
		}
		return err
	}
	return nil
}

// RemoveStorageGroup implements storagegroup.Backend.
func (c *Client) RemoveStorageGroup(ctx context.Context, name string) error {
	_, err := c.run(ctx, "storagegroup", "-destroy", "-gname", name, "-o")
	return notFound(name, err)
}

// AddHLU implements storagegroup.Backend.
func (c *Client) AddHLU(ctx context.Context, group string, hlu, alu int) error {
	_, err := c.run(ctx, "storagegroup", "-addhlu", "-gname", group,
		"-hlu", strconv.Itoa(hlu), "-alu", strconv.Itoa(alu))
	return notFound(group, err)
}

// RemoveHLU implements storagegroup.Backend.
func (c *Client) RemoveHLU(ctx context.Context, group string, hlu int) error {
	_, err := c.run(ctx, "storagegroup", "-removehlu", "-gname", group,
		"-hlu", strconv.Itoa(hlu), "-o")
	return notFound(group, err)
}

// StorageGroup implements storagegroup.Backend.
func (c *Client) StorageGroup(ctx context.Context, name string) (*storagegroup.State, error) {
	out, err := c.run(ctx, "storagegroup", "-list", "-gname", name, "-host", "-iscsiAttributes")
	if err != nil {
		return nil, notFound(name, err)
	}
	groups, err := parseStorageGroups(out)
	if err != nil {
		return nil, errors.BackendError("failed to parse storage group output", err)
	}
	for _, g := range groups {
		if g.Name == name {
			return g, nil
		}
	}
	return nil, errors.StorageGroupNotFound(name)
}

// StorageGroups implements storagegroup.Backend.
func (c *Client) StorageGroups(ctx context.Context) ([]*storagegroup.State, error) {
	out, err := c.run(ctx, "storagegroup", "-list", "-host", "-iscsiAttributes")
	if err != nil {
		return nil, err
	}
	groups, err := parseStorageGroups(out)
	if err != nil {
		return nil, errors.BackendError("failed to parse storage group output", err)
	}
	return groups, nil
}

// ConnectHost implements storagegroup.Backend.
func (c *Client) ConnectHost(ctx context.Context, group, host string) error {
	_, err := c.run(ctx, "storagegroup", "-connecthost", "-host", host, "-gname", group, "-o")
	return notFound(group, err)
}

// DisconnectHost implements storagegroup.Backend.
func (c *Client) DisconnectHost(ctx context.Context, group, host string) error {
	_, err := c.run(ctx, "storagegroup", "-disconnecthost", "-host", host, "-gname", group, "-o")
	return notFound(group, err)
}

// SetPath implements storagegroup.Backend.
func (c *Client) SetPath(ctx context.Context, group string, opts storagegroup.PathOptions) error {
	args := []string{"storagegroup", "-setpath", "-gname", group,
		"-hbauid", opts.HBAUID,
		"-sp", strings.ToLower(string(opts.Port.SP)),
		"-spport", strconv.Itoa(opts.Port.PortID)}
	if opts.Port.VPortID != nil {
		args = append(args, "-spvport", strconv.Itoa(*opts.Port.VPortID))
	}
	if opts.HostIP != "" {
		args = append(args, "-ip", opts.HostIP)
	}
	if opts.HostName != "" {
		args = append(args, "-host", opts.HostName)
	}
	args = append(args, "-o")
	_, err := c.run(ctx, args...)
	return notFound(group, err)
}

// notFound names the storage group in a not-found error.
func notFound(group string, err error) error {
	if err != nil && errors.GetExitCode(err) == errors.ExitStorageGroupNotFound {
		return errors.Wrap(errors.ExitStorageGroupNotFound, errors.StorageGroupNotFound(group).Message, err)
	}
	return err
}
