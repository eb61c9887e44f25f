package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vnx-tools/vnxctl/internal/app"
	"github.com/vnx-tools/vnxctl/internal/audit"
	"github.com/vnx-tools/vnxctl/internal/config"
	"github.com/vnx-tools/vnxctl/internal/errors"
	"github.com/vnx-tools/vnxctl/internal/storagegroup"
)

// backend returns the array backend of the default app.
func backend() (storagegroup.Backend, error) {
	return app.Default.StorageBackend()
}

// groupOptions returns the configured storage group options.
func groupOptions() ([]storagegroup.Option, error) {
	return app.Default.GroupOptions()
}

// loadGroup validates name and loads the storage group from the array.
func loadGroup(ctx context.Context, name string) (*storagegroup.Group, error) {
	if err := config.ValidateStorageGroupName(name); err != nil {
		return nil, errors.ValidationError(err.Error())
	}
	b, err := backend()
	if err != nil {
		return nil, err
	}
	opts, err := groupOptions()
	if err != nil {
		return nil, err
	}
	return storagegroup.Get(ctx, b, name, opts...)
}

// listGroups loads every storage group from the array.
func listGroups(ctx context.Context) ([]*storagegroup.Group, error) {
	b, err := backend()
	if err != nil {
		return nil, err
	}
	opts, err := groupOptions()
	if err != nil {
		return nil, err
	}
	return storagegroup.List(ctx, b, opts...)
}

// record writes an audit event for the default app.
func record(event audit.Event) {
	app.Default.Record(event)
}

// outputFormat is the value of -o/--output.
type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch outputFormat(s) {
	case formatTable, formatJSON, formatYAML:
		return outputFormat(s), nil
	}
	return "", errors.ValidationError(fmt.Sprintf("invalid output format %q (must be table, json or yaml)", s))
}

// encode writes v as JSON or YAML.
func encode(w io.Writer, format outputFormat, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q", format)
}
