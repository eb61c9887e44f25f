// Package testutil provides test fixtures and an in-memory array.
//
// # Fixtures
//
// Fixtures are embedded using go:embed:
//
//	fixtures/valid_config.toml
//	fixtures/invalid_config.toml
//	fixtures/storagegroup_list.txt
//
// Helper functions load and parse them:
//
//	cfg, err := testutil.ValidConfig()
//	data, err := testutil.InvalidConfig()
//	out := testutil.StorageGroupListOutput()
//
// # In-memory array
//
// Array implements storagegroup.Backend with the array's conflict
// behavior, so allocation and command tests run without naviseccli:
//
//	array := testutil.NewArray()
//	array.AddGroup("host1", storagegroup.Mapping{HLU: 1, ALU: 42})
//	g, err := storagegroup.Get(ctx, array, "host1")
//
// Set Errors["AddHLU"] (or any other method name) to force a failure.
package testutil
