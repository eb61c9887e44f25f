// Package storagegroup manages VNX storage groups and the LUN to HLU
// (host logical unit) numbers assigned inside them.
//
// # HLU Allocation
//
// Every LUN attached to a storage group is exposed to hosts under an HLU
// number drawn from [1, MaxLUNsPerGroup]. The pool of numbers is shared
// configuration (Limits); the assignments are owned by each Group:
//
//	g, err := storagegroup.Get(ctx, backend, "sg1")
//	hlu, err := g.Attach(ctx, storagegroup.LUN(10), 5)
//
// Allocation is optimistic. A Group picks a free HLU under its own lock,
// releases the lock, then asks the array to add the mapping. Other hosts can
// change the storage group in the meantime, so the array may answer that the
// number is already in use. Attach then reloads the group from the array and
// tries again, up to the retry limit.
//
// # Selection Policy
//
// PickLowest (the default) takes the smallest free HLU, first-fit. PickRandom
// spreads picks across the free range, which lowers the chance of two hosts
// racing for the same number.
//
// # Concurrency
//
// A Group is safe for concurrent use. Queries take a read lock; allocation,
// release and refresh take the write lock. No lock is held while naviseccli
// runs.
package storagegroup
