// Package health provides health check utilities for the VNX array
// connection.
//
// Health checks run "getagent" against each configured storage processor
// concurrently and report which ones answer.
//
// # Health Status
//
// Array health is represented by Status:
//
//	StatusHealthy     - Every configured SP answered
//	StatusDegraded    - At least one SP answered, another did not
//	StatusUnreachable - No SP answered
//
// # Check Functions
//
//	result := health.Check(ctx, client)
//	// result.SPs[i].Reachable, .Latency, .Agent, .Error
//	status := result.Status()
package health
