package health

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vnx-tools/vnxctl/internal/navicli"
	"github.com/vnx-tools/vnxctl/internal/storagegroup"
)

// Status represents the health status of the array connection
type Status string

const (
	StatusHealthy     Status = "healthy"
	StatusDegraded    Status = "degraded"
	StatusUnreachable Status = "unreachable"

	// DefaultTimeout bounds each getagent call.
	DefaultTimeout = 30 * time.Second
)

// AgentSource queries storage processors.
type AgentSource interface {
	Address(sp storagegroup.SP) string
	Agent(ctx context.Context, sp storagegroup.SP) (*navicli.Agent, error)
}

// SPResult is the check result of one storage processor
type SPResult struct {
	SP        storagegroup.SP `json:"sp"`
	Address   string          `json:"address"`
	Reachable bool            `json:"reachable"`
	Latency   time.Duration   `json:"latency"`
	Agent     *navicli.Agent  `json:"agent,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// CheckResult contains the results of health checks
type CheckResult struct {
	SPs []SPResult `json:"sps"`
}

// Status summarizes the per-SP results.
func (r *CheckResult) Status() Status {
	up := 0
	for _, sp := range r.SPs {
		if sp.Reachable {
			up++
		}
	}
	switch {
	case len(r.SPs) > 0 && up == len(r.SPs):
		return StatusHealthy
	case up > 0:
		return StatusDegraded
	}
	return StatusUnreachable
}

// Check queries every configured SP concurrently. Unreachable SPs are
// reported in the result, not as an error.
func Check(ctx context.Context, src AgentSource) *CheckResult {
	var sps []storagegroup.SP
	for _, sp := range []storagegroup.SP{storagegroup.SPA, storagegroup.SPB} {
		if src.Address(sp) != "" {
			sps = append(sps, sp)
		}
	}

	results := make([]SPResult, len(sps))
	var eg errgroup.Group
	for i, sp := range sps {
		eg.Go(func() error {
			results[i] = checkSP(ctx, src, sp)
			return nil
		})
	}
	_ = eg.Wait()

	return &CheckResult{SPs: results}
}

func checkSP(ctx context.Context, src AgentSource, sp storagegroup.SP) SPResult {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	res := SPResult{SP: sp, Address: src.Address(sp)}
	start := time.Now()
	agent, err := src.Agent(ctx, sp)
	res.Latency = time.Since(start)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Reachable = true
	res.Agent = agent
	return res
}
