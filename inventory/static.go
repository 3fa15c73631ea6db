// ABOUTME: Map-backed workload provider for fixtures and file-fed input
// ABOUTME: Used by the CLI's offline mode and by tests

package inventory

import (
	"context"
	"fmt"

	"github.com/clusterops/migration-planner/models"
)

// StaticProvider serves workload summaries from an in-memory map
type StaticProvider struct {
	workloads map[string]models.WorkloadSummary
}

// NewStaticProvider creates a provider over the given summaries, keyed by
// cluster identifier
func NewStaticProvider(workloads map[string]models.WorkloadSummary) *StaticProvider {
	return &StaticProvider{workloads: workloads}
}

// GetWorkloadSummary returns the summary for a cluster or a not-found
// error
func (p *StaticProvider) GetWorkloadSummary(_ context.Context, clusterID string) (models.WorkloadSummary, error) {
	summary, ok := p.workloads[clusterID]
	if !ok {
		return models.WorkloadSummary{}, fmt.Errorf("no workload data for cluster %q", clusterID)
	}
	return summary, nil
}
