// ABOUTME: Capacity sufficiency evaluation for migration target hardware
// ABOUTME: Per-resource headroom scoring plus remediation recommendations

package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/clusterops/migration-planner/models"
)

// minimumHACluster is the smallest host count considered safe for a
// highly available cluster
const minimumHACluster = 3

// WorkloadProvider supplies the resource footprint of a cluster's current
// workload. Implementations may be backed by live inventory, uploaded
// spreadsheets, or fixtures; the engine does not care about provenance.
type WorkloadProvider interface {
	GetWorkloadSummary(ctx context.Context, clusterID string) (models.WorkloadSummary, error)
}

// ResourceEvaluator scores a single resource given required vs. available
// capacity
type ResourceEvaluator struct{}

// NewResourceEvaluator creates a new evaluator
func NewResourceEvaluator() *ResourceEvaluator {
	return &ResourceEvaluator{}
}

// Evaluate grades one resource. Bands (lower bound inclusive):
// <60% ok, 60-80% ok, 80-95% warning, 95-100% warning, >=100% critical.
func (e *ResourceEvaluator) Evaluate(resource, unit string, required, available float64) models.ResourceValidation {
	v := models.ResourceValidation{
		Required:  required,
		Available: available,
	}

	if available <= 0 {
		if required <= 0 {
			v.Status = models.ResourceOK
			v.Message = fmt.Sprintf("no %s capacity required", resource)
			return v
		}
		// Pin to the critical band; a ratio against zero capacity is
		// meaningless and would not survive JSON encoding as infinity.
		v.UtilizationPercent = 100
		v.Status = models.ResourceCritical
		v.Message = fmt.Sprintf("%s requires %.1f %s but the target has no usable %s capacity",
			resource, required, unit, resource)
		return v
	}

	v.UtilizationPercent = required / available * 100

	switch {
	case v.UtilizationPercent < 60:
		v.Status = models.ResourceOK
		v.Message = fmt.Sprintf("%s requirement of %.1f %s is %.1f%% of available %.1f %s - excellent headroom",
			resource, required, unit, v.UtilizationPercent, available, unit)
	case v.UtilizationPercent < 80:
		v.Status = models.ResourceOK
		v.Message = fmt.Sprintf("%s requirement of %.1f %s is %.1f%% of available %.1f %s - good headroom",
			resource, required, unit, v.UtilizationPercent, available, unit)
	case v.UtilizationPercent < 95:
		v.Status = models.ResourceWarning
		v.Message = fmt.Sprintf("%s utilization of %.1f%% is approaching limits (%.1f of %.1f %s)",
			resource, v.UtilizationPercent, required, available, unit)
	case v.UtilizationPercent < 100:
		v.Status = models.ResourceWarning
		v.Message = fmt.Sprintf("%s utilization of %.1f%% is critically high (%.1f of %.1f %s)",
			resource, v.UtilizationPercent, required, available, unit)
	default:
		v.Status = models.ResourceCritical
		v.Message = fmt.Sprintf("insufficient %s capacity: %.1f %s required but only %.1f %s available (%.1f%%)",
			resource, required, unit, available, unit, v.UtilizationPercent)
	}

	return v
}

// CapacityValidationService checks whether target hardware can absorb a
// cluster's workload
type CapacityValidationService struct {
	workloads WorkloadProvider
	evaluator *ResourceEvaluator
}

// NewCapacityValidationService creates a service backed by the given
// workload provider
func NewCapacityValidationService(workloads WorkloadProvider) *CapacityValidationService {
	return &CapacityValidationService{
		workloads: workloads,
		evaluator: NewResourceEvaluator(),
	}
}

// ValidateCapacity looks up the source cluster's workload and grades the
// target hardware against it. A failed lookup is returned as an error for
// the caller to surface or retry; it is never retried here.
func (s *CapacityValidationService) ValidateCapacity(ctx context.Context, sourceClusterID string, hw models.TargetHardware, ratios models.OvercommitRatios) (models.CapacityValidationResult, error) {
	if err := ValidateClusterName(sourceClusterID); err != nil {
		return models.CapacityValidationResult{}, err
	}

	workload, err := s.workloads.GetWorkloadSummary(ctx, sourceClusterID)
	if err != nil {
		return models.CapacityValidationResult{}, fmt.Errorf("looking up workload for cluster %q: %w", sourceClusterID, err)
	}

	slog.Debug("Workload summary retrieved",
		"cluster", sourceClusterID,
		"vms", workload.VMCount,
		"cpu_cores", workload.TotalCPUCores,
		"memory_gb", workload.TotalMemoryGB,
		"storage_tb", workload.TotalStorageTB)

	return s.ValidateCapacityForWorkload(workload, hw, ratios), nil
}

// ValidateCapacityForWorkload grades target hardware against an already
// fetched workload summary. Pure function of its inputs.
func (s *CapacityValidationService) ValidateCapacityForWorkload(workload models.WorkloadSummary, hw models.TargetHardware, ratios models.OvercommitRatios) models.CapacityValidationResult {
	hosts := float64(hw.HostCount)

	availableCPU := hw.CPUCoresPerHost * hosts * ratios.CPU
	availableMemory := hw.MemoryGBPerHost * hosts * ratios.Memory
	// One host's storage is always held back for N+1 failover; storage is
	// never overcommitted.
	availableStorage := hw.StorageTBPerHost * (hosts - 1)

	result := models.CapacityValidationResult{
		CPU:     s.evaluator.Evaluate("CPU", "cores", workload.TotalCPUCores, availableCPU),
		Memory:  s.evaluator.Evaluate("memory", "GB", workload.TotalMemoryGB, availableMemory),
		Storage: s.evaluator.Evaluate("storage", "TB", workload.TotalStorageTB, availableStorage),
	}

	maxUtil := result.CPU.UtilizationPercent
	if result.Memory.UtilizationPercent > maxUtil {
		maxUtil = result.Memory.UtilizationPercent
	}
	if result.Storage.UtilizationPercent > maxUtil {
		maxUtil = result.Storage.UtilizationPercent
	}
	result.Status = models.CapacityStatusForUtilization(maxUtil)

	result.Recommendations = s.generateRecommendations(workload, hw, ratios, result)

	return result
}

// generateRecommendations produces remediation and affirmation guidance.
// The list is never empty: when nothing triggers, a single affirmative
// message is emitted.
func (s *CapacityValidationService) generateRecommendations(workload models.WorkloadSummary, hw models.TargetHardware, ratios models.OvercommitRatios, result models.CapacityValidationResult) []string {
	var recs []string

	recs = append(recs, s.resourceRecommendations(hw, ratios, result)...)

	if ratios.CPU > 6.0 {
		recs = append(recs, fmt.Sprintf(
			"CPU overcommit ratio of %.1f:1 is aggressive; consider 4:1 or lower for predictable performance", ratios.CPU))
	}
	if ratios.Memory > 1.5 {
		recs = append(recs, fmt.Sprintf(
			"memory overcommit ratio of %.1f:1 is aggressive; memory pressure degrades workloads sharply", ratios.Memory))
	}
	if hw.HostCount < minimumHACluster {
		recs = append(recs, fmt.Sprintf(
			"%d hosts is insufficient for proper HA; use at least %d hosts", hw.HostCount, minimumHACluster))
	}
	if workload.VMCount > 200 {
		recs = append(recs, fmt.Sprintf(
			"%d VMs is a large migration; plan phased migration waves to limit blast radius", workload.VMCount))
	}
	if workload.PeakCPUUtilization != nil && *workload.PeakCPUUtilization > 0.8 {
		recs = append(recs, fmt.Sprintf(
			"source cluster peak CPU utilization of %.0f%% is a capacity risk signal; size the target for peak, not average",
			*workload.PeakCPUUtilization*100))
	}

	if len(recs) == 0 {
		recs = append(recs, "capacity planning looks excellent - no changes recommended")
	}

	return recs
}

// resourceRecommendations sizes remediation to bring a hot resource back
// to ~70% utilization, and affirms resources with ample headroom.
func (s *CapacityValidationService) resourceRecommendations(hw models.TargetHardware, ratios models.OvercommitRatios, result models.CapacityValidationResult) []string {
	var recs []string

	if result.CPU.UtilizationPercent > 80 {
		neededCores := result.CPU.Required - result.CPU.Available*0.70
		perHostCores := hw.CPUCoresPerHost * ratios.CPU
		if perHostCores > 0 {
			extraHosts := int(math.Ceil(neededCores / perHostCores))
			recs = append(recs, fmt.Sprintf(
				"add %d host(s) to bring CPU utilization down to ~70%% (%.1f more effective cores needed)",
				extraHosts, neededCores))
		}
	} else if result.CPU.UtilizationPercent < 40 {
		recs = append(recs, fmt.Sprintf(
			"CPU has ample headroom at %.1f%% utilization", result.CPU.UtilizationPercent))
	}

	if result.Memory.UtilizationPercent > 80 {
		neededGB := result.Memory.Required - result.Memory.Available*0.70
		recs = append(recs, fmt.Sprintf(
			"add %.0f GB of memory capacity to bring utilization down to ~70%%", neededGB))
	} else if result.Memory.UtilizationPercent < 40 {
		recs = append(recs, fmt.Sprintf(
			"memory has ample headroom at %.1f%% utilization", result.Memory.UtilizationPercent))
	}

	if result.Storage.UtilizationPercent > 80 {
		neededTB := result.Storage.Required - result.Storage.Available*0.70
		recs = append(recs, fmt.Sprintf(
			"add %.1f TB of storage capacity to bring utilization down to ~70%%", neededTB))
	} else if result.Storage.UtilizationPercent < 40 {
		recs = append(recs, fmt.Sprintf(
			"storage has ample headroom at %.1f%% utilization", result.Storage.UtilizationPercent))
	}

	return recs
}

// CalculateRecommendedHosts sizes a target cluster for a workload. Each
// resource is divided by its effective per-host capacity; storage gets one
// extra host for N+1 failover. Never returns fewer than 3 hosts.
func (s *CapacityValidationService) CalculateRecommendedHosts(workload models.WorkloadSummary, perHost models.TargetHardware, ratios models.OvercommitRatios) int {
	recommended := minimumHACluster

	if effective := perHost.CPUCoresPerHost * ratios.CPU; effective > 0 {
		if n := int(math.Ceil(workload.TotalCPUCores / effective)); n > recommended {
			recommended = n
		}
	}
	if effective := perHost.MemoryGBPerHost * ratios.Memory; effective > 0 {
		if n := int(math.Ceil(workload.TotalMemoryGB / effective)); n > recommended {
			recommended = n
		}
	}
	if perHost.StorageTBPerHost > 0 {
		if n := int(math.Ceil(workload.TotalStorageTB/perHost.StorageTBPerHost)) + 1; n > recommended {
			recommended = n
		}
	}

	return recommended
}
