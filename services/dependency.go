// ABOUTME: Dependency validator for multi-cluster migration plan sets
// ABOUTME: Composes graph build, cycle detection, ordering, and consistency checks

package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/clusterops/migration-planner/models"
)

// DependencyValidator verifies that a set of cluster migration plans is
// executable: no circular hardware hand-offs, every domino source
// accounted for, and a dependency-first execution order with its
// schedule-determining chain.
type DependencyValidator struct {
	builder      *DependencyGraphBuilder
	cycles       *CycleDetector
	sorter       *TopologicalSorter
	criticalPath *CriticalPathCalculator
}

// NewDependencyValidator creates a validator with default graph components
func NewDependencyValidator() *DependencyValidator {
	return &DependencyValidator{
		builder:      NewDependencyGraphBuilder(),
		cycles:       NewCycleDetector(),
		sorter:       NewTopologicalSorter(),
		criticalPath: NewCriticalPathCalculator(),
	}
}

// Validate runs one full validation pass over a plan set. It never panics
// or returns a Go error; every problem surfaces inside the result as an
// error, warning, or reported cycle.
func (v *DependencyValidator) Validate(plans []models.ClusterMigrationPlan) models.DependencyValidationResult {
	result := models.DependencyValidationResult{
		CircularDependencies: []models.CircularDependency{},
		ExecutionOrder:       []string{},
		CriticalPath:         []string{},
		Warnings:             []string{},
		Errors:               []string{},
		ValidatedAt:          time.Now().UTC(),
	}

	graph := v.builder.Build(plans)

	cycles := v.cycles.Detect(graph)
	if len(cycles) > 0 {
		result.HasCircularDependencies = true
		result.CircularDependencies = cycles
		for _, cycle := range cycles {
			result.Errors = append(result.Errors,
				fmt.Sprintf("circular hardware dependency detected: %s", cycle.Description))
		}
	}

	v.checkDominoSources(plans, &result)

	if result.HasCircularDependencies {
		result.Errors = append(result.Errors,
			"cannot generate execution order due to circular dependencies")
	} else {
		result.ExecutionOrder = v.sorter.Sort(graph)
		result.CriticalPath = v.criticalPath.Calculate(graph, result.ExecutionOrder)
	}

	result.IsValid = len(result.Errors) == 0 && !result.HasCircularDependencies

	slog.Debug("Dependency validation complete",
		"plans", len(plans),
		"valid", result.IsValid,
		"cycles", len(result.CircularDependencies),
		"errors", len(result.Errors),
		"warnings", len(result.Warnings))

	return result
}

// checkDominoSources verifies that every domino plan's hardware source
// names a cluster actually being vacated in the same plan set, and warns
// when a domino plan carries no expected hardware availability date.
func (v *DependencyValidator) checkDominoSources(plans []models.ClusterMigrationPlan, result *models.DependencyValidationResult) {
	sources := make(map[string]bool, len(plans))
	for _, plan := range plans {
		if plan.SourceClusterName != "" {
			sources[plan.SourceClusterName] = true
		}
	}

	for _, plan := range plans {
		if !plan.IsDomino() || plan.DominoSourceCluster == "" {
			continue
		}

		if !sources[plan.DominoSourceCluster] {
			result.Errors = append(result.Errors,
				fmt.Sprintf("cluster %q expects hardware from %q, but no plan in this set migrates workload off %q",
					plan.TargetClusterName, plan.DominoSourceCluster, plan.DominoSourceCluster))
		}

		if plan.HardwareAvailableDate == nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("cluster %q depends on hardware from %q but has no expected hardware availability date",
					plan.TargetClusterName, plan.DominoSourceCluster))
		}
	}
}
