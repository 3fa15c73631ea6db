// ABOUTME: Data models for cluster migration plans and dependency validation
// ABOUTME: JSON-serializable structures for the planning engine API

package models

import "time"

// MigrationStrategyType identifies how a cluster gets its replacement hardware
type MigrationStrategyType string

const (
	StrategyNewHardwarePurchase MigrationStrategyType = "new_hardware_purchase"
	StrategyDominoHardwareSwap  MigrationStrategyType = "domino_hardware_swap"
	StrategyCloudMigration      MigrationStrategyType = "cloud_migration"
	StrategyDecommission        MigrationStrategyType = "decommission"
)

// ClusterMigrationPlan describes the migration of a single cluster.
// TargetClusterName is the node identity in the dependency graph and must
// be unique within a plan set.
type ClusterMigrationPlan struct {
	TargetClusterName     string                `json:"target_cluster_name"`
	SourceClusterName     string                `json:"source_cluster_name,omitempty"`
	StrategyType          MigrationStrategyType `json:"strategy_type"`
	DominoSourceCluster   string                `json:"domino_source_cluster,omitempty"`
	HardwareAvailableDate *time.Time            `json:"hardware_available_date,omitempty"`
}

// IsDomino reports whether this plan participates in hardware hand-off edges
func (p *ClusterMigrationPlan) IsDomino() bool {
	return p.StrategyType == StrategyDominoHardwareSwap
}

// CircularDependency describes one cycle of hardware hand-offs.
// ClusterChain repeats the first cluster at the end to show closure.
type CircularDependency struct {
	ClusterChain []string `json:"cluster_chain"`
	Description  string   `json:"description"`
}

// DependencyValidationResult is the outcome of one validation pass.
// Created fresh per call, never mutated afterwards, never persisted here.
type DependencyValidationResult struct {
	IsValid                 bool                 `json:"is_valid"`
	HasCircularDependencies bool                 `json:"has_circular_dependencies"`
	CircularDependencies    []CircularDependency `json:"circular_dependencies"`
	ExecutionOrder          []string             `json:"execution_order"`
	CriticalPath            []string             `json:"critical_path"`
	Warnings                []string             `json:"warnings"`
	Errors                  []string             `json:"errors"`
	ValidatedAt             time.Time            `json:"validated_at"`
}
