// ABOUTME: Data models for migration timeline estimation
// ABOUTME: Phase durations, fixed task breakdown, and confidence grading

package models

// InfrastructureType identifies the target platform family, which drives
// preparation effort and migration throughput
type InfrastructureType string

const (
	InfraTraditional InfrastructureType = "traditional"
	InfraHciS2d      InfrastructureType = "hci_s2d"
	InfraAzureLocal  InfrastructureType = "azure_local"
)

// TimelineEstimationRequest is the input for a timeline estimate
type TimelineEstimationRequest struct {
	VMCount                int                `json:"vm_count"`
	HostCount              int                `json:"host_count"`
	InfrastructureType     InfrastructureType `json:"infrastructure_type"`
	HasCompatibilityIssues bool               `json:"has_compatibility_issues"`
}

// TaskEstimate is one named phase in the migration task breakdown
type TaskEstimate struct {
	Name           string   `json:"name"`
	DurationDays   int      `json:"duration_days"`
	Dependencies   []string `json:"dependencies"`
	IsCriticalPath bool     `json:"is_critical_path"`
}

// ConfidenceLevel expresses how reliable an estimate is
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// TimelineEstimationResult is the full timeline estimate
type TimelineEstimationResult struct {
	EstimatedDays int             `json:"estimated_days"`
	TaskBreakdown []TaskEstimate  `json:"task_breakdown"`
	CriticalPath  []string        `json:"critical_path"`
	Confidence    ConfidenceLevel `json:"confidence"`
}
