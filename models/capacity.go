// ABOUTME: Data models for workload capacity validation
// ABOUTME: Workload summaries, target hardware specs, and per-resource grading

package models

// WorkloadSummary aggregates the resource footprint of a cluster's workload.
// Peak utilization fractions are optional; they come from monitoring data
// when the inventory source provides it.
type WorkloadSummary struct {
	TotalCPUCores      float64  `json:"total_cpu_cores"`
	TotalMemoryGB      float64  `json:"total_memory_gb"`
	TotalStorageTB     float64  `json:"total_storage_tb"`
	VMCount            int      `json:"vm_count"`
	PeakCPUUtilization *float64 `json:"peak_cpu_utilization,omitempty"`
	PeakMemUtilization *float64 `json:"peak_mem_utilization,omitempty"`
}

// TargetHardware describes the hardware a workload would move onto
type TargetHardware struct {
	HostCount        int     `json:"host_count"`
	CPUCoresPerHost  float64 `json:"cpu_cores_per_host"`
	MemoryGBPerHost  float64 `json:"memory_gb_per_host"`
	StorageTBPerHost float64 `json:"storage_tb_per_host"`
}

// OvercommitRatios are multipliers applied to physical CPU and memory
// capacity to model virtualized allocation. Storage is never overcommitted.
type OvercommitRatios struct {
	CPU    float64 `json:"cpu"`
	Memory float64 `json:"memory"`
}

// DefaultOvercommitRatios returns the standard 4:1 CPU, 1.5:1 memory ratios
func DefaultOvercommitRatios() OvercommitRatios {
	return OvercommitRatios{CPU: 4.0, Memory: 1.5}
}

// ResourceStatus grades a single resource's headroom
type ResourceStatus string

const (
	ResourceOK       ResourceStatus = "ok"
	ResourceWarning  ResourceStatus = "warning"
	ResourceCritical ResourceStatus = "critical"
)

// ResourceValidation is the evaluation of one resource (CPU, memory, or storage)
type ResourceValidation struct {
	Required           float64        `json:"required"`
	Available          float64        `json:"available"`
	UtilizationPercent float64        `json:"utilization_percent"`
	Status             ResourceStatus `json:"status"`
	Message            string         `json:"message"`
}

// CapacityStatus grades the overall capacity fit.
// The overall scale intentionally compresses the two per-resource warning
// bands into one tier; see CapacityStatusForUtilization.
type CapacityStatus string

const (
	CapacityOptimal    CapacityStatus = "optimal"
	CapacityAcceptable CapacityStatus = "acceptable"
	CapacityWarning    CapacityStatus = "warning"
	CapacityCritical   CapacityStatus = "critical"
)

// CapacityStatusForUtilization maps the worst-resource utilization to the
// overall grade. Thresholds: >=95 critical, >=80 warning, >=60 acceptable.
func CapacityStatusForUtilization(maxUtilizationPct float64) CapacityStatus {
	switch {
	case maxUtilizationPct >= 95:
		return CapacityCritical
	case maxUtilizationPct >= 80:
		return CapacityWarning
	case maxUtilizationPct >= 60:
		return CapacityAcceptable
	default:
		return CapacityOptimal
	}
}

// CapacityValidationResult is the outcome of a capacity check against
// target hardware
type CapacityValidationResult struct {
	Status          CapacityStatus     `json:"status"`
	CPU             ResourceValidation `json:"cpu"`
	Memory          ResourceValidation `json:"memory"`
	Storage         ResourceValidation `json:"storage"`
	Recommendations []string           `json:"recommendations"`
}
