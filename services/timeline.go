// ABOUTME: Migration timeline estimation from workload size and platform type
// ABOUTME: Phase duration math, fixed task breakdown, and confidence grading

package services

import (
	"math"

	"github.com/clusterops/migration-planner/models"
)

const (
	// baseMigrationRate is the Traditional-platform throughput in VMs/day
	baseMigrationRate = 10.0
	// hciRateFactor and azureLocalRateFactor scale throughput for faster
	// storage fabrics
	hciRateFactor        = 1.5
	azureLocalRateFactor = 1.3

	baseValidationDays    = 7
	compatibilityPrepDays = 3
)

// preparationBaseDays maps platform type to baseline preparation effort
var preparationBaseDays = map[models.InfrastructureType]int{
	models.InfraTraditional: 7,
	models.InfraHciS2d:      10,
	models.InfraAzureLocal:  14,
}

// TimelineEstimationService estimates migration duration with a task-level
// breakdown
type TimelineEstimationService struct{}

// NewTimelineEstimationService creates a new estimator
func NewTimelineEstimationService() *TimelineEstimationService {
	return &TimelineEstimationService{}
}

// EstimateMigrationTimeline computes the three phase durations, assembles
// the task breakdown, and grades confidence
func (s *TimelineEstimationService) EstimateMigrationTimeline(req models.TimelineEstimationRequest) models.TimelineEstimationResult {
	prepDays := s.preparationDays(req)
	migrationDays := s.migrationDays(req)
	validationDays := s.validationDays(req)

	tasks := s.taskBreakdown(prepDays, migrationDays, validationDays)

	criticalPath := make([]string, 0, len(tasks))
	for _, task := range tasks {
		if task.IsCriticalPath {
			criticalPath = append(criticalPath, task.Name)
		}
	}

	return models.TimelineEstimationResult{
		EstimatedDays: prepDays + migrationDays + validationDays,
		TaskBreakdown: tasks,
		CriticalPath:  criticalPath,
		Confidence:    s.confidence(req),
	}
}

// preparationDays is the platform baseline plus a compatibility remediation
// buffer
func (s *TimelineEstimationService) preparationDays(req models.TimelineEstimationRequest) int {
	days, ok := preparationBaseDays[req.InfrastructureType]
	if !ok {
		days = preparationBaseDays[models.InfraTraditional]
	}
	if req.HasCompatibilityIssues {
		days += compatibilityPrepDays
	}
	return days
}

// migrationDays divides the VM count by platform throughput, adds a 25%
// buffer for compatibility issues, and never drops below one day
func (s *TimelineEstimationService) migrationDays(req models.TimelineEstimationRequest) int {
	rate := baseMigrationRate
	switch req.InfrastructureType {
	case models.InfraHciS2d:
		rate *= hciRateFactor
	case models.InfraAzureLocal:
		rate *= azureLocalRateFactor
	}

	days := int(math.Ceil(float64(req.VMCount) / rate))
	if req.HasCompatibilityIssues {
		days += days / 4
	}
	if days < 1 {
		days = 1
	}
	return days
}

// validationDays adds a single tier on top of the base: +2 days above 100
// VMs, +3 days above 200 VMs (the tiers do not stack)
func (s *TimelineEstimationService) validationDays(req models.TimelineEstimationRequest) int {
	switch {
	case req.VMCount > 200:
		return baseValidationDays + 3
	case req.VMCount > 100:
		return baseValidationDays + 2
	default:
		return baseValidationDays
	}
}

// taskBreakdown returns the fixed ten-task template. Only the three phase
// tasks vary with workload size; critical-path membership is a static
// property of each task, not a computed longest path.
func (s *TimelineEstimationService) taskBreakdown(prepDays, migrationDays, validationDays int) []models.TaskEstimate {
	return []models.TaskEstimate{
		{Name: "Infrastructure Preparation", DurationDays: prepDays, Dependencies: []string{}, IsCriticalPath: true},
		{Name: "Hardware Deployment", DurationDays: 5, Dependencies: []string{"Infrastructure Preparation"}, IsCriticalPath: true},
		{Name: "Network Configuration", DurationDays: 3, Dependencies: []string{"Hardware Deployment"}, IsCriticalPath: false},
		{Name: "Storage Configuration", DurationDays: 3, Dependencies: []string{"Hardware Deployment"}, IsCriticalPath: false},
		{Name: "Cluster Configuration", DurationDays: 3, Dependencies: []string{"Network Configuration", "Storage Configuration"}, IsCriticalPath: true},
		{Name: "Hyper-V Configuration", DurationDays: 2, Dependencies: []string{"Cluster Configuration"}, IsCriticalPath: true},
		{Name: "VM Migration", DurationDays: migrationDays, Dependencies: []string{"Hyper-V Configuration"}, IsCriticalPath: true},
		{Name: "Application Testing", DurationDays: validationDays, Dependencies: []string{"VM Migration"}, IsCriticalPath: true},
		{Name: "Performance Validation", DurationDays: 2, Dependencies: []string{"VM Migration"}, IsCriticalPath: false},
		{Name: "Documentation & Handoff", DurationDays: 2, Dependencies: []string{"Application Testing"}, IsCriticalPath: true},
	}
}

// confidence grades the estimate: compatibility issues dominate, then
// sheer scale or a newer platform lowers it one notch
func (s *TimelineEstimationService) confidence(req models.TimelineEstimationRequest) models.ConfidenceLevel {
	if req.HasCompatibilityIssues {
		return models.ConfidenceLow
	}
	if req.VMCount > 500 || req.InfrastructureType == models.InfraAzureLocal {
		return models.ConfidenceMedium
	}
	return models.ConfidenceHigh
}
