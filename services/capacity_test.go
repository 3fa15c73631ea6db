// ABOUTME: Tests for capacity validation service and resource evaluator
// ABOUTME: Covers grading bands, N+1 storage, recommendations, lookup failures

package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/clusterops/migration-planner/models"
)

// fakeProvider serves a single workload or a lookup error
type fakeProvider struct {
	workload models.WorkloadSummary
	err      error
	calls    int
}

func (f *fakeProvider) GetWorkloadSummary(_ context.Context, clusterID string) (models.WorkloadSummary, error) {
	f.calls++
	if f.err != nil {
		return models.WorkloadSummary{}, f.err
	}
	return f.workload, nil
}

func TestEvaluate_Bands(t *testing.T) {
	e := NewResourceEvaluator()

	tests := []struct {
		name       string
		required   float64
		available  float64
		wantStatus models.ResourceStatus
		wantPhrase string
	}{
		{"excellent headroom at 50%", 100, 200, models.ResourceOK, "excellent headroom"},
		{"good headroom at 70%", 140, 200, models.ResourceOK, "good headroom"},
		{"approaching limits at 90%", 180, 200, models.ResourceWarning, "approaching limits"},
		{"critically high at 97%", 194, 200, models.ResourceWarning, "critically high"},
		{"insufficient at 125%", 250, 200, models.ResourceCritical, "insufficient"},
		{"lower bound of warning band", 160, 200, models.ResourceWarning, "approaching limits"},
		{"exactly full is critical", 200, 200, models.ResourceCritical, "insufficient"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := e.Evaluate("CPU", "cores", tt.required, tt.available)
			if v.Status != tt.wantStatus {
				t.Errorf("Expected status %q, got %q", tt.wantStatus, v.Status)
			}
			if !strings.Contains(v.Message, tt.wantPhrase) {
				t.Errorf("Expected message containing %q, got %q", tt.wantPhrase, v.Message)
			}
		})
	}
}

func TestEvaluate_ZeroAvailable(t *testing.T) {
	e := NewResourceEvaluator()

	v := e.Evaluate("storage", "TB", 5, 0)
	if v.Status != models.ResourceCritical {
		t.Errorf("Expected critical status for required>0 with no capacity, got %q", v.Status)
	}
	if v.UtilizationPercent != 100 {
		t.Errorf("Expected utilization pinned to 100, got %v", v.UtilizationPercent)
	}

	v = e.Evaluate("storage", "TB", 0, 0)
	if v.Status != models.ResourceOK {
		t.Errorf("Expected ok status when nothing is required, got %q", v.Status)
	}
}

func TestValidateCapacity_OvercommitAndN1Storage(t *testing.T) {
	// Scenario: 4 hosts × 32 cores × 4.0 overcommit = 512 effective cores
	// 4 hosts × 256 GB × 1.5 = 1536 GB effective memory
	// Storage: 10 TB × (4-1) = 30 TB, one host reserved for failover
	provider := &fakeProvider{workload: models.WorkloadSummary{
		TotalCPUCores:  256,
		TotalMemoryGB:  768,
		TotalStorageTB: 15,
		VMCount:        50,
	}}
	svc := NewCapacityValidationService(provider)

	hw := models.TargetHardware{
		HostCount:        4,
		CPUCoresPerHost:  32,
		MemoryGBPerHost:  256,
		StorageTBPerHost: 10,
	}

	result, err := svc.ValidateCapacity(context.Background(), "prod-east", hw, models.DefaultOvercommitRatios())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := result.CPU.Available; got != 512 {
		t.Errorf("Expected 512 effective cores, got %v", got)
	}
	if got := result.Memory.Available; got != 1536 {
		t.Errorf("Expected 1536 GB effective memory, got %v", got)
	}
	if got := result.Storage.Available; got != 30 {
		t.Errorf("Expected 30 TB N+1 storage, got %v", got)
	}
	if got := result.CPU.UtilizationPercent; got != 50 {
		t.Errorf("Expected 50%% CPU utilization, got %v", got)
	}
	if got := result.Storage.UtilizationPercent; got != 50 {
		t.Errorf("Expected 50%% storage utilization, got %v", got)
	}
	if result.Status != models.CapacityOptimal {
		t.Errorf("Expected optimal overall status, got %q", result.Status)
	}
}

func TestValidateCapacity_OverallIsWorstResource(t *testing.T) {
	// CPU comfortable, memory at 90% drags the overall grade to warning
	provider := &fakeProvider{workload: models.WorkloadSummary{
		TotalCPUCores:  100,
		TotalMemoryGB:  1382.4, // 90% of 1536
		TotalStorageTB: 5,
		VMCount:        20,
	}}
	svc := NewCapacityValidationService(provider)

	hw := models.TargetHardware{
		HostCount:        4,
		CPUCoresPerHost:  32,
		MemoryGBPerHost:  256,
		StorageTBPerHost: 10,
	}

	result, err := svc.ValidateCapacity(context.Background(), "prod-east", hw, models.DefaultOvercommitRatios())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Memory.Status != models.ResourceWarning {
		t.Errorf("Expected memory warning, got %q", result.Memory.Status)
	}
	if result.Status != models.CapacityWarning {
		t.Errorf("Expected overall warning from worst resource, got %q", result.Status)
	}
}

func TestValidateCapacity_CriticalOverall(t *testing.T) {
	provider := &fakeProvider{workload: models.WorkloadSummary{
		TotalCPUCores:  640, // 125% of 512 effective cores
		TotalMemoryGB:  100,
		TotalStorageTB: 1,
		VMCount:        10,
	}}
	svc := NewCapacityValidationService(provider)

	hw := models.TargetHardware{
		HostCount:        4,
		CPUCoresPerHost:  32,
		MemoryGBPerHost:  256,
		StorageTBPerHost: 10,
	}

	result, err := svc.ValidateCapacity(context.Background(), "prod-east", hw, models.DefaultOvercommitRatios())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.CPU.Status != models.ResourceCritical {
		t.Errorf("Expected critical CPU, got %q", result.CPU.Status)
	}
	if result.Status != models.CapacityCritical {
		t.Errorf("Expected critical overall status, got %q", result.Status)
	}
}

func TestValidateCapacity_LookupFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("inventory unreachable")}
	svc := NewCapacityValidationService(provider)

	_, err := svc.ValidateCapacity(context.Background(), "prod-east", models.TargetHardware{HostCount: 3}, models.DefaultOvercommitRatios())
	if err == nil {
		t.Fatal("Expected lookup failure to propagate as error")
	}
	if !strings.Contains(err.Error(), "prod-east") {
		t.Errorf("Expected error to name the cluster, got %q", err.Error())
	}
	if provider.calls != 1 {
		t.Errorf("Expected exactly one lookup attempt (no internal retries), got %d", provider.calls)
	}
}

func TestValidateCapacity_RejectsInvalidClusterName(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewCapacityValidationService(provider)

	_, err := svc.ValidateCapacity(context.Background(), "../etc/passwd", models.TargetHardware{HostCount: 3}, models.DefaultOvercommitRatios())
	if err == nil {
		t.Fatal("Expected invalid cluster name to be rejected")
	}
	if provider.calls != 0 {
		t.Error("Expected no lookup for an invalid cluster name")
	}
}

func TestRecommendations_NeverEmpty(t *testing.T) {
	// Utilization in the 40-80% sweet spot triggers no per-resource or
	// heuristic recommendations, so the affirmative message must appear
	workload := models.WorkloadSummary{
		TotalCPUCores:  256, // 50%
		TotalMemoryGB:  768, // 50%
		TotalStorageTB: 15,  // 50%
		VMCount:        50,
	}
	hw := models.TargetHardware{
		HostCount:        4,
		CPUCoresPerHost:  32,
		MemoryGBPerHost:  256,
		StorageTBPerHost: 10,
	}

	svc := NewCapacityValidationService(&fakeProvider{})
	result := svc.ValidateCapacityForWorkload(workload, hw, models.DefaultOvercommitRatios())

	if len(result.Recommendations) != 1 {
		t.Fatalf("Expected single affirmative recommendation, got %v", result.Recommendations)
	}
	if !strings.Contains(result.Recommendations[0], "excellent") {
		t.Errorf("Expected affirmative message, got %q", result.Recommendations[0])
	}
}

func TestRecommendations_HotResources(t *testing.T) {
	workload := models.WorkloadSummary{
		TotalCPUCores:  480,  // 93.75% of 512
		TotalMemoryGB:  1400, // 91% of 1536
		TotalStorageTB: 28,   // 93% of 30
		VMCount:        50,
	}
	hw := models.TargetHardware{
		HostCount:        4,
		CPUCoresPerHost:  32,
		MemoryGBPerHost:  256,
		StorageTBPerHost: 10,
	}

	svc := NewCapacityValidationService(&fakeProvider{})
	result := svc.ValidateCapacityForWorkload(workload, hw, models.DefaultOvercommitRatios())

	var cpuRec, memRec, storageRec bool
	for _, rec := range result.Recommendations {
		if strings.Contains(rec, "host(s)") {
			cpuRec = true
		}
		if strings.Contains(rec, "GB of memory") {
			memRec = true
		}
		if strings.Contains(rec, "TB of storage") {
			storageRec = true
		}
	}
	if !cpuRec || !memRec || !storageRec {
		t.Errorf("Expected remediation for all three hot resources, got %v", result.Recommendations)
	}
}

func TestRecommendations_Heuristics(t *testing.T) {
	peak := 0.92
	workload := models.WorkloadSummary{
		TotalCPUCores:      100,
		TotalMemoryGB:      300,
		TotalStorageTB:     5,
		VMCount:            250,
		PeakCPUUtilization: &peak,
	}
	hw := models.TargetHardware{
		HostCount:        2, // below the HA floor
		CPUCoresPerHost:  64,
		MemoryGBPerHost:  512,
		StorageTBPerHost: 20,
	}
	ratios := models.OvercommitRatios{CPU: 8.0, Memory: 2.0} // both aggressive

	svc := NewCapacityValidationService(&fakeProvider{})
	result := svc.ValidateCapacityForWorkload(workload, hw, ratios)

	wantPhrases := []string{
		"CPU overcommit ratio",
		"memory overcommit ratio",
		"insufficient for proper HA",
		"phased migration",
		"peak CPU utilization",
	}
	for _, phrase := range wantPhrases {
		found := false
		for _, rec := range result.Recommendations {
			if strings.Contains(rec, phrase) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected recommendation containing %q, got %v", phrase, result.Recommendations)
		}
	}
}

func TestCalculateRecommendedHosts_Floor(t *testing.T) {
	// A tiny workload still gets the 3-host HA floor
	svc := NewCapacityValidationService(&fakeProvider{})

	workload := models.WorkloadSummary{
		TotalCPUCores:  2,
		TotalMemoryGB:  8,
		TotalStorageTB: 0.1,
		VMCount:        1,
	}
	perHost := models.TargetHardware{
		CPUCoresPerHost:  64,
		MemoryGBPerHost:  512,
		StorageTBPerHost: 20,
	}

	if got := svc.CalculateRecommendedHosts(workload, perHost, models.DefaultOvercommitRatios()); got != 3 {
		t.Errorf("Expected 3-host floor, got %d", got)
	}
}

func TestCalculateRecommendedHosts_StorageDriven(t *testing.T) {
	// Storage needs 5 hosts of data plus one for N+1
	svc := NewCapacityValidationService(&fakeProvider{})

	workload := models.WorkloadSummary{
		TotalCPUCores:  16,
		TotalMemoryGB:  64,
		TotalStorageTB: 100,
		VMCount:        40,
	}
	perHost := models.TargetHardware{
		CPUCoresPerHost:  64,
		MemoryGBPerHost:  512,
		StorageTBPerHost: 20,
	}

	if got := svc.CalculateRecommendedHosts(workload, perHost, models.DefaultOvercommitRatios()); got != 6 {
		t.Errorf("Expected 6 hosts (5 for data + 1 N+1), got %d", got)
	}
}
