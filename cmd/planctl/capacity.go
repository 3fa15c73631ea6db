// ABOUTME: Capacity subcommand grading target hardware against a workload
// ABOUTME: Workloads come from a JSON fixture file or live vSphere inventory

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/clusterops/migration-planner/config"
	"github.com/clusterops/migration-planner/inventory"
	"github.com/clusterops/migration-planner/models"
	"github.com/clusterops/migration-planner/services"
)

var (
	workloadsFile    string
	sourceCluster    string
	hostCount        int
	cpuPerHost       float64
	memoryPerHost    float64
	storagePerHost   float64
	cpuOvercommit    float64
	memoryOvercommit float64
)

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Validate target hardware capacity for a cluster's workload",
	Long: `Grades target hardware against the source cluster's workload.

The workload comes from --workloads (a JSON object mapping cluster name
to workload summary) or, when vSphere credentials are configured, from
live vCenter inventory.

Exits 1 when the overall capacity status is critical.`,
	RunE: runCapacity,
}

func init() {
	capacityCmd.Flags().StringVar(&workloadsFile, "workloads", "", "Path to JSON file mapping cluster names to workload summaries")
	capacityCmd.Flags().StringVar(&sourceCluster, "cluster", "", "Source cluster name (required)")
	capacityCmd.Flags().IntVar(&hostCount, "hosts", 0, "Target host count (required)")
	capacityCmd.Flags().Float64Var(&cpuPerHost, "cpu-per-host", 0, "CPU cores per target host (required)")
	capacityCmd.Flags().Float64Var(&memoryPerHost, "memory-per-host", 0, "Memory GB per target host (required)")
	capacityCmd.Flags().Float64Var(&storagePerHost, "storage-per-host", 0, "Storage TB per target host (required)")
	capacityCmd.Flags().Float64Var(&cpuOvercommit, "cpu-overcommit", 0, "CPU overcommit ratio (default from environment)")
	capacityCmd.Flags().Float64Var(&memoryOvercommit, "memory-overcommit", 0, "Memory overcommit ratio (default from environment)")
	capacityCmd.MarkFlagRequired("cluster")
	capacityCmd.MarkFlagRequired("hosts")
	capacityCmd.MarkFlagRequired("cpu-per-host")
	capacityCmd.MarkFlagRequired("memory-per-host")
	capacityCmd.MarkFlagRequired("storage-per-host")
	rootCmd.AddCommand(capacityCmd)
}

func runCapacity(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	ratios := cfg.OvercommitRatios()
	if cpuOvercommit > 0 {
		ratios.CPU = cpuOvercommit
	}
	if memoryOvercommit > 0 {
		ratios.Memory = memoryOvercommit
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	provider, cleanup, err := workloadProvider(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := services.NewCapacityValidationService(provider)
	hw := models.TargetHardware{
		HostCount:        hostCount,
		CPUCoresPerHost:  cpuPerHost,
		MemoryGBPerHost:  memoryPerHost,
		StorageTBPerHost: storagePerHost,
	}

	result, err := svc.ValidateCapacity(ctx, sourceCluster, hw, ratios)
	if err != nil {
		return err
	}
	if err := writeResult(result); err != nil {
		return err
	}

	if result.Status == models.CapacityCritical {
		os.Exit(1)
	}
	return nil
}

// workloadProvider picks the workload source: a JSON fixture file when
// given, otherwise live vSphere inventory
func workloadProvider(ctx context.Context, cfg *config.Config) (services.WorkloadProvider, func(), error) {
	noop := func() {}

	if workloadsFile != "" {
		data, err := os.ReadFile(workloadsFile)
		if err != nil {
			return nil, noop, fmt.Errorf("reading workloads file: %w", err)
		}
		var workloads map[string]models.WorkloadSummary
		if err := json.Unmarshal(data, &workloads); err != nil {
			return nil, noop, fmt.Errorf("parsing workloads file: %w", err)
		}
		return inventory.NewStaticProvider(workloads), noop, nil
	}

	if !cfg.VSphereConfigured() {
		return nil, noop, fmt.Errorf("no workload source: pass --workloads or configure vSphere credentials")
	}

	vsphere := inventory.NewVSphereProvider(inventory.VSphereCredentials{
		Host:       cfg.VSphereHost,
		Username:   cfg.VSphereUsername,
		Password:   cfg.VSpherePassword,
		Datacenter: cfg.VSphereDatacenter,
		Insecure:   cfg.VSphereInsecure,
	})
	if err := vsphere.Connect(ctx); err != nil {
		return nil, noop, err
	}

	cleanup := func() { vsphere.Disconnect(ctx) }
	cached := inventory.NewCachedProvider(vsphere, time.Duration(cfg.WorkloadCacheTTL)*time.Second)
	return cached, cleanup, nil
}
