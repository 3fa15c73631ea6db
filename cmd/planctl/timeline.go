// ABOUTME: Timeline subcommand estimating migration duration
// ABOUTME: Prints phase totals, task breakdown, and confidence as JSON

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clusterops/migration-planner/models"
	"github.com/clusterops/migration-planner/services"
)

var (
	timelineVMs   int
	timelineHosts int
	timelineInfra string
	compatIssues  bool
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Estimate migration duration with a task breakdown",
	RunE:  runTimeline,
}

func init() {
	timelineCmd.Flags().IntVar(&timelineVMs, "vms", 0, "Number of VMs to migrate (required)")
	timelineCmd.Flags().IntVar(&timelineHosts, "hosts", 0, "Target host count")
	timelineCmd.Flags().StringVar(&timelineInfra, "infra", string(models.InfraTraditional), "Infrastructure type: traditional, hci_s2d, or azure_local")
	timelineCmd.Flags().BoolVar(&compatIssues, "compatibility-issues", false, "Workload has known compatibility issues")
	timelineCmd.MarkFlagRequired("vms")
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	infra := models.InfrastructureType(timelineInfra)
	switch infra {
	case models.InfraTraditional, models.InfraHciS2d, models.InfraAzureLocal:
	default:
		return fmt.Errorf("unknown infrastructure type %q", timelineInfra)
	}

	result := services.NewTimelineEstimationService().EstimateMigrationTimeline(models.TimelineEstimationRequest{
		VMCount:                timelineVMs,
		HostCount:              timelineHosts,
		InfrastructureType:     infra,
		HasCompatibilityIssues: compatIssues,
	})

	return writeResult(result)
}
