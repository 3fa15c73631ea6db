// ABOUTME: Dependencies subcommand validating a migration plan set
// ABOUTME: Reads plans from JSON and exits non-zero on structural errors

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clusterops/migration-planner/models"
	"github.com/clusterops/migration-planner/services"
)

var plansFile string

var dependenciesCmd = &cobra.Command{
	Use:   "dependencies",
	Short: "Validate domino hardware hand-off dependencies",
	Long: `Validates a set of cluster migration plans: detects circular
hardware hand-offs, checks domino sources against the plan set, and
computes the execution order and critical path.

Exits 1 when the plan set has errors or circular dependencies.`,
	RunE: runDependencies,
}

func init() {
	dependenciesCmd.Flags().StringVar(&plansFile, "plans", "", "Path to JSON file with the migration plan set (required)")
	dependenciesCmd.MarkFlagRequired("plans")
	rootCmd.AddCommand(dependenciesCmd)
}

func runDependencies(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(plansFile)
	if err != nil {
		return fmt.Errorf("reading plans file: %w", err)
	}

	var plans []models.ClusterMigrationPlan
	if err := json.Unmarshal(data, &plans); err != nil {
		return fmt.Errorf("parsing plans file: %w", err)
	}

	result := services.NewDependencyValidator().Validate(plans)
	if err := writeResult(result); err != nil {
		return err
	}

	if !result.IsValid {
		os.Exit(1)
	}
	return nil
}
