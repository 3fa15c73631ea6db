// ABOUTME: Root command for planctl CLI
// ABOUTME: Handles global output formatting and result encoding

package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var prettyOutput bool

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "planctl",
	Short: "CLI for the cluster migration planner",
	Long: `planctl validates multi-cluster hardware migration plans.

It checks domino hardware hand-off chains for circular dependencies,
grades target hardware capacity against a cluster's workload, and
estimates migration timelines. Results are printed as JSON so CI/CD
pipelines can gate on them; a failed validation exits non-zero.

Environment Variables:
  CPU_OVERCOMMIT_RATIO     Default CPU overcommit (default: 4.0)
  MEMORY_OVERCOMMIT_RATIO  Default memory overcommit (default: 1.5)
  VSPHERE_HOST             vCenter host for live workload lookups
  VSPHERE_USERNAME         vCenter username
  VSPHERE_PASSWORD         vCenter password
  VSPHERE_DATACENTER       vCenter datacenter name`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&prettyOutput, "pretty", false, "Indent JSON output")
}

// writeResult encodes a result to stdout honoring the --pretty flag
func writeResult(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	if prettyOutput {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
