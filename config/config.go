// ABOUTME: Configuration loader for the migration planner
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/clusterops/migration-planner/models"
)

type Config struct {
	// Capacity defaults
	CPUOvercommit    float64 // vCPU:pCPU ratio applied to target hardware (default 4.0)
	MemoryOvercommit float64 // virtual:physical memory ratio (default 1.5)

	// Workload lookup
	WorkloadCacheTTL int // seconds, default 300 (5 min)

	// vSphere (optional, for live workload lookups)
	VSphereHost       string
	VSphereUsername   string
	VSpherePassword   string
	VSphereDatacenter string
	VSphereInsecure   bool
}

// VSphereConfigured returns true if vSphere credentials are set
func (c *Config) VSphereConfigured() bool {
	return c.VSphereHost != "" && c.VSphereUsername != "" && c.VSpherePassword != "" && c.VSphereDatacenter != ""
}

// OvercommitRatios returns the configured overcommit ratios
func (c *Config) OvercommitRatios() models.OvercommitRatios {
	return models.OvercommitRatios{CPU: c.CPUOvercommit, Memory: c.MemoryOvercommit}
}

func Load() (*Config, error) {
	defaults := models.DefaultOvercommitRatios()

	cfg := &Config{
		CPUOvercommit:    getEnvFloat("CPU_OVERCOMMIT_RATIO", defaults.CPU),
		MemoryOvercommit: getEnvFloat("MEMORY_OVERCOMMIT_RATIO", defaults.Memory),

		WorkloadCacheTTL: getEnvInt("WORKLOAD_CACHE_TTL", 300),

		VSphereHost:       os.Getenv("VSPHERE_HOST"),
		VSphereUsername:   os.Getenv("VSPHERE_USERNAME"),
		VSpherePassword:   os.Getenv("VSPHERE_PASSWORD"),
		VSphereDatacenter: os.Getenv("VSPHERE_DATACENTER"),
		VSphereInsecure:   getEnvBool("VSPHERE_INSECURE", false),
	}

	if cfg.CPUOvercommit <= 0 {
		return nil, fmt.Errorf("CPU_OVERCOMMIT_RATIO must be positive, got %v", cfg.CPUOvercommit)
	}
	if cfg.MemoryOvercommit <= 0 {
		return nil, fmt.Errorf("MEMORY_OVERCOMMIT_RATIO must be positive, got %v", cfg.MemoryOvercommit)
	}
	if cfg.WorkloadCacheTTL < 0 {
		return nil, fmt.Errorf("WORKLOAD_CACHE_TTL must not be negative, got %d", cfg.WorkloadCacheTTL)
	}

	return cfg, nil
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
