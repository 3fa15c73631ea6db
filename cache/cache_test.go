// ABOUTME: Tests for the workload summary TTL cache
// ABOUTME: Verifies expiration, clearing, and hit/miss behavior

package cache

import (
	"testing"
	"time"

	"github.com/clusterops/migration-planner/models"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New(time.Minute)

	c.Set("prod-east", models.WorkloadSummary{VMCount: 12})

	summary, ok := c.Get("prod-east")
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if summary.VMCount != 12 {
		t.Errorf("Expected 12 VMs, got %d", summary.VMCount)
	}
}

func TestCache_Miss(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get("unknown"); ok {
		t.Error("Expected cache miss for unknown cluster")
	}
}

func TestCache_Expiration(t *testing.T) {
	c := New(10 * time.Millisecond)

	c.Set("prod-east", models.WorkloadSummary{VMCount: 12})
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("prod-east"); ok {
		t.Error("Expected entry to expire")
	}
}

func TestCache_Clear(t *testing.T) {
	c := New(time.Minute)

	c.Set("prod-east", models.WorkloadSummary{VMCount: 12})
	c.Clear("prod-east")

	if _, ok := c.Get("prod-east"); ok {
		t.Error("Expected entry to be cleared")
	}
}
