// ABOUTME: vSphere-backed workload provider via govmomi
// ABOUTME: Aggregates per-cluster VM footprints into workload summaries

package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/clusterops/migration-planner/models"
	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/find"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/vim25/mo"
)

// VSphereCredentials holds vCenter connection info
type VSphereCredentials struct {
	Host       string
	Username   string
	Password   string
	Datacenter string
	Insecure   bool
}

// VSphereProvider implements the engine's workload lookup against a live
// vCenter inventory. It satisfies services.WorkloadProvider.
type VSphereProvider struct {
	creds      VSphereCredentials
	client     *govmomi.Client
	finder     *find.Finder
	datacenter *object.Datacenter
}

// NewVSphereProvider creates a provider; call Connect before lookups
func NewVSphereProvider(creds VSphereCredentials) *VSphereProvider {
	return &VSphereProvider{
		creds: creds,
	}
}

// Connect establishes the vCenter session and resolves the datacenter
func (p *VSphereProvider) Connect(ctx context.Context) error {
	host := p.creds.Host
	if !strings.HasPrefix(host, "https://") && !strings.HasPrefix(host, "http://") {
		host = "https://" + host
	}

	u, err := url.Parse(host + "/sdk")
	if err != nil {
		return fmt.Errorf("invalid vCenter URL '%s': %w", p.creds.Host, err)
	}
	u.User = url.UserPassword(p.creds.Username, p.creds.Password)

	client, err := govmomi.NewClient(ctx, u, p.creds.Insecure)
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "connection refused") {
			return fmt.Errorf("connection refused to vCenter at %s - verify the host is reachable", p.creds.Host)
		}
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "Cannot complete login") {
			return fmt.Errorf("authentication failed - verify username and password")
		}
		if strings.Contains(errStr, "certificate") || strings.Contains(errStr, "x509") {
			return fmt.Errorf("SSL certificate error connecting to %s - try enabling insecure mode", p.creds.Host)
		}
		return fmt.Errorf("failed to connect to vCenter at %s: %w", p.creds.Host, err)
	}

	p.client = client
	p.finder = find.NewFinder(client.Client, true)

	dc, err := p.finder.Datacenter(ctx, p.creds.Datacenter)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("datacenter '%s' not found - verify the datacenter name", p.creds.Datacenter)
		}
		return fmt.Errorf("error accessing datacenter '%s': %w", p.creds.Datacenter, err)
	}
	p.datacenter = dc
	p.finder.SetDatacenter(dc)

	slog.Info("vSphere connected", "host", p.creds.Host, "datacenter", p.creds.Datacenter)
	return nil
}

// Disconnect closes the vCenter session
func (p *VSphereProvider) Disconnect(ctx context.Context) error {
	if p.client != nil {
		return p.client.Logout(ctx)
	}
	return nil
}

// GetWorkloadSummary aggregates the powered-on VM footprint of the named
// cluster: vCPU and memory totals from VM configuration, storage from
// committed datastore usage, and peak utilization fractions from host
// quick stats.
func (p *VSphereProvider) GetWorkloadSummary(ctx context.Context, clusterID string) (models.WorkloadSummary, error) {
	if p.finder == nil {
		return models.WorkloadSummary{}, fmt.Errorf("vSphere provider is not connected")
	}

	cluster, err := p.finder.ClusterComputeResource(ctx, clusterID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return models.WorkloadSummary{}, fmt.Errorf("cluster %q not found in datacenter %q", clusterID, p.creds.Datacenter)
		}
		return models.WorkloadSummary{}, fmt.Errorf("looking up cluster %q: %w", clusterID, err)
	}

	summary := models.WorkloadSummary{}

	if err := p.addVMFootprint(ctx, cluster, &summary); err != nil {
		return models.WorkloadSummary{}, err
	}
	if err := p.addPeakUtilization(ctx, cluster, &summary); err != nil {
		// Peak figures are advisory; log and continue without them
		slog.Warn("Could not read host quick stats", "cluster", clusterID, "error", err)
	}

	slog.Debug("Cluster workload aggregated",
		"cluster", clusterID,
		"vms", summary.VMCount,
		"cpu_cores", summary.TotalCPUCores,
		"memory_gb", summary.TotalMemoryGB,
		"storage_tb", summary.TotalStorageTB)

	return summary, nil
}

// addVMFootprint sums vCPUs, configured memory, and committed storage of
// the cluster's powered-on VMs
func (p *VSphereProvider) addVMFootprint(ctx context.Context, cluster *object.ClusterComputeResource, summary *models.WorkloadSummary) error {
	vms, err := p.finder.VirtualMachineList(ctx, "*")
	if err != nil {
		return fmt.Errorf("listing VMs: %w", err)
	}

	for _, vm := range vms {
		var vmMo mo.VirtualMachine
		if err := vm.Properties(ctx, vm.Reference(), []string{"config", "runtime", "summary"}, &vmMo); err != nil {
			continue // Skip VMs we can't read
		}
		if string(vmMo.Runtime.PowerState) != "poweredOn" {
			continue
		}
		if !p.vmInCluster(ctx, &vmMo, cluster) {
			continue
		}

		summary.VMCount++
		if vmMo.Config != nil {
			summary.TotalCPUCores += float64(vmMo.Config.Hardware.NumCPU)
			summary.TotalMemoryGB += float64(vmMo.Config.Hardware.MemoryMB) / 1024
		}
		if vmMo.Summary.Storage != nil {
			summary.TotalStorageTB += float64(vmMo.Summary.Storage.Committed) / (1024 * 1024 * 1024 * 1024)
		}
	}

	return nil
}

// vmInCluster reports whether the VM's host belongs to the given cluster
func (p *VSphereProvider) vmInCluster(ctx context.Context, vmMo *mo.VirtualMachine, cluster *object.ClusterComputeResource) bool {
	if vmMo.Runtime.Host == nil {
		return false
	}
	host := object.NewHostSystem(p.client.Client, *vmMo.Runtime.Host)

	var hostMo mo.HostSystem
	if err := host.Properties(ctx, host.Reference(), []string{"parent"}, &hostMo); err != nil {
		return false
	}
	return hostMo.Parent != nil &&
		hostMo.Parent.Type == "ClusterComputeResource" &&
		hostMo.Parent.Value == cluster.Reference().Value
}

// addPeakUtilization derives peak CPU and memory fractions from host
// quick stats across the cluster
func (p *VSphereProvider) addPeakUtilization(ctx context.Context, cluster *object.ClusterComputeResource, summary *models.WorkloadSummary) error {
	var clusterMo mo.ClusterComputeResource
	if err := cluster.Properties(ctx, cluster.Reference(), []string{"host"}, &clusterMo); err != nil {
		return fmt.Errorf("getting cluster hosts: %w", err)
	}

	var usedCPUMhz, capacityCPUMhz float64
	var usedMemMB, capacityMemMB float64

	for _, hostRef := range clusterMo.Host {
		host := object.NewHostSystem(p.client.Client, hostRef)
		var hostMo mo.HostSystem
		if err := host.Properties(ctx, host.Reference(), []string{"summary"}, &hostMo); err != nil {
			continue
		}

		hw := hostMo.Summary.Hardware
		if hw != nil {
			capacityCPUMhz += float64(hw.CpuMhz) * float64(hw.NumCpuCores)
			capacityMemMB += float64(hw.MemorySize) / (1024 * 1024)
		}
		usedCPUMhz += float64(hostMo.Summary.QuickStats.OverallCpuUsage)
		usedMemMB += float64(hostMo.Summary.QuickStats.OverallMemoryUsage)
	}

	if capacityCPUMhz > 0 {
		cpu := usedCPUMhz / capacityCPUMhz
		summary.PeakCPUUtilization = &cpu
	}
	if capacityMemMB > 0 {
		mem := usedMemMB / capacityMemMB
		summary.PeakMemUtilization = &mem
	}

	return nil
}
