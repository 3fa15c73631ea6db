// ABOUTME: Dependency graph primitives for domino hardware swap chains
// ABOUTME: Graph construction, cycle detection, topological sort, critical path

package services

import (
	"sort"
	"strings"

	"github.com/clusterops/migration-planner/models"
)

// DependencyGraph maps each target cluster to the set of clusters whose
// vacated hardware it depends on. Every target cluster is a key, even when
// it has no dependencies.
type DependencyGraph map[string]map[string]bool

// Dependencies returns the dependency names of a node in sorted order
func (g DependencyGraph) Dependencies(node string) []string {
	deps := make([]string, 0, len(g[node]))
	for dep := range g[node] {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	return deps
}

// Nodes returns all node names in sorted order
func (g DependencyGraph) Nodes() []string {
	nodes := make([]string, 0, len(g))
	for name := range g {
		nodes = append(nodes, name)
	}
	sort.Strings(nodes)
	return nodes
}

// DependencyGraphBuilder constructs a DependencyGraph from migration plans
type DependencyGraphBuilder struct{}

// NewDependencyGraphBuilder creates a new graph builder
func NewDependencyGraphBuilder() *DependencyGraphBuilder {
	return &DependencyGraphBuilder{}
}

// Build creates one node per distinct target cluster name and, for each
// domino swap plan, a directed edge from the plan's target to its domino
// source (the dependent points at what it depends on). An edge is added
// only when the domino source is itself a plan target; dangling sources
// are reported separately by the source-consistency check.
func (b *DependencyGraphBuilder) Build(plans []models.ClusterMigrationPlan) DependencyGraph {
	graph := make(DependencyGraph, len(plans))
	for _, plan := range plans {
		if _, ok := graph[plan.TargetClusterName]; !ok {
			graph[plan.TargetClusterName] = make(map[string]bool)
		}
	}

	for _, plan := range plans {
		if !plan.IsDomino() || plan.DominoSourceCluster == "" {
			continue
		}
		if _, ok := graph[plan.DominoSourceCluster]; !ok {
			continue
		}
		graph[plan.TargetClusterName][plan.DominoSourceCluster] = true
	}

	return graph
}

// CycleDetector finds every simple cycle in a dependency graph
type CycleDetector struct{}

// NewCycleDetector creates a new cycle detector
func NewCycleDetector() *CycleDetector {
	return &CycleDetector{}
}

// Detect runs a three-color depth-first search from every node and reports
// each cycle found. Nodes already fully explored (black) are skipped, so
// independent cycles are each reported exactly once.
func (d *CycleDetector) Detect(graph DependencyGraph) []models.CircularDependency {
	var cycles []models.CircularDependency
	visited := make(map[string]bool, len(graph)) // black
	onStack := make(map[string]bool, len(graph)) // gray

	var path []string
	var visit func(node string)
	visit = func(node string) {
		visited[node] = true
		onStack[node] = true
		path = append(path, node)

		for _, dep := range graph.Dependencies(node) {
			if onStack[dep] {
				cycles = append(cycles, extractCycle(path, dep))
				continue
			}
			if !visited[dep] {
				visit(dep)
			}
		}

		path = path[:len(path)-1]
		onStack[node] = false
	}

	for _, node := range graph.Nodes() {
		if !visited[node] {
			visit(node)
		}
	}

	return cycles
}

// extractCycle takes the suffix of the current DFS path starting at the
// revisited node and closes the loop by repeating that node at the end
func extractCycle(path []string, start string) models.CircularDependency {
	idx := 0
	for i, name := range path {
		if name == start {
			idx = i
			break
		}
	}

	chain := make([]string, 0, len(path)-idx+1)
	chain = append(chain, path[idx:]...)
	chain = append(chain, start)

	return models.CircularDependency{
		ClusterChain: chain,
		Description:  strings.Join(chain, " → "),
	}
}

// eligibilityQueue holds nodes whose dependencies have all been satisfied
// during topological sorting. LIFO and FIFO implementations both yield a
// valid dependency-first order; they differ only in tie-breaking among
// independent branches.
type eligibilityQueue interface {
	Push(node string)
	Pop() string
	Len() int
}

// nodeStack is the LIFO eligibility queue. The sorter pairs it with a
// final reversal of the emitted order, matching the planner's established
// execution-order output.
type nodeStack struct {
	nodes []string
}

func (s *nodeStack) Push(node string) {
	s.nodes = append(s.nodes, node)
}

func (s *nodeStack) Pop() string {
	last := s.nodes[len(s.nodes)-1]
	s.nodes = s.nodes[:len(s.nodes)-1]
	return last
}

func (s *nodeStack) Len() int {
	return len(s.nodes)
}

// TopologicalSorter orders nodes dependencies-first for acyclic graphs
type TopologicalSorter struct{}

// NewTopologicalSorter creates a new sorter
func NewTopologicalSorter() *TopologicalSorter {
	return &TopologicalSorter{}
}

// Sort produces an execution order in which every cluster appears after
// all clusters it depends on. The graph must be acyclic; callers are
// expected to run cycle detection first. Kahn's algorithm over the
// dependency edges emits nodes with no remaining dependents first, so the
// output is reversed before returning.
func (s *TopologicalSorter) Sort(graph DependencyGraph) []string {
	inDegree := make(map[string]int, len(graph))
	for node := range graph {
		inDegree[node] = 0
	}
	for node := range graph {
		for dep := range graph[node] {
			inDegree[dep]++
		}
	}

	var queue eligibilityQueue = &nodeStack{}
	for _, node := range graph.Nodes() {
		if inDegree[node] == 0 {
			queue.Push(node)
		}
	}

	order := make([]string, 0, len(graph))
	for queue.Len() > 0 {
		node := queue.Pop()
		order = append(order, node)
		for _, dep := range graph.Dependencies(node) {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue.Push(dep)
			}
		}
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	return order
}

// CriticalPathCalculator extracts the longest dependency chain
type CriticalPathCalculator struct{}

// NewCriticalPathCalculator creates a new calculator
func NewCriticalPathCalculator() *CriticalPathCalculator {
	return &CriticalPathCalculator{}
}

// Calculate walks the execution order (dependencies first) computing each
// node's longest incoming chain length, then backtracks from the global
// maximum through predecessor pointers. The returned path reads
// dependency-first; its length lower-bounds the whole plan's duration.
func (c *CriticalPathCalculator) Calculate(graph DependencyGraph, executionOrder []string) []string {
	if len(executionOrder) == 0 {
		return nil
	}

	chainLen := make(map[string]int, len(executionOrder))
	pred := make(map[string]string, len(executionOrder))

	for _, node := range executionOrder {
		longest := 0
		for _, dep := range graph.Dependencies(node) {
			if chainLen[dep]+1 > longest {
				longest = chainLen[dep] + 1
				pred[node] = dep
			}
		}
		chainLen[node] = longest
	}

	end := executionOrder[0]
	for _, node := range executionOrder {
		if chainLen[node] > chainLen[end] {
			end = node
		}
	}

	path := []string{end}
	for {
		prev, ok := pred[path[len(path)-1]]
		if !ok {
			break
		}
		path = append(path, prev)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
